package model

import "time"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell int

const (
	Wall Cell = iota
	Path
	Start
	End
)

// Grid is indexed [y][x].
type Grid [][]Cell

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions is the fixed scan order used for fallbacks.
var Directions = [4]Direction{Up, Down, Left, Right}

type Behavior int

const (
	Patrol Behavior = iota
	Random
	Chase
)

type Item int

const (
	NoItem Item = iota
	Door
	Shuriken
)

type Status int

const (
	Menu Status = iota
	Playing
	Won
	Lost
)

type Cause int

const (
	NoCause Cause = iota
	Caught
	Stuck
)

type Player struct {
	Position Position  `json:"position"`
	Facing   Direction `json:"facing"`
	Item     Item      `json:"item"`
}

type Enemy struct {
	Id           int       `json:"id"`
	Position     Position  `json:"position"`
	Behavior     Behavior  `json:"behavior"`
	Facing       Direction `json:"facing"`
	StunnedUntil time.Time `json:"-"`
	Stunned      bool      `json:"stunned"`
}

type Flower struct {
	Id       int      `json:"id"`
	Position Position `json:"position"`
}

type Portal struct {
	Id        string    `json:"id"`
	A         Position  `json:"a"`
	B         Position  `json:"b"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Projectile struct {
	Id        int       `json:"id"`
	Position  Position  `json:"position"`
	Direction Direction `json:"direction"`
	Active    bool      `json:"active"`
}

type LevelConfig struct {
	Level         int      `json:"level"`
	GridSize      int      `json:"gridSize"`
	EnemyCount    int      `json:"enemyCount"`
	EnemyBehavior Behavior `json:"enemyBehavior"`
	// EnemySpeed is the adversary tick interval in milliseconds.
	EnemySpeed int `json:"enemySpeed"`
}

type Skin struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	UnlockLevel int    `json:"unlockLevel"`
}
