// Package game holds the maze chase simulation: the state store, player
// movement, adversary AI, items and the session orchestrator that drives
// them from independent timers.
package game

import (
	"math/rand"
	"time"

	"github.com/zucenko/mazerun/level"
	"github.com/zucenko/mazerun/maze"
	"github.com/zucenko/mazerun/model"
)

const (
	ProjectileInterval = 100 * time.Millisecond
	PortalInterval     = 500 * time.Millisecond
	StuckInterval      = time.Second

	StuckTimeout   = 10 * time.Second
	StuckWarning   = StuckTimeout - 3*time.Second
	PortalLifetime = 10 * time.Second
	StunDuration   = 5 * time.Second

	RandomForwardChance = 0.8
	ChaseFeintChance    = 0.2

	MinFlowers = 3
	MaxFlowers = 5
	// SafeSpawnDistance is the Manhattan distance from start enemies prefer to exceed.
	SafeSpawnDistance = 5
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Rand is every random draw the simulation makes. *rand.Rand satisfies it.
type Rand interface {
	maze.Rand
	Intn(n int) int
}

func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Game is the state store for one session. It is not safe for concurrent
// use; Session serializes every call onto its loop.
type Game struct {
	clock Clock
	rng   Rand

	status model.Status
	cause  model.Cause
	config model.LevelConfig

	grid       model.Grid
	start, end model.Position

	player      model.Player
	enemies     []model.Enemy
	flowers     []model.Flower
	portal      *model.Portal
	projectiles []model.Projectile

	lastMove     time.Time
	stuckWarning bool
	projectileId int

	events  []model.Event
	changed bool
}

func NewGame(clock Clock, rng Rand) *Game {
	if clock == nil {
		clock = systemClock{}
	}
	if rng == nil {
		rng = NewRand(0)
	}
	return &Game{clock: clock, rng: rng, status: model.Menu}
}

func (g *Game) Status() model.Status { return g.status }

func (g *Game) Level() int { return g.config.Level }

func (g *Game) Config() model.LevelConfig { return g.config }

// Start resolves the level, generates its maze and enters PLAYING.
func (g *Game) Start(n int) model.LevelConfig {
	cfg := level.Resolve(n)
	grid, start, end := maze.Generate(cfg.GridSize, cfg.GridSize, g.rng)
	g.load(cfg, grid, start, end)
	return cfg
}

func (g *Game) load(cfg model.LevelConfig, grid model.Grid, start, end model.Position) {
	g.config = cfg
	g.grid = grid
	g.start, g.end = start, end
	g.player = model.Player{Position: start, Facing: model.Down, Item: model.NoItem}
	g.portal = nil
	g.projectiles = nil
	g.projectileId = 0
	g.cause = model.NoCause
	g.stuckWarning = false
	g.seed()
	g.lastMove = g.clock.Now()
	g.status = model.Playing
	g.emit(model.Event{Kind: model.EventStart, Level: cfg.Level})
}

// seed places flowers then enemies on shuffled PATH cells, degrading to
// fewer spawns when the pool runs dry.
func (g *Game) seed() {
	spawns := make([]model.Position, 0)
	for _, p := range maze.Open(g.grid) {
		if g.grid.At(p) == model.Path && p != g.start && p != g.end {
			spawns = append(spawns, p)
		}
	}
	g.rng.Shuffle(len(spawns), func(i, j int) { spawns[i], spawns[j] = spawns[j], spawns[i] })

	count := MinFlowers + g.rng.Intn(MaxFlowers-MinFlowers+1)
	g.flowers = make([]model.Flower, 0, count)
	for i := 0; i < count && len(spawns) > 0; i++ {
		last := len(spawns) - 1
		g.flowers = append(g.flowers, model.Flower{Id: i, Position: spawns[last]})
		spawns = spawns[:last]
	}

	far := make([]model.Position, 0, len(spawns))
	near := make([]model.Position, 0)
	for _, p := range spawns {
		if p.Manhattan(g.start) > SafeSpawnDistance {
			far = append(far, p)
		} else {
			near = append(near, p)
		}
	}
	pop := func(pool *[]model.Position) model.Position {
		last := len(*pool) - 1
		p := (*pool)[last]
		*pool = (*pool)[:last]
		return p
	}

	g.enemies = make([]model.Enemy, 0, g.config.EnemyCount)
	for i := 0; i < g.config.EnemyCount; i++ {
		var at model.Position
		switch {
		case len(far) > 0:
			at = pop(&far)
		case len(near) > 0:
			at = pop(&near)
		default:
			return
		}
		g.enemies = append(g.enemies, model.Enemy{
			Id:       i,
			Position: at,
			Behavior: g.config.EnemyBehavior,
			Facing:   model.Directions[g.rng.Intn(len(model.Directions))],
		})
	}
}

// Exit returns to MENU and drops the level.
func (g *Game) Exit() {
	g.status = model.Menu
	g.cause = model.NoCause
	g.grid = nil
	g.enemies = nil
	g.flowers = nil
	g.portal = nil
	g.projectiles = nil
	g.stuckWarning = false
	g.changed = true
}

func (g *Game) emit(e model.Event) {
	g.events = append(g.events, e)
	g.changed = true
}

// Drain hands over pending events and reports whether anything changed since the last call.
func (g *Game) Drain() ([]model.Event, bool) {
	events, changed := g.events, g.changed
	g.events = nil
	g.changed = false
	return events, changed
}

// Snapshot deep copies the store for rendering.
func (g *Game) Snapshot() model.Snapshot {
	now := g.clock.Now()
	s := model.Snapshot{
		Status:       g.status,
		Level:        g.config.Level,
		Start:        g.start,
		End:          g.end,
		Player:       g.player,
		Grid:         g.grid.Clone(),
		Enemies:      make([]model.Enemy, len(g.enemies)),
		Flowers:      append([]model.Flower{}, g.flowers...),
		Projectiles:  append([]model.Projectile{}, g.projectiles...),
		StuckWarning: g.stuckWarning,
		Cause:        g.cause,
	}
	for i, e := range g.enemies {
		e.Stunned = e.IsStunned(now)
		s.Enemies[i] = e
	}
	if g.portal != nil {
		p := *g.portal
		s.Portal = &p
	}
	if g.status == model.Playing {
		left := StuckTimeout - now.Sub(g.lastMove)
		if left < 0 {
			left = 0
		}
		s.StuckRemaining = int(left / time.Second)
	}
	return s
}
