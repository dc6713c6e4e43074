package model

import (
	"fmt"
	"time"
)

// NewGrid returns a width x height grid filled with walls.
func NewGrid(width, height int) Grid {
	grid := make(Grid, 0, height)
	for y := 0; y < height; y++ {
		grid = append(grid, make([]Cell, width))
	}
	return grid
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Height() int {
	return len(g)
}

func (g Grid) In(p Position) bool {
	return p.Y >= 0 && p.Y < len(g) && p.X >= 0 && p.X < len(g[p.Y])
}

func (g Grid) At(p Position) Cell {
	if !g.In(p) {
		return Wall
	}
	return g[p.Y][p.X]
}

// Walkable treats out of bounds as wall and START/END as open floor.
func (g Grid) Walkable(p Position) bool {
	return g.At(p) != Wall
}

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	c := make(Grid, len(g))
	for y := range g {
		c[y] = append([]Cell(nil), g[y]...)
	}
	return c
}

func (p Position) Add(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Portal endpoints are symmetric: entering one exits at the other.
func (p *Portal) Exit(at Position) (Position, bool) {
	if p == nil {
		return at, false
	}
	switch at {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	}
	return at, false
}

func (e Enemy) IsStunned(now time.Time) bool {
	return e.StunnedUntil.After(now)
}

// Interval is the adversary tick cadence.
func (c LevelConfig) Interval() time.Duration {
	return time.Duration(c.EnemySpeed) * time.Millisecond
}

var directionNames = []string{"UP", "DOWN", "LEFT", "RIGHT"}
var behaviorNames = []string{"PATROL", "RANDOM", "CHASE"}
var itemNames = []string{"NONE", "DOOR", "SHURIKEN"}
var statusNames = []string{"MENU", "PLAYING", "WON", "LOST"}
var causeNames = []string{"", "CAUGHT", "STUCK"}

func name(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("n/a:%d", i)
	}
	return names[i]
}

func parse(names []string, kind, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func (d Direction) String() string { return name(directionNames, int(d)) }
func (b Behavior) String() string  { return name(behaviorNames, int(b)) }
func (i Item) String() string      { return name(itemNames, int(i)) }
func (s Status) String() string    { return name(statusNames, int(s)) }
func (c Cause) String() string     { return name(causeNames, int(c)) }

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (b Behavior) MarshalText() ([]byte, error)  { return []byte(b.String()), nil }
func (i Item) MarshalText() ([]byte, error)      { return []byte(i.String()), nil }
func (s Status) MarshalText() ([]byte, error)    { return []byte(s.String()), nil }
func (c Cause) MarshalText() ([]byte, error)     { return []byte(c.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := parse(directionNames, "direction", string(b))
	*d = Direction(v)
	return err
}

func (b *Behavior) UnmarshalText(t []byte) error {
	v, err := parse(behaviorNames, "behavior", string(t))
	*b = Behavior(v)
	return err
}

func (i *Item) UnmarshalText(b []byte) error {
	v, err := parse(itemNames, "item", string(b))
	*i = Item(v)
	return err
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := parse(statusNames, "status", string(b))
	*s = Status(v)
	return err
}

func (c *Cause) UnmarshalText(b []byte) error {
	v, err := parse(causeNames, "cause", string(b))
	*c = Cause(v)
	return err
}
