package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zucenko/mazerun/level"
	"github.com/zucenko/mazerun/maze"
	"github.com/zucenko/mazerun/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// scriptRand replays fixed draws. Shuffle keeps order; an exhausted
// script yields 0 for Intn and 0.5 for Float64.
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptRand) Shuffle(int, func(i, j int)) {}

// corridor is a small loop:
//
//	#######
//	#S...E#
//	#.###.#
//	#.....#
//	#######
var corridor = []string{
	"#######",
	"#S...E#",
	"#.###.#",
	"#.....#",
	"#######",
}

func pos(x, y int) model.Position {
	return model.Position{X: x, Y: y}
}

// newTestGame loads rows as a level 1 maze with no enemies or flowers.
func newTestGame(t *testing.T, rows []string) (*Game, *fakeClock, *scriptRand) {
	t.Helper()
	grid, start, end, err := maze.Parse(rows...)
	require.NoError(t, err)
	clock := newFakeClock()
	rng := &scriptRand{}
	g := NewGame(clock, rng)
	g.load(level.Resolve(1), grid, start, end)
	g.enemies = nil
	g.flowers = nil
	g.Drain()
	return g, clock, rng
}

func eventKinds(events []model.Event) []model.EventKind {
	kinds := make([]model.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// shortestPath walks the grid breadth first and returns the moves from a to b.
func shortestPath(grid model.Grid, a, b model.Position) []model.Direction {
	type step struct {
		from model.Position
		dir  model.Direction
	}
	prev := map[model.Position]step{}
	seen := map[model.Position]bool{a: true}
	queue := []model.Position{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			break
		}
		for _, d := range model.Directions {
			next := cur.Add(d)
			if grid.Walkable(next) && !seen[next] {
				seen[next] = true
				prev[next] = step{from: cur, dir: d}
				queue = append(queue, next)
			}
		}
	}
	var path []model.Direction
	for cur := b; cur != a; {
		s, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append([]model.Direction{s.dir}, path...)
		cur = s.from
	}
	return path
}

type fakeTicker struct {
	d       time.Duration
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

// fire blocks until the session loop has taken the tick.
func (f *fakeTicker) fire(t *testing.T, now time.Time) {
	t.Helper()
	select {
	case f.c <- now:
	case <-time.After(time.Second):
		t.Fatalf("ticker %v was not read", f.d)
	}
}

type fakeTickers struct {
	mu   sync.Mutex
	made []*fakeTicker
}

func (f *fakeTickers) New(d time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{d: d, c: make(chan time.Time)}
	f.made = append(f.made, t)
	return t
}

// last returns the enemy, projectile, portal and stuck tickers of the latest level.
func (f *fakeTickers) last(t *testing.T) (enemy, projectile, portal, stuck *fakeTicker) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.GreaterOrEqual(t, len(f.made), 4)
	n := len(f.made)
	return f.made[n-4], f.made[n-3], f.made[n-2], f.made[n-1]
}

func (f *fakeTickers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.made)
}

func runSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s := NewSession(opts)
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-s.Done()
	})
	return s
}
