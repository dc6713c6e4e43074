package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/mazerun/level"
	"github.com/zucenko/mazerun/maze"
	"github.com/zucenko/mazerun/model"
)

func TestStartSeedsLevel(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		for _, lvl := range []int{1, 6, 11, 21} {
			g := NewGame(newFakeClock(), rand.New(rand.NewSource(seed)))
			cfg := g.Start(lvl)

			require.Equal(t, model.Playing, g.Status())
			assert.Equal(t, level.Resolve(lvl), cfg)
			assert.Equal(t, cfg.GridSize, g.grid.Width())
			assert.Equal(t, g.start, g.player.Position)
			assert.Equal(t, model.Down, g.player.Facing)
			assert.Equal(t, model.NoItem, g.player.Item)
			assert.Nil(t, g.portal)
			assert.Empty(t, g.projectiles)

			assert.GreaterOrEqual(t, len(g.flowers), MinFlowers)
			assert.LessOrEqual(t, len(g.flowers), MaxFlowers)
			used := map[model.Position]bool{}
			for _, f := range g.flowers {
				assert.Equal(t, model.Path, g.grid.At(f.Position))
				assert.False(t, used[f.Position], "flowers must not share a cell")
				used[f.Position] = true
			}

			require.Len(t, g.enemies, cfg.EnemyCount)
			for _, e := range g.enemies {
				assert.Equal(t, model.Path, g.grid.At(e.Position))
				assert.Equal(t, cfg.EnemyBehavior, e.Behavior)
				assert.Greater(t, e.Position.Manhattan(g.start), SafeSpawnDistance)
				assert.False(t, used[e.Position], "enemies must not share a cell")
				used[e.Position] = true
			}
		}
	}
}

func TestSeedDegradesOnTinyMaze(t *testing.T) {
	grid, start, end, err := maze.Parse(
		"#######",
		"#S...E#",
		"#######",
	)
	require.NoError(t, err)
	g := NewGame(newFakeClock(), &scriptRand{ints: []int{2}})
	cfg := level.Resolve(30)
	g.load(cfg, grid, start, end)

	// three path cells: flowers take them all, nothing left for enemies
	assert.Len(t, g.flowers, 3)
	assert.Empty(t, g.enemies)
	assert.Equal(t, model.Playing, g.Status())
}

func TestSeedFallsBackToNearCells(t *testing.T) {
	grid, start, end, err := maze.Parse(
		"##########",
		"#S......E#",
		"##########",
	)
	require.NoError(t, err)
	g := NewGame(newFakeClock(), &scriptRand{})
	cfg := level.Resolve(1)
	cfg.EnemyCount = 3
	g.load(cfg, grid, start, end)

	// flowers pop x=7..5, which holds the only far cell; enemies get x=2..4
	require.Len(t, g.flowers, 3)
	require.Len(t, g.enemies, 3)
	far := 0
	for _, e := range g.enemies {
		if e.Position.Manhattan(start) > SafeSpawnDistance {
			far++
		}
	}
	assert.Equal(t, 0, far)
}

func TestExitReturnsToMenu(t *testing.T) {
	g, _, _ := newTestGame(t, corridor)
	g.Exit()
	assert.Equal(t, model.Menu, g.Status())
	assert.Equal(t, MoveIgnored, g.ApplyMove(model.Right).Outcome)
	assert.False(t, g.UseItem())
}

func TestCheckStuck(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)

	clock.Advance(6999 * time.Millisecond)
	g.CheckStuck()
	assert.False(t, g.stuckWarning)

	clock.Advance(time.Millisecond)
	g.CheckStuck()
	assert.True(t, g.stuckWarning)
	assert.Equal(t, model.Playing, g.Status())
	events, _ := g.Drain()
	assert.Equal(t, []model.EventKind{model.EventWarning}, eventKinds(events))

	clock.Advance(2 * time.Second)
	g.CheckStuck()
	assert.Equal(t, model.Playing, g.Status())
	events, _ = g.Drain()
	assert.Empty(t, events, "warning is raised once")

	clock.Advance(time.Second)
	g.CheckStuck()
	assert.Equal(t, model.Lost, g.Status())
	assert.Equal(t, model.Stuck, g.cause)
}

func TestMoveResetsStuckClock(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)
	clock.Advance(8 * time.Second)
	g.CheckStuck()
	require.True(t, g.stuckWarning)

	require.Equal(t, MoveDone, g.ApplyMove(model.Right).Outcome)
	assert.False(t, g.stuckWarning)

	clock.Advance(9 * time.Second)
	g.CheckStuck()
	assert.Equal(t, model.Playing, g.Status())
	assert.Equal(t, 1, g.Snapshot().StuckRemaining)
}

func TestSnapshotIsACopy(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)
	g.enemies = []model.Enemy{{Id: 1, Position: pos(3, 3), StunnedUntil: clock.Now().Add(time.Second)}}
	g.portal = &model.Portal{A: pos(2, 1), B: pos(3, 3)}

	s := g.Snapshot()
	require.Len(t, s.Enemies, 1)
	assert.True(t, s.Enemies[0].Stunned)
	assert.Equal(t, 10, s.StuckRemaining)

	s.Grid[1][2] = model.Wall
	s.Enemies[0].Position = pos(1, 1)
	s.Portal.A = pos(5, 3)
	assert.Equal(t, model.Path, g.grid[1][2])
	assert.Equal(t, pos(3, 3), g.enemies[0].Position)
	assert.Equal(t, pos(2, 1), g.portal.A)
}
