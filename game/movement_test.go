package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/mazerun/model"
)

func TestMoveBlockedByWall(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)
	before := g.lastMove
	clock.Advance(time.Second)

	res := g.ApplyMove(model.Up)
	assert.Equal(t, MoveBlocked, res.Outcome)
	assert.Equal(t, pos(1, 1), g.player.Position)
	assert.Equal(t, model.Up, g.player.Facing, "facing follows the key even when blocked")
	assert.Equal(t, before, g.lastMove)

	events, changed := g.Drain()
	assert.Empty(t, events)
	assert.True(t, changed)

	// same direction again changes nothing
	g.ApplyMove(model.Up)
	_, changed = g.Drain()
	assert.False(t, changed)
}

func TestMoveCommits(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)
	clock.Advance(3 * time.Second)

	res := g.ApplyMove(model.Right)
	require.Equal(t, MoveDone, res.Outcome)
	assert.Equal(t, pos(2, 1), g.player.Position)
	assert.Equal(t, model.Right, g.player.Facing)
	assert.Equal(t, clock.Now(), g.lastMove)
	events, _ := g.Drain()
	assert.Equal(t, []model.EventKind{model.EventMove}, eventKinds(events))
}

func TestMoveThroughPortal(t *testing.T) {
	g, _, _ := newTestGame(t, corridor)
	g.portal = &model.Portal{A: pos(2, 1), B: pos(3, 3)}

	res := g.ApplyMove(model.Right)
	require.Equal(t, MoveDone, res.Outcome)
	assert.True(t, res.Teleported)
	assert.Equal(t, pos(3, 3), g.player.Position)
	assert.NotNil(t, g.portal, "portals are reusable until they expire")

	events, _ := g.Drain()
	assert.Equal(t, []model.EventKind{model.EventMove, model.EventPortalUse}, eventKinds(events))

	// walk back onto B and land on A
	g.ApplyMove(model.Left)
	res = g.ApplyMove(model.Right)
	assert.True(t, res.Teleported)
	assert.Equal(t, pos(2, 1), g.player.Position)
}

func TestMovePicksUpFlower(t *testing.T) {
	g, _, rng := newTestGame(t, corridor)
	g.flowers = []model.Flower{{Id: 0, Position: pos(2, 1)}, {Id: 1, Position: pos(3, 1)}}
	rng.ints = []int{1}

	res := g.ApplyMove(model.Right)
	assert.Equal(t, model.Shuriken, res.Picked)
	assert.Equal(t, model.Shuriken, g.player.Item)
	require.Len(t, g.flowers, 1)
	assert.Equal(t, 1, g.flowers[0].Id)

	// hands are full, the second flower stays put
	res = g.ApplyMove(model.Right)
	assert.Equal(t, model.NoItem, res.Picked)
	assert.Equal(t, model.Shuriken, g.player.Item)
	assert.Len(t, g.flowers, 1)
}

func TestMovePickupGrantsDoor(t *testing.T) {
	g, _, rng := newTestGame(t, corridor)
	g.flowers = []model.Flower{{Position: pos(1, 2)}}
	rng.ints = []int{0}

	res := g.ApplyMove(model.Down)
	assert.Equal(t, model.Door, res.Picked)
	events, _ := g.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, model.EventPickup, events[1].Kind)
	assert.Equal(t, model.Door, events[1].Item)
}

func TestMoveReachesEnd(t *testing.T) {
	g, _, _ := newTestGame(t, corridor)
	for _, d := range []model.Direction{model.Right, model.Right, model.Right} {
		require.False(t, g.ApplyMove(d).Won)
	}
	res := g.ApplyMove(model.Right)
	assert.True(t, res.Won)
	assert.Equal(t, model.Won, g.Status())

	events, _ := g.Drain()
	last := events[len(events)-1]
	assert.Equal(t, model.EventWin, last.Kind)
	assert.Equal(t, 1, last.Level)

	assert.Equal(t, MoveIgnored, g.ApplyMove(model.Left).Outcome)
	assert.Equal(t, pos(5, 1), g.player.Position)
}

func TestMoveWinBeatsEnemyOnEnd(t *testing.T) {
	g, _, _ := newTestGame(t, corridor)
	g.player.Position = pos(4, 1)
	g.enemies = []model.Enemy{{Position: pos(5, 1)}}

	g.ApplyMove(model.Right)
	assert.Equal(t, model.Won, g.Status())
}

func TestMoveIntoEnemy(t *testing.T) {
	g, clock, _ := newTestGame(t, corridor)
	g.enemies = []model.Enemy{{Position: pos(2, 1), StunnedUntil: clock.Now().Add(time.Second)}}

	g.ApplyMove(model.Right)
	assert.Equal(t, model.Playing, g.Status(), "stunned enemies are harmless")

	g.ApplyMove(model.Left)
	clock.Advance(time.Second)
	g.ApplyMove(model.Right)
	assert.Equal(t, model.Lost, g.Status())
	assert.Equal(t, model.Caught, g.cause)
}
