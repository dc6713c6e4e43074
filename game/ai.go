package game

import "github.com/zucenko/mazerun/model"

// StepEnemies advances every non-stunned enemy by one AI step. All enemies
// in a tick see the same player position.
func (g *Game) StepEnemies() {
	if g.status != model.Playing {
		return
	}
	now := g.clock.Now()
	target := g.player.Position
	for i := range g.enemies {
		e := &g.enemies[i]
		if e.IsStunned(now) {
			continue
		}
		var pos model.Position
		var facing model.Direction
		switch e.Behavior {
		case model.Patrol:
			pos, facing = g.patrol(e.Position, e.Facing)
		case model.Random:
			pos, facing = g.wander(e.Position, e.Facing)
		case model.Chase:
			pos, facing = g.chase(e.Position, e.Facing, target)
		default:
			pos, facing = e.Position, e.Facing
		}
		pos, _ = g.portal.Exit(pos)
		if pos != e.Position || facing != e.Facing {
			g.changed = true
		}
		e.Position, e.Facing = pos, facing
	}
	g.checkCaught()
}

// patrol keeps going, bounces off walls and at a dead end takes the
// first open direction in fixed order.
func (g *Game) patrol(at model.Position, facing model.Direction) (model.Position, model.Direction) {
	if next := at.Add(facing); g.grid.Walkable(next) {
		return next, facing
	}
	facing = facing.Opposite()
	if next := at.Add(facing); g.grid.Walkable(next) {
		return next, facing
	}
	for _, d := range model.Directions {
		if next := at.Add(d); g.grid.Walkable(next) {
			return next, d
		}
	}
	return at, facing
}

func (g *Game) openMoves(at model.Position) []model.Direction {
	moves := make([]model.Direction, 0, len(model.Directions))
	for _, d := range model.Directions {
		if g.grid.Walkable(at.Add(d)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// wander is a random walk biased against reversing.
func (g *Game) wander(at model.Position, facing model.Direction) (model.Position, model.Direction) {
	moves := g.openMoves(at)
	if len(moves) == 0 {
		return at, facing
	}
	forward := make([]model.Direction, 0, len(moves))
	for _, d := range moves {
		if d != facing.Opposite() {
			forward = append(forward, d)
		}
	}
	var d model.Direction
	if len(forward) > 0 && g.rng.Float64() < RandomForwardChance {
		d = forward[g.rng.Intn(len(forward))]
	} else {
		d = moves[g.rng.Intn(len(moves))]
	}
	return at.Add(d), d
}

// chase heads for target along the dominant axis first, with an
// occasional random feint.
func (g *Game) chase(at model.Position, facing model.Direction, target model.Position) (model.Position, model.Direction) {
	if g.rng.Float64() < ChaseFeintChance {
		if moves := g.openMoves(at); len(moves) > 0 {
			d := moves[g.rng.Intn(len(moves))]
			return at.Add(d), d
		}
	}

	dx, dy := target.X-at.X, target.Y-at.Y
	horizontal, vertical := model.Left, model.Up
	if dx > 0 {
		horizontal = model.Right
	}
	if dy > 0 {
		vertical = model.Down
	}
	prefs := make([]model.Direction, 0, 6)
	if abs(dx) > abs(dy) {
		prefs = append(prefs, horizontal, vertical)
	} else {
		prefs = append(prefs, vertical, horizontal)
	}
	prefs = append(prefs, model.Directions[:]...)

	for _, d := range prefs {
		if next := at.Add(d); g.grid.Walkable(next) {
			return next, d
		}
	}
	return at, facing
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
