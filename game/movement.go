package game

import "github.com/zucenko/mazerun/model"

type MoveOutcome int

const (
	// MoveIgnored means no level is being played.
	MoveIgnored MoveOutcome = iota
	MoveBlocked
	MoveDone
)

type MoveResult struct {
	Outcome    MoveOutcome
	Teleported bool
	Picked     model.Item
	Won        bool
}

// ApplyMove is the only operation that moves the player. Effects resolve
// in a fixed order: wall check, commit, portal, pickup, win.
func (g *Game) ApplyMove(d model.Direction) MoveResult {
	if g.status != model.Playing {
		return MoveResult{Outcome: MoveIgnored}
	}
	if g.player.Facing != d {
		g.player.Facing = d
		g.changed = true
	}

	next := g.player.Position.Add(d)
	if !g.grid.Walkable(next) {
		return MoveResult{Outcome: MoveBlocked}
	}

	res := MoveResult{Outcome: MoveDone}
	g.lastMove = g.clock.Now()
	g.stuckWarning = false
	g.emit(model.Event{Kind: model.EventMove})

	final, teleported := g.portal.Exit(next)
	if teleported {
		res.Teleported = true
		g.emit(model.Event{Kind: model.EventPortalUse})
	}
	g.player.Position = final

	if picked := g.pickup(final); picked != model.NoItem {
		res.Picked = picked
	}

	if final == g.end {
		g.win()
		res.Won = true
		return res
	}
	g.checkCaught()
	return res
}

// pickup takes the flower at p when the player's hands are free. A flower
// under a player already holding an item stays on the board.
func (g *Game) pickup(p model.Position) model.Item {
	if g.player.Item != model.NoItem {
		return model.NoItem
	}
	for i, f := range g.flowers {
		if f.Position != p {
			continue
		}
		g.flowers = append(g.flowers[:i], g.flowers[i+1:]...)
		item := model.Door
		if g.rng.Intn(2) == 1 {
			item = model.Shuriken
		}
		g.player.Item = item
		g.emit(model.Event{Kind: model.EventPickup, Item: item})
		return item
	}
	return model.NoItem
}
