package game

import "github.com/zucenko/mazerun/model"

// CheckStuck ends the level when the player has not moved for
// StuckTimeout and raises a warning from StuckWarning on.
func (g *Game) CheckStuck() {
	if g.status != model.Playing {
		return
	}
	idle := g.clock.Now().Sub(g.lastMove)
	switch {
	case idle >= StuckTimeout:
		g.stuckWarning = true
		g.lose(model.Stuck)
	case idle >= StuckWarning && !g.stuckWarning:
		g.stuckWarning = true
		g.emit(model.Event{Kind: model.EventWarning})
	}
}

// checkCaught runs after any position change. Stunned enemies are harmless.
func (g *Game) checkCaught() {
	if g.status != model.Playing {
		return
	}
	now := g.clock.Now()
	for _, e := range g.enemies {
		if e.Position == g.player.Position && !e.IsStunned(now) {
			g.lose(model.Caught)
			return
		}
	}
}

func (g *Game) win() {
	if g.status != model.Playing {
		return
	}
	g.status = model.Won
	g.emit(model.Event{Kind: model.EventWin, Level: g.config.Level})
}

func (g *Game) lose(cause model.Cause) {
	if g.status != model.Playing {
		return
	}
	g.status = model.Lost
	g.cause = cause
	g.emit(model.Event{Kind: model.EventLose, Level: g.config.Level, Cause: cause})
}
