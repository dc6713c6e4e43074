package game

import (
	"github.com/google/uuid"

	"github.com/zucenko/mazerun/maze"
	"github.com/zucenko/mazerun/model"
)

// UseItem fires the held item. It reports whether an item was consumed.
func (g *Game) UseItem() bool {
	if g.status != model.Playing {
		return false
	}
	switch g.player.Item {
	case model.Door:
		return g.openPortal()
	case model.Shuriken:
		g.projectileId++
		g.projectiles = append(g.projectiles, model.Projectile{
			Id:        g.projectileId,
			Position:  g.player.Position,
			Direction: g.player.Facing,
			Active:    true,
		})
		g.player.Item = model.NoItem
		g.emit(model.Event{Kind: model.EventShoot})
		return true
	}
	return false
}

// openPortal links two random open cells, replacing any live portal.
// The door is kept when the maze has fewer than two open cells.
func (g *Game) openPortal() bool {
	spots := maze.Open(g.grid)
	if len(spots) < 2 {
		return false
	}
	g.rng.Shuffle(len(spots), func(i, j int) { spots[i], spots[j] = spots[j], spots[i] })
	now := g.clock.Now()
	g.portal = &model.Portal{
		Id:        uuid.NewString(),
		A:         spots[0],
		B:         spots[1],
		CreatedAt: now,
		ExpiresAt: now.Add(PortalLifetime),
	}
	g.player.Item = model.NoItem
	g.emit(model.Event{Kind: model.EventPortalOpen})
	return true
}

// StepProjectiles moves every projectile one cell; walls destroy them and
// enemies they land on are stunned.
func (g *Game) StepProjectiles() {
	if g.status != model.Playing || len(g.projectiles) == 0 {
		return
	}
	now := g.clock.Now()
	for i := range g.projectiles {
		p := &g.projectiles[i]
		next := p.Position.Add(p.Direction)
		if !g.grid.Walkable(next) {
			p.Active = false
			continue
		}
		p.Position = next
	}

	for i := range g.enemies {
		e := &g.enemies[i]
		for j := range g.projectiles {
			p := &g.projectiles[j]
			if !p.Active || p.Position != e.Position {
				continue
			}
			p.Active = false
			e.StunnedUntil = now.Add(StunDuration)
			g.emit(model.Event{Kind: model.EventStun, Enemy: e.Id})
			break
		}
	}

	live := g.projectiles[:0]
	for _, p := range g.projectiles {
		if p.Active {
			live = append(live, p)
		}
	}
	g.projectiles = live
	g.changed = true
}

// ExpirePortal drops the live portal once its lifetime has passed.
func (g *Game) ExpirePortal() {
	if g.status != model.Playing || g.portal == nil {
		return
	}
	if g.clock.Now().After(g.portal.ExpiresAt) {
		g.portal = nil
		g.emit(model.Event{Kind: model.EventPortalClose})
	}
}
