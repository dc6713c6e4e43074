package game

import "time"

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc builds the periodic timers a level runs on.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// timers is the set of tickers owned by one level run.
type timers struct {
	enemy      Ticker
	projectile Ticker
	portal     Ticker
	stuck      Ticker
}

func newTimers(tick TickerFunc, enemyEvery time.Duration) *timers {
	return &timers{
		enemy:      tick(enemyEvery),
		projectile: tick(ProjectileInterval),
		portal:     tick(PortalInterval),
		stuck:      tick(StuckInterval),
	}
}

func (t *timers) stop() {
	t.enemy.Stop()
	t.projectile.Stop()
	t.portal.Stop()
	t.stuck.Stop()
}
