package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/mazerun/level"
	"github.com/zucenko/mazerun/model"
	"github.com/zucenko/mazerun/progress"
)

var (
	ErrLevelLocked   = errors.New("level is locked")
	ErrBadTransition = errors.New("command not allowed in current state")
	ErrUnknownSkin   = errors.New("unknown skin")
	ErrSessionClosed = errors.New("session closed")
)

// Progress stores the unlocked level high-water mark.
type Progress interface {
	Load() int
	Save(unlocked int) error
	Clear() error
}

// Update is published after every loop iteration that changed something.
type Update struct {
	Snapshot model.Snapshot
	Events   []model.Event
}

type Options struct {
	Clock    Clock
	Rand     Rand
	Tickers  TickerFunc
	Progress Progress
	Logger   *log.Entry
	// Buffer is the Updates channel capacity.
	Buffer int
}

// Session owns one Game and the timers that drive it. Every mutation runs
// on the Run loop; the exported methods hand closures to it and wait.
type Session struct {
	Id string

	game     *Game
	progress Progress
	tickers  TickerFunc
	log      *log.Entry

	unlocked int
	skin     model.Skin
	dirty    bool

	cmds    chan func()
	updates chan Update
	done    chan struct{}
	timers  *timers
}

func NewSession(opts Options) *Session {
	id := uuid.NewString()
	if opts.Tickers == nil {
		opts.Tickers = NewTicker
	}
	if opts.Progress == nil {
		opts.Progress = &progress.MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewEntry(log.StandardLogger())
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 32
	}
	return &Session{
		Id:       id,
		game:     NewGame(opts.Clock, opts.Rand),
		progress: opts.Progress,
		tickers:  opts.Tickers,
		log:      opts.Logger.WithField("session", id),
		unlocked: opts.Progress.Load(),
		skin:     level.DefaultSkin(),
		cmds:     make(chan func()),
		updates:  make(chan Update, opts.Buffer),
		done:     make(chan struct{}),
	}
}

// Updates is closed when Run returns.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run is the single loop that mutates the session. It returns when ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("Session.Run start")
	defer close(s.updates)
	defer close(s.done)
	defer s.stopTimers()

	s.dirty = true
	s.settle()
	for {
		// nil channels never fire, so a torn down level cannot be ticked
		var enemyC, projectileC, portalC, stuckC <-chan time.Time
		if t := s.timers; t != nil {
			enemyC = t.enemy.C()
			projectileC = t.projectile.C()
			portalC = t.portal.C()
			stuckC = t.stuck.C()
		}
		select {
		case <-ctx.Done():
			s.log.Info("Session.Run stop")
			return ctx.Err()
		case f := <-s.cmds:
			f()
		case <-enemyC:
			s.game.StepEnemies()
		case <-projectileC:
			s.game.StepProjectiles()
		case <-portalC:
			s.game.ExpirePortal()
		case <-stuckC:
			s.game.CheckStuck()
		}
		s.settle()
	}
}

// settle tears timers down once the level has ended, records a win and
// publishes what changed.
func (s *Session) settle() {
	if s.timers != nil && s.game.Status() != model.Playing {
		s.stopTimers()
		if s.game.Status() == model.Won {
			s.recordWin(s.game.Level())
		} else {
			s.log.WithField("cause", s.game.cause).Infof("level %d lost", s.game.Level())
		}
	}
	events, changed := s.game.Drain()
	if !changed && !s.dirty && len(events) == 0 {
		return
	}
	s.dirty = false
	s.publish(events)
}

func (s *Session) recordWin(lvl int) {
	s.log.Infof("level %d won", lvl)
	if lvl < s.unlocked {
		return
	}
	s.unlocked = lvl + 1
	if err := s.progress.Save(s.unlocked); err != nil {
		s.log.Errorf("saving progress failed: %v", err)
	}
}

func (s *Session) publish(events []model.Event) {
	snap := s.game.Snapshot()
	snap.Unlocked = s.unlocked
	snap.Skin = s.skin.Id
	select {
	case s.updates <- Update{Snapshot: snap, Events: events}:
	default:
		s.log.Warnf("dropping update with %d events, Updates full", len(events))
	}
}

func (s *Session) stopTimers() {
	if s.timers != nil {
		s.timers.stop()
		s.timers = nil
	}
}

// begin enters PLAYING on lvl with fresh timers.
func (s *Session) begin(lvl int) error {
	if lvl < 1 || lvl > s.unlocked {
		return fmt.Errorf("%w: %d (unlocked %d)", ErrLevelLocked, lvl, s.unlocked)
	}
	s.stopTimers()
	cfg := s.game.Start(lvl)
	s.timers = newTimers(s.tickers, cfg.Interval())
	s.log.WithFields(log.Fields{
		"grid":     cfg.GridSize,
		"enemies":  len(s.game.enemies),
		"behavior": cfg.EnemyBehavior,
	}).Infof("level %d started", lvl)
	return nil
}

// do runs f on the loop and waits for it.
func (s *Session) do(f func()) error {
	reply := make(chan struct{})
	select {
	case s.cmds <- func() { f(); close(reply) }:
	case <-s.done:
		return ErrSessionClosed
	}
	<-reply
	return nil
}

func (s *Session) call(f func() error) error {
	var err error
	if e := s.do(func() { err = f() }); e != nil {
		return e
	}
	return err
}

// Start plays lvl from any state, provided it is unlocked.
func (s *Session) Start(lvl int) error {
	return s.call(func() error { return s.begin(lvl) })
}

// NextLevel is only valid after a win.
func (s *Session) NextLevel() error {
	return s.call(func() error {
		if s.game.Status() != model.Won {
			return fmt.Errorf("%w: next level from %s", ErrBadTransition, s.game.Status())
		}
		return s.begin(s.game.Level() + 1)
	})
}

// Restart replays the current level.
func (s *Session) Restart() error {
	return s.call(func() error {
		if s.game.Status() == model.Menu {
			return fmt.Errorf("%w: restart from %s", ErrBadTransition, s.game.Status())
		}
		return s.begin(s.game.Level())
	})
}

// Exit returns to the menu from any state.
func (s *Session) Exit() error {
	return s.do(func() {
		s.stopTimers()
		s.game.Exit()
	})
}

func (s *Session) Move(d model.Direction) (MoveResult, error) {
	var res MoveResult
	err := s.do(func() { res = s.game.ApplyMove(d) })
	return res, err
}

func (s *Session) UseItem() (bool, error) {
	var used bool
	err := s.do(func() { used = s.game.UseItem() })
	return used, err
}

func (s *Session) Snapshot() (model.Snapshot, error) {
	var snap model.Snapshot
	err := s.do(func() {
		snap = s.game.Snapshot()
		snap.Unlocked = s.unlocked
		snap.Skin = s.skin.Id
	})
	return snap, err
}

func (s *Session) SelectSkin(id string) error {
	return s.call(func() error {
		skin, ok := level.FindSkin(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSkin, id)
		}
		if !level.SkinUnlocked(skin, s.unlocked) {
			return fmt.Errorf("%w: skin %q needs level %d", ErrLevelLocked, id, skin.UnlockLevel+1)
		}
		s.skin = skin
		s.dirty = true
		return nil
	})
}

// ResetProgress clears the store back to level 1 and the default skin.
func (s *Session) ResetProgress() error {
	return s.call(func() error {
		if err := s.progress.Clear(); err != nil {
			return err
		}
		s.unlocked = 1
		s.skin = level.DefaultSkin()
		s.dirty = true
		return nil
	})
}

// ImportSave replaces progress with a save code. Bad codes change nothing.
func (s *Session) ImportSave(code string) error {
	return s.call(func() error {
		n, err := progress.Decode(code)
		if err != nil {
			return err
		}
		if err := s.progress.Save(n); err != nil {
			return err
		}
		s.unlocked = n
		s.dirty = true
		return nil
	})
}

func (s *Session) ExportSave() (string, error) {
	var code string
	err := s.do(func() { code = progress.Encode(s.unlocked) })
	return code, err
}
