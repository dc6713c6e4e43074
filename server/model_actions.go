package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/zucenko/mazerun/game"
	"github.com/zucenko/mazerun/level"
	"github.com/zucenko/mazerun/model"
	"github.com/zucenko/mazerun/progress"
)

const DefaultProfile = "default"

var ErrUnknownCommand = errors.New("unknown command")

func NewGameServer(cfg Config) *GameServer {
	s := &GameServer{
		Config:         cfg,
		Upgrader:       &websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Registers:      make(chan *PlayerSession),
		Unregisters:    make(chan *PlayerSession),
		StatusRequests: make(chan chan Status),
		sessions:       make(map[string]*PlayerSession),
	}
	s.NewStore = func(profile string) (game.Progress, error) {
		if cfg.ProgressDir == "" {
			return &progress.MemoryStore{}, nil
		}
		return progress.NewFileStore(cfg.ProgressDir, profile)
	}
	return s
}

// HandleHttpCall upgrades /play to a websocket and runs one game session
// for as long as the connection lives.
func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		profile := r.URL.Query().Get("profile")
		if profile == "" {
			profile = DefaultProfile
		}
		plog := log.WithField("profile", profile)

		store, err := s.NewStore(profile)
		if err != nil {
			plog.Warnf("HandleHttpCall cant open progress: %v", err)
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already replied
			plog.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		sess := game.NewSession(game.Options{
			Rand:     game.NewRand(s.Config.Seed),
			Progress: store,
			Logger:   plog,
			Buffer:   s.Config.SendBuffer,
		})
		ps := NewPlayerSession(con, sess, profile, s.Config.WriteTimeout)

		select {
		case s.Registers <- ps:
		case <-time.After(timeout):
			ps.Log.Warn("HandleHttpCall Registers TIMEOUTED")
			return
		}
		defer func() {
			select {
			case s.Unregisters <- ps:
			case <-time.After(timeout):
				ps.Log.Warn("HandleHttpCall Unregisters TIMEOUTED")
			}
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go sess.Run(ctx)

		writeDone := make(chan struct{})
		go func() {
			defer close(writeDone)
			ps.LoopChannelWrite(ctx)
		}()

		ps.State = PS_PLAY
		err = ps.LoopChannelRead(ctx)
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			ps.State = PS_OVER
			ps.Log.Info("HandleHttpCall player left")
		} else {
			ps.State = PS_ERR
			ps.Log.Warnf("HandleHttpCall connection lost: %v", err)
		}
		cancel()
		<-sess.Done()
		<-writeDone
	}
}

func NewPlayerSession(con *websocket.Conn, sess *game.Session, profile string, writeTimeout time.Duration) *PlayerSession {
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             sess.Id,
		Profile:        profile,
		Conn:           con,
		Session:        sess,
		Log:            log.WithFields(log.Fields{"session": sess.Id, "profile": profile}),
		WriteTimeout:   writeTimeout,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	con.SetPingHandler(
		func(message string) error {
			err := con.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	return ps
}

// LoopChannelRead decodes client commands until the connection fails.
// Malformed or rejected commands are answered with an error message.
func (ps *PlayerSession) LoopChannelRead(ctx context.Context) error {
	ps.Log.Debug("LoopChannelRead STARTED")
	defer ps.Log.Debug("LoopChannelRead ENDED")
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			return err
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		cm := model.ClientMessage{}
		if err := json.NewDecoder(r).Decode(&cm); err != nil {
			ps.Log.Warnf("LoopChannelRead cant decode: %v", err)
			ps.send(ctx, *errorMessage(err))
			continue
		}
		reply, err := ps.Handle(cm)
		if err != nil {
			if errors.Is(err, game.ErrSessionClosed) {
				return err
			}
			ps.Log.WithField("command", cm.Type).Infof("command rejected: %v", err)
			reply = errorMessage(err)
		}
		if reply != nil {
			ps.send(ctx, *reply)
		}
	}
}

// Handle runs one client command against the session. Only commands with a
// direct answer return a message; state changes arrive through Updates.
func (ps *PlayerSession) Handle(cm model.ClientMessage) (*model.ServerMessage, error) {
	s := ps.Session
	switch cm.Type {
	case model.CommandStart:
		return nil, s.Start(cm.Level)
	case model.CommandNext:
		return nil, s.NextLevel()
	case model.CommandRestart:
		return nil, s.Restart()
	case model.CommandMenu:
		return nil, s.Exit()
	case model.CommandMove:
		_, err := s.Move(cm.Direction)
		return nil, err
	case model.CommandUse:
		_, err := s.UseItem()
		return nil, err
	case model.CommandSkin:
		return nil, s.SelectSkin(cm.Skin)
	case model.CommandReset:
		return nil, s.ResetProgress()
	case model.CommandImport:
		return nil, s.ImportSave(cm.Code)
	case model.CommandExport:
		code, err := s.ExportSave()
		if err != nil {
			return nil, err
		}
		return &model.ServerMessage{Type: model.MessageSave, Code: code}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cm.Type)
	}
}

func (ps *PlayerSession) send(ctx context.Context, mes model.ServerMessage) {
	select {
	case ps.MessagesToSend <- mes:
	case <-ctx.Done():
	}
}

func errorMessage(err error) *model.ServerMessage {
	return &model.ServerMessage{Type: model.MessageError, Error: err.Error()}
}

// LoopChannelWrite is the only writer on the connection. It forwards state
// updates and command replies until ctx ends or a write fails.
func (ps *PlayerSession) LoopChannelWrite(ctx context.Context) {
	ps.Log.Debug("LoopChannelWrite STARTED")
	defer ps.Log.Debug("LoopChannelWrite ENDED")
	updates := ps.Session.Updates()
	for {
		var mes model.ServerMessage
		select {
		case <-ctx.Done():
			ps.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			mes = model.ServerMessage{Type: model.MessageState, State: &u.Snapshot, Events: u.Events}
		case mes = <-ps.MessagesToSend:
		}

		ps.Conn.SetWriteDeadline(time.Now().Add(ps.WriteTimeout))
		if err := ps.Conn.WriteJSON(mes); err != nil {
			ps.Log.Warnf("LoopChannelWrite cant write: %v", err)
			// unblocks the reader
			ps.Conn.Close()
			return
		}
		ps.DebugOutMessages++
	}
}

// Loop owns the session registry.
func (s *GameServer) Loop(ctx context.Context) error {
	log.Info("GameServer.Loop starting")
	for {
		select {
		case ps := <-s.Registers:
			s.sessions[ps.Id] = ps
			ps.Log.Infof("GameServer.Loop registered, %d live", len(s.sessions))
		case ps := <-s.Unregisters:
			delete(s.sessions, ps.Id)
			ps.Log.Infof("GameServer.Loop unregistered, %d live", len(s.sessions))
		case reply := <-s.StatusRequests:
			reply <- s.status()
		case <-ctx.Done():
			log.Info("GameServer.Loop stopped")
			return nil
		}
	}
}

func (s *GameServer) status() Status {
	profiles := mapset.New[string]()
	for _, ps := range s.sessions {
		profiles.Put(ps.Profile)
	}
	st := Status{Sessions: len(s.sessions), Profiles: make([]string, 0, profiles.Size())}
	profiles.Each(func(p string) {
		st.Profiles = append(st.Profiles, p)
	})
	slices.Sort(st.Profiles)
	return st
}

func (s *GameServer) HandleStatus() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan Status, 1)
		select {
		case s.StatusRequests <- reply:
		case <-time.After(timeout):
			log.Warn("HandleStatus StatusRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}
		writeJSON(w, <-reply)
	}
}

// HandleLevel describes the difficulty of /levels/:level.
func HandleLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(way.Param(r.Context(), "level"))
		if err != nil || n < 1 {
			w.WriteHeader(HTTP_BAD_REQUEST)
			return
		}
		writeJSON(w, level.Resolve(n))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writeJSON failed: %v", err)
	}
}
