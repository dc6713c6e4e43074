package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/mazerun/game"
	"github.com/zucenko/mazerun/model"
)

// GameServer accepts websocket players and keeps the registry of live
// sessions. The registry is only touched by Loop.
type GameServer struct {
	Config   Config
	Upgrader *websocket.Upgrader

	Registers      chan *PlayerSession
	Unregisters    chan *PlayerSession
	StatusRequests chan chan Status

	// NewStore opens the progress store for a profile.
	NewStore func(profile string) (game.Progress, error)

	sessions map[string]*PlayerSession
}

type Status struct {
	Sessions int      `json:"sessions"`
	Profiles []string `json:"profiles"`
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

// PlayerSession binds one websocket connection to one game session.
type PlayerSession struct {
	State   PlayerSessionState
	Id      string
	Profile string
	Conn    *websocket.Conn
	Session *game.Session
	Log     *log.Entry

	WriteTimeout time.Duration
	// MessagesToSend carries replies to commands; state updates come
	// straight from Session.Updates.
	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
