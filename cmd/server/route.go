package main

import (
	"github.com/matryer/way"

	"github.com/zucenko/mazerun/server"
)

const URI_WS = "/play"
const URI_LEVEL = "/levels/:level"
const URI_STATUS = "/status"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.GameServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_LEVEL, server.HandleLevel())
	s.router.HandleFunc("GET", URI_STATUS, s.GameServer.HandleStatus())
}
