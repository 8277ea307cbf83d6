package main

import (
	"shopnest/server"
)

func main() {
	s := server.NewServer()
	addr := s.Config.Server.Addr
	if addr == "" {
		addr = ":8000"
	}
	s.Start(addr)
}
