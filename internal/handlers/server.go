package handlers

import (
	"context"
	"net"
	"net/http"
)

// NewServer serves handler on addr. Shutdown cancels every request
// context, so open /api/live streams end instead of holding it up.
func NewServer(addr string, handler http.Handler) *http.Server {
	ctx, cancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	server.RegisterOnShutdown(cancel)
	return server
}
