package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. Request
// contexts derive from ctx, so cancelling ctx ends long-lived responses such
// as /plants/stream and lets Shutdown drain. There is no write timeout for the
// same reason.
func New(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}
