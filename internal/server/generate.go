// Package server provides the HTTP server for the StreamMUSE API.
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers
//
//   - Server: lifecycle of background services (rate limiter purge)
//   - Config: listen address, path prefix, middleware settings
//   - Router: route registration and middleware chain
//   - Handlers: HTTP request handlers organized by domain
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.Port = 8080
//
//	srv, err := server.New(app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv.Start(ctx)
//	http.ListenAndServe(":8080", srv.Handler())
package server

//go:generate gomarkdoc --output README.md .
