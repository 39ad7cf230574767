// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Anshul Agrawal
// Source: github.com/anshul-agrawal-ctct/asyncapidoc

// Package server provides the documentation preview server: it serves the
// generated pages, watches the source inputs, and pushes a live-reload
// signal to connected browsers after each rebuild.
package server

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/anshul-agrawal-ctct/asyncapidoc"
)

// reloadPath is the websocket endpoint generated pages connect to.
const reloadPath = "/__livereload"

// rebuildDelay debounces filesystem event bursts into one rebuild.
const rebuildDelay = 200 * time.Millisecond

// Server regenerates and serves documentation for one set of build options.
type Server struct {
	addr     string
	build    asyncapidoc.Options
	logger   zerolog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	// rebuildMu serializes debounce firings so overlapping rebuilds never
	// broadcast to the same connection at once.
	rebuildMu sync.Mutex
}

// New returns a preview server for the given build options. Generated pages
// always embed the live-reload script regardless of build.LiveReload.
func New(addr string, build asyncapidoc.Options, logger zerolog.Logger) *Server {
	build.LiveReload = true
	return &Server{
		addr:    addr,
		build:   build,
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Run builds the documentation, starts watching the inputs, and serves the
// output directory until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if _, err := asyncapidoc.GenerateAll(s.build); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn().Err(err).Msg("file watching unavailable, live reload disabled")
	} else {
		defer func() {
			_ = watcher.Close()
		}()

		s.watchInputs(watcher)
		go s.rebuildLoop(ctx, watcher)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", s.addr).Str("docs", s.build.OutputDir).Msg("serving documentation")

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// handler routes the reload endpoint and static documentation files.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(reloadPath, s.handleReload)
	mux.Handle("/", http.FileServer(http.Dir(s.build.OutputDir)))
	return mux
}

// handleReload upgrades one browser connection and keeps it registered until
// it closes.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Drain control frames; any read error means the browser went away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.dropClient(conn)
				return
			}
		}
	}()
}

// watchInputs registers the API path and schema directory with the watcher.
func (s *Server) watchInputs(watcher *fsnotify.Watcher) {
	for _, path := range []string{s.build.APIPath, s.build.SchemaDir} {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := watcher.Add(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("cannot watch path")
		}
	}
}

// rebuildLoop debounces filesystem events into rebuilds and reload pushes.
func (s *Server) rebuildLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			s.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("input changed")
			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(rebuildDelay, s.rebuild)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			s.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// rebuild regenerates the documentation and notifies connected browsers.
// Debounce timers can fire while a slow previous rebuild is still running;
// rebuildMu keeps those firings strictly sequential.
func (s *Server) rebuild() {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	if _, err := asyncapidoc.GenerateAll(s.build); err != nil {
		s.logger.Error().Err(err).Msg("rebuild failed")
		return
	}

	s.broadcastReload()
}

// broadcastReload notifies every connected browser; dead connections are
// dropped.
func (s *Server) broadcastReload() {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			s.dropClient(conn)
		}
	}

	s.logger.Info().Int("clients", len(conns)).Msg("documentation rebuilt")
}

// dropClient closes and unregisters one browser connection.
func (s *Server) dropClient(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}
