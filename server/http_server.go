package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"tp-server/logger"
)

const shutdownTimeout = 5 * time.Second

type TemplePlannerHttpServer struct {
	router         *Router
	muxRouter      *mux.Router
	addr           string
	allowedOrigins []string
}

func NewTemplePlannerHttpServer(router *Router, muxRouter *mux.Router, addr string, allowedOrigins []string) *TemplePlannerHttpServer {
	return &TemplePlannerHttpServer{
		router:         router,
		muxRouter:      muxRouter,
		addr:           addr,
		allowedOrigins: allowedOrigins,
	}
}

// Handler registers the routes and wraps them in the middleware chain.
func (s *TemplePlannerHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return CORS(s.allowedOrigins)(RequestID(AccessLog(s.muxRouter)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *TemplePlannerHttpServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[HttpServer] Starting server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("[HttpServer] Shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("[HttpServer] Server exiting")
	return nil
}
