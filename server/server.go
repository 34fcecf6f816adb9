package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techagentng/cleancity/config"
	"github.com/techagentng/cleancity/db"
	"github.com/techagentng/cleancity/services"
	"go.uber.org/zap"
)

// Server holds the dependencies the HTTP handlers call into.
type Server struct {
	Config           *config.Config
	LifecycleService services.LifecycleService
	UserRepository   db.UserRepository
	MediaService     services.MediaService
	Hub              *services.Hub
	Logger           *zap.SugaredLogger
}

// Start serves the API until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start() {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.Logger.Infow("server started", "addr", srv.Addr, "env", s.Config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Fatalw("failed to start http server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Errorw("failed to shutdown http server", "error", err)
		return
	}
	s.Logger.Info("shutting down")
}
