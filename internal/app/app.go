package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cellmon/internal/auth"
	"cellmon/internal/cell"
	"cellmon/internal/config"
	"cellmon/internal/fleet"
	httpserver "cellmon/internal/http"
	"cellmon/internal/http/handlers"
	"cellmon/internal/metrics"
	"cellmon/internal/ws"
)

// App wires monitoring service dependencies.
type App struct {
	server *httpserver.Server
	fleet  *fleet.Service
	logger *zap.Logger
}

// New constructs application components.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	generator := cell.NewSeededGenerator()
	fleetSvc, err := fleet.New(generator, cfg.Fleet.Roster, logger)
	if err != nil {
		return nil, err
	}
	if err := fleetSvc.SetAutoRefresh(cfg.Fleet.AutoRefresh, cfg.RefreshInterval()); err != nil {
		return nil, err
	}

	hub := ws.NewHub(10*time.Second, logger)
	metrics.Register()
	fleetSvc.OnPublish(func(snap *fleet.Snapshot) {
		metrics.Observe(snap)
		hub.Broadcast(snap)
	})

	tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.TokenTTL())
	hasher := auth.NewBcryptHasher(0)

	deps := httpserver.RouterDeps{
		Login:     handlers.NewLoginHandler(hasher, cfg.Auth.PasswordHash, tokens, logger),
		Dashboard: handlers.NewDashboardHandlers(fleetSvc, logger),
		Export:    handlers.NewExportHandlers(fleetSvc, logger),
		Health:    handlers.NewHealthHandler(),
		WS:        hub.HandleWS,
		Metrics:   metrics.Handler(),
	}

	router := httpserver.NewRouter(deps, httpserver.AuthMiddleware(tokens))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		fleet:  fleetSvc,
		logger: logger,
	}, nil
}

// Run takes the initial snapshot, starts the refresh loop and serves HTTP
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	snap := a.fleet.Refresh()
	a.logger.Info("initial snapshot taken", zap.Int("cells", len(snap.Cells)))

	go a.fleet.Run(ctx)

	return a.server.Run(ctx)
}
