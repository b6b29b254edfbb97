package app

import (
	"context"
	"errors"
	"time"

	"github.com/whitebirds/internal/cache"
	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/provider"
	"github.com/whitebirds/internal/router"
)

// BuildRunner wires the container and the HTTP service
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)
	engine := router.SetupRouter(cfg, container)
	addr := cfg.Server.Host + ":" + cfg.Server.Port

	return NewRunner(redisService{}, NewHTTPService(addr, engine)), nil
}

// Run application entry point
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if opts.ShutdownTimeout <= 0 && opts.Config.App.ShutdownTimeoutSeconds > 0 {
		opts.ShutdownTimeout = time.Duration(opts.Config.App.ShutdownTimeoutSeconds) * time.Second
	}
	opts = normalizeOptions(opts)

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Config.Server.Mode)
	return RunWithOptions(runner, opts)
}

// redisService closes the shared Redis client on shutdown
type redisService struct{}

func (redisService) Name() string { return "redis" }

func (redisService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (redisService) Stop(context.Context) error {
	return cache.Close()
}
