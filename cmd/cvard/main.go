package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"cvard/internal/broadcast"
	"cvard/internal/common/fsutil"
	"cvard/internal/config"
	"cvard/internal/cvar"
	"cvard/internal/guard"
	"cvard/internal/httpapi"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("CVARD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultConfig := os.Getenv("CVARD_CONFIG")
	defaultLevel := "info"
	if v := os.Getenv("CVARD_LOG_LEVEL"); v != "" {
		defaultLevel = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", defaultConfig, "Optional config file (.yaml/.json/.toml)")
	logLevel := flag.String("log-level", defaultLevel, "Log level: debug|info|warn|error")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()

	var cfg config.Config
	if *configPath != "" {
		path, err := fsutil.ExpandHome(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("failed to resolve config path")
		}
		if !fsutil.PathExists(path) {
			logger.Fatal().Str("path", path).Msg("config file does not exist")
		}
		cfg, err = config.Load(path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", path).Msg("failed to load config")
		}
		if cfg.Addr != "" {
			*addr = cfg.Addr
		}
		if cfg.LogLevel != "" {
			if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				logger = logger.Level(l)
			}
		}
	}

	reg := cvar.NewRegistry()
	reg.MustRegister(guard.VarName, guard.Floor, "Scale applied to the host tick clock")

	// Seed values from config. Unknown names become new variables with the
	// seed as their default; seeding happens before the guard attaches, so
	// an unsafe seed stands until the first change or round boundary, same
	// as any other write that bypassed the change channel.
	for name, val := range cfg.Cvars {
		if v, ok := reg.Lookup(name); ok {
			v.SetInt(val)
		} else {
			reg.MustRegister(name, val, "")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := broadcast.NewHub(logger.With().Str("component", "hub").Logger())
	go hub.Run(ctx)

	g, err := guard.Attach(reg, hub, logger.With().Str("component", "guard").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to attach timescale guard")
	}

	httpapi.SetLogger(logger.With().Str("component", "http").Logger())
	mux := httpapi.NewMux(reg, g, http.HandlerFunc(hub.ServeWS))
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Msg("cvard listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
