package main

import (
	"embed"
	"log"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"tycoon/internal/server"
	"tycoon/internal/store"
)

//go:embed web/static
var static embed.FS

// Config is loaded from the environment.
type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"tycoon.db"`
	Dev    bool   `env:"DEV" envDefault:"false"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	logger, err := newLogger(cfg.Dev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open store", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer st.Close()

	srv := server.New(cfg.Port, static, st, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
