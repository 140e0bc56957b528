package main

import (
	"flag"
	"log"
	"os"

	"github.com/stevemurr/market/config"
	"github.com/stevemurr/market/console"
	"github.com/stevemurr/market/logger"
	"github.com/stevemurr/market/market"
	"github.com/stevemurr/market/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l := logger.New(cfg.Log, os.Stderr)
	l.Debug("config_loaded", "config", cfg.String())

	backend, err := store.New(cfg.Store)
	if err != nil {
		l.Error("store_open_failed", "backend", cfg.Store.Backend, "dir", cfg.Store.Dir, "error", err)
		os.Exit(1)
	}

	m := market.Open(backend, l)
	defer m.Close()

	if err := console.New(m, os.Stdin, os.Stdout, l).Run(); err != nil {
		l.Error("market_stopped", "error", err)
		m.Close()
		os.Exit(1)
	}
}
