package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/mohamedeng1505/scheduler/internal/config"
	"github.com/mohamedeng1505/scheduler/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "scheduler_config.yml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	app, err := serverapp.New(serverapp.Options{
		Config:  cfg,
		DataDir: cfg.Data.Dir,
		Logger:  log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartSweep(ctx)

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, app.Handler()))
}
