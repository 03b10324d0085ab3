package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/CryptoBros-oai/DUUM/internal/engine"
	"github.com/CryptoBros-oai/DUUM/internal/entity"
	"github.com/CryptoBros-oai/DUUM/internal/level"
	"github.com/CryptoBros-oai/DUUM/internal/server"
	"github.com/CryptoBros-oai/DUUM/internal/storage"
	"github.com/CryptoBros-oai/DUUM/internal/version"
	"github.com/CryptoBros-oai/DUUM/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var levelPath string
	var loadPath string
	var saveDir string
	flag.StringVar(&levelPath, "level", "levels/e1m1.yaml", "Path to level definition (YAML)")
	flag.StringVar(&loadPath, "load", "", "Path to .duum save file to resume from")
	flag.StringVar(&saveDir, "saves", "saves", "Directory for save files")
	flag.Parse()

	logger.Log.Info("Starting DUUM...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	saves := storage.NewSaveService(saveDir)

	// 2. Сборка симуляции: из сейва либо из определения уровня
	var sim *engine.Simulation
	if loadPath != "" {
		game, err := saves.Load(loadPath)
		if err != nil {
			logger.Log.Fatal("Failed to load save: ", err)
		}
		sim, err = engine.RestoreSimulation(game, cfg, nil)
		if err != nil {
			logger.Log.Fatal("Failed to restore simulation: ", err)
		}
	} else {
		def, err := level.Load(levelPath)
		if err != nil {
			logger.Log.Fatal("Failed to load level: ", err)
		}
		sim = engine.NewSimulation(def.Build(), cfg)

		viewer := entity.New(entity.TypePlayer, def.Spawn.X, def.Spawn.Y)
		viewer.Angle = def.Spawn.Angle
		sim.SetViewer(viewer)
		logger.Log.WithField("level", def.Name).Info("Level loaded")
	}

	if sim.Viewer == nil {
		// Сейв без игрока: берем первого, кого найдем.
		if players := sim.Entities.GetByType(entity.TypePlayer); len(players) > 0 {
			sim.SetViewer(players[0])
		}
	}

	port := os.Getenv("DUUM_PORT")
	if port == "" {
		port = "8080"
	}

	// 3. Цикл симуляции + сервер наблюдателей
	hub := server.NewBroadcaster()
	loop := engine.NewLoop(sim, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx, func(events []engine.TickEvents) {
		if hub.SubscriberCount() > 0 {
			hub.Broadcast(server.BuildFrame(sim, events))
		}
	})

	srv := server.New(hub, port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down...")
	cancel()

	if _, err := saves.Save(sim.Snapshot()); err != nil {
		logger.Log.WithError(err).Error("Failed to write save on shutdown")
	}

	logger.Log.Info("Done.")
}
