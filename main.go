// @title QuizDeck Backend API
// @version 1.0
// @description Quiz authoring, AI-assisted question extraction, attempt tracking and backup reconciliation.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"quizdeck_backend/internal/app"
	"quizdeck_backend/internal/config"
	"quizdeck_backend/pkg/configwatcher"
	"quizdeck_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig(*configDir+"/config.yaml", func(newCfg *config.Config) {
		// Sampling knobs and CORS lists pick up on next request; anything
		// structural (port, storage backend) still needs a restart.
		*application.Config = *newCfg
	})

	application.Run()
}
