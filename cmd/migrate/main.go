// migrate aplica o revierte las migraciones embebidas.
//
// Uso: go run ./cmd/migrate [up|down]
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Coinnecta-api/pkg/config"
	"github.com/jhoicas/Coinnecta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = postgres.RunMigrations(cfg.DB.ConnectionString())
	case "down":
		err = postgres.RollbackMigrations(cfg.DB.ConnectionString())
	default:
		fmt.Fprintf(os.Stderr, "dirección desconocida %q (up|down)\n", direction)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migraciones")
	}
}
