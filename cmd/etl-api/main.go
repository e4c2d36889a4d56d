// Package main runs the ETL job API server.
package main

import (
	"os"

	"go.uber.org/zap"

	_ "certificados-etl/docs" // swagger registration
	"certificados-etl/internal/api"
	"certificados-etl/internal/api/handler"
	"certificados-etl/internal/store"
	"certificados-etl/pkg/router"
	"certificados-etl/pkg/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbPath := envOr("ETL_DB", "etl.db")
	if err := store.InitDB(dbPath); err != nil {
		logger.Fatal("failed to open job database", zap.String("path", dbPath), zap.Error(err))
	}

	handler.Configure(utils.NewOutputManager(envOr("ETL_OUTPUT_DIR", "outputs")), logger)

	r := router.New(logger)
	api.RegisterRoutes(r)

	addr := envOr("ETL_ADDR", ":8080")
	if err := r.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
