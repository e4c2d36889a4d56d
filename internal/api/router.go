package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"certificados-etl/internal/api/handler"
	"certificados-etl/pkg/router"
)

// RegisterRoutes wires the ETL and certificate endpoints.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/etl", handler.CreateRun)
	r.GET("/api/v1/etl", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/etl/*/progress", handler.GetRunProgress)
	r.GET("/api/v1/etl/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/etl/*/download", handler.DownloadRun)
	// Generic run route last
	r.GET("/api/v1/etl/*", handler.GetRun)

	r.POST("/api/v1/certificates/filter", handler.FilterCertificates)

	r.GET("/swagger/*", func(w http.ResponseWriter, req *http.Request) {
		httpSwagger.WrapHandler.ServeHTTP(w, req)
	})
}
