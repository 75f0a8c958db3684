package router

import (
	"log/slog"

	"employee-management/internal/handlers"
	"employee-management/internal/repository"

	"github.com/gin-gonic/gin"
)

// Setup mounts the health check and the employee routes on r.
func Setup(r *gin.Engine, repo repository.EmployeeRepository, store handlers.Pinger, logger *slog.Logger) {
	eh := handlers.NewEmployeeHandler(repo, logger)
	hh := &handlers.HealthHandler{Store: store}

	// health
	r.GET("/health", hh.Health)

	employees := r.Group("/api/employees")
	employees.POST("", eh.CreateEmployee)
	employees.GET("", eh.ListEmployees)
	employees.GET("/search", eh.SearchEmployees)
	employees.GET("/:id", eh.GetEmployee)
	employees.PUT("/:id", eh.UpdateEmployee)
	employees.DELETE("/:id", eh.DeleteEmployee)
}
