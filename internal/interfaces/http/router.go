package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/benchmark-hub/internal/application/auth"
	"github.com/jhoicas/benchmark-hub/internal/application/dataset"
	"github.com/jhoicas/benchmark-hub/internal/application/report"
	"github.com/jhoicas/benchmark-hub/internal/application/support"
	"github.com/jhoicas/benchmark-hub/internal/application/usecase"
	"github.com/jhoicas/benchmark-hub/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ClientUC    *usecase.ClientUseCase
	BenchmarkUC *usecase.BenchmarkUseCase
	CompanyUC   *dataset.CompanyUseCase
	SupportUC   *support.UseCase
	ReportUC    *report.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Lectura: cualquier rol. Escritura: admin y analyst. Usuarios y borrado de clientes/benchmarks: admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	writers := RequireRole(entity.RoleAdmin, entity.RoleAnalyst)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	// Users (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id/role", userHandler.UpdateRole)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", writers, clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", writers, clientHandler.Update)
	clients.Delete("/:id", adminOnly, clientHandler.Delete)

	// Benchmarks
	benchmarks := protected.Group("/benchmarks")
	benchmarkHandler := NewBenchmarkHandler(deps.BenchmarkUC)
	benchmarks.Get("/", benchmarkHandler.List)
	benchmarks.Post("/", writers, benchmarkHandler.Create)
	benchmarks.Get("/:id", benchmarkHandler.GetByID)
	benchmarks.Put("/:id", writers, benchmarkHandler.Update)
	benchmarks.Delete("/:id", adminOnly, benchmarkHandler.Delete)

	// Dataset de empresas del benchmark
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	benchmarks.Get("/:id/progress", companyHandler.Progress)
	companies := benchmarks.Group("/:id/companies")
	companies.Get("/", companyHandler.List)
	companies.Post("/", writers, companyHandler.Create)
	companies.Post("/import", writers, companyHandler.Import)
	companies.Get("/:companyId", companyHandler.GetByID)
	companies.Put("/:companyId", writers, companyHandler.Update)
	companies.Delete("/:companyId", writers, companyHandler.Delete)

	protected.Get("/categories", companyHandler.Categories)

	// Reporte PDF
	reportHandler := NewReportHandler(deps.ReportUC)
	benchmarks.Get("/:id/report.pdf", reportHandler.ProgressPDF)

	// Support services
	sup := protected.Group("/support", writers)
	supportHandler := NewSupportHandler(deps.SupportUC)
	sup.Post("/column-mapping", supportHandler.SuggestColumnMapping)
	sup.Post("/benchmarks/:id/companies/:companyId/validate-website", supportHandler.ValidateWebsite)
	sup.Post("/benchmarks/:id/companies/:companyId/web-search", supportHandler.WebSearch)
	sup.Post("/benchmarks/:id/validate-websites", supportHandler.ValidateWebsites)
}
