package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velizhask/KADA-Connect/internal/auth"
	"github.com/velizhask/KADA-Connect/internal/config"
	"github.com/velizhask/KADA-Connect/internal/handler"
	middlewarepkg "github.com/velizhask/KADA-Connect/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserAdminHandler
	Companies   *handler.CompaniesHandler
	Students    *handler.StudentsHandler
	AdminUpload *handler.AdminUploadHandler
	ImageProxy  *handler.ImageProxyHandler
}

// Register wires all HTTP routes for the API. Catalogue reads are
// public; writes require a token and the admin surface requires the
// admin role on top.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)
	e.POST("/auth/refresh", handlers.Auth.Refresh)

	searchLimiter := middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch, "/companies", "/students")

	companies := e.Group("/companies", searchLimiter)
	companies.GET("", handlers.Companies.List)
	companies.GET("/search", handlers.Companies.List)
	companies.GET("/industries", handlers.Companies.Industries)
	companies.GET("/tech-roles", handlers.Companies.TechRoles)
	companies.GET("/stats", handlers.Companies.Stats)
	companies.GET("/:id", handlers.Companies.Get)

	students := e.Group("/students", searchLimiter)
	students.GET("", handlers.Students.List)
	students.GET("/search", handlers.Students.List)
	students.GET("/featured", handlers.Students.Featured)
	students.GET("/universities", handlers.Students.Universities)
	students.GET("/majors", handlers.Students.Majors)
	students.GET("/industries", handlers.Students.Industries)
	students.GET("/skills", handlers.Students.Skills)
	students.GET("/status-options", handlers.Students.StatusOptions)
	students.GET("/stats", handlers.Students.Stats)
	students.GET("/:id", handlers.Students.Get)

	if handlers.ImageProxy != nil {
		e.GET("/proxy/image", handlers.ImageProxy.Fetch)
	}

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/companies", handlers.Companies.Create)
	secured.PUT("/companies/:id", handlers.Companies.Update)
	secured.DELETE("/companies/:id", handlers.Companies.Delete)
	secured.POST("/companies/validate-logo", handlers.Companies.ValidateLogo)

	secured.POST("/students", handlers.Students.Create)
	secured.PUT("/students/:id", handlers.Students.Update)
	secured.DELETE("/students/:id", handlers.Students.Delete)
	secured.POST("/students/validate-cv", handlers.Students.ValidateCV)
	secured.POST("/students/validate-photo", handlers.Students.ValidatePhoto)

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.POST("/companies/upload-csv", handlers.AdminUpload.UploadCompaniesCSV)
	admin.POST("/students/upload-csv", handlers.AdminUpload.UploadStudentsCSV)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
