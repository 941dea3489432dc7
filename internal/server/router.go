package server

import (
	"net/http"

	"practicehub/internal/controller"
	"practicehub/internal/middleware"
	"practicehub/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Auth     *service.AuthService
	Problems *service.ProblemService
	Users    *service.UserService
	Stats    *service.StatsService
	CORS     middleware.CORSConfig
}

// NewRouter builds the HTTP surface. Each route composes its checking stages
// explicitly: trace and logging on everything, the auth guard only where the
// contract protects the operation.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.CORSMiddleware(deps.CORS))
	router.Use(middleware.RequestLogger())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	problems := controller.NewProblemController(deps.Problems)
	users := controller.NewUserController(deps.Users)
	stats := controller.NewStatsController(deps.Stats)

	guard := middleware.AuthMiddleware(deps.Auth)

	router.POST("/problems", guard, problems.Create)
	router.GET("/problems", problems.List)
	router.PATCH("/problems/:id/solve", guard, problems.Solve)
	router.DELETE("/problems/:id", guard, problems.Delete)

	router.POST("/register", users.Register)
	router.POST("/login", users.Login)
	router.DELETE("/users/:id", guard, users.Delete)
	router.PATCH("/users/:id", guard, users.Update)

	router.GET("/stats", stats.Get)

	return router
}
