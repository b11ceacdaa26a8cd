package routes

import (
	"net/http"

	"worknest-console/internal/authz"
	"worknest-console/internal/config"
	"worknest-console/internal/handlers"
	"worknest-console/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are what the router needs besides the handlers.
type Deps struct {
	Sessions   middleware.SessionLoader
	Authorizer middleware.Authorizer
	Config     *config.Config
}

func SetupRoutes(h *handlers.Handler, deps Deps) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "WorkNest console is running",
		})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	allow := func(resource, action string) gin.HandlerFunc {
		return middleware.Require(deps.Authorizer, resource, action)
	}

	// Public routes (no session required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", middleware.LoginRateLimit(cfg.LoginRatePerMinute, cfg.LoginBurst), h.Login)
	}

	// Protected routes (session required)
	protected := api.Group("")
	protected.Use(middleware.SessionAuth(deps.Sessions, h.Nav().LoginPath()))
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/session", h.Me)
		protected.POST("/session/refresh", allow(authz.Profile, authz.Read), h.RefreshProfile)
		protected.PUT("/profile", allow(authz.Profile, authz.Write), h.UpdateProfile)
		protected.GET("/nav", allow(authz.Nav, authz.Read), h.Targets)
		protected.GET("/nav/:target", allow(authz.Nav, authz.Read), h.Navigate)
		protected.GET("/ws", h.WebSocket)
		protected.POST("/upload", allow(authz.Upload, authz.Write), h.Upload)

		// Dashboards
		protected.GET("/dashboard/admin", allow(authz.DashboardAdmin, authz.Read), h.AdminDashboard)
		protected.GET("/dashboard/manager", allow(authz.DashboardManager, authz.Read), h.ManagerDashboard)
		protected.GET("/dashboard/employee", allow(authz.DashboardEmployee, authz.Read), h.EmployeeDashboard)

		// Task endpoints
		protected.GET("/tasks", allow(authz.Tasks, authz.Read), h.ListTasks)
		protected.GET("/tasks/:id", allow(authz.Tasks, authz.Read), h.TaskDetail)
		protected.POST("/tasks", allow(authz.Tasks, authz.Write), h.CreateTask)
		protected.PUT("/tasks/:id", allow(authz.Tasks, authz.Write), h.UpdateTask)
		protected.PATCH("/tasks/:id/status", allow(authz.Tasks, authz.Status), h.UpdateTaskStatus)
		protected.DELETE("/tasks/:id", allow(authz.Tasks, authz.Delete), h.DeleteTask)

		// Project endpoints
		protected.GET("/projects", allow(authz.Projects, authz.Read), h.ListProjects)
		protected.GET("/projects/:id", allow(authz.Projects, authz.Read), h.ProjectDetail)
		protected.GET("/projects/:id/assignable", allow(authz.Tasks, authz.Read), h.Assignable)
		protected.POST("/projects", allow(authz.Projects, authz.Write), h.CreateProject)
		protected.PUT("/projects/:id", allow(authz.Projects, authz.Write), h.UpdateProject)
		protected.DELETE("/projects/:id", allow(authz.Projects, authz.Delete), h.DeleteProject)
		protected.POST("/projects/:id/members", allow(authz.Assignments, authz.Write), h.CreateAssignment)
		protected.PUT("/assignments/:id", allow(authz.Assignments, authz.Write), h.UpdateAssignment)
		protected.DELETE("/assignments/:id", allow(authz.Assignments, authz.Delete), h.DeleteAssignment)

		// Employee endpoints
		protected.GET("/employees", allow(authz.Employees, authz.Read), h.ListEmployees)
		protected.POST("/employees", allow(authz.Employees, authz.Write), h.CreateEmployee)
		protected.PUT("/employees/:id", allow(authz.Employees, authz.Write), h.UpdateEmployee)
		protected.DELETE("/employees/:id", allow(authz.Employees, authz.Delete), h.DeleteEmployee)
		protected.GET("/roles", allow(authz.Roles, authz.Read), h.ListRoles)
		protected.GET("/roles/paginated", allow(authz.Roles, authz.Read), h.ListRolePage)
		protected.POST("/roles", allow(authz.Roles, authz.Write), h.CreateRole)
		protected.PUT("/roles/:id", allow(authz.Roles, authz.Write), h.UpdateRole)
		protected.DELETE("/roles/:id", allow(authz.Roles, authz.Delete), h.DeleteRole)

		// Time logs and report
		protected.POST("/timelogs", allow(authz.TimeLogs, authz.Write), h.CreateTimeLog)
		protected.PUT("/timelogs/:id", allow(authz.TimeLogs, authz.Write), h.UpdateTimeLog)
		protected.DELETE("/timelogs/:id", allow(authz.TimeLogs, authz.Delete), h.DeleteTimeLog)
		protected.GET("/reports", allow(authz.Reports, authz.Read), h.Report)
		protected.GET("/reports/export", allow(authz.Reports, authz.Read), h.ExportReport)
	}

	return ginRouter
}
