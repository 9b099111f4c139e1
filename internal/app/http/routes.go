package routes

import (
	adminapi "festival-app/internal/api/admin"
	authapi "festival-app/internal/api/auth"
	festivalsapi "festival-app/internal/api/festivals"
	performancesapi "festival-app/internal/api/performances"
	usersapi "festival-app/internal/api/users"
	"festival-app/internal/app/http/middleware"
	"festival-app/internal/logging"
	"festival-app/internal/repository"
	"festival-app/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	store := repository.NewGormStore(db)
	festivalsapi.Init(workflow.NewFestivalWorkflow(store, logging.L))
	performancesapi.Init(workflow.NewPerformanceWorkflow(store, logging.L))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/festivals", festivalsapi.ListFestivals)
	public.GET("/festivals/:id", festivalsapi.GetFestival)
	public.GET("/festivals/:id/performances", performancesapi.ListPerformances)
	public.GET("/performances/:id", performancesapi.GetPerformance)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.RequireActiveAccount())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/festivals", festivalsapi.CreateFestival)
	auth.PUT("/festivals/:id", festivalsapi.UpdateFestival)

	auth.POST("/festivals/:id/start-submission", festivalsapi.StartSubmission)
	auth.POST("/festivals/:id/start-assignment", festivalsapi.StartAssignment)
	auth.POST("/festivals/:id/start-review", festivalsapi.StartReview)
	auth.POST("/festivals/:id/start-scheduling", festivalsapi.StartScheduling)
	auth.POST("/festivals/:id/start-final-submission", festivalsapi.StartFinalSubmission)
	auth.POST("/festivals/:id/start-decision", festivalsapi.StartDecision)
	auth.POST("/festivals/:id/announce", festivalsapi.Announce)

	auth.POST("/festivals/:id/performances", performancesapi.CreatePerformance)
	auth.POST("/performances/:id/submit", performancesapi.Submit)
	auth.POST("/performances/:id/review", performancesapi.Review)
	auth.POST("/performances/:id/approve", performancesapi.Approve)
	auth.POST("/performances/:id/reject", performancesapi.Reject)
	auth.POST("/performances/:id/final-submit", performancesapi.FinalSubmit)
	auth.POST("/performances/:id/accept", performancesapi.Accept)
	auth.DELETE("/performances/:id", performancesapi.Withdraw)
	auth.PUT("/performances/:id/staff", performancesapi.AssignStaff)
	auth.POST("/performances/:id/band-members", performancesapi.AddBandMember)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/users/:id", adminapi.GetUserDetails)
	admin.PUT("/users/:id/role", adminapi.SetUserRole)
	admin.PUT("/users/:id/status", adminapi.SetUserStatus)
}
