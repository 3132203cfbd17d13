// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"findjob-backend/internal/auth"
	"findjob-backend/internal/controller/admin"
	"findjob-backend/internal/controller/application"
	"findjob-backend/internal/controller/candidate"
	"findjob-backend/internal/controller/category"
	"findjob-backend/internal/controller/chat"
	"findjob-backend/internal/controller/employer"
	"findjob-backend/internal/controller/file"
	"findjob-backend/internal/controller/follow"
	"findjob-backend/internal/controller/jobpost"
	"findjob-backend/internal/controller/notification"
	"findjob-backend/internal/controller/review"
	"findjob-backend/internal/controller/schedule"
	"findjob-backend/internal/controller/user"
	"findjob-backend/internal/controller/verification"
	"findjob-backend/internal/middleware"
	"findjob-backend/internal/model"
	"findjob-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Init swagger doc
	_ "findjob-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.SafeHeader())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Tokens)
	logout := auth.NewLogoutController(s.Blacklist)

	users := user.NewUserController(s.Services.Users)
	files := file.NewFileController(s.Services)
	jobs := jobpost.NewJobPostController(s.Services.Jobs)
	apps := application.NewApplicationController(s.Services.Applications)
	employers := employer.NewEmployerController(s.Services.Employers)
	candidates := candidate.NewCandidateController(s.Services.Candidates)
	categories := category.NewCategoryController(s.Services.Categories)
	schedules := schedule.NewScheduleController(s.Services.Schedules)
	messages := chat.NewChatController(s.Services.Chat)
	reviews := review.NewReviewController(s.Services.Reviews)
	notifications := notification.NewNotificationController(s.Services.Notifications)
	follows := follow.NewFollowController(s.Services.Follows)
	verifications := verification.NewVerificationController(s.Services.Verifications)
	adminCtl := admin.NewAdminController(s.Services.Stats)

	limiter := middleware.RateLimiterMiddleware(s.cfg.RateLimit)
	uploadLimit := middleware.SizeLimit(storage.MaxImageBytes)

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1", middleware.JwtBlacklistCheck(s.Blacklist))
	{
		authRoute := v1.Group("/auth", limiter)
		{
			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("logout", middleware.RequireAuth(s.DB, s.Tokens), logout.LogoutHandler)
		}

		// Routes readable without logging in
		public := v1.Group("", middleware.OptionalAuth(s.DB, s.Tokens), limiter)
		{
			public.POST("/users/register-employer", users.RegisterEmployer)
			public.POST("/users/register-candidate", users.RegisterCandidate)

			public.GET("/jobs", jobs.GetPosts)
			public.GET("/jobs/:id", jobs.GetPostByID)
			public.GET("/jobs/:id/employer", jobs.GetPostEmployer)
			public.GET("/jobs/:id/map-data", jobs.GetPostMapData)

			public.GET("/employers/:id", employers.GetEmployerByID)
			public.GET("/employers/:id/map-data", employers.GetEmployerMapData)

			public.GET("/categories", categories.GetCategories)
			public.GET("/categories/:id", categories.GetCategoryByID)

			public.GET("/reviews", reviews.GetReviews)
			public.GET("/files/:id", files.GetFile)
		}

		needAuth := v1.Group("", middleware.RequireAuth(s.DB, s.Tokens), limiter)
		{
			userRoute := needAuth.Group("/users")
			{
				userRoute.GET("/current-user", users.GetCurrentUser)
				userRoute.PATCH("/current-user", users.EditCurrentUser)
				userRoute.POST("/send-email", users.SendEmail)
				userRoute.POST("/avatar", uploadLimit, files.UploadAvatar)
			}

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.POST("", middleware.CheckRole(model.RoleEmployer), jobs.CreateJobPostHandler)
				jobRoute.PATCH("/:id", jobs.EditJobPost)
				jobRoute.DELETE("/:id", jobs.DeleteJobPost)
				jobRoute.PATCH("/:id/status", jobs.SetPostStatus)
			}

			applyRoute := needAuth.Group("/apply")
			{
				applyRoute.POST("", middleware.CheckRole(model.RoleCandidate), apps.ApplicationHandler)
				applyRoute.GET("", apps.GetApplications)
				applyRoute.GET("/:id", apps.GetApplication)
				applyRoute.GET("/job/:job_id", apps.GetJobApplications)
				applyRoute.PATCH("/:id/approve", apps.ApproveApplication)
				applyRoute.PATCH("/:id/reject", apps.RejectApplication)
			}

			employerRoute := needAuth.Group("/employers")
			{
				employerRoute.GET("", middleware.CheckRole(model.RoleAdmin), employers.GetEmployers)
				employerRoute.PATCH("/:id", employers.EditEmployerProfile)
				employerRoute.POST("/:id/images", uploadLimit, files.UploadEmployerImage)
				employerRoute.POST("/:id/follow", middleware.CheckRole(model.RoleCandidate), follows.FollowEmployer)
				employerRoute.DELETE("/:id/follow", middleware.CheckRole(model.RoleCandidate), follows.UnfollowEmployer)
			}
			needAuth.GET("/follows", middleware.CheckRole(model.RoleCandidate), follows.GetFollowing)

			candidateRoute := needAuth.Group("/candidates")
			{
				candidateRoute.GET("/:id", candidates.GetCandidateByID)
				candidateRoute.PATCH("/:id", candidates.EditCandidateProfile)
			}

			scheduleRoute := needAuth.Group("/work-schedules")
			{
				scheduleRoute.POST("", schedules.CreateSchedule)
				scheduleRoute.GET("", schedules.GetSchedules)
				scheduleRoute.PATCH("/:id", schedules.UpdateScheduleStatus)
			}

			chatRoute := needAuth.Group("/chat-messages")
			{
				chatRoute.POST("", messages.SendMessage)
				chatRoute.GET("", messages.GetMessages)
				chatRoute.PATCH("/:id/read", messages.MarkMessageRead)
			}

			needAuth.POST("/reviews", reviews.CreateReview)

			notificationRoute := needAuth.Group("/notifications")
			{
				notificationRoute.GET("", notifications.GetNotifications)
				notificationRoute.PATCH("/:id/read", notifications.MarkNotificationRead)
			}

			verificationRoute := needAuth.Group("/verifications")
			{
				verificationRoute.POST("", middleware.CheckRole(model.RoleEmployer), verifications.SubmitVerification)
				verificationRoute.GET("", verifications.GetVerifications)
				verificationRoute.PATCH("/:id/approve", middleware.CheckRole(model.RoleAdmin), verifications.ApproveVerification)
				verificationRoute.PATCH("/:id/reject", middleware.CheckRole(model.RoleAdmin), verifications.RejectVerification)
			}

			needAuth.GET("/stats/jobs", middleware.CheckRole(model.RoleAdmin), adminCtl.GetJobStats)
		}
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
