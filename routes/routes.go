package routes

import (
	"os"
	"strings"

	"queueflow-backend/config"
	"queueflow-backend/controllers"
	"queueflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	{
		// Public booking and tracking routes
		api.GET("/branches", controllers.GetBranches)
		api.GET("/branches/:id", controllers.GetBranch)
		api.GET("/services", controllers.GetServices)

		tokens := api.Group("/tokens")
		{
			tokens.POST("", controllers.BookToken)
			tokens.GET("/track", controllers.TrackToken)
			tokens.GET("/:id", controllers.GetToken)
		}

		// Display feeds, polled by the branch screens
		display := api.Group("/display")
		{
			display.GET("/now-serving", controllers.NowServing)
			display.GET("/waiting-queue", controllers.WaitingQueue)
		}

		admin := api.Group("/admin")
		admin.Use(utils.AuthMiddleware())
		{
			admin.GET("/stats", controllers.GetStats)
			admin.GET("/analytics", controllers.GetAnalytics)
			admin.GET("/recent-tokens", controllers.GetRecentTokens)
			admin.GET("/counters", controllers.GetCounters)

			adminTokens := admin.Group("/tokens")
			{
				adminTokens.GET("", controllers.GetAdminTokens)
				adminTokens.POST("/call-next", controllers.CallNext)
				adminTokens.POST("/update-positions", controllers.UpdatePositions)
				adminTokens.PATCH("/:id", controllers.UpdateToken)
			}

			adminServices := admin.Group("/services")
			{
				adminServices.GET("", controllers.GetAdminServices)
				adminServices.POST("", controllers.CreateService)
				adminServices.PATCH("/:id", controllers.UpdateService)
				adminServices.DELETE("/:id", controllers.DeleteService)
			}

			staff := admin.Group("/staff")
			{
				staff.GET("", controllers.GetStaff)
				staff.POST("", controllers.AddStaff)
				staff.PATCH("/:id", controllers.UpdateStaff)
				staff.DELETE("/:id", controllers.DeleteStaff)
			}
		}
	}

	return r
}
