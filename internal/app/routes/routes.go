package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/controllers"
	"github.com/kim0040/codingmaker-web-sub000/internal/middleware"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/helpers"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/ws"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Academy    *controllers.AcademyController
	Course     *controllers.CourseController
	Attendance *controllers.AttendanceController
	Community  *controllers.CommunityController
	Friend     *controllers.FriendController
	Chat       *controllers.ChatController
	Analytics  *controllers.AnalyticsController
	Health     *controllers.HealthController
}

// RateLimits holds the parsed throttling windows for the public endpoints
type RateLimits struct {
	LoginWindow   time.Duration
	LoginMax      int
	CheckInWindow time.Duration
	CheckInMax    int
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	limits RateLimits,
	wsHandler *ws.Handler,
) {
	router.GET("/healthz", c.Health.Healthz)

	api := router.Group("/api")

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login",
			rateLimiter.Limit("login", limits.LoginMax, limits.LoginWindow),
			c.Auth.Login)
	}

	api.GET("/academy/info", c.Academy.GetInfo)

	// The kiosk endpoint carries no session; the per-IP window is its guard.
	api.POST("/attendance/checkin",
		rateLimiter.Limit("checkin", limits.CheckInMax, limits.CheckInWindow),
		c.Attendance.CheckIn)

	// --- Authenticated routes ---
	authed := api.Group("")
	authed.Use(authMiddleware.RequireAuth())
	{
		authed.GET("/auth/me", c.Auth.Me)

		authed.GET("/ws", wsHandler.HandleConnection)

		// Users: reads for staff, writes split across tiers
		users := authed.Group("/users")
		{
			users.GET("/:userId/profile", c.User.GetProfile)

			staff := users.Group("", authMiddleware.TierAtMost(2))
			{
				staff.GET("", c.User.ListUsers)
				staff.POST("", c.User.CreateUser)
				staff.PUT("/:userId", c.User.UpdateUser)
			}
			users.DELETE("/:userId", authMiddleware.TierAtMost(1), c.User.DeleteUser)
		}

		authed.PUT("/academy/info", authMiddleware.TierAtMost(1), c.Academy.UpdateInfo)

		// Courses: reads authenticated, writes tier 2 or better
		courses := authed.Group("/courses")
		{
			courses.GET("", c.Course.ListCourses)
			courses.GET("/:courseId", c.Course.GetCourse)
			courses.POST("/:courseId/enroll", c.Course.Enroll)
			courses.DELETE("/:courseId/enroll", c.Course.Unenroll)

			courseWrites := courses.Group("", authMiddleware.TierAtMost(2))
			{
				courseWrites.POST("", c.Course.CreateCourse)
				courseWrites.PUT("/:courseId", c.Course.UpdateCourse)
				courseWrites.DELETE("/:courseId", c.Course.DeleteCourse)
				courseWrites.POST("/:courseId/sections", c.Course.CreateSection)
				courseWrites.PUT("/:courseId/reorder", c.Course.Reorder)
			}
		}
		authed.POST("/sections/:sectionId/lessons", authMiddleware.TierAtMost(2), c.Course.CreateLesson)

		authed.GET("/attendance/user/:userId", c.Attendance.ListForUser)

		// Community
		community := authed.Group("/community")
		{
			community.GET("/posts", c.Community.ListPosts)
			community.GET("/posts/:postId", c.Community.GetPost)
			community.POST("/posts", c.Community.CreatePost)
			community.DELETE("/posts/:postId", c.Community.DeletePost)
			community.POST("/posts/:postId/comments", c.Community.CreateComment)
			community.PUT("/posts/:postId/like", c.Community.ToggleLike)
			community.DELETE("/comments/:commentId", c.Community.DeleteComment)
		}

		// Friends
		friends := authed.Group("/friends")
		{
			friends.GET("", c.Friend.List)
			friends.POST("/request", c.Friend.Request)
			friends.PUT("/:friendshipId/accept", c.Friend.Accept)
			friends.DELETE("/:friendshipId", c.Friend.Delete)
		}

		// Chat
		chat := authed.Group("/chat")
		{
			chat.GET("/rooms", c.Chat.ListRooms)
			chat.POST("/rooms", c.Chat.CreateRoom)
			chat.GET("/rooms/:roomId/messages", c.Chat.ListMessages)
			chat.POST("/rooms/:roomId/messages", c.Chat.SendMessage)
			chat.DELETE("/messages/:messageId", c.Chat.DeleteMessage)
		}

		// Analytics: staff only
		analytics := authed.Group("/analytics", authMiddleware.TierAtMost(2))
		{
			analytics.GET("/attendance", c.Analytics.AttendanceStats)
			analytics.GET("/community", c.Analytics.CommunityStats)
			analytics.GET("/users", c.Analytics.UserStats)
			analytics.GET("/dashboard", c.Analytics.Dashboard)
		}
	}
}

// ParseRateLimits converts the configured window strings into durations,
// falling back to safe defaults on parse errors.
func ParseRateLimits(loginWindow string, loginMax int, checkInWindow string, checkInMax int) RateLimits {
	return RateLimits{
		LoginWindow:   helpers.ParseDuration(loginWindow, 15*time.Minute),
		LoginMax:      loginMax,
		CheckInWindow: helpers.ParseDuration(checkInWindow, time.Minute),
		CheckInMax:    checkInMax,
	}
}
