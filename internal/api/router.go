// Package api wires the HTTP surface: routes, middleware and the handler
// construction order.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoplist-app/shoplist/internal/auth"
	"github.com/shoplist-app/shoplist/internal/config"
	"github.com/shoplist-app/shoplist/internal/handlers"
	"github.com/shoplist-app/shoplist/internal/middleware"
	"github.com/shoplist-app/shoplist/internal/service"
	"github.com/shoplist-app/shoplist/internal/storage"
)

func SetupRouter(store storage.Store, cfg *config.Config) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	authService := service.NewAuthService(store, jwtManager)
	userService := service.NewUserService(store)
	listService := service.NewListService(store)
	sharingService := service.NewSharingService(store)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	listHandler := handlers.NewListHandler(listService)
	itemHandler := handlers.NewItemHandler(listService)
	sharingHandler := handlers.NewSharingHandler(sharingService, userService)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(jwtManager))
	{
		users := protected.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/me", userHandler.Me)
			users.PUT("/me", userHandler.UpdateMe)
			users.DELETE("/me", userHandler.DeleteMe)
			users.GET("/:id", userHandler.Get)
		}

		lists := protected.Group("/lists")
		{
			lists.GET("", listHandler.GetLists)
			lists.GET("/own", listHandler.GetOwnLists)
			lists.POST("", listHandler.CreateList)
			lists.GET("/:id", listHandler.GetList)
			lists.GET("/:id/full", listHandler.GetEnrichedList)
			lists.PUT("/:id", listHandler.RenameList)
			lists.DELETE("/:id", listHandler.DeleteList)

			lists.GET("/:id/members", sharingHandler.Members)
			lists.DELETE("/:id/members/me", sharingHandler.Leave)
			lists.DELETE("/:id/members/:userID", sharingHandler.RemoveMember)

			lists.GET("/:id/invitations", sharingHandler.Invitations)
			lists.POST("/:id/invitations", sharingHandler.Invite)
			lists.DELETE("/:id/invitations/:userID", sharingHandler.WithdrawInvitation)

			items := lists.Group("/:id/items")
			{
				items.GET("", itemHandler.GetItems)
				items.POST("", itemHandler.AddItem)
				items.DELETE("/:itemID", itemHandler.RemoveItem)
				items.POST("/:itemID/bought", itemHandler.SetBought)
				items.DELETE("/:itemID/bought", itemHandler.SetUnbought)
			}
		}

		invitations := protected.Group("/invitations")
		{
			invitations.GET("", sharingHandler.MyInvitations)
			invitations.POST("/:listID/accept", sharingHandler.AcceptInvitation)
			invitations.POST("/:listID/reject", sharingHandler.RejectInvitation)
		}

		if cfg.EnableReset {
			protected.POST("/reset", func(c *gin.Context) {
				if err := store.Reset(c.Request.Context()); err != nil {
					slog.Error("reset failed", "error", err)
					c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
					return
				}
				slog.Warn("database reset")
				c.JSON(http.StatusOK, gin.H{"message": "Database reset"})
			})
		}
	}

	return router
}
