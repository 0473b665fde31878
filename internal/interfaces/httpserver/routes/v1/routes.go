package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/veecerts/asset-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under /v1 prefix.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	authGroup := group.Group("/auth")
	authGroup.POST("/signup", r.handlers.Auth.Signup)
	authGroup.POST("/signin", r.handlers.Auth.Signin)
	authGroup.POST("/refresh", r.handlers.Auth.Refresh)

	group.GET("/packages", r.handlers.Subscription.ListPackages)
	group.POST("/packages", r.handlers.Subscription.UpsertPackage)
	group.GET("/packages/:uuid", r.handlers.Subscription.GetPackage)
	group.POST("/subscriptions", r.handlers.Subscription.Subscribe)

	group.GET("/usage", r.handlers.Asset.Usage)

	group.GET("/folders", r.handlers.Folder.List)
	group.POST("/folders", r.handlers.Folder.Upsert)
	group.GET("/folders/:uuid", r.handlers.Folder.Get)
	group.GET("/folders/:uuid/assets", r.handlers.Folder.ListAssets)

	group.POST("/assets", r.handlers.Asset.Upsert)
	group.GET("/assets/:uuid", r.handlers.Asset.Get)
}
