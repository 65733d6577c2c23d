package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/edu-content-platform/internal/config"
	"github.com/iliyamo/edu-content-platform/internal/entitlement"
	"github.com/iliyamo/edu-content-platform/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/edu-content-platform/internal/middleware" // import middleware for token authentication and role enforcement
	"github.com/iliyamo/edu-content-platform/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. Open
// operations (register, login) live under /v1/auth; session-bound
// operations (me, logout, profile update) live under /v1 behind the
// TokenAuth middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gw *entitlement.Gateway) {
	g := e.Group("/v1/auth")
	// Registration creates a student account and returns a session token
	// immediately, so a fresh install needs no separate login round trip.
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1", middleware.TokenAuth(gw))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateProfile)
	// Logout revokes the presented token server side; the same token can
	// never authenticate again afterwards.
	auth.POST("/auth/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: the
// content catalog and the static plan list. When a Redis client is
// available the catalog responses are served through the read cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	// Catalog responses carry a locked flag instead of any artifact data,
	// so caching them for anonymous traffic is safe.
	e.GET("/v1/content", p.ListCatalog, cached)
	e.GET("/v1/content/:id", p.GetCatalogItem, cached)
	e.GET("/v1/subscription/plans", p.ListPlans)
}

// RegisterStudent registers the authenticated student surface: the
// personal library, subscription activation and artifact download.
func RegisterStudent(e *echo.Echo, gw *entitlement.Gateway,
	lib *handler.LibraryHandler, sub *handler.SubscriptionHandler, dl *handler.DownloadHandler) {
	g := e.Group("/v1", middleware.TokenAuth(gw))
	g.GET("/library", lib.List)
	g.POST("/subscription/activate", sub.Activate)
	// Download re-checks the token inside the gateway rather than trusting
	// the middleware context, keeping the whole decision in one place.
	g.GET("/content/:id/download", dl.Download)
}

// RegisterAdmin registers the content management surface. Every route
// here requires an authenticated token whose user carries the ADMIN
// role.
func RegisterAdmin(e *echo.Echo, gw *entitlement.Gateway, ad *handler.AdminHandler) {
	g := e.Group("/v1/admin", middleware.TokenAuth(gw), middleware.RequireRole(model.RoleAdmin))
	g.POST("/content", ad.CreateContent)
	g.PUT("/content/:id", ad.UpdateContent)
	g.DELETE("/content/:id", ad.DeleteContent)
	g.POST("/content/:id/file", ad.UploadArtifact)
	g.GET("/students", ad.ListStudents)
}
