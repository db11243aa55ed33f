// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"skatehubba/config"
	"skatehubba/internal/delivery/api/middleware"
	"skatehubba/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	SignupHandler    *handler.SignupHandler
	SubscribeHandler *handler.SubscribeHandler
	ChatHandler      *handler.ChatHandler
	ProfileHandler   *handler.ProfileHandler
	AvatarHandler    *handler.AvatarHandler
	DebugHandler     *handler.DebugHandler
	SessionGuard     *middleware.SessionGuard
	UserAgentFilter  *middleware.UserAgentFilter
	RateLimiter      *middleware.RateLimiter
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	signupHandler    *handler.SignupHandler
	subscribeHandler *handler.SubscribeHandler
	chatHandler      *handler.ChatHandler
	profileHandler   *handler.ProfileHandler
	avatarHandler    *handler.AvatarHandler
	debugHandler     *handler.DebugHandler
	sessionGuard     *middleware.SessionGuard
	userAgentFilter  *middleware.UserAgentFilter
	rateLimiter      *middleware.RateLimiter
	config           *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		signupHandler:    params.SignupHandler,
		subscribeHandler: params.SubscribeHandler,
		chatHandler:      params.ChatHandler,
		profileHandler:   params.ProfileHandler,
		avatarHandler:    params.AvatarHandler,
		debugHandler:     params.DebugHandler,
		sessionGuard:     params.SessionGuard,
		userAgentFilter:  params.UserAgentFilter,
		rateLimiter:      params.RateLimiter,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.Use(r.rateLimiter.Global())

	api.GET("/health", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/session", r.authHandler.CreateSession)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.sessionGuard.Require)
	}

	// Rate limit first so rejected bots still spend their budget.
	api.POST("/secure-signup", r.signupHandler.SecureSignup,
		r.rateLimiter.Signup(),
		r.userAgentFilter.Check,
	)
	api.POST("/subscribe", r.subscribeHandler.Subscribe)
	api.POST("/ai/chat", r.chatHandler.Chat)

	profileGroup := api.Group("/profile", r.sessionGuard.Require)
	{
		profileGroup.PATCH("", r.profileHandler.UpdateProfile)
		profileGroup.POST("/avatar", r.profileHandler.UploadAvatar)
	}

	if r.servesAvatars() {
		e.GET("/avatars/*", r.avatarHandler.Serve)
	}
}

// RegisterDebugRoutes is a no-op unless debug.enabled is set.
func (r *router) RegisterDebugRoutes(e *echo.Echo) {
	if r.config.Debug == nil || !r.config.Debug.Enabled {
		return
	}

	debugGroup := e.Group("/api/debug")
	debugGroup.GET("/session", r.debugHandler.Session)
}

// servesAvatars is true when uploaded avatars have no public URL of their
// own and are streamed back through the API.
func (r *router) servesAvatars() bool {
	storage := r.config.Storage

	return storage != nil && storage.PublicBaseURL == "" && !strings.HasPrefix(storage.BucketURL, "gs://")
}
