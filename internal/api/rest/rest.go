package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/openregistry/ownership/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Confirmation link from the grantee's mailbox; the token is the credential
		v1.GET("/ownership_confirmations/:token", handler.ConfirmOwnership)

		// Open calls are public reading material
		v1.GET("/ownership_calls", handler.ListOpenCalls)
		v1.GET("/packages/:package/ownership_call", handler.GetOpenCall)

		// Owner listing (public read access)
		v1.GET("/packages/:package/owners", handler.ListOwners)

		// Ownership ledger (requires authentication)
		v1.POST("/packages/:package/owners", middleware.Auth(authCfg), handler.GrantOwnership)
		v1.DELETE("/packages/:package/owners/:handle", middleware.Auth(authCfg), handler.RevokeOwnership)
		v1.POST("/packages/:package/owners/resend_confirmation", middleware.Auth(authCfg), handler.ResendConfirmation)

		// Ownership calls (requires authentication)
		v1.POST("/packages/:package/ownership_call", middleware.Auth(authCfg), handler.OpenCall)
		v1.DELETE("/packages/:package/ownership_call", middleware.Auth(authCfg), handler.CloseCall)

		// Ownership requests (requires authentication)
		v1.POST("/packages/:package/ownership_requests", middleware.Auth(authCfg), handler.SubmitRequest)
		v1.POST("/packages/:package/ownership_requests/close_all", middleware.Auth(authCfg), handler.CloseAllRequests)
		v1.PATCH("/ownership_requests/:id", middleware.Auth(authCfg), handler.ResolveRequest)

		// Registry mirror endpoints (requires API key authentication only)
		v1.PUT("/mirror/users", middleware.APIKeyAuth(authCfg), handler.MirrorUser)
		v1.PUT("/mirror/packages", middleware.APIKeyAuth(authCfg), handler.MirrorPackage)
	}
}
