package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/namehaus/registrar/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Namespace deployment and lookup
		v1.POST("/namespaces", handler.DeployNamespace)
		v1.GET("/namespaces", handler.ListNamespaces)
		v1.GET("/namespaces/:label", handler.GetNamespace)

		// Registration lifecycle
		v1.POST("/namespaces/:label/domains", handler.RegisterDomain)
		v1.POST("/namespaces/:label/domains/:name/renewal", handler.RenewDomain)
		v1.POST("/namespaces/:label/domains/:name/subdomains", handler.CreateSubdomain)

		// Name management
		v1.PUT("/namespaces/:label/domains/:name/resolver", handler.SetResolver)
		v1.POST("/namespaces/:label/domains/:name/primary", handler.SetPrimaryDomain)

		// Reads (public access)
		v1.GET("/namespaces/:label/domains/:name", handler.GetDomain)
		v1.GET("/namespaces/:label/domains/:name/price", handler.GetDomainPrice)
		v1.GET("/namespaces/:label/domains/:name/hash", handler.GetDomainHash)

		// Administrative endpoints (requires authentication)
		v1.DELETE("/namespaces/:label/domains/:name", middleware.Auth(authCfg), handler.BurnDomain)
		v1.PUT("/namespaces/:label/prices", middleware.Auth(authCfg), handler.UpsertPrice)

		// Registration ledger (public read access)
		v1.GET("/ledger/entries", handler.ListLedgerEntries)
		v1.GET("/ledger/entries/:index", handler.GetLedgerEntry)

		// Factory endpoints (requires authentication)
		v1.POST("/factory/withdrawal", middleware.Auth(authCfg), handler.Withdraw)
		v1.PUT("/factory/config", middleware.Auth(authCfg), handler.SetFactoryConfig)
	}
}
