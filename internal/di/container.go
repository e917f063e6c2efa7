// Package di provides dependency injection configuration for the MacroFactor access server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/benthecarman/macro-factor-go/internal/auth"
	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/di/providers"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/logger"
	"github.com/benthecarman/macro-factor-go/internal/search"
	"github.com/benthecarman/macro-factor-go/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Upstream clients
	do.Provide(injector, providers.ProvideAuthClient)
	do.Provide(injector, providers.ProvideFirestoreClient)
	do.Provide(injector, providers.ProvideSearchClient)

	// Business services
	do.Provide(injector, providers.ProvideService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*auth.Client](injector)
	_ = do.MustInvoke[*firestore.Client](injector)
	_ = do.MustInvoke[*search.Client](injector)
	_ = do.MustInvoke[*service.Service](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
