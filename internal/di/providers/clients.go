package providers

import (
	"github.com/samber/do/v2"

	"github.com/benthecarman/macro-factor-go/internal/auth"
	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/logger"
	"github.com/benthecarman/macro-factor-go/internal/search"
)

// ProvideAuthClient provides the Firebase identity client.
func ProvideAuthClient(i do.Injector) (*auth.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.HasCredentials() {
		log.Warn("No Firebase credentials configured, authenticated endpoints will fail")
	}

	return auth.NewClient(cfg.Firebase, log.Logger), nil
}

// ProvideFirestoreClient provides the Firestore REST client.
func ProvideFirestoreClient(i do.Injector) (*firestore.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authClient := do.MustInvoke[*auth.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return firestore.NewClient(
		cfg.Firebase.FirestoreURL,
		cfg.Firebase.ProjectID,
		cfg.Firebase.RequestsPerSecond,
		authClient,
		log.Logger,
	), nil
}

// ProvideSearchClient provides the food search client.
func ProvideSearchClient(i do.Injector) (*search.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Search.BaseURL == "" {
		log.Info("Food search provider not configured, search endpoints will fail")
	}

	return search.NewClient(cfg.Search, log.Logger), nil
}
