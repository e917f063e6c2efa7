package providers

import (
	"github.com/samber/do/v2"

	"github.com/benthecarman/macro-factor-go/internal/auth"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/logger"
	"github.com/benthecarman/macro-factor-go/internal/search"
	"github.com/benthecarman/macro-factor-go/internal/service"
)

// ProvideService provides the access service over the document store.
func ProvideService(i do.Injector) (*service.Service, error) {
	store := do.MustInvoke[*firestore.Client](i)
	authClient := do.MustInvoke[*auth.Client](i)
	searchClient := do.MustInvoke[*search.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.New(store, authClient, searchClient, log.Logger), nil
}
