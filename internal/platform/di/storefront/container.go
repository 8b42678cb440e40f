// internal/platform/di/storefront/container.go
package storefront

import (
	"context"
	"errors"
	"log"

	query "leafline/internal/application/query/storefront"
	usecase "leafline/internal/application/usecase"

	outdb "leafline/internal/adapters/out/db"
	outfs "leafline/internal/adapters/out/firestore"
	"leafline/internal/adapters/out/notify"

	shared "leafline/internal/platform/di/shared"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching.
type Container struct {
	Infra *shared.Infra

	// Usecases
	CartUC  *usecase.CartUsecase
	OrderUC *usecase.OrderUsecase

	// Queries
	CatalogQ *query.CatalogQuery

	// SSE fan-out (also registered as the usecases' notifier)
	Broadcaster *notify.Broadcaster
}

// NewContainer wires repositories, notifiers and usecases on top of inf.
func NewContainer(ctx context.Context, inf *shared.Infra) (*Container, error) {
	if inf == nil || inf.Firestore == nil {
		return nil, errors.New("di.storefront: infra is not initialized")
	}

	cont := &Container{Infra: inf}

	// Outbound adapters
	cartRepo := outfs.NewCartRepositoryFS(inf.Firestore)
	productRepo := outfs.NewProductRepositoryFS(inf.Firestore)
	orderRepo := outfs.NewOrderRepositoryFS(inf.Firestore)

	cont.Broadcaster = notify.NewBroadcaster()
	notifier := notify.Fanout{notify.NewLogNotifier(), cont.Broadcaster}

	// Usecases
	cont.CartUC = usecase.NewCartUsecase(cartRepo, productRepo, notifier)
	cont.OrderUC = usecase.NewOrderUsecase(orderRepo, cartRepo, notifier)

	// Optional Postgres archive
	if inf.Archive != nil && inf.Archive.Client != nil {
		archive := outdb.NewOrderArchivePG(inf.Archive.Client)
		if err := archive.EnsureSchema(ctx); err != nil {
			log.Printf("[di.storefront] WARN: order archive schema: %v (archive disabled)", err)
		} else {
			cont.OrderUC = cont.OrderUC.WithArchiver(archive)
			log.Printf("[di.storefront] order archive enabled")
		}
	}

	// Queries
	cont.CatalogQ = &query.CatalogQuery{Repo: productRepo}

	return cont, nil
}
