package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dparedesb/avicola-console/internal/application/composer"
	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

// DirectoryAPI is the slice of the backend API the snapshot loader needs.
type DirectoryAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	ListInventory(ctx context.Context) ([]entity.InventoryItem, error)
}

// SnapshotService loads the catalog, customer and inventory snapshots the
// sale composer works against.
type SnapshotService struct {
	client DirectoryAPI
	log    *logrus.Logger
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(client DirectoryAPI, log *logrus.Logger) *SnapshotService {
	return &SnapshotService{client: client, log: log}
}

// LoadAll fetches the three snapshots concurrently and returns once all
// three resolve. A failed fetch degrades to an empty list and is logged;
// the console still renders with whatever loaded.
func (s *SnapshotService) LoadAll(ctx context.Context) composer.Snapshot {
	var snap composer.Snapshot
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		products, err := s.client.ListProducts(ctx)
		if err != nil {
			s.log.WithError(err).Error("could not load products")
			return
		}
		snap.Products = products
	}()

	go func() {
		defer wg.Done()
		customers, err := s.client.ListCustomers(ctx)
		if err != nil {
			s.log.WithError(err).Error("could not load customers")
			return
		}
		snap.Customers = customers
	}()

	go func() {
		defer wg.Done()
		inventory, err := s.client.ListInventory(ctx)
		if err != nil {
			s.log.WithError(err).Error("could not load inventory")
			return
		}
		snap.Inventory = inventory
	}()

	wg.Wait()
	return snap
}
