package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

type stubDirectory struct {
	products  []entity.Product
	customers []entity.Customer
	inventory []entity.InventoryItem

	productsErr  error
	customersErr error
	inventoryErr error
}

func (s *stubDirectory) ListProducts(context.Context) ([]entity.Product, error) {
	return s.products, s.productsErr
}

func (s *stubDirectory) ListCustomers(context.Context) ([]entity.Customer, error) {
	return s.customers, s.customersErr
}

func (s *stubDirectory) ListInventory(context.Context) ([]entity.InventoryItem, error) {
	return s.inventory, s.inventoryErr
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestLoadAll(t *testing.T) {
	stub := &stubDirectory{
		products:  []entity.Product{{ID: "p1", Name: "Eggs AA", UnitPrice: 500}},
		customers: []entity.Customer{{ID: "c1", Name: "Mostrador"}},
		inventory: []entity.InventoryItem{{ID: "i1", Product: &entity.ProductRef{ID: "p1"}, CurrentStock: 10}},
	}
	svc := NewSnapshotService(stub, quietLogger())

	snap := svc.LoadAll(context.Background())

	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Customers, 1)
	assert.Len(t, snap.Inventory, 1)
}

func TestLoadAll_FailedFetchDegradesToEmptyList(t *testing.T) {
	stub := &stubDirectory{
		products:     []entity.Product{{ID: "p1", Name: "Eggs AA", UnitPrice: 500}},
		customersErr: errors.New("connection refused"),
		inventory:    []entity.InventoryItem{{ID: "i1", Product: &entity.ProductRef{ID: "p1"}, CurrentStock: 10}},
	}
	svc := NewSnapshotService(stub, quietLogger())

	snap := svc.LoadAll(context.Background())

	assert.Len(t, snap.Products, 1)
	assert.Empty(t, snap.Customers)
	assert.Len(t, snap.Inventory, 1)
}
