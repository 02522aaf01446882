package composer

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/domain/enum"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
)

type mockGateway struct {
	createRequests []*api.CreateSaleRequest
	createKeys     []string
	createErr      error
	sale           *entity.Sale

	inventory    []entity.InventoryItem
	inventoryErr error
	listInvCalls int
}

func (m *mockGateway) CreateSale(_ context.Context, req *api.CreateSaleRequest, key string) (*entity.Sale, error) {
	m.createRequests = append(m.createRequests, req)
	m.createKeys = append(m.createKeys, key)
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.sale != nil {
		return m.sale, nil
	}
	return &entity.Sale{ID: "sale-1"}, nil
}

func (m *mockGateway) ListInventory(_ context.Context) ([]entity.InventoryItem, error) {
	m.listInvCalls++
	if m.inventoryErr != nil {
		return nil, m.inventoryErr
	}
	return m.inventory, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func eggsAA() entity.Product {
	return entity.Product{
		ID:           "p1",
		Name:         "Eggs AA",
		UnitPrice:    500,
		PackageName:  "Carton",
		PackageUnits: 30,
		PackagePrice: 13000,
	}
}

func looseOnly() entity.Product {
	return entity.Product{ID: "p2", Name: "Eggs B", UnitPrice: 400}
}

func snapshotWithStock(stock map[string]int) Snapshot {
	inventory := make([]entity.InventoryItem, 0, len(stock))
	for id, qty := range stock {
		inventory = append(inventory, entity.InventoryItem{
			ID:           "inv-" + id,
			Product:      &entity.ProductRef{ID: id},
			CurrentStock: qty,
		})
	}
	return Snapshot{
		Products: []entity.Product{eggsAA(), looseOnly()},
		Customers: []entity.Customer{
			{ID: "c0", Name: "Mostrador"},
			{ID: "c1", Name: "Tienda Don Luis"},
			{ID: "c2", Name: "Panadería La Espiga"},
		},
		Inventory: inventory,
	}
}

func newLoadedComposer(t *testing.T, gw *mockGateway, stock map[string]int) *Composer {
	t.Helper()
	c := New(gw, testLogger(), "Mostrador", enum.PaymentMethodCash)
	require.True(t, c.Load(snapshotWithStock(stock)))
	return c
}

func TestLoad_ResolvesWalkInCaseInsensitively(t *testing.T) {
	c := New(&mockGateway{}, testLogger(), "mostrador", enum.PaymentMethodCash)
	found := c.Load(snapshotWithStock(map[string]int{"p1": 10}))

	require.True(t, found)
	assert.Equal(t, "c0", c.WalkInID())
	assert.Equal(t, enum.SaleModeWalkIn, c.Mode())
	assert.Equal(t, "c0", c.CustomerID())
}

func TestLoad_MissingWalkInDegradesToCredit(t *testing.T) {
	c := New(&mockGateway{}, testLogger(), "Mostrador", enum.PaymentMethodCash)
	snap := snapshotWithStock(map[string]int{"p1": 10})
	snap.Customers = snap.Customers[1:] // drop the walk-in record

	found := c.Load(snap)

	assert.False(t, found)
	assert.Equal(t, enum.SaleModeCredit, c.Mode())
	assert.Equal(t, "c1", c.CustomerID())
}

func TestAddLine_UnitThenPackage(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatPackage, 2))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 10, lines[0].Quantity)
	assert.Equal(t, int64(5000), lines[0].LineTotal)
	assert.Equal(t, 60, lines[1].Quantity)
	assert.Equal(t, int64(26000), lines[1].LineTotal)
	assert.Equal(t, int64(31000), c.ComputeTotals().TotalAmount)
}

func TestAddLine_MergesSameProductAndFormat(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 3))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 7))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 10, lines[0].Quantity)
	assert.Equal(t, int64(3*500+7*500), lines[0].LineTotal)
}

func TestAddLine_TotalEqualsSumOfLineAmounts(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 200, "p2": 50})

	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))   // 5000
	require.NoError(t, c.AddLine("p2", enum.SaleFormatUnit, 5))    // 2000
	require.NoError(t, c.AddLine("p1", enum.SaleFormatPackage, 3)) // 39000
	require.NoError(t, c.AddLine("p2", enum.SaleFormatUnit, 1))    // 400

	assert.Equal(t, int64(5000+2000+39000+400), c.ComputeTotals().TotalAmount)
}

func TestAddLine_InsufficientStockLeavesCartUnchanged(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 5})

	err := c.AddLine("p1", enum.SaleFormatUnit, 6)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Eggs AA", stockErr.ProductName)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 0, stockErr.Staged)
	assert.Empty(t, c.Lines())
}

func TestAddLine_StockGuardCountsAllFormatsOfProduct(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 70})

	// 2 cartons stage 60 units; 11 more loose units would exceed 70.
	require.NoError(t, c.AddLine("p1", enum.SaleFormatPackage, 2))
	err := c.AddLine("p1", enum.SaleFormatUnit, 11)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 60, stockErr.Staged)
	assert.Equal(t, 70, stockErr.Available)

	// The boundary addition still fits.
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))
	assert.Equal(t, int64(26000+5000), c.ComputeTotals().TotalAmount)
}

func TestAddLine_PackageWithoutDescriptor(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p2": 100})

	err := c.AddLine("p2", enum.SaleFormatPackage, 1)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, c.Lines())
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	for _, qty := range []int{0, -3} {
		err := c.AddLine("p1", enum.SaleFormatUnit, qty)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	}
	assert.Empty(t, c.Lines())
}

func TestAddLine_UnknownProduct(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	err := c.AddLine("missing", enum.SaleFormatUnit, 1)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRemoveLine(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatPackage, 1))

	label := c.Lines()[0].Label
	c.RemoveLine(label)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, enum.SaleFormatPackage, lines[0].Format)

	// Removing an absent label is a no-op.
	c.RemoveLine("no such line")
	assert.Len(t, c.Lines(), 1)
}

func TestRemoveLine_ClampsPaidAmountToShrunkTotal(t *testing.T) {
	gw := &mockGateway{}
	c := newLoadedComposer(t, gw, map[string]int{"p1": 100, "p2": 100})
	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10)) // 5000
	require.NoError(t, c.AddLine("p2", enum.SaleFormatUnit, 10)) // 4000
	require.NoError(t, c.SetAmountPaid(9000))

	c.RemoveLine(c.Lines()[0].Label)

	totals := c.ComputeTotals()
	assert.Equal(t, int64(4000), totals.TotalAmount)
	assert.Equal(t, int64(4000), totals.EffectivePaid)
	assert.Equal(t, int64(0), totals.AmountPending)

	// The submitted payload carries the clamped amount.
	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, gw.createRequests, 1)
	assert.Equal(t, int64(4000), gw.createRequests[0].AmountPaid)
}

func TestRemoveLine_KeepsPaidAmountWithinNewTotal(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100, "p2": 100})
	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10)) // 5000
	require.NoError(t, c.AddLine("p2", enum.SaleFormatUnit, 10)) // 4000
	require.NoError(t, c.SetAmountPaid(3000))

	c.RemoveLine(c.Lines()[0].Label)

	// A paid amount still within the new total is left alone.
	totals := c.ComputeTotals()
	assert.Equal(t, int64(3000), totals.EffectivePaid)
	assert.Equal(t, int64(1000), totals.AmountPending)
}

func TestSetSaleMode_WalkInForcesFullPayment(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10)) // 5000

	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))
	require.NoError(t, c.SetAmountPaid(2000))
	require.NoError(t, c.SetSaleMode(enum.SaleModeWalkIn))

	totals := c.ComputeTotals()
	assert.Equal(t, int64(5000), totals.EffectivePaid)
	assert.Equal(t, int64(0), totals.AmountPending)
	assert.Equal(t, "c0", c.CustomerID())
	// The cart survives the mode switch.
	assert.Len(t, c.Lines(), 1)
}

func TestSetSaleMode_CreditResetsPaidAndPicksNonWalkIn(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))

	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))

	totals := c.ComputeTotals()
	assert.Equal(t, int64(0), totals.EffectivePaid)
	assert.Equal(t, int64(5000), totals.AmountPending)
	assert.NotEqual(t, c.WalkInID(), c.CustomerID())
	assert.Equal(t, "c1", c.CustomerID())
}

func TestSetAmountPaid_Bounds(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10)) // total 5000
	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))

	assert.Error(t, c.SetAmountPaid(-1))
	assert.Error(t, c.SetAmountPaid(5001))
	assert.NoError(t, c.SetAmountPaid(0))
	assert.NoError(t, c.SetAmountPaid(5000))
}

func TestSetCustomer(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	// Fixed while in walk-in mode.
	assert.Error(t, c.SetCustomer("c2"))

	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))
	require.NoError(t, c.SetCustomer("c2"))
	assert.Equal(t, "c2", c.CustomerID())

	// The walk-in record cannot carry debt.
	assert.Error(t, c.SetCustomer("c0"))
	assert.Error(t, c.SetCustomer("unknown"))
}

func TestSubmit_WalkInPayloadAndReset(t *testing.T) {
	gw := &mockGateway{
		inventory: []entity.InventoryItem{
			{ID: "inv-p1", Product: &entity.ProductRef{ID: "p1"}, CurrentStock: 30},
		},
	}
	c := newLoadedComposer(t, gw, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatPackage, 2))

	sale, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sale)

	require.Len(t, gw.createRequests, 1)
	req := gw.createRequests[0]
	assert.Equal(t, "c0", req.CustomerID)
	assert.Equal(t, int64(31000), req.AmountPaid)
	assert.Equal(t, "Efectivo", req.PaymentMethod)
	require.Len(t, req.Items, 2)
	assert.Equal(t, entity.SaleItem{ProductID: "p1", ProductName: "Eggs AA", Quantity: 10, LineTotal: 5000}, req.Items[0])
	assert.Equal(t, entity.SaleItem{ProductID: "p1", ProductName: "Eggs AA", Quantity: 60, LineTotal: 26000}, req.Items[1])
	assert.NotEmpty(t, gw.createKeys[0])

	// Success resets the cart and re-fetches the inventory snapshot.
	assert.Empty(t, c.Lines())
	assert.Equal(t, "c0", c.CustomerID())
	assert.Equal(t, 1, gw.listInvCalls)
	assert.Equal(t, 30, c.CachedStock("p1"))
}

func TestSubmit_CreditCarriesPendingAmount(t *testing.T) {
	gw := &mockGateway{}
	c := newLoadedComposer(t, gw, map[string]int{"p1": 100})
	require.NoError(t, c.SetSaleMode(enum.SaleModeCredit))
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10)) // 5000
	require.NoError(t, c.SetAmountPaid(1000))
	require.NoError(t, c.SetPaymentMethod(enum.PaymentMethodNequi))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	req := gw.createRequests[0]
	assert.Equal(t, "c1", req.CustomerID)
	assert.Equal(t, int64(1000), req.AmountPaid)
	assert.Equal(t, "Nequi", req.PaymentMethod)
}

func TestSubmit_EmptyCart(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})

	_, err := c.Submit(context.Background())

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestSubmit_FailurePreservesStateAndIdempotencyKey(t *testing.T) {
	gw := &mockGateway{
		createErr: errors.New("backend down"),
		inventory: []entity.InventoryItem{
			{ID: "inv-p1", Product: &entity.ProductRef{ID: "p1"}, CurrentStock: 100},
		},
	}
	c := newLoadedComposer(t, gw, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	// Cart preserved for retry, inventory untouched.
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, 0, gw.listInvCalls)

	// A retry of the same composed sale reuses the idempotency key.
	gw.createErr = nil
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, gw.createKeys, 2)
	assert.Equal(t, gw.createKeys[0], gw.createKeys[1])

	// The next sale gets a fresh key.
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 1))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, gw.createKeys[1], gw.createKeys[2])
}

func TestPrepareSubmission_LeavesCartUntouched(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))

	req, key, err := c.PrepareSubmission()
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.NotEmpty(t, key)
	assert.Equal(t, int64(5000), req.AmountPaid)

	// Only the completion step resets state, so the cart survives while
	// the request is in flight and a failed attempt can retry as-is.
	assert.Len(t, c.Lines(), 1)
	assert.Equal(t, int64(5000), c.ComputeTotals().TotalAmount)

	// A second prepare before completion reuses the same key.
	_, again, err := c.PrepareSubmission()
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestCompleteSubmission_ResetsAndInstallsInventory(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))
	_, firstKey, err := c.PrepareSubmission()
	require.NoError(t, err)

	c.CompleteSubmission([]entity.InventoryItem{
		{ID: "inv-p1", Product: &entity.ProductRef{ID: "p1"}, CurrentStock: 90},
	})

	assert.Empty(t, c.Lines())
	assert.Equal(t, 90, c.CachedStock("p1"))

	// The next sale gets a fresh idempotency key.
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 1))
	_, nextKey, err := c.PrepareSubmission()
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, nextKey)
}

func TestCompleteSubmission_NilInventoryKeepsStaleSnapshot(t *testing.T) {
	c := newLoadedComposer(t, &mockGateway{}, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))

	c.CompleteSubmission(nil)

	assert.Empty(t, c.Lines())
	assert.Equal(t, 100, c.CachedStock("p1"))
}

func TestSubmit_InventoryRefreshFailureIsNonFatal(t *testing.T) {
	gw := &mockGateway{inventoryErr: errors.New("unavailable")}
	c := newLoadedComposer(t, gw, map[string]int{"p1": 100})
	require.NoError(t, c.AddLine("p1", enum.SaleFormatUnit, 10))

	_, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Empty(t, c.Lines())
	// Stale snapshot kept.
	assert.Equal(t, 100, c.CachedStock("p1"))
}
