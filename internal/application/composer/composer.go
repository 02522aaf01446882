// Package composer implements the sale-composition workflow: it accumulates
// validated line items against cached catalog and inventory snapshots,
// derives totals, and submits one atomic sale to the backend.
package composer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/domain/enum"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
)

// Gateway is the slice of the backend API the composer needs.
type Gateway interface {
	CreateSale(ctx context.Context, req *api.CreateSaleRequest, idempotencyKey string) (*entity.Sale, error)
	ListInventory(ctx context.Context) ([]entity.InventoryItem, error)
}

// ValidationError is a local, synchronous rejection of a requested mutation.
// It blocks that mutation only; prior state is left intact.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InsufficientStockError rejects a line addition that would commit more
// units than the cached snapshot holds for the product.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Staged      int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %d available, %d already in cart, %d requested",
		e.ProductName, e.Available, e.Staged, e.Requested)
}

// CartLine is one aggregated (product, format) entry of the pending sale.
// Quantity is in base units; LineTotal in integer currency.
type CartLine struct {
	Label       string
	ProductID   string
	ProductName string
	Format      enum.SaleFormat
	Quantity    int
	LineTotal   int64
}

// Totals is the derived money breakdown of the pending sale. It is computed
// on demand from the cart and mode, never stored.
type Totals struct {
	TotalAmount   int64
	EffectivePaid int64
	AmountPending int64
}

// Snapshot bundles the three loads the composer works against.
type Snapshot struct {
	Products  []entity.Product
	Customers []entity.Customer
	Inventory []entity.InventoryItem
}

// Composer owns the full state of one sale-composition session: snapshots,
// cart, mode, customer and payment selection. It is not safe for concurrent
// use; the UI event loop drives it sequentially.
type Composer struct {
	gateway     Gateway
	log         *logrus.Logger
	walkInLabel string

	products  map[string]entity.Product
	customers []entity.Customer
	stock     map[string]int
	walkInID  string

	mode          enum.SaleMode
	customerID    string
	paymentMethod enum.PaymentMethod
	amountPaid    int64
	lines         []CartLine

	// idempotencyKey is stable across retries of the same composed sale
	// and rotated only after a successful submission.
	idempotencyKey string
}

// New creates a composer. Load must be called before any cart operation.
func New(gateway Gateway, log *logrus.Logger, walkInLabel string, defaultMethod enum.PaymentMethod) *Composer {
	return &Composer{
		gateway:       gateway,
		log:           log,
		walkInLabel:   walkInLabel,
		products:      make(map[string]entity.Product),
		stock:         make(map[string]int),
		mode:          enum.SaleModeWalkIn,
		paymentMethod: defaultMethod,
	}
}

// Load installs the catalog, customer and inventory snapshots and resolves
// the walk-in customer. It returns false when the directory holds no
// customer matching the reserved walk-in label; the console surfaces that
// as a warning and the composer starts in credit mode instead.
func (c *Composer) Load(snap Snapshot) bool {
	c.products = make(map[string]entity.Product, len(snap.Products))
	for _, p := range snap.Products {
		c.products[p.ID] = p
	}

	c.customers = snap.Customers
	c.walkInID = ""
	for _, cust := range snap.Customers {
		if cust.IsWalkIn(c.walkInLabel) {
			c.walkInID = cust.ID
			break
		}
	}

	c.stock = make(map[string]int, len(snap.Inventory))
	for _, item := range snap.Inventory {
		if item.Product != nil {
			c.stock[item.Product.ID] = item.CurrentStock
		}
	}

	if c.walkInID != "" {
		c.SetSaleMode(enum.SaleModeWalkIn)
		return true
	}
	c.log.WithField("label", c.walkInLabel).Warn("walk-in customer not found in directory")
	c.SetSaleMode(enum.SaleModeCredit)
	return false
}

// SetSaleMode switches between walk-in and credit. Switching to walk-in
// forces the customer to the walk-in record and discards any operator-
// entered paid amount (it is recomputed as the full total); switching to
// credit defaults to the first non-walk-in customer and resets the paid
// amount to zero. The cart is kept either way.
func (c *Composer) SetSaleMode(mode enum.SaleMode) error {
	if !mode.IsValid() {
		return &ValidationError{Reason: fmt.Sprintf("invalid sale mode %q", mode)}
	}

	c.mode = mode
	c.amountPaid = 0

	switch mode {
	case enum.SaleModeWalkIn:
		c.customerID = c.walkInID
	case enum.SaleModeCredit:
		c.customerID = ""
		for _, cust := range c.customers {
			if cust.ID != c.walkInID {
				c.customerID = cust.ID
				break
			}
		}
	}
	return nil
}

// AddLine validates and stages formatQuantity of the product in the given
// format. A line for the same product and format is merged; a rejection
// leaves the cart untouched.
func (c *Composer) AddLine(productID string, format enum.SaleFormat, formatQuantity int) error {
	if formatQuantity <= 0 {
		return &ValidationError{Reason: "quantity must be a positive integer"}
	}
	if !format.IsValid() {
		return &ValidationError{Reason: fmt.Sprintf("invalid sale format %q", format)}
	}

	product, ok := c.products[productID]
	if !ok {
		return &ValidationError{Reason: "product not found in catalog"}
	}

	var unitsToAdd int
	var lineAmount int64
	switch format {
	case enum.SaleFormatUnit:
		unitsToAdd = formatQuantity
		lineAmount = int64(formatQuantity) * product.UnitPrice
	case enum.SaleFormatPackage:
		if !product.HasPackage() {
			return &ValidationError{Reason: fmt.Sprintf("product %q has no package pricing", product.Name)}
		}
		unitsToAdd = formatQuantity * product.PackageUnits
		lineAmount = int64(formatQuantity) * product.PackagePrice
	}

	// Units already committed by every open line of this product, across
	// formats, count against the cached stock.
	staged := 0
	for _, line := range c.lines {
		if line.ProductID == productID {
			staged += line.Quantity
		}
	}
	available := c.stock[productID]
	if unitsToAdd+staged > available {
		return &InsufficientStockError{
			ProductName: product.Name,
			Available:   available,
			Staged:      staged,
			Requested:   unitsToAdd,
		}
	}

	label := lineLabel(&product, format)
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Format == format {
			c.lines[i].Quantity += unitsToAdd
			c.lines[i].LineTotal += lineAmount
			return nil
		}
	}

	c.lines = append(c.lines, CartLine{
		Label:       label,
		ProductID:   productID,
		ProductName: product.Name,
		Format:      format,
		Quantity:    unitsToAdd,
		LineTotal:   lineAmount,
	})
	return nil
}

// RemoveLine removes the cart line with the given label; absent labels are
// a no-op.
// Shrinking the cart can leave a previously valid paid amount above the
// new total; it is clamped so paid stays within [0, total].
func (c *Composer) RemoveLine(label string) {
	for i, line := range c.lines {
		if line.Label == label {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			if total := c.totalAmount(); c.amountPaid > total {
				c.amountPaid = total
			}
			return
		}
	}
}

// SetCustomer selects the counterparty for a credit sale.
func (c *Composer) SetCustomer(customerID string) error {
	if c.mode == enum.SaleModeWalkIn {
		return &ValidationError{Reason: "customer is fixed to the walk-in record in walk-in mode"}
	}
	for _, cust := range c.customers {
		if cust.ID == customerID {
			if cust.ID == c.walkInID {
				return &ValidationError{Reason: "the walk-in customer cannot carry a credit sale"}
			}
			c.customerID = customerID
			return nil
		}
	}
	return &ValidationError{Reason: "customer not found in directory"}
}

// SetAmountPaid records the operator-entered paid amount for a credit sale.
func (c *Composer) SetAmountPaid(amount int64) error {
	if c.mode == enum.SaleModeWalkIn {
		return &ValidationError{Reason: "paid amount equals the total in walk-in mode"}
	}
	if amount < 0 {
		return &ValidationError{Reason: "paid amount cannot be negative"}
	}
	if total := c.totalAmount(); amount > total {
		return &ValidationError{Reason: "paid amount cannot exceed the sale total"}
	}
	c.amountPaid = amount
	return nil
}

// SetPaymentMethod selects the payment channel recorded with the sale.
func (c *Composer) SetPaymentMethod(method enum.PaymentMethod) error {
	if !method.IsValid() {
		return &ValidationError{Reason: fmt.Sprintf("invalid payment method %q", method)}
	}
	c.paymentMethod = method
	return nil
}

// ComputeTotals derives the money breakdown from the current cart and mode.
func (c *Composer) ComputeTotals() Totals {
	total := c.totalAmount()
	paid := c.amountPaid
	if c.mode == enum.SaleModeWalkIn {
		paid = total
	}
	return Totals{
		TotalAmount:   total,
		EffectivePaid: paid,
		AmountPending: total - paid,
	}
}

// PrepareSubmission validates the composed sale and builds the request
// payload plus the idempotency key to send it with. The key is generated
// lazily on the first call and kept until CompleteSubmission, so a failed
// attempt retries under the same key. The composer is otherwise unchanged,
// which makes the returned request safe to ship from a goroutine while the
// owner keeps reading composer state.
func (c *Composer) PrepareSubmission() (*api.CreateSaleRequest, string, error) {
	if len(c.lines) == 0 {
		return nil, "", &ValidationError{Reason: "the sale has no items"}
	}
	if c.mode == enum.SaleModeWalkIn && c.walkInID == "" {
		return nil, "", &ValidationError{Reason: "walk-in customer was not resolved at load time"}
	}
	if c.customerID == "" {
		return nil, "", &ValidationError{Reason: "no customer selected"}
	}

	totals := c.ComputeTotals()
	items := make([]entity.SaleItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
		})
	}

	if c.idempotencyKey == "" {
		c.idempotencyKey = uuid.New().String()
	}

	return &api.CreateSaleRequest{
		CustomerID:    c.customerID,
		AmountPaid:    totals.EffectivePaid,
		PaymentMethod: string(c.paymentMethod),
		Items:         items,
	}, c.idempotencyKey, nil
}

// CompleteSubmission applies a successful submission: the cart and form
// state reset to the current mode's defaults, the idempotency key rotates,
// and the stock snapshot is replaced when fresh inventory is provided. A
// nil inventory keeps the stale snapshot; the server remains the authority
// on stock at submission time. Must run on the composer's owning goroutine.
func (c *Composer) CompleteSubmission(inventory []entity.InventoryItem) {
	c.reset()
	if inventory == nil {
		return
	}
	c.stock = make(map[string]int, len(inventory))
	for _, item := range inventory {
		if item.Product != nil {
			c.stock[item.Product.ID] = item.CurrentStock
		}
	}
}

// Submit sends the composed sale synchronously. On success the cart and
// form state reset to the current mode's defaults and the inventory
// snapshot is re-fetched so subsequent stock checks use fresh figures. On
// failure all state is preserved so the operator can correct and retry.
func (c *Composer) Submit(ctx context.Context) (*entity.Sale, error) {
	req, key, err := c.PrepareSubmission()
	if err != nil {
		return nil, err
	}
	sale, err := c.gateway.CreateSale(ctx, req, key)
	if err != nil {
		return nil, err
	}
	inventory, err := c.gateway.ListInventory(ctx)
	if err != nil {
		c.log.WithError(err).Warn("could not refresh inventory snapshot")
		inventory = nil
	}
	c.CompleteSubmission(inventory)
	return sale, nil
}

// reset returns the composer to an empty cart with the current mode's
// default customer and a fresh idempotency key for the next sale.
func (c *Composer) reset() {
	c.lines = nil
	c.amountPaid = 0
	c.idempotencyKey = ""
	_ = c.SetSaleMode(c.mode)
}

func (c *Composer) totalAmount() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.LineTotal
	}
	return total
}

func lineLabel(p *entity.Product, format enum.SaleFormat) string {
	if format == enum.SaleFormatPackage {
		name := p.PackageName
		if name == "" {
			name = "Paquete"
		}
		return p.Name + " · " + name
	}
	return p.Name + " · Unidad"
}

// Lines returns a copy of the cart in insertion order.
func (c *Composer) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Mode returns the current sale mode.
func (c *Composer) Mode() enum.SaleMode { return c.mode }

// CustomerID returns the currently selected counterparty id.
func (c *Composer) CustomerID() string { return c.customerID }

// WalkInID returns the resolved walk-in customer id, empty if unresolved.
func (c *Composer) WalkInID() string { return c.walkInID }

// PaymentMethod returns the selected payment method.
func (c *Composer) PaymentMethod() enum.PaymentMethod { return c.paymentMethod }

// Customers returns the loaded customer snapshot.
func (c *Composer) Customers() []entity.Customer { return c.customers }

// Product looks up a product from the loaded catalog snapshot.
func (c *Composer) Product(id string) (entity.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// CachedStock returns the cached stock level for a product.
func (c *Composer) CachedStock(productID string) int { return c.stock[productID] }
