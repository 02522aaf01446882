package enum

// SaleMode distinguishes anonymous counter sales from credit sales to a
// named customer.
type SaleMode string

const (
	SaleModeWalkIn SaleMode = "walkin"
	SaleModeCredit SaleMode = "credit"
)

// IsValid checks if the sale mode is valid
func (m SaleMode) IsValid() bool {
	return m == SaleModeWalkIn || m == SaleModeCredit
}

// SaleFormat is the unit in which a cart line is entered: loose base units
// or whole packages priced by the product's package descriptor.
type SaleFormat string

const (
	SaleFormatUnit    SaleFormat = "unit"
	SaleFormatPackage SaleFormat = "package"
)

// IsValid checks if the sale format is valid
func (f SaleFormat) IsValid() bool {
	return f == SaleFormatUnit || f == SaleFormatPackage
}
