package entity

// Product represents a sellable item from the catalog service. Prices are
// integer currency (COP, no decimals).
type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`

	// Optional package pricing. The descriptor is considered present only
	// when PackageUnits is positive and PackagePrice is non-negative.
	PackageName  string `json:"packageName,omitempty"`
	PackageUnits int    `json:"packageUnits,omitempty"`
	PackagePrice int64  `json:"packagePrice,omitempty"`
}

// HasPackage reports whether the product carries a valid package descriptor.
func (p *Product) HasPackage() bool {
	return p.PackageUnits > 0 && p.PackagePrice >= 0
}
