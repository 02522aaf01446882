package entity

// DashboardKPIs are the headline figures the reports service computes for
// the dashboard.
type DashboardKPIs struct {
	TotalSalesToday  int64 `json:"totalSalesToday"`
	TotalIncomeToday int64 `json:"totalIncomeToday"`
	TotalIncomeMonth int64 `json:"totalIncomeMonth"`
}

// TotalPortfolio is the aggregate outstanding debt across all customers.
type TotalPortfolio struct {
	TotalPortfolio int64 `json:"totalPortfolio"`
}

// InventoryAlert flags a product whose stock fell below its threshold.
type InventoryAlert struct {
	ProductName string `json:"productName"`
	Stock       int    `json:"stock"`
}

// CustomerPortfolio is the account balance of a single customer.
type CustomerPortfolio struct {
	TotalBilled int64 `json:"totalBilled"`
	TotalPaid   int64 `json:"totalPaid"`
	Balance     int64 `json:"balance"`
}

// DebtorCustomer is one row of the debtor customers report.
type DebtorCustomer struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Balance    int64  `json:"balance"`
}

// ProductUnits aggregates units sold per product over a date range. The
// backend keys the aggregation by product name.
type ProductUnits struct {
	ProductName string `json:"_id"`
	TotalUnits  int    `json:"totalUnits"`
}

// DateRangeReport summarizes sales between two dates.
type DateRangeReport struct {
	TotalSold          int64          `json:"totalSold"`
	TotalIncome        int64          `json:"totalIncome"`
	UnitsSoldByProduct []ProductUnits `json:"unitsSoldByProduct"`
}
