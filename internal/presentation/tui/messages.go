package tui

import (
	"github.com/dparedesb/avicola-console/internal/application/composer"
	"github.com/dparedesb/avicola-console/internal/domain/entity"
)

type errorMsg struct {
	err error
}

type snapshotLoadedMsg struct {
	snapshot composer.Snapshot
}

type salesLoadedMsg struct {
	sales []entity.Sale
}

// saleSubmittedMsg reports a sale the backend accepted, together with the
// inventory fetched right after it. A nil inventory means the refresh
// failed and the composer keeps its previous snapshot.
type saleSubmittedMsg struct {
	sale      *entity.Sale
	inventory []entity.InventoryItem
}

type formSubmittedMsg struct {
	success bool
	message string
}

type actionDoneMsg struct {
	message string
}

type dashboardLoadedMsg struct {
	kpis      *entity.DashboardKPIs
	portfolio *entity.TotalPortfolio
	alerts    []entity.InventoryAlert
}

type portfolioLoadedMsg struct {
	portfolio *entity.CustomerPortfolio
	sales     []entity.Sale
}

type debtorsLoadedMsg struct {
	debtors []entity.DebtorCustomer
}

type dateRangeLoadedMsg struct {
	report *entity.DateRangeReport
}

type exportDoneMsg struct {
	path    string
	preview [][]string
}
