package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dparedesb/avicola-console/internal/application/composer"
	"github.com/dparedesb/avicola-console/internal/application/service"
	"github.com/dparedesb/avicola-console/internal/config"
	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/domain/enum"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
)

// View identifies the active screen.
type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewSale
	ViewAddLine
	ViewPickCustomer
	ViewAmountPaid
	ViewProducts
	ViewProductForm
	ViewCustomers
	ViewCustomerForm
	ViewInventory
	ViewStockForm
	ViewCorrectStock
	ViewHistory
	ViewPaymentForm
	ViewPortfolioPick
	ViewPortfolio
	ViewReportsMenu
	ViewDateRangeForm
	ViewDateRangeResult
	ViewDebtors
	ViewExportForm
	ViewExportResult
	ViewConfirmDelete
)

// Model is the root bubbletea model for the console.
type Model struct {
	cfg       *config.Config
	log       *logrus.Logger
	client    *api.Client
	snapshots *service.SnapshotService
	exports   *service.ExportService
	composer  *composer.Composer

	view     View
	prevView View

	loading    bool
	submitting bool
	status     string
	errText    string

	cursor int

	products  []entity.Product
	customers []entity.Customer
	inventory []entity.InventoryItem
	sales     []entity.Sale

	kpis          *entity.DashboardKPIs
	portfolio     *entity.TotalPortfolio
	alerts        []entity.InventoryAlert
	debtors       []entity.DebtorCustomer
	rangeReport   *entity.DateRangeReport
	custPortfolio *entity.CustomerPortfolio
	custSales     []entity.Sale
	exportPath    string
	exportPreview [][]string

	inputs     []textinput.Model
	focusIndex int
	formData   map[string]string
	spinner    spinner.Model

	selectedItem  string
	confirmAction string
	confirmMsg    string
}

// NewModel creates a new root model wired to the backend client.
func NewModel(cfg *config.Config, log *logrus.Logger, client *api.Client) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	return &Model{
		cfg:       cfg,
		log:       log,
		client:    client,
		snapshots: service.NewSnapshotService(client, log),
		exports:   service.NewExportService(client, cfg.Export),
		composer:  composer.New(client, log, cfg.Sales.WalkInCustomerName, enum.PaymentMethod(cfg.Sales.DefaultPaymentMethod)),
		view:      ViewMenu,
		formData:  map[string]string{},
		spinner:   sp,
	}
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadSnapshot(), m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotLoadedMsg:
		m.loading = false
		m.products = msg.snapshot.Products
		m.customers = msg.snapshot.Customers
		m.inventory = msg.snapshot.Inventory
		if !m.composer.Load(msg.snapshot) {
			m.errText = "Walk-in customer not found; credit sales only"
		}
		return m, nil

	case salesLoadedMsg:
		m.loading = false
		m.sales = msg.sales
		return m, nil

	case saleSubmittedMsg:
		m.loading = false
		m.submitting = false
		m.composer.CompleteSubmission(msg.inventory)
		m.errText = ""
		m.cursor = 0
		m.status = successStyle.Render("Sale registered: " + msg.sale.ID)
		return m, tea.Batch(m.loadSnapshot(), m.loadSales())

	case formSubmittedMsg:
		m.loading = false
		if msg.success {
			m.status = successStyle.Render(msg.message)
			m.errText = ""
			m.view = m.prevView
			return m, m.loadSnapshot()
		}
		m.errText = msg.message
		return m, nil

	case actionDoneMsg:
		m.loading = false
		m.status = successStyle.Render(msg.message)
		m.view = m.prevView
		return m, m.loadSnapshot()

	case dashboardLoadedMsg:
		m.loading = false
		m.kpis = msg.kpis
		m.portfolio = msg.portfolio
		m.alerts = msg.alerts
		return m, nil

	case portfolioLoadedMsg:
		m.loading = false
		m.custPortfolio = msg.portfolio
		m.custSales = msg.sales
		m.view = ViewPortfolio
		return m, nil

	case debtorsLoadedMsg:
		m.loading = false
		m.debtors = msg.debtors
		return m, nil

	case dateRangeLoadedMsg:
		m.loading = false
		m.rangeReport = msg.report
		m.view = ViewDateRangeResult
		return m, nil

	case exportDoneMsg:
		m.loading = false
		m.exportPath = msg.path
		m.exportPreview = msg.preview
		m.view = ViewExportResult
		return m, nil

	case errorMsg:
		m.loading = false
		m.submitting = false
		m.errText = msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.inFormView() {
		return m.handleFormKeys(msg)
	}

	switch key {
	case "esc":
		m.errText = ""
		m.status = ""
		m.cursor = 0
		switch m.view {
		case ViewMenu:
			return m, tea.Quit
		case ViewDateRangeResult, ViewDebtors, ViewExportResult:
			m.view = ViewReportsMenu
		case ViewPortfolio:
			m.view = ViewMenu
		default:
			m.view = ViewMenu
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.listLength()-1 {
			m.cursor++
		}
		return m, nil
	}

	switch m.view {
	case ViewMenu:
		return m.handleMenuKeys(key)
	case ViewSale:
		return m.handleSaleKeys(key)
	case ViewPickCustomer:
		return m.handlePickCustomerKeys(key)
	case ViewProducts:
		return m.handleProductKeys(key)
	case ViewCustomers:
		return m.handleCustomerKeys(key)
	case ViewInventory:
		return m.handleInventoryKeys(key)
	case ViewPortfolioPick:
		return m.handlePortfolioPickKeys(key)
	case ViewReportsMenu:
		return m.handleReportsKeys(key)
	case ViewConfirmDelete:
		return m.handleConfirmKeys(key)
	}

	return m, nil
}

// inFormView reports whether the active view captures text input.
func (m *Model) inFormView() bool {
	switch m.view {
	case ViewAddLine, ViewAmountPaid, ViewProductForm, ViewCustomerForm,
		ViewStockForm, ViewCorrectStock, ViewPaymentForm, ViewDateRangeForm,
		ViewExportForm:
		return true
	}
	return false
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.errText = ""
		m.view = m.prevView
		return m, nil

	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		m.refocusInputs()
		return m, nil

	case "shift+tab", "up":
		m.focusIndex--
		if m.focusIndex < 0 {
			m.focusIndex = len(m.inputs) - 1
		}
		m.refocusInputs()
		return m, nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) refocusInputs() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// submitForm dispatches the enter key of the active form view.
func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	m.loading = true
	switch m.view {
	case ViewAddLine:
		return m.submitAddLine()
	case ViewAmountPaid:
		return m.submitAmountPaid()
	case ViewProductForm:
		return m, m.submitProductForm()
	case ViewCustomerForm:
		return m, m.submitCustomerForm()
	case ViewStockForm:
		return m, m.submitStockForm()
	case ViewCorrectStock:
		return m, m.submitCorrectStock()
	case ViewPaymentForm:
		return m, m.submitPaymentForm()
	case ViewDateRangeForm:
		return m, m.submitDateRange()
	case ViewExportForm:
		return m, m.submitExport()
	}
	m.loading = false
	return m, nil
}

func (m *Model) handleConfirmKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		m.loading = true
		switch m.confirmAction {
		case "delete_product":
			return m, m.deleteProduct(m.selectedItem)
		case "delete_customer":
			return m, m.deleteCustomer(m.selectedItem)
		}
		m.loading = false
	case "n":
		m.view = m.prevView
	}
	return m, nil
}

// listLength returns the cursor bound for the active view.
func (m *Model) listLength() int {
	switch m.view {
	case ViewMenu:
		return len(menuEntries)
	case ViewSale:
		return len(m.composer.Lines())
	case ViewPickCustomer, ViewPortfolioPick:
		return len(m.customers)
	case ViewProducts:
		return len(m.products)
	case ViewCustomers:
		return len(m.customers)
	case ViewInventory:
		return len(m.inventory)
	case ViewHistory:
		return len(m.sales)
	case ViewReportsMenu:
		return len(reportEntries)
	case ViewDebtors:
		return len(m.debtors)
	}
	return 0
}

func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case ViewMenu:
		b.WriteString(m.renderMenu())
	case ViewDashboard:
		b.WriteString(m.renderDashboard())
	case ViewSale:
		b.WriteString(m.renderSale())
	case ViewAddLine:
		b.WriteString(m.renderAddLine())
	case ViewPickCustomer:
		b.WriteString(m.renderPickCustomer())
	case ViewAmountPaid:
		b.WriteString(m.renderAmountPaid())
	case ViewProducts:
		b.WriteString(m.renderProducts())
	case ViewProductForm:
		b.WriteString(m.renderProductForm())
	case ViewCustomers:
		b.WriteString(m.renderCustomers())
	case ViewCustomerForm:
		b.WriteString(m.renderCustomerForm())
	case ViewInventory:
		b.WriteString(m.renderInventory())
	case ViewStockForm:
		b.WriteString(m.renderStockForm())
	case ViewCorrectStock:
		b.WriteString(m.renderCorrectStock())
	case ViewHistory:
		b.WriteString(m.renderHistory())
	case ViewPaymentForm:
		b.WriteString(m.renderPaymentForm())
	case ViewPortfolioPick:
		b.WriteString(m.renderPortfolioPick())
	case ViewPortfolio:
		b.WriteString(m.renderPortfolio())
	case ViewReportsMenu:
		b.WriteString(m.renderReportsMenu())
	case ViewDateRangeForm:
		b.WriteString(m.renderDateRangeForm())
	case ViewDateRangeResult:
		b.WriteString(m.renderDateRangeResult())
	case ViewDebtors:
		b.WriteString(m.renderDebtors())
	case ViewExportForm:
		b.WriteString(m.renderExportForm())
	case ViewExportResult:
		b.WriteString(m.renderExportResult())
	case ViewConfirmDelete:
		b.WriteString(m.renderConfirmDelete())
	}

	if m.loading {
		b.WriteString("\n  " + m.spinner.View() + helpStyle.Render("Loading..."))
	}
	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.errText))
	}
	if m.status != "" {
		b.WriteString("\n  " + m.status)
	}

	return b.String() + "\n"
}
