package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dparedesb/avicola-console/internal/domain/entity"
	"github.com/dparedesb/avicola-console/internal/infrastructure/api"
	"github.com/dparedesb/avicola-console/pkg/money"
)

func (m *Model) renderProducts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Products ") + "\n\n")

	if len(m.products) == 0 {
		b.WriteString(helpStyle.Render("  No products") + "\n")
	}
	for i, p := range m.products {
		cursor := "  "
		text := fmt.Sprintf("%-25s %s/unit", p.Name, money.Format(p.UnitPrice))
		if p.HasPackage() {
			text += fmt.Sprintf("  ·  %s x%d %s", p.PackageName, p.PackageUnits, money.Format(p.PackagePrice))
		}
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			text = selectedStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, text))
	}

	b.WriteString("\n" + helpStyle.Render("  n new · e edit · d delete · esc back"))
	return boxStyle.Render(b.String())
}

func (m *Model) handleProductKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		m.prevView = ViewProducts
		m.initProductForm(nil)
		m.view = ViewProductForm

	case "e":
		if m.cursor < len(m.products) {
			m.prevView = ViewProducts
			m.initProductForm(&m.products[m.cursor])
			m.view = ViewProductForm
		}

	case "d":
		if m.cursor < len(m.products) {
			p := m.products[m.cursor]
			m.selectedItem = p.ID
			m.confirmAction = "delete_product"
			m.confirmMsg = fmt.Sprintf("Delete product %s?", p.Name)
			m.prevView = ViewProducts
			m.view = ViewConfirmDelete
		}
	}
	return m, nil
}

// initProductForm prepares the create or edit form. A nil product means create.
func (m *Model) initProductForm(p *entity.Product) {
	m.inputs = make([]textinput.Model, 6)

	placeholders := []string{
		"Name",
		"Description (optional)",
		"Unit price",
		"Package name (optional)",
		"Units per package (optional)",
		"Package price (optional)",
	}
	for i, ph := range placeholders {
		m.inputs[i] = textinput.New()
		m.inputs[i].Placeholder = ph
	}
	m.inputs[0].Focus()
	m.focusIndex = 0

	m.formData["product_id"] = ""
	if p != nil {
		m.formData["product_id"] = p.ID
		m.inputs[0].SetValue(p.Name)
		m.inputs[1].SetValue(p.Description)
		m.inputs[2].SetValue(strconv.FormatInt(p.UnitPrice, 10))
		if p.HasPackage() {
			m.inputs[3].SetValue(p.PackageName)
			m.inputs[4].SetValue(strconv.Itoa(p.PackageUnits))
			m.inputs[5].SetValue(strconv.FormatInt(p.PackagePrice, 10))
		}
	}
}

func (m *Model) renderProductForm() string {
	var b strings.Builder
	title := " Create Product "
	if m.formData["product_id"] != "" {
		title = " Edit Product "
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	labels := []string{"Name:", "Description:", "Unit price:", "Package name:", "Units per package:", "Package price:"}
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("  %s\n", labels[i]))
		b.WriteString(fmt.Sprintf("  %s\n\n", input.View()))
	}

	return boxStyle.Render(b.String())
}

// submitProductForm creates or updates a product.
func (m *Model) submitProductForm() tea.Cmd {
	client := m.client
	id := m.formData["product_id"]

	name := strings.TrimSpace(m.inputs[0].Value())
	description := strings.TrimSpace(m.inputs[1].Value())
	unitPriceStr := strings.TrimSpace(m.inputs[2].Value())
	packageName := strings.TrimSpace(m.inputs[3].Value())
	packageUnitsStr := strings.TrimSpace(m.inputs[4].Value())
	packagePriceStr := strings.TrimSpace(m.inputs[5].Value())

	return func() tea.Msg {
		if name == "" {
			return formSubmittedMsg{false, "Product name is required"}
		}
		unitPrice, err := strconv.ParseInt(unitPriceStr, 10, 64)
		if err != nil || unitPrice < 0 {
			return formSubmittedMsg{false, "Invalid unit price"}
		}

		input := &api.ProductInput{
			Name:        name,
			Description: description,
			UnitPrice:   unitPrice,
		}
		if packageName != "" {
			units, err := strconv.Atoi(packageUnitsStr)
			if err != nil || units <= 0 {
				return formSubmittedMsg{false, "Invalid units per package"}
			}
			price, err := strconv.ParseInt(packagePriceStr, 10, 64)
			if err != nil || price < 0 {
				return formSubmittedMsg{false, "Invalid package price"}
			}
			input.PackageName = packageName
			input.PackageUnits = units
			input.PackagePrice = price
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if id == "" {
			created, err := client.CreateProduct(ctx, input)
			if err != nil {
				return formSubmittedMsg{false, err.Error()}
			}
			return formSubmittedMsg{true, fmt.Sprintf("Product created: %s", created.Name)}
		}

		updated, err := client.UpdateProduct(ctx, id, input)
		if err != nil {
			return formSubmittedMsg{false, err.Error()}
		}
		return formSubmittedMsg{true, fmt.Sprintf("Product updated: %s", updated.Name)}
	}
}

// deleteProduct removes a product from the catalog.
func (m *Model) deleteProduct(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteProduct(ctx, id); err != nil {
			return errorMsg{err}
		}
		return actionDoneMsg{"Product deleted"}
	}
}

func (m *Model) renderConfirmDelete() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Confirm ") + "\n\n")
	b.WriteString(warningStyle.Render("  "+m.confirmMsg) + "\n\n")
	b.WriteString(helpStyle.Render("  y confirm · n cancel"))
	return boxStyle.Render(b.String())
}
