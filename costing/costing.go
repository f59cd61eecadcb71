// Package costing prices service orders: parts at selling and buying price,
// labor, and the invoice, profit and margin that follow from them.
package costing

import (
	"strings"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// UnknownItemName labels selected parts missing from the catalog.
const UnknownItemName = "Unknown Item"

// PricedPart is a selected part joined with its catalog entry.
type PricedPart struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Specifications string  `json:"specifications,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitCost       float64 `json:"unitCost"`
	BuyingPrice    float64 `json:"buyingPrice"`
}

// Inputs are the money-relevant fields of a service order.
type Inputs struct {
	Parts          []PricedPart
	EstimatedHours float64
	LaborRate      float64
	TravelCost     float64
	OtherCosts     float64
	OverheadCosts  float64
}

// Compute derives the cost summary. Margin is 0 when the invoice is not positive.
func Compute(in Inputs) models.CostSummary {
	var s models.CostSummary
	for _, p := range in.Parts {
		q := float64(p.Quantity)
		s.PartsRevenue += q * p.UnitCost
		s.PartsCost += q * p.BuyingPrice
	}
	s.LaborCost = in.EstimatedHours * in.LaborRate

	extras := in.TravelCost + in.OtherCosts + in.OverheadCosts
	s.TotalCost = s.PartsCost + s.LaborCost + extras
	s.EstimatedInvoice = s.PartsRevenue + s.LaborCost + extras
	s.EstimatedProfit = s.EstimatedInvoice - s.TotalCost
	if s.EstimatedInvoice > 0 {
		s.EstimatedMargin = s.EstimatedProfit / s.EstimatedInvoice
	}
	return s
}

// ResolveParts joins selections with the catalog. Parts missing from the
// catalog are priced at zero and named UnknownItemName.
func ResolveParts(parts []models.OrderPart, catalog []models.InventoryItem) []PricedPart {
	index := make(map[string]models.InventoryItem, len(catalog))
	for _, item := range catalog {
		index[item.ID] = item
	}

	out := make([]PricedPart, 0, len(parts))
	for _, part := range parts {
		item, ok := index[part.ID]
		if !ok {
			out = append(out, PricedPart{ID: part.ID, Name: UnknownItemName, Category: "Unknown Category", Quantity: part.Quantity})
			continue
		}
		out = append(out, PricedPart{
			ID:             part.ID,
			Name:           item.Name,
			Category:       item.Category,
			Specifications: item.Specifications,
			Quantity:       part.Quantity,
			UnitCost:       item.UnitCost,
			BuyingPrice:    item.BuyingPrice,
		})
	}
	return out
}

// InputsFor collects the costing inputs of order against catalog.
func InputsFor(order *models.ServiceOrder, catalog []models.InventoryItem) Inputs {
	return Inputs{
		Parts:          ResolveParts(order.SelectedParts, catalog),
		EstimatedHours: order.EstimatedHours,
		LaborRate:      order.LaborRate,
		TravelCost:     order.TravelCost,
		OtherCosts:     order.OtherCosts,
		OverheadCosts:  order.OverheadCosts,
	}
}

// Estimate is Compute over the order's own fields.
func Estimate(order *models.ServiceOrder, catalog []models.InventoryItem) models.CostSummary {
	return Compute(InputsFor(order, catalog))
}

// ValidateOrder checks the fields required before an order can be submitted.
func ValidateOrder(order *models.ServiceOrder) error {
	required := []struct {
		field, value string
	}{
		{"title", order.Title},
		{"siteId", order.SiteID},
		{"type", order.Type},
		{"technicianId", order.TechnicianID},
		{"issuerId", order.IssuerID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errs.NewMissingRequiredFieldError(r.field)
		}
	}

	if !order.ScheduledDate.IsZero() && !order.ScheduledDate.Valid() {
		return errs.NewInvalidFieldError("scheduledDate", "must be a YYYY-MM-DD date")
	}
	amounts := []struct {
		field string
		value float64
	}{
		{"estimatedHours", order.EstimatedHours},
		{"laborRate", order.LaborRate},
		{"travelCost", order.TravelCost},
		{"otherCosts", order.OtherCosts},
		{"overheadCosts", order.OverheadCosts},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return errs.NewInvalidFieldError(a.field, "must not be negative")
		}
	}
	for _, p := range order.SelectedParts {
		if p.Quantity < 1 {
			return errs.NewInvalidFieldError("selectedParts", "quantity of "+p.ID+" must be at least 1")
		}
	}
	return nil
}
