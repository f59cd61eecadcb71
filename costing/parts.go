package costing

import (
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// AddPart selects one more unit of id. A part already selected has its
// quantity incremented instead of being listed twice.
func AddPart(parts []models.OrderPart, id string) []models.OrderPart {
	out := append([]models.OrderPart(nil), parts...)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity++
			return out
		}
	}
	return append(out, models.OrderPart{ID: id, Quantity: 1})
}

func RemovePart(parts []models.OrderPart, id string) []models.OrderPart {
	out := make([]models.OrderPart, 0, len(parts))
	for _, p := range parts {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// SetPartQuantity overwrites the quantity of a selected part.
func SetPartQuantity(parts []models.OrderPart, id string, quantity int) ([]models.OrderPart, error) {
	if quantity < 1 {
		return nil, errs.NewInvalidFieldError("quantity", "must be at least 1")
	}
	out := append([]models.OrderPart(nil), parts...)
	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
			return out, nil
		}
	}
	return nil, errs.NewNotFound("part")
}
