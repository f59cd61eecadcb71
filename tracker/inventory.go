package tracker

import (
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// AddInventoryUsage records consumption of a catalog item. item is the
// catalog entry for draft.ItemID; its name is snapshotted onto the record.
func AddInventoryUsage(p *models.Project, draft models.InventoryUsage, item models.InventoryItem, today models.Date) (*models.Project, error) {
	if draft.ItemID == "" {
		return nil, errs.NewMissingRequiredFieldError("itemId")
	}
	if draft.Quantity < 1 {
		return nil, errs.NewInvalidFieldError("quantity", "must be at least 1")
	}
	if item.ID != draft.ItemID {
		return nil, errs.NewInvalidFieldError("itemId", "unknown inventory item "+draft.ItemID)
	}
	if draft.DateUsed.IsZero() {
		draft.DateUsed = today
	} else if !draft.DateUsed.Valid() {
		return nil, errs.NewInvalidFieldError("dateUsed", "must be a YYYY-MM-DD date")
	}

	ids := collectIDs(p.InventoryUsage, func(u models.InventoryUsage) string { return u.ID })

	next := p.Clone()
	next.InventoryUsage = append(next.InventoryUsage, models.InventoryUsage{
		ID:        scopedID(p.ID, kindInventory, nextSequence(p.ID, kindInventory, ids)),
		ProjectID: p.ID,
		ItemID:    draft.ItemID,
		ItemName:  item.Name,
		Quantity:  draft.Quantity,
		DateUsed:  draft.DateUsed,
		UsedBy:    draft.UsedBy,
	})
	return next, nil
}
