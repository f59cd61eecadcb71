package database

import (
	"context"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) *InventoryRepo {
	return &InventoryRepo{db}
}

func (r *InventoryRepo) FindAll(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "inventory items", err)
	}
	return items, nil
}

func (r *InventoryRepo) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "inventory item", err)
	}
	return &item, nil
}

func (r *InventoryRepo) Seed(ctx context.Context, items []models.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&items).Error
	if err != nil {
		return errs.NewDatabaseError("seed", "inventory items", err)
	}
	return nil
}
