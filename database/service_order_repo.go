package database

import (
	"context"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"gorm.io/gorm"
)

type ServiceOrderRepo struct {
	db *gorm.DB
}

func NewServiceOrderRepo(db *gorm.DB) *ServiceOrderRepo {
	return &ServiceOrderRepo{db}
}

// FindAll returns service orders, newest first
func (r *ServiceOrderRepo) FindAll(ctx context.Context) ([]*models.ServiceOrder, error) {
	var orders []*models.ServiceOrder
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "service orders", err)
	}
	return orders, nil
}

func (r *ServiceOrderRepo) FindByID(ctx context.Context, id string) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "service order", err)
	}
	return &order, nil
}

func (r *ServiceOrderRepo) Add(ctx context.Context, order *models.ServiceOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return errs.NewDatabaseError("create", "service order", err)
	}
	return nil
}
