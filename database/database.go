package database

import (
	"context"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"gorm.io/gorm"
)

type ProjectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	// Update replaces the project and its owned lists. Owned records that are
	// no longer present are removed.
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

type ServiceOrderStore interface {
	FindAll(ctx context.Context) ([]*models.ServiceOrder, error)
	FindByID(ctx context.Context, id string) (*models.ServiceOrder, error)
	Add(ctx context.Context, order *models.ServiceOrder) error
}

type InventoryStore interface {
	FindAll(ctx context.Context) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id string) (*models.InventoryItem, error)
	// Seed inserts items whose ids are not stored yet.
	Seed(ctx context.Context, items []models.InventoryItem) error
}

type Database struct {
	db               *gorm.DB
	projectRepo      ProjectStore
	serviceOrderRepo ServiceOrderStore
	inventoryRepo    InventoryStore
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:               db,
		projectRepo:      NewProjectRepo(db),
		serviceOrderRepo: NewServiceOrderRepo(db),
		inventoryRepo:    NewInventoryRepo(db),
	}
}

// NewMemory returns a Database kept in process memory, with the default
// inventory catalog already loaded.
func NewMemory() Database {
	return Database{
		projectRepo:      NewMemoryProjectStore(),
		serviceOrderRepo: NewMemoryServiceOrderStore(),
		inventoryRepo:    NewMemoryInventoryStore(models.DefaultCatalog()),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() ProjectStore {
	return d.projectRepo
}

func (d Database) ServiceOrderRepo() ServiceOrderStore {
	return d.serviceOrderRepo
}

func (d Database) InventoryRepo() InventoryStore {
	return d.inventoryRepo
}

// Migrate brings the schema up to date and seeds the default catalog.
// It is a no-op for memory databases apart from seeding.
func (d Database) Migrate(ctx context.Context) error {
	if d.db != nil {
		if err := models.Migrate(d.db.WithContext(ctx)); err != nil {
			return errs.NewDatabaseError("migrate", "schema", err)
		}
	}
	return d.inventoryRepo.Seed(ctx, models.DefaultCatalog())
}
