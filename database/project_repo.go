package database

import (
	"context"

	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func (r *ProjectRepo) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("InventoryUsage", func(db *gorm.DB) *gorm.DB { return db.Order("date_used, id") }).
		Preload("Risks", func(db *gorm.DB) *gorm.DB { return db.Order("identified_date, id") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Users")
}

// FindAll returns all projects with their owned lists
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.withChildren(ctx).Order("name").Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	if err := r.withChildren(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return &project, nil
}

// Add inserts a new project and everything it owns
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	bindChildren(project)
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return errs.NewDatabaseError("create", "project", err)
	}
	return nil
}

// Update saves the project header and reconciles its owned lists in one transaction
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	bindChildren(project)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.Select("id").First(&existing, "id = ?", project.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return err
		}

		if err := replaceChildren(tx, project.ID, project.Milestones); err != nil {
			return err
		}
		if err := replaceChildren(tx, project.ID, project.InventoryUsage); err != nil {
			return err
		}
		if err := replaceChildren(tx, project.ID, project.Risks); err != nil {
			return err
		}
		if err := replaceChildren(tx, project.ID, project.Tasks); err != nil {
			return err
		}
		return tx.Model(project).Association("Users").Replace(project.Users)
	})
	if err != nil {
		return errs.NewDatabaseError("update", "project", err)
	}
	return nil
}

// Delete removes a project and its owned records by id
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Project{ID: id})
	if tx.Error != nil {
		return errs.NewDatabaseError("delete", "project", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

type projectChild interface {
	models.Milestone | models.InventoryUsage | models.Risk | models.Task
}

// replaceChildren deletes rows of the project that are not in rows and upserts the rest.
func replaceChildren[T projectChild](tx *gorm.DB, projectID string, rows []T) error {
	keep := make([]string, 0, len(rows))
	for i := range rows {
		keep = append(keep, childID(&rows[i]))
	}

	q := tx.Where("project_id = ?", projectID)
	if len(keep) > 0 {
		q = q.Where("id NOT IN ?", keep)
	}
	var model T
	if err := q.Delete(&model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Save(&rows).Error
}

func childID(row any) string {
	switch v := row.(type) {
	case *models.Milestone:
		return v.ID
	case *models.InventoryUsage:
		return v.ID
	case *models.Risk:
		return v.ID
	case *models.Task:
		return v.ID
	}
	return ""
}

// bindChildren points owned records at their project and fixes milestone order.
func bindChildren(p *models.Project) {
	for i := range p.Milestones {
		p.Milestones[i].ProjectID = p.ID
		p.Milestones[i].Position = i
	}
	for i := range p.InventoryUsage {
		p.InventoryUsage[i].ProjectID = p.ID
	}
	for i := range p.Risks {
		p.Risks[i].ProjectID = p.ID
	}
	for i := range p.Tasks {
		p.Tasks[i].ProjectID = p.ID
	}
}
