package repository

import (
	"context"
	"errors"

	"github.com/rackwise/rackwise/internal/catalog/entity"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var p entity.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns projects newest-first, optionally filtered by status.
func (r *ProjectRepository) List(ctx context.Context, status string) ([]entity.Project, error) {
	var projects []entity.Project
	query := r.db.WithContext(ctx).Model(&entity.Project{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Project{}, "id = ?", id).Error
}
