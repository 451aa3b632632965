package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rackwise/rackwise/internal/catalog/entity"
	"github.com/rackwise/rackwise/internal/catalog/repository"
)

type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

type CreateProjectInput struct {
	Code        string     `json:"code" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectInput struct {
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (s *ProjectService) Create(ctx context.Context, input *CreateProjectInput, createdBy string) (*entity.Project, error) {
	p := &entity.Project{
		ID:          uuid.New().String()[:32],
		Code:        input.Code,
		Name:        input.Name,
		Status:      "planning",
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, status string) ([]entity.Project, error) {
	return s.repo.List(ctx, status)
}

var validProjectStatus = map[string]bool{
	"planning": true, "active": true, "on_hold": true, "done": true,
}

func (s *ProjectService) Update(ctx context.Context, id string, input *UpdateProjectInput) (*entity.Project, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.Status != "" {
		if !validProjectStatus[input.Status] {
			return nil, fmt.Errorf("invalid status %q", input.Status)
		}
		p.Status = input.Status
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.StartDate != nil {
		p.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		p.EndDate = input.EndDate
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
