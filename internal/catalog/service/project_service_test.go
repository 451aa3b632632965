package service

import (
	"context"
	"testing"

	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/catalog/testutil"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	repos := repository.NewRepositories(testutil.SetupTestDB(t))
	return NewProjectService(repos.Project)
}

func TestProjectLifecycle(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectInput{
		Code: "DC-REFRESH-26",
		Name: "Datacenter refresh 2026",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != "planning" {
		t.Errorf("new project status = %q, want planning", p.Status)
	}
	if p.CreatedBy != "user-1" {
		t.Errorf("created_by = %q", p.CreatedBy)
	}

	updated, err := svc.Update(ctx, p.ID, &UpdateProjectInput{Status: "active"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "active" {
		t.Errorf("status = %q, want active", updated.Status)
	}

	if _, err := svc.Update(ctx, p.ID, &UpdateProjectInput{Status: "cancelled"}); err == nil {
		t.Error("invalid status must be rejected")
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); err == nil {
		t.Error("deleted project still loadable")
	}
}

func TestProjectUpdatePartialFields(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateProjectInput{
		Code:        "P-77",
		Name:        "Original name",
		Description: "original",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, p.ID, &UpdateProjectInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Description != "original" {
		t.Errorf("description clobbered: %q", updated.Description)
	}
	if updated.Status != "planning" {
		t.Errorf("status clobbered: %q", updated.Status)
	}
}
