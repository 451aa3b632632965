package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rackwise/rackwise/internal/catalog/entity"
	"github.com/rackwise/rackwise/internal/catalog/testutil"
)

func seedProject(t *testing.T, repo *ProjectRepository, code, name, status string) *entity.Project {
	t.Helper()
	p := &entity.Project{
		ID:        newID(),
		Code:      code,
		Name:      name,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func TestProjectCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	p := seedProject(t, repo, "DC-REFRESH-26", "Datacenter refresh 2026", "planning")

	got, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Code != "DC-REFRESH-26" {
		t.Errorf("code = %q", got.Code)
	}

	got.Status = "active"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if reloaded.Status != "active" {
		t.Errorf("status = %q, want active", reloaded.Status)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted project still loadable, err = %v", err)
	}
}

func TestProjectListByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, repo, "P-1", "One", "planning")
	seedProject(t, repo, "P-2", "Two", "active")
	seedProject(t, repo, "P-3", "Three", "active")

	active, err := repo.List(ctx, "active")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active = %d, want 2", len(active))
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
}

func TestProjectFindMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.FindByID(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
