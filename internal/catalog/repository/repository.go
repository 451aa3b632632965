package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles all catalog repositories over one DB handle.
type Repositories struct {
	Basket  *BasketRepository
	Project *ProjectRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Basket:  NewBasketRepository(db),
		Project: NewProjectRepository(db),
	}
}
