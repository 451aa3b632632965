package entity

import (
	"time"

	"gorm.io/gorm"
)

// Project is an infrastructure-lifecycle project tracked alongside the
// hardware catalog (refresh cycles, deployments, decommissions).
type Project struct {
	ID          string         `json:"id" gorm:"primaryKey;size:32"`
	Code        string         `json:"code" gorm:"size:32;not null;uniqueIndex"`
	Name        string         `json:"name" gorm:"size:128;not null"`
	Status      string         `json:"status" gorm:"size:16;not null;default:planning"` // planning/active/on_hold/done
	Description string         `json:"description,omitempty" gorm:"type:text"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	CreatedBy   string         `json:"created_by" gorm:"size:32"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Project) TableName() string {
	return "projects"
}
