package entity

import (
	"time"

	"gorm.io/gorm"
)

// HardwareBasket is one vendor price-list import, tied to a fiscal
// quarter/year and currency pair. Immutable after import except for the
// soft-delete flag; a re-import into the same slot replaces it wholesale.
type HardwareBasket struct {
	ID             string         `json:"id" gorm:"primaryKey;size:32"`
	Vendor         string         `json:"vendor" gorm:"size:16;not null;index"`
	FiscalQuarter  string         `json:"fiscal_quarter" gorm:"size:4;not null"` // Q1..Q4
	FiscalYear     int            `json:"fiscal_year" gorm:"not null"`
	SourceCurrency string         `json:"source_currency" gorm:"size:8;not null"`
	TargetCurrency string         `json:"target_currency" gorm:"size:8;not null"`
	ExchangeRate   float64        `json:"exchange_rate" gorm:"type:numeric(12,6);not null;default:1"`
	SourceFilename string         `json:"source_filename" gorm:"size:256"`
	ArchiveObject  string         `json:"archive_object,omitempty" gorm:"size:512"` // object key of the raw upload
	ImportedBy     string         `json:"imported_by" gorm:"size:32"`
	ImportedAt     time.Time      `json:"imported_at"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Models []HardwareModel `json:"models,omitempty" gorm:"foreignKey:BasketID"`
}

func (HardwareBasket) TableName() string {
	return "hardware_baskets"
}
