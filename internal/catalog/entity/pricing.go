package entity

import "time"

// HardwarePricing holds the price facts of a model. A model owns at most one
// record; a re-import replaces it.
type HardwarePricing struct {
	ID         string   `json:"id" gorm:"primaryKey;size:32"`
	ModelID    string   `json:"model_id" gorm:"size:32;not null;uniqueIndex"`
	BasePrice  *float64 `json:"base_price,omitempty" gorm:"type:numeric(15,4)"`
	NetPrice   *float64 `json:"net_price,omitempty" gorm:"type:numeric(15,4)"`
	Currency   string   `json:"currency" gorm:"size:8;not null"`
	Propagated bool     `json:"propagated" gorm:"default:false"` // lot price covers the group

	CreatedAt time.Time `json:"created_at"`

	// Relations
	SupportTiers []SupportTier `json:"support_tiers,omitempty" gorm:"foreignKey:PricingID"`
}

func (HardwarePricing) TableName() string {
	return "hardware_pricings"
}

// SupportTier is one named support/warranty price option of a pricing
// record, e.g. "3Yr ProSupport Plus".
type SupportTier struct {
	ID        string  `json:"id" gorm:"primaryKey;size:32"`
	PricingID string  `json:"pricing_id" gorm:"size:32;not null;index"`
	Name      string  `json:"name" gorm:"size:128;not null"`
	Price     float64 `json:"price" gorm:"type:numeric(15,4);not null"`
}

func (SupportTier) TableName() string {
	return "hardware_support_tiers"
}
