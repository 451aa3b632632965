package entity

import "time"

// HardwareModel is one distinguishable server configuration/lot within a
// basket.
type HardwareModel struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	BasketID      string    `json:"basket_id" gorm:"size:32;not null;index"`
	Name          string    `json:"name" gorm:"size:256;not null"`
	ModelCode     string    `json:"model_code,omitempty" gorm:"size:64"`
	Specification string    `json:"specification,omitempty" gorm:"type:text"`
	Position      int       `json:"position" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	Configurations []HardwareConfiguration `json:"configurations,omitempty" gorm:"foreignKey:ModelID"`
	Pricing        *HardwarePricing        `json:"pricing,omitempty" gorm:"foreignKey:ModelID"`
}

func (HardwareModel) TableName() string {
	return "hardware_models"
}

// HardwareConfiguration is one component/part line attached to a model.
// Position follows source-row order and has no meaning beyond display.
type HardwareConfiguration struct {
	ID            string   `json:"id" gorm:"primaryKey;size:32"`
	ModelID       string   `json:"model_id" gorm:"size:32;not null;index"`
	Position      int      `json:"position" gorm:"not null;default:0"`
	PartNumber    string   `json:"part_number,omitempty" gorm:"size:64"`
	Description   string   `json:"description" gorm:"size:512;not null"`
	Category      string   `json:"category" gorm:"size:32;not null;default:Uncategorized"`
	Specification string   `json:"specification,omitempty" gorm:"type:text"`
	Quantity      *float64 `json:"quantity,omitempty" gorm:"type:numeric(12,4)"`
	UnitPrice     *float64 `json:"unit_price,omitempty" gorm:"type:numeric(15,4)"`
	SourceRow     int      `json:"source_row" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (HardwareConfiguration) TableName() string {
	return "hardware_configurations"
}
