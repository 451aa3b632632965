package repository

import (
	"context"
	"errors"

	"github.com/rackwise/rackwise/internal/catalog/entity"
	"gorm.io/gorm"
)

type BasketRepository struct {
	db *gorm.DB
}

func NewBasketRepository(db *gorm.DB) *BasketRepository {
	return &BasketRepository{db: db}
}

func (r *BasketRepository) DB() *gorm.DB {
	return r.db
}

// SaveCatalog writes a basket and all of its models, configurations, pricing
// and support tiers as one atomic unit. When a live basket already occupies
// the same (vendor, quarter, year) slot it is replaced inside the same
// transaction, so a partial catalog is never visible mid-import.
func (r *BasketRepository) SaveCatalog(ctx context.Context, basket *entity.HardwareBasket, models []entity.HardwareModel, configs []entity.HardwareConfiguration, pricings []entity.HardwarePricing, tiers []entity.SupportTier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.HardwareBasket
		err := tx.Where("vendor = ? AND fiscal_quarter = ? AND fiscal_year = ?",
			basket.Vendor, basket.FiscalQuarter, basket.FiscalYear).
			First(&existing).Error
		switch {
		case err == nil:
			if err := cascadeDelete(tx, existing.ID); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Create(basket).Error; err != nil {
			return err
		}
		if len(models) > 0 {
			if err := tx.Create(&models).Error; err != nil {
				return err
			}
		}
		if len(configs) > 0 {
			if err := tx.CreateInBatches(&configs, 200).Error; err != nil {
				return err
			}
		}
		if len(pricings) > 0 {
			if err := tx.Create(&pricings).Error; err != nil {
				return err
			}
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// cascadeDelete removes a basket and everything under it. The basket row is
// hard-deleted here because the slot is being reused; the soft-delete path
// for user-initiated deletes lives in Delete.
func cascadeDelete(tx *gorm.DB, basketID string) error {
	var modelIDs []string
	if err := tx.Model(&entity.HardwareModel{}).Where("basket_id = ?", basketID).Pluck("id", &modelIDs).Error; err != nil {
		return err
	}
	if len(modelIDs) > 0 {
		var pricingIDs []string
		if err := tx.Model(&entity.HardwarePricing{}).Where("model_id IN ?", modelIDs).Pluck("id", &pricingIDs).Error; err != nil {
			return err
		}
		if len(pricingIDs) > 0 {
			if err := tx.Delete(&entity.SupportTier{}, "pricing_id IN ?", pricingIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&entity.HardwarePricing{}, "model_id IN ?", modelIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.HardwareConfiguration{}, "model_id IN ?", modelIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.HardwareModel{}, "basket_id = ?", basketID).Error; err != nil {
			return err
		}
	}
	return tx.Unscoped().Delete(&entity.HardwareBasket{}, "id = ?", basketID).Error
}

// FindByID loads a basket with its full catalog tree.
func (r *BasketRepository) FindByID(ctx context.Context, id string) (*entity.HardwareBasket, error) {
	var basket entity.HardwareBasket
	err := r.db.WithContext(ctx).
		Preload("Models", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Models.Configurations", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Models.Pricing").
		Preload("Models.Pricing.SupportTiers").
		First(&basket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// List returns baskets newest-first, optionally filtered.
func (r *BasketRepository) List(ctx context.Context, vendor, quarter string, year int) ([]entity.HardwareBasket, error) {
	var baskets []entity.HardwareBasket
	query := r.db.WithContext(ctx).Model(&entity.HardwareBasket{})
	if vendor != "" {
		query = query.Where("vendor = ?", vendor)
	}
	if quarter != "" {
		query = query.Where("fiscal_quarter = ?", quarter)
	}
	if year > 0 {
		query = query.Where("fiscal_year = ?", year)
	}
	err := query.Order("imported_at DESC").Find(&baskets).Error
	return baskets, err
}

// Delete soft-deletes the basket and hard-deletes its children, basket →
// models → configurations/pricing/tiers.
func (r *BasketRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var basket entity.HardwareBasket
		if err := tx.First(&basket, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var modelIDs []string
		if err := tx.Model(&entity.HardwareModel{}).Where("basket_id = ?", id).Pluck("id", &modelIDs).Error; err != nil {
			return err
		}
		if len(modelIDs) > 0 {
			var pricingIDs []string
			if err := tx.Model(&entity.HardwarePricing{}).Where("model_id IN ?", modelIDs).Pluck("id", &pricingIDs).Error; err != nil {
				return err
			}
			if len(pricingIDs) > 0 {
				if err := tx.Delete(&entity.SupportTier{}, "pricing_id IN ?", pricingIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&entity.HardwarePricing{}, "model_id IN ?", modelIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entity.HardwareConfiguration{}, "model_id IN ?", modelIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entity.HardwareModel{}, "basket_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&basket).Error
	})
}

// VendorStat is one row of the capacity summary.
type VendorStat struct {
	Vendor         string  `json:"vendor"`
	Baskets        int64   `json:"baskets"`
	Models         int64   `json:"models"`
	Configurations int64   `json:"configurations"`
	NetSpend       float64 `json:"net_spend"`
}

// VendorStats aggregates model/configuration counts and net spend per
// vendor across live baskets.
func (r *BasketRepository) VendorStats(ctx context.Context) ([]VendorStat, error) {
	var stats []VendorStat
	err := r.db.WithContext(ctx).
		Model(&entity.HardwareBasket{}).
		Select(`hardware_baskets.vendor,
			COUNT(DISTINCT hardware_baskets.id) AS baskets,
			COUNT(DISTINCT hardware_models.id) AS models,
			COUNT(DISTINCT hardware_configurations.id) AS configurations`).
		Joins("LEFT JOIN hardware_models ON hardware_models.basket_id = hardware_baskets.id").
		Joins("LEFT JOIN hardware_configurations ON hardware_configurations.model_id = hardware_models.id").
		Where("hardware_baskets.deleted_at IS NULL").
		Group("hardware_baskets.vendor").
		Order("hardware_baskets.vendor").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	// Spend is summed separately: joining pricings into the count query
	// would multiply rows per configuration.
	var spend []struct {
		Vendor   string
		NetSpend float64
	}
	err = r.db.WithContext(ctx).
		Model(&entity.HardwarePricing{}).
		Select("hardware_baskets.vendor, COALESCE(SUM(hardware_pricings.net_price), 0) AS net_spend").
		Joins("JOIN hardware_models ON hardware_models.id = hardware_pricings.model_id").
		Joins("JOIN hardware_baskets ON hardware_baskets.id = hardware_models.basket_id").
		Where("hardware_baskets.deleted_at IS NULL").
		Group("hardware_baskets.vendor").
		Scan(&spend).Error
	if err != nil {
		return nil, err
	}
	byVendor := make(map[string]float64, len(spend))
	for _, s := range spend {
		byVendor[s.Vendor] = s.NetSpend
	}
	for i := range stats {
		stats[i].NetSpend = byVendor[stats[i].Vendor]
	}
	return stats, nil
}

// CountModels returns the number of models in a basket.
func (r *BasketRepository) CountModels(ctx context.Context, basketID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.HardwareModel{}).Where("basket_id = ?", basketID).Count(&count).Error
	return count, err
}
