package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rackwise/rackwise/internal/catalog/entity"
	"github.com/rackwise/rackwise/internal/catalog/repository"
	"github.com/rackwise/rackwise/internal/ingest"
	"github.com/xuri/excelize/v2"
)

// importTimeout bounds one whole import pass. Spreadsheets are hundreds of
// rows; anything that takes longer is stuck, not slow.
const importTimeout = 30 * time.Second

// maxUploadBytes caps how much of an upload we are willing to buffer.
const maxUploadBytes = 32 << 20

type BasketService struct {
	repo     *repository.BasketRepository
	capacity *CapacityService
	minio    *minio.Client
	bucket   string
}

func NewBasketService(repo *repository.BasketRepository, capacity *CapacityService, minioClient *minio.Client, bucket string) *BasketService {
	return &BasketService{
		repo:     repo,
		capacity: capacity,
		minio:    minioClient,
		bucket:   bucket,
	}
}

// ImportInput carries the upload metadata alongside the file.
type ImportInput struct {
	VendorHint     string
	FiscalQuarter  string // Q1..Q4
	FiscalYear     int
	SourceCurrency string
	TargetCurrency string
	ExchangeRate   float64
	Filename       string
}

func (in *ImportInput) validate() error {
	switch strings.ToUpper(in.FiscalQuarter) {
	case "Q1", "Q2", "Q3", "Q4":
		in.FiscalQuarter = strings.ToUpper(in.FiscalQuarter)
	default:
		return fmt.Errorf("fiscal quarter must be Q1..Q4, got %q", in.FiscalQuarter)
	}
	if in.FiscalYear < 2000 || in.FiscalYear > 2100 {
		return fmt.Errorf("fiscal year out of range: %d", in.FiscalYear)
	}
	in.SourceCurrency = strings.ToUpper(strings.TrimSpace(in.SourceCurrency))
	if !ingest.ValidCurrencies[in.SourceCurrency] {
		return fmt.Errorf("unsupported source currency %q", in.SourceCurrency)
	}
	if in.TargetCurrency == "" {
		in.TargetCurrency = in.SourceCurrency
	}
	in.TargetCurrency = strings.ToUpper(strings.TrimSpace(in.TargetCurrency))
	if !ingest.ValidCurrencies[in.TargetCurrency] {
		return fmt.Errorf("unsupported target currency %q", in.TargetCurrency)
	}
	if in.ExchangeRate == 0 {
		in.ExchangeRate = 1
	}
	if in.ExchangeRate < 0 {
		return fmt.Errorf("exchange rate must be positive")
	}
	return nil
}

// Import runs the whole pipeline for one upload: parse, normalize, persist
// atomically, archive the raw file. Fatal parse errors abort with nothing
// persisted; recoverable problems come back in the report next to the
// created basket. Cancellation is all-or-nothing.
func (s *BasketService) Import(ctx context.Context, input ImportInput, file io.Reader, importedBy string) (*entity.HardwareBasket, *ingest.ImportReport, error) {
	if err := input.validate(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, importTimeout)
	defer cancel()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ingest.ErrFileUnreadable, err)
	}

	wb, err := ingest.OpenWorkbook(input.Filename, bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}

	catalog, err := ingest.BuildCatalog(wb, ingest.Options{
		VendorHint: input.VendorHint,
		Filename:   input.Filename,
		Currency:   input.SourceCurrency,
	})
	if err != nil {
		return nil, nil, err
	}

	basket, models, configs, pricings, tiers := flattenCatalog(catalog, input, importedBy)

	if s.minio != nil {
		key := fmt.Sprintf("baskets/%s/%s-%d/%s", catalog.Vendor, input.FiscalQuarter, input.FiscalYear, input.Filename)
		_, archiveErr := s.minio.PutObject(ctx, s.bucket, key, bytes.NewReader(raw), int64(len(raw)),
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		if archiveErr != nil {
			catalog.Report.Issues = append(catalog.Report.Issues, "raw file archive failed: "+archiveErr.Error())
		} else {
			basket.ArchiveObject = key
		}
	}

	if err := s.repo.SaveCatalog(ctx, basket, models, configs, pricings, tiers); err != nil {
		return nil, nil, fmt.Errorf("persist catalog: %w", err)
	}

	s.capacity.Invalidate(ctx)

	return basket, &catalog.Report, nil
}

// flattenCatalog maps the normalized ingest output onto the persistence
// entities, assigning IDs and wiring the FK chain.
func flattenCatalog(catalog *ingest.Catalog, input ImportInput, importedBy string) (*entity.HardwareBasket, []entity.HardwareModel, []entity.HardwareConfiguration, []entity.HardwarePricing, []entity.SupportTier) {
	now := time.Now()
	basket := &entity.HardwareBasket{
		ID:             uuid.New().String()[:32],
		Vendor:         string(catalog.Vendor),
		FiscalQuarter:  input.FiscalQuarter,
		FiscalYear:     input.FiscalYear,
		SourceCurrency: input.SourceCurrency,
		TargetCurrency: input.TargetCurrency,
		ExchangeRate:   input.ExchangeRate,
		SourceFilename: input.Filename,
		ImportedBy:     importedBy,
		ImportedAt:     now,
		CreatedAt:      now,
	}

	var (
		models   []entity.HardwareModel
		configs  []entity.HardwareConfiguration
		pricings []entity.HardwarePricing
		tiers    []entity.SupportTier
	)
	for i, m := range catalog.Models {
		model := entity.HardwareModel{
			ID:            uuid.New().String()[:32],
			BasketID:      basket.ID,
			Name:          m.Name,
			ModelCode:     m.Code,
			Specification: m.Specification,
			Position:      i + 1,
			CreatedAt:     now,
		}
		models = append(models, model)

		for _, c := range m.Configurations {
			configs = append(configs, entity.HardwareConfiguration{
				ID:            uuid.New().String()[:32],
				ModelID:       model.ID,
				Position:      c.Position,
				PartNumber:    c.PartNumber,
				Description:   c.Description,
				Category:      c.Category,
				Specification: c.Specification,
				Quantity:      c.Quantity,
				UnitPrice:     c.UnitPrice,
				SourceRow:     c.SourceRow,
				CreatedAt:     now,
			})
		}

		if m.Pricing != nil {
			pricing := entity.HardwarePricing{
				ID:         uuid.New().String()[:32],
				ModelID:    model.ID,
				BasePrice:  m.Pricing.BasePrice,
				NetPrice:   m.Pricing.NetPrice,
				Currency:   m.Pricing.Currency,
				Propagated: m.Pricing.Propagated,
				CreatedAt:  now,
			}
			pricings = append(pricings, pricing)
			for _, t := range m.Pricing.Tiers {
				tiers = append(tiers, entity.SupportTier{
					ID:        uuid.New().String()[:32],
					PricingID: pricing.ID,
					Name:      t.Name,
					Price:     t.Price,
				})
			}
		}
	}
	return basket, models, configs, pricings, tiers
}

// Get loads a basket with its full catalog tree.
func (s *BasketService) Get(ctx context.Context, id string) (*entity.HardwareBasket, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns baskets, optionally filtered by vendor/quarter/year.
func (s *BasketService) List(ctx context.Context, vendor, quarter string, year int) ([]entity.HardwareBasket, error) {
	return s.repo.List(ctx, vendor, quarter, year)
}

// Delete removes a basket and cascades to everything under it.
func (s *BasketService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.capacity.Invalidate(ctx)
	return nil
}

var exportHeaders = []string{
	"Model", "Model Code", "Position", "Part Number", "Description",
	"Category", "Quantity", "Unit Price", "Base Price", "Net Price", "Currency",
}

// Export renders a basket's normalized catalog back to xlsx.
func (s *BasketService) Export(ctx context.Context, id string) (*excelize.File, string, error) {
	basket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Catalog"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	row := 2
	for _, model := range basket.Models {
		for _, cfg := range model.Configurations {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), model.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), model.ModelCode)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cfg.Position)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), cfg.PartNumber)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), cfg.Description)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), cfg.Category)
			if cfg.Quantity != nil {
				f.SetCellValue(sheet, fmt.Sprintf("G%d", row), *cfg.Quantity)
			}
			if cfg.UnitPrice != nil {
				f.SetCellValue(sheet, fmt.Sprintf("H%d", row), *cfg.UnitPrice)
			}
			if model.Pricing != nil {
				if model.Pricing.BasePrice != nil {
					f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *model.Pricing.BasePrice)
				}
				if model.Pricing.NetPrice != nil {
					f.SetCellValue(sheet, fmt.Sprintf("J%d", row), *model.Pricing.NetPrice)
				}
				f.SetCellValue(sheet, fmt.Sprintf("K%d", row), model.Pricing.Currency)
			}
			row++
		}
	}

	filename := fmt.Sprintf("basket_%s_%s%d.xlsx", basket.Vendor, basket.FiscalQuarter, basket.FiscalYear)
	return f, filename, nil
}
