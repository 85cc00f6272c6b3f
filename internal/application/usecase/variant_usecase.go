package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/gasagency-backoffice/internal/domain"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/validation"
)

// VariantUseCase variantes de cilindro y su precio.
type VariantUseCase struct {
	*CatalogUseCase[entity.Variant, entity.VariantInput]
	pricing repository.VariantRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(catalog *CatalogUseCase[entity.Variant, entity.VariantInput], repo repository.VariantRepository) *VariantUseCase {
	return &VariantUseCase{CatalogUseCase: catalog, pricing: repo}
}

// pricingRules el precio base no puede ser negativo ni el descuento superarlo.
var pricingRules = validation.Table[entity.VariantPricing]{
	{Field: "basePrice", Check: func(p entity.VariantPricing) string {
		if p.BasePrice.IsNegative() {
			return "no puede ser negativo"
		}
		return ""
	}},
	{Field: "discount", Check: func(p entity.VariantPricing) string {
		if p.Discount.IsNegative() {
			return "no puede ser negativo"
		}
		if p.Discount.GreaterThan(p.BasePrice) {
			return "no puede superar el precio base"
		}
		return ""
	}},
}

// UpsertPricing actualiza el precio; si la variante aún no tiene precio (404) lo crea.
func (uc *VariantUseCase) UpsertPricing(ctx context.Context, variantID int64, p entity.VariantPricing) (*entity.VariantPricing, error) {
	p.VariantID = variantID
	if err := pricingRules.Evaluate(p).OrNil(); err != nil {
		return nil, err
	}
	out, err := uc.pricing.UpdatePricing(ctx, variantID, p)
	if errors.Is(err, domain.ErrNotFound) {
		out, err = uc.pricing.CreatePricing(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	uc.changed(ctx, variantID)
	return out, nil
}
