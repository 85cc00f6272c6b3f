package backend

import (
	"context"
	"strconv"

	"github.com/jhoicas/gasagency-backoffice/internal/domain/entity"
	"github.com/jhoicas/gasagency-backoffice/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

const resourceVariantPricing = "/variant-pricing"

// VariantRepo variantes de cilindro y su precio.
type VariantRepo struct {
	*CatalogRepo[entity.Variant, entity.VariantInput]
}

// NewVariantRepository construye el adaptador.
func NewVariantRepository(c *Client) *VariantRepo {
	return &VariantRepo{CatalogRepo: NewCatalogRepo[entity.Variant, entity.VariantInput](c, ResourceVariants)}
}

// UpdatePricing PUT /variant-pricing/{variantId}. Sin precio previo el backend responde 404.
func (r *VariantRepo) UpdatePricing(ctx context.Context, variantID int64, p entity.VariantPricing) (*entity.VariantPricing, error) {
	p.VariantID = variantID
	var out entity.VariantPricing
	if err := r.c.Put(ctx, resourceVariantPricing+"/"+strconv.FormatInt(variantID, 10), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePricing POST /variant-pricing.
func (r *VariantRepo) CreatePricing(ctx context.Context, p entity.VariantPricing) (*entity.VariantPricing, error) {
	var out entity.VariantPricing
	if err := r.c.Post(ctx, resourceVariantPricing, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
