package tire

import (
	"context"
	"fmt"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// Store is the catalog persistence this pipeline needs. Satisfied by
// postgres.TireStore and by the in-memory store used in tests.
type Store interface {
	ListBrands(ctx context.Context) ([]catalog.TireBrand, error)
	ListProducts(ctx context.Context) ([]catalog.TireProduct, error)
	CreateBrand(ctx context.Context, b catalog.TireBrand) (catalog.TireBrand, error)
	UpdateBrand(ctx context.Context, b catalog.TireBrand) (catalog.TireBrand, error)
	CreateProduct(ctx context.Context, p catalog.TireProduct) (catalog.TireProduct, error)
	UpdateProduct(ctx context.Context, p catalog.TireProduct) (catalog.TireProduct, error)
}

// Pipeline implements importer.Pipeline for tire products. Its indexes are
// rebuilt on Seed and mutated as the run creates brands and products, so
// rows later in a batch see what earlier rows created.
type Pipeline struct {
	store Store

	brands   *importer.Index[catalog.TireBrand]
	products *importer.Index[catalog.TireProduct]
}

// New creates a pipeline bound to the given store.
func New(store Store) *Pipeline {
	return &Pipeline{store: store}
}

// Columns implements importer.Pipeline.
func (p *Pipeline) Columns() []importer.FieldSpec { return columns() }

// Normalize implements importer.Pipeline. It never fails.
func (p *Pipeline) Normalize(row importer.RawRow) any {
	return buildDraft(importer.Normalize(row, columns()))
}

// Validate implements importer.Pipeline, returning the first failing rule.
func (p *Pipeline) Validate(draft any) error {
	return draft.(*Draft).validate()
}

// Key implements importer.Pipeline.
func (p *Pipeline) Key(draft any) string {
	return draft.(*Draft).key()
}

// Seed reads the full tire catalog snapshot and builds the brand and product
// indexes. Duplicate natural keys in the snapshot are rejected here, before
// any row is processed.
func (p *Pipeline) Seed(ctx context.Context) error {
	brands, err := p.store.ListBrands(ctx)
	if err != nil {
		return fmt.Errorf("list tire brands: %w", err)
	}
	products, err := p.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list tire products: %w", err)
	}

	p.brands = importer.NewIndex[catalog.TireBrand]()
	for _, b := range brands {
		if err := p.brands.Add(importer.NaturalKey(b.Name), b); err != nil {
			return fmt.Errorf("tire brand index: %w", err)
		}
	}

	p.products = importer.NewIndex[catalog.TireProduct]()
	for _, pr := range products {
		if err := p.products.Add(importer.NaturalKey(pr.Brand, pr.Name), pr); err != nil {
			return fmt.Errorf("tire product index: %w", err)
		}
	}

	return nil
}

// Match implements importer.Pipeline.
func (p *Pipeline) Match(draft any) (any, bool) {
	existing, ok := p.products.Get(draft.(*Draft).key())
	if !ok {
		return nil, false
	}
	return existing, true
}

// Create resolves the brand (creating it on a miss), persists a new product
// and records it in the index.
func (p *Pipeline) Create(ctx context.Context, draft any) (any, error) {
	d := draft.(*Draft)

	brand, err := p.resolveBrand(ctx, d)
	if err != nil {
		return nil, err
	}

	product := catalog.TireProduct{
		BrandID:  brand.ID,
		Brand:    brand.Name,
		Name:     d.Product,
		Sizes:    d.Sizes,
		Usages:   d.Usages,
		PriceMin: d.PriceMin,
		PriceMax: d.PriceMax,
		Features: d.Features,
		Rating:   d.Rating,
		Warranty: d.Warranty,
	}

	created, err := p.store.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create tire product: %w", err)
	}

	p.products.Put(d.key(), created)
	return created, nil
}

// Merge combines the matched product with the draft, persists it and
// refreshes the index. The brand's own attributes merge as well: a row may
// bring a country or tier for a brand that was created bare.
func (p *Pipeline) Merge(ctx context.Context, existing, draft any) (any, error) {
	d := draft.(*Draft)

	if _, err := p.resolveBrand(ctx, d); err != nil {
		return nil, err
	}

	merged := mergeProduct(existing.(catalog.TireProduct), d)

	updated, err := p.store.UpdateProduct(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update tire product: %w", err)
	}

	p.products.Put(d.key(), updated)
	return updated, nil
}

// resolveBrand finds the draft's brand in the index or creates it, and folds
// incoming brand attributes into an existing one when they changed.
func (p *Pipeline) resolveBrand(ctx context.Context, d *Draft) (catalog.TireBrand, error) {
	key := importer.NaturalKey(d.Brand)

	existing, ok := p.brands.Get(key)
	if !ok {
		created, err := p.store.CreateBrand(ctx, catalog.TireBrand{
			Name:        d.Brand,
			Country:     d.BrandCountry,
			Tier:        d.BrandTier,
			Description: d.BrandDescription,
		})
		if err != nil {
			return catalog.TireBrand{}, fmt.Errorf("create tire brand: %w", err)
		}
		if err := p.brands.Add(key, created); err != nil {
			return catalog.TireBrand{}, err
		}
		return created, nil
	}

	merged := mergeBrand(existing, d)
	if merged == existing {
		return existing, nil
	}

	updated, err := p.store.UpdateBrand(ctx, merged)
	if err != nil {
		return catalog.TireBrand{}, fmt.Errorf("update tire brand: %w", err)
	}
	p.brands.Put(key, updated)
	return updated, nil
}
