package vehicle

import (
	"context"
	"fmt"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// Store is the catalog persistence this pipeline needs. Satisfied by
// postgres.VehicleStore and by the in-memory store used in tests.
type Store interface {
	ListBrands(ctx context.Context) ([]catalog.Brand, error)
	ListModels(ctx context.Context) ([]catalog.Model, error)
	ListVariants(ctx context.Context) ([]catalog.Variant, error)
	CreateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error)
	CreateModel(ctx context.Context, m catalog.Model) (catalog.Model, error)
	CreateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error)
	UpdateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error)
}

// Pipeline implements importer.Pipeline for vehicle variants. Three indexes
// are kept per run: brands by name, models by (brand, model) and variants by
// (brand, model, variant). All three are mutated as the run creates
// entities, so rows later in a batch resolve against what earlier rows
// created.
type Pipeline struct {
	store Store

	brands   *importer.Index[catalog.Brand]
	models   *importer.Index[catalog.Model]
	variants *importer.Index[catalog.Variant]
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

// Seed reads the full vehicle catalog snapshot and builds the three natural
// key indexes. Duplicate keys in the snapshot are rejected here, before any
// row is processed.
func (p *Pipeline) Seed(ctx context.Context) error {
	brands, err := p.store.ListBrands(ctx)
	if err != nil {
		return fmt.Errorf("list vehicle brands: %w", err)
	}
	models, err := p.store.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list vehicle models: %w", err)
	}
	variants, err := p.store.ListVariants(ctx)
	if err != nil {
		return fmt.Errorf("list vehicle variants: %w", err)
	}

	p.brands = importer.NewIndex[catalog.Brand]()
	brandNames := make(map[string]string, len(brands)) // id -> name
	for _, b := range brands {
		if err := p.brands.Add(importer.NaturalKey(b.Name), b); err != nil {
			return fmt.Errorf("vehicle brand index: %w", err)
		}
		brandNames[b.ID] = b.Name
	}

	p.models = importer.NewIndex[catalog.Model]()
	for _, m := range models {
		key := importer.NaturalKey(brandNames[m.BrandID], m.Name)
		if err := p.models.Add(key, m); err != nil {
			return fmt.Errorf("vehicle model index: %w", err)
		}
	}

	p.variants = importer.NewIndex[catalog.Variant]()
	for _, v := range variants {
		key := importer.NaturalKey(v.Brand, v.Model, v.Name)
		if err := p.variants.Add(key, v); err != nil {
			return fmt.Errorf("vehicle variant index: %w", err)
		}
	}

	return nil
}

// Match implements importer.Pipeline.
func (p *Pipeline) Match(draft any) (any, bool) {
	existing, ok := p.variants.Get(draft.(*Draft).key())
	if !ok {
		return nil, false
	}
	return existing, true
}

// Create resolves the brand and model sub-entities (creating them on a
// miss), persists a new variant and records it in the index.
func (p *Pipeline) Create(ctx context.Context, draft any) (any, error) {
	d := draft.(*Draft)

	brand, model, err := p.resolveModel(ctx, d)
	if err != nil {
		return nil, err
	}

	variant := catalog.Variant{
		ModelID:      model.ID,
		Brand:        brand.Name,
		Model:        model.Name,
		Name:         d.Variant,
		EngineCode:   d.EngineCode,
		Transmission: d.Transmission,
		Years:        d.Years,
		EngineType:   d.EngineType,
		Spec:         d.Spec,
	}

	created, err := p.store.CreateVariant(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("create vehicle variant: %w", err)
	}

	p.variants.Put(d.key(), created)
	return created, nil
}

// Merge combines the matched variant with the draft per the field-level
// rules, persists it and refreshes the index.
func (p *Pipeline) Merge(ctx context.Context, existing, draft any) (any, error) {
	d := draft.(*Draft)

	merged := mergeVariant(existing.(catalog.Variant), d)

	updated, err := p.store.UpdateVariant(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("update vehicle variant: %w", err)
	}

	p.variants.Put(d.key(), updated)
	return updated, nil
}

// resolveModel walks the identity chain brand -> model, creating either on
// a miss and recording it in the index immediately so later rows in the same
// batch resolve against it.
func (p *Pipeline) resolveModel(ctx context.Context, d *Draft) (catalog.Brand, catalog.Model, error) {
	brandKey := importer.NaturalKey(d.Brand)
	brand, ok := p.brands.Get(brandKey)
	if !ok {
		created, err := p.store.CreateBrand(ctx, catalog.Brand{Name: d.Brand})
		if err != nil {
			return catalog.Brand{}, catalog.Model{}, fmt.Errorf("create vehicle brand: %w", err)
		}
		if err := p.brands.Add(brandKey, created); err != nil {
			return catalog.Brand{}, catalog.Model{}, err
		}
		brand = created
	}

	modelKey := importer.NaturalKey(brand.Name, d.Model)
	model, ok := p.models.Get(modelKey)
	if !ok {
		created, err := p.store.CreateModel(ctx, catalog.Model{BrandID: brand.ID, Name: d.Model})
		if err != nil {
			return catalog.Brand{}, catalog.Model{}, fmt.Errorf("create vehicle model: %w", err)
		}
		if err := p.models.Add(modelKey, created); err != nil {
			return catalog.Brand{}, catalog.Model{}, err
		}
		model = created
	}

	return brand, model, nil
}
