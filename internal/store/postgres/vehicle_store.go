// Package postgres implements the catalog stores on PostgreSQL via pgx.
// Each store exposes the snapshot reads the import engine seeds its index
// from plus per-entity create and update operations; there is no batch or
// transactional import API, by design.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// VehicleStore persists vehicle brands, models and variants. The variant's
// specification tree is stored as a JSONB document; identity and attribute
// fields are plain columns.
type VehicleStore struct {
	db importer.DBTX
}

// NewVehicleStore creates a store on the given database handle.
func NewVehicleStore(db importer.DBTX) *VehicleStore {
	return &VehicleStore{db: db}
}

// ListBrands returns every vehicle brand.
func (s *VehicleStore) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM vehicle_brands`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []catalog.Brand
	for rows.Next() {
		var b catalog.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// ListModels returns every vehicle model.
func (s *VehicleStore) ListModels(ctx context.Context) ([]catalog.Model, error) {
	rows, err := s.db.Query(ctx, `SELECT id, brand_id, name FROM vehicle_models`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []catalog.Model
	for rows.Next() {
		var m catalog.Model
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name); err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

// ListVariants returns every vehicle variant with the brand and model names
// denormalized for natural-key building.
func (s *VehicleStore) ListVariants(ctx context.Context) ([]catalog.Variant, error) {
	rows, err := s.db.Query(ctx, `
		SELECT v.id, v.model_id, b.name, m.name, v.name,
		       v.engine_code, v.transmission, v.year_from, v.year_to,
		       v.engine_type, v.spec
		FROM vehicle_variants v
		JOIN vehicle_models m ON m.id = v.model_id
		JOIN vehicle_brands b ON b.id = m.brand_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []catalog.Variant
	for rows.Next() {
		var v catalog.Variant
		var spec []byte
		err := rows.Scan(&v.ID, &v.ModelID, &v.Brand, &v.Model, &v.Name,
			&v.EngineCode, &v.Transmission, &v.Years.From, &v.Years.To,
			&v.EngineType, &spec)
		if err != nil {
			return nil, err
		}
		if len(spec) > 0 {
			if err := json.Unmarshal(spec, &v.Spec); err != nil {
				return nil, fmt.Errorf("decode spec for variant %s: %w", v.ID, err)
			}
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// CreateBrand inserts a new brand and returns it with its assigned id.
func (s *VehicleStore) CreateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	b.ID = uuid.NewString()
	_, err := s.db.Exec(ctx,
		`INSERT INTO vehicle_brands (id, name) VALUES ($1, $2)`,
		b.ID, b.Name)
	if err != nil {
		return catalog.Brand{}, err
	}
	return b, nil
}

// CreateModel inserts a new model and returns it with its assigned id.
func (s *VehicleStore) CreateModel(ctx context.Context, m catalog.Model) (catalog.Model, error) {
	m.ID = uuid.NewString()
	_, err := s.db.Exec(ctx,
		`INSERT INTO vehicle_models (id, brand_id, name) VALUES ($1, $2, $3)`,
		m.ID, m.BrandID, m.Name)
	if err != nil {
		return catalog.Model{}, err
	}
	return m, nil
}

// CreateVariant inserts a new variant and returns it with its assigned id.
func (s *VehicleStore) CreateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	spec, err := json.Marshal(v.Spec)
	if err != nil {
		return catalog.Variant{}, fmt.Errorf("encode spec: %w", err)
	}

	v.ID = uuid.NewString()
	_, err = s.db.Exec(ctx, `
		INSERT INTO vehicle_variants
			(id, model_id, name, engine_code, transmission, year_from, year_to, engine_type, spec)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.ModelID, v.Name, v.EngineCode, string(v.Transmission),
		v.Years.From, v.Years.To, v.EngineType, spec)
	if err != nil {
		return catalog.Variant{}, err
	}
	return v, nil
}

// UpdateVariant overwrites an existing variant's attributes and spec tree.
func (s *VehicleStore) UpdateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	spec, err := json.Marshal(v.Spec)
	if err != nil {
		return catalog.Variant{}, fmt.Errorf("encode spec: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		UPDATE vehicle_variants
		SET engine_code = $2, transmission = $3, year_from = $4, year_to = $5,
		    engine_type = $6, spec = $7, updated_at = now()
		WHERE id = $1`,
		v.ID, v.EngineCode, string(v.Transmission),
		v.Years.From, v.Years.To, v.EngineType, spec)
	if err != nil {
		return catalog.Variant{}, err
	}
	return v, nil
}
