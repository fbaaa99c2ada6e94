package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// TireStore persists tire brands and products. List fields (sizes, usages,
// features) are text arrays; the price range is a pair of nullable numerics.
type TireStore struct {
	db importer.DBTX
}

// NewTireStore creates a store on the given database handle.
func NewTireStore(db importer.DBTX) *TireStore {
	return &TireStore{db: db}
}

// ListBrands returns every tire brand.
func (s *TireStore) ListBrands(ctx context.Context) ([]catalog.TireBrand, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, country, tier, description FROM tire_brands`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []catalog.TireBrand
	for rows.Next() {
		var b catalog.TireBrand
		if err := rows.Scan(&b.ID, &b.Name, &b.Country, &b.Tier, &b.Description); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// ListProducts returns every tire product with the brand name denormalized
// for natural-key building.
func (s *TireStore) ListProducts(ctx context.Context) ([]catalog.TireProduct, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.brand_id, b.name, p.name,
		       p.sizes, p.usages, p.price_min, p.price_max,
		       p.features, p.rating, p.warranty
		FROM tire_products p
		JOIN tire_brands b ON b.id = p.brand_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.TireProduct
	for rows.Next() {
		var p catalog.TireProduct
		err := rows.Scan(&p.ID, &p.BrandID, &p.Brand, &p.Name,
			&p.Sizes, &p.Usages, &p.PriceMin, &p.PriceMax,
			&p.Features, &p.Rating, &p.Warranty)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateBrand inserts a new brand and returns it with its assigned id.
func (s *TireStore) CreateBrand(ctx context.Context, b catalog.TireBrand) (catalog.TireBrand, error) {
	b.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO tire_brands (id, name, country, tier, description)
		VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.Country, string(b.Tier), b.Description)
	if err != nil {
		return catalog.TireBrand{}, err
	}
	return b, nil
}

// UpdateBrand overwrites an existing brand's attributes.
func (s *TireStore) UpdateBrand(ctx context.Context, b catalog.TireBrand) (catalog.TireBrand, error) {
	_, err := s.db.Exec(ctx, `
		UPDATE tire_brands
		SET country = $2, tier = $3, description = $4, updated_at = now()
		WHERE id = $1`,
		b.ID, b.Country, string(b.Tier), b.Description)
	if err != nil {
		return catalog.TireBrand{}, err
	}
	return b, nil
}

// CreateProduct inserts a new product and returns it with its assigned id.
func (s *TireStore) CreateProduct(ctx context.Context, p catalog.TireProduct) (catalog.TireProduct, error) {
	p.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO tire_products
			(id, brand_id, name, sizes, usages, price_min, price_max, features, rating, warranty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.BrandID, p.Name, p.Sizes, p.Usages,
		p.PriceMin, p.PriceMax, p.Features, p.Rating, p.Warranty)
	if err != nil {
		return catalog.TireProduct{}, err
	}
	return p, nil
}

// UpdateProduct overwrites an existing product's attributes.
func (s *TireStore) UpdateProduct(ctx context.Context, p catalog.TireProduct) (catalog.TireProduct, error) {
	_, err := s.db.Exec(ctx, `
		UPDATE tire_products
		SET sizes = $2, usages = $3, price_min = $4, price_max = $5,
		    features = $6, rating = $7, warranty = $8, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Sizes, p.Usages, p.PriceMin, p.PriceMax,
		p.Features, p.Rating, p.Warranty)
	if err != nil {
		return catalog.TireProduct{}, err
	}
	return p, nil
}
