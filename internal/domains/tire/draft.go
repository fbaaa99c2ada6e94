package tire

import (
	"errors"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// Draft is the normalized candidate built from one row: a tire product plus
// the attributes of its brand sub-entity. Drafts are ephemeral, created and
// discarded within a single run.
type Draft struct {
	Brand            string
	Product          string
	BrandCountry     string
	BrandTier        catalog.TireTier
	BrandDescription string

	Sizes    []string
	Usages   []string
	PriceMin *float64
	PriceMax *float64
	Features []string
	Rating   *float64
	Warranty string
}

func buildDraft(f importer.Fields) *Draft {
	return &Draft{
		Brand:            f.Text("brand"),
		Product:          f.Text("product"),
		BrandCountry:     f.Text("brandcountry"),
		BrandTier:        catalog.TireTier(f.Text("brandtier")),
		BrandDescription: f.Text("branddescription"),
		Sizes:            f.List("sizes"),
		Usages:           f.List("usages"),
		PriceMin:         f.NumPtr("pricemin"),
		PriceMax:         f.NumPtr("pricemax"),
		Features:         f.List("features"),
		Rating:           f.NumPtr("rating"),
		Warranty:         f.Text("warranty"),
	}
}

func (d *Draft) validate() error {
	if d.Brand == "" {
		return errors.New("missing required field Brand")
	}
	if d.Product == "" {
		return errors.New("missing required field Product")
	}
	if len(d.Sizes) == 0 {
		return errors.New("a tire product needs at least one size")
	}
	if d.PriceMin != nil && d.PriceMax != nil && *d.PriceMin > *d.PriceMax {
		return errors.New("PriceMin is greater than PriceMax")
	}
	return nil
}

func (d *Draft) key() string {
	return importer.NaturalKey(d.Brand, d.Product)
}
