// Package tire is the tire-catalog import plug-in: the column schema,
// draft shape, structural checks and merge rules for tire products and
// their brands. The generic pipeline order lives in the importer package.
package tire

import (
	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
	"github.com/otohub/catalog-import/internal/store/postgres"
)

// DomainKey identifies this domain in the registry and the HTTP API.
const DomainKey = "tire"

func columns() []importer.FieldSpec {
	return []importer.FieldSpec{
		{Column: "Brand", Kind: importer.KindText, Required: true},
		{Column: "Product", Kind: importer.KindText, Required: true},
		{Column: "BrandCountry", Kind: importer.KindText},
		{Column: "BrandTier", Kind: importer.KindEnum, EnumValues: catalog.TireTiers()},
		{Column: "BrandDescription", Kind: importer.KindText},
		{Column: "Sizes", Kind: importer.KindList},
		{Column: "Usages", Kind: importer.KindList},
		{Column: "PriceMin", Kind: importer.KindNumber},
		{Column: "PriceMax", Kind: importer.KindNumber},
		{Column: "Features", Kind: importer.KindList},
		{Column: "Rating", Kind: importer.KindNumber},
		{Column: "Warranty", Kind: importer.KindText},
	}
}

func init() {
	importer.Register(importer.Definition{
		Info: importer.DomainInfo{
			Key:   DomainKey,
			Label: "Tire Products",
		},
		Columns: columns(),
		Build: func(db importer.DBTX) importer.Pipeline {
			return New(postgres.NewTireStore(db))
		},
	})
}
