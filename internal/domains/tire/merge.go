package tire

import (
	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// mergeProduct applies the tire merge rules: scalars overwrite when the
// incoming value is present, lists union, and the price range widens.
// Identity and surrogate fields come from the existing entity.
func mergeProduct(existing catalog.TireProduct, d *Draft) catalog.TireProduct {
	merged := existing

	merged.Sizes = importer.UnionList(existing.Sizes, d.Sizes)
	merged.Usages = importer.UnionList(existing.Usages, d.Usages)
	merged.Features = importer.UnionList(existing.Features, d.Features)

	merged.PriceMin = importer.WidenMin(existing.PriceMin, d.PriceMin)
	merged.PriceMax = importer.WidenMax(existing.PriceMax, d.PriceMax)

	merged.Rating = importer.MergeNumber(existing.Rating, d.Rating)
	merged.Warranty = importer.MergeText(existing.Warranty, d.Warranty)

	return merged
}

// mergeBrand folds incoming brand attributes into an existing brand.
// Incoming wins when present; an absent value keeps the existing one.
func mergeBrand(existing catalog.TireBrand, d *Draft) catalog.TireBrand {
	merged := existing

	merged.Country = importer.MergeText(existing.Country, d.BrandCountry)
	merged.Tier = catalog.TireTier(importer.MergeText(string(existing.Tier), string(d.BrandTier)))
	merged.Description = importer.MergeText(existing.Description, d.BrandDescription)

	return merged
}
