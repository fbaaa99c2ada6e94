package catalog

// TireTier is the market positioning of a tire brand.
type TireTier string

const (
	TierPremium TireTier = "premium"
	TierMid     TireTier = "mid"
	TierEconomy TireTier = "economy"
)

// TireTiers lists the accepted tier values.
func TireTiers() []string {
	return []string{"premium", "mid", "economy"}
}

// TireBrand is a tire manufacturer, created on demand during import.
// Brand attributes merge incoming-wins-if-present, like any scalar.
type TireBrand struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Country     string   `json:"country,omitempty"`
	Tier        TireTier `json:"tier,omitempty"`
	Description string   `json:"description,omitempty"`
}

// TireProduct is one tire product line under a brand. Brand holds the
// denormalized name used to build the natural key. The price range widens
// monotonically during merge.
type TireProduct struct {
	ID      string `json:"id"`
	BrandID string `json:"brandId"`
	Brand   string `json:"brand"`
	Name    string `json:"name"`

	Sizes    []string `json:"sizes,omitempty"`
	Usages   []string `json:"usages,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	Features []string `json:"features,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	Warranty string   `json:"warranty,omitempty"`
}
