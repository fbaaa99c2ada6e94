// Package catalog defines the persisted entity types of the vehicle and tire
// knowledge bases. Entities are created on the first successful import miss
// and updated in place on every subsequent hit; the import pipeline never
// deletes them.
package catalog

// Transmission is the variant's transmission kind.
type Transmission string

const (
	TransmissionManual Transmission = "MT"
	TransmissionAuto   Transmission = "AT"
	TransmissionCVT    Transmission = "CVT"
	TransmissionAMT    Transmission = "AMT"
	TransmissionDCT    Transmission = "DCT"
)

// Transmissions lists the accepted transmission values, in template order.
func Transmissions() []string {
	return []string{"MT", "AT", "CVT", "AMT", "DCT"}
}

// Brand is a vehicle manufacturer, created on demand during import.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Model is a vehicle model line under one brand.
type Model struct {
	ID      string `json:"id"`
	BrandID string `json:"brandId"`
	Name    string `json:"name"`
}

// YearRange is a production year span. Zero means the bound is open.
type YearRange struct {
	From int `json:"from,omitempty"`
	To   int `json:"to,omitempty"`
}

// Variant is one vehicle variant under a (brand, model) pair, carrying the
// full specification tree. Brand and Model hold the denormalized names used
// to build the natural key.
type Variant struct {
	ID      string `json:"id"`
	ModelID string `json:"modelId"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Name    string `json:"name"`

	EngineCode   string       `json:"engineCode,omitempty"`
	Transmission Transmission `json:"transmission,omitempty"`
	Years        YearRange    `json:"years"`
	EngineType   string       `json:"engineType,omitempty"`

	Spec SpecSheet `json:"spec"`
}

// SpecSheet is the variant's nested specification tree. Every section is
// optional and present only when the source row populated at least one of
// its columns.
type SpecSheet struct {
	EngineOil       *FluidSpec      `json:"engine_oil,omitempty"`
	TransmissionOil *FluidSpec      `json:"transmission_oil,omitempty"`
	DifferentialOil *FluidSpec      `json:"differential_oil,omitempty"`
	Coolant         *FluidSpec      `json:"coolant,omitempty"`
	Refrigerant     *FluidSpec      `json:"refrigerant,omitempty"`
	Parts           []PartSpec      `json:"parts,omitempty"`
	Tires           []TireFitment   `json:"tires,omitempty"`
	Battery         *BatterySpec    `json:"battery,omitempty"`
	Brakes          *BrakeSpec      `json:"brakes,omitempty"`
	Suspension      *SuspensionSpec `json:"suspension,omitempty"`
}

// FluidSpec describes one fluid: its type or viscosity grade plus fill
// capacity in liters.
type FluidSpec struct {
	Type          string   `json:"type,omitempty"`
	CapacityLiter *float64 `json:"capacity_liter,omitempty"`
}

// PartSpec is one replacement part entry. Number is the part number and is
// matched case-sensitively during merge.
type PartSpec struct {
	Category   string   `json:"category,omitempty"`
	Number     string   `json:"number"`
	Brands     []string `json:"brands,omitempty"`
	IntervalKM *float64 `json:"interval_km,omitempty"`
}

// TireFitment is the tire specification for one wheel position.
type TireFitment struct {
	Position    string   `json:"position"`
	Size        string   `json:"size,omitempty"`
	PressurePSI *float64 `json:"pressure_psi,omitempty"`
	Brands      []string `json:"brands,omitempty"`
}

// BatterySpec describes the battery fitment.
type BatterySpec struct {
	Type       string   `json:"type,omitempty"`
	CapacityAH *float64 `json:"capacity_ah,omitempty"`
}

// BrakeSpec describes the brake hardware per axle.
type BrakeSpec struct {
	Front string `json:"front,omitempty"`
	Rear  string `json:"rear,omitempty"`
}

// SuspensionSpec describes the suspension layout per axle.
type SuspensionSpec struct {
	Front string `json:"front,omitempty"`
	Rear  string `json:"rear,omitempty"`
}
