package vehicle

import (
	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// mergeVariant applies the vehicle merge rules: scalars overwrite when the
// incoming value is present, the year range widens, and every spec section
// attaches wholesale when new or recurses field-by-field when present on
// both sides. Identity and surrogate fields come from the existing entity.
func mergeVariant(existing catalog.Variant, d *Draft) catalog.Variant {
	merged := existing

	merged.EngineCode = importer.MergeText(existing.EngineCode, d.EngineCode)
	merged.Transmission = catalog.Transmission(
		importer.MergeText(string(existing.Transmission), string(d.Transmission)))
	merged.EngineType = importer.MergeText(existing.EngineType, d.EngineType)
	merged.Years = widenYears(existing.Years, d.Years)

	merged.Spec = mergeSpec(existing.Spec, d.Spec)

	return merged
}

func widenYears(existing, incoming catalog.YearRange) catalog.YearRange {
	merged := existing
	if incoming.From != 0 && (merged.From == 0 || incoming.From < merged.From) {
		merged.From = incoming.From
	}
	if incoming.To != 0 && (merged.To == 0 || incoming.To > merged.To) {
		merged.To = incoming.To
	}
	return merged
}

func mergeSpec(existing, incoming catalog.SpecSheet) catalog.SpecSheet {
	merged := existing

	merged.EngineOil = mergeFluid(existing.EngineOil, incoming.EngineOil)
	merged.TransmissionOil = mergeFluid(existing.TransmissionOil, incoming.TransmissionOil)
	merged.DifferentialOil = mergeFluid(existing.DifferentialOil, incoming.DifferentialOil)
	merged.Coolant = mergeFluid(existing.Coolant, incoming.Coolant)
	merged.Refrigerant = mergeFluid(existing.Refrigerant, incoming.Refrigerant)

	merged.Parts = mergeParts(existing.Parts, incoming.Parts)
	merged.Tires = mergeTires(existing.Tires, incoming.Tires)

	merged.Battery = mergeBattery(existing.Battery, incoming.Battery)
	merged.Brakes = mergeBrakes(existing.Brakes, incoming.Brakes)
	merged.Suspension = mergeSuspension(existing.Suspension, incoming.Suspension)

	return merged
}

func mergeFluid(existing, incoming *catalog.FluidSpec) *catalog.FluidSpec {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		section := *incoming
		return &section
	}
	return &catalog.FluidSpec{
		Type:          importer.MergeText(existing.Type, incoming.Type),
		CapacityLiter: importer.MergeNumber(existing.CapacityLiter, incoming.CapacityLiter),
	}
}

// mergeParts unions the part lists keyed by part number, case-sensitively.
// A matching entry merges field-by-field; unseen entries append in incoming
// order.
func mergeParts(existing, incoming []catalog.PartSpec) []catalog.PartSpec {
	if len(incoming) == 0 {
		return existing
	}

	merged := append([]catalog.PartSpec(nil), existing...)
	for _, in := range incoming {
		found := false
		for i, ex := range merged {
			if ex.Number == in.Number {
				merged[i] = catalog.PartSpec{
					Category:   importer.MergeText(ex.Category, in.Category),
					Number:     ex.Number,
					Brands:     importer.UnionListFold(ex.Brands, in.Brands),
					IntervalKM: importer.MergeNumber(ex.IntervalKM, in.IntervalKM),
				}
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, in)
		}
	}
	return merged
}

// mergeTires unions the tire fitments keyed by wheel position,
// case-insensitively.
func mergeTires(existing, incoming []catalog.TireFitment) []catalog.TireFitment {
	if len(incoming) == 0 {
		return existing
	}

	merged := append([]catalog.TireFitment(nil), existing...)
	for _, in := range incoming {
		found := false
		for i, ex := range merged {
			if importer.KeyPart(ex.Position) == importer.KeyPart(in.Position) {
				merged[i] = catalog.TireFitment{
					Position:    ex.Position,
					Size:        importer.MergeText(ex.Size, in.Size),
					PressurePSI: importer.MergeNumber(ex.PressurePSI, in.PressurePSI),
					Brands:      importer.UnionListFold(ex.Brands, in.Brands),
				}
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, in)
		}
	}
	return merged
}

func mergeBattery(existing, incoming *catalog.BatterySpec) *catalog.BatterySpec {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		section := *incoming
		return &section
	}
	return &catalog.BatterySpec{
		Type:       importer.MergeText(existing.Type, incoming.Type),
		CapacityAH: importer.MergeNumber(existing.CapacityAH, incoming.CapacityAH),
	}
}

func mergeBrakes(existing, incoming *catalog.BrakeSpec) *catalog.BrakeSpec {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		section := *incoming
		return &section
	}
	return &catalog.BrakeSpec{
		Front: importer.MergeText(existing.Front, incoming.Front),
		Rear:  importer.MergeText(existing.Rear, incoming.Rear),
	}
}

func mergeSuspension(existing, incoming *catalog.SuspensionSpec) *catalog.SuspensionSpec {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		section := *incoming
		return &section
	}
	return &catalog.SuspensionSpec{
		Front: importer.MergeText(existing.Front, incoming.Front),
		Rear:  importer.MergeText(existing.Rear, incoming.Rear),
	}
}
