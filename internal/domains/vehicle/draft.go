package vehicle

import (
	"errors"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// Draft is the normalized candidate built from one row: variant identity,
// attributes and the specification tree. Optional spec sections are present
// only when the row populated at least one of their source columns.
type Draft struct {
	Brand   string
	Model   string
	Variant string

	EngineCode   string
	Transmission catalog.Transmission
	Years        catalog.YearRange
	EngineType   string

	Spec catalog.SpecSheet
}

func buildDraft(f importer.Fields) *Draft {
	d := &Draft{
		Brand:        f.Text("brand"),
		Model:        f.Text("model"),
		Variant:      f.Text("variant"),
		EngineCode:   f.Text("enginecode"),
		Transmission: catalog.Transmission(f.Text("transmission")),
		EngineType:   f.Text("enginetype"),
	}

	if y, ok := f.Int("yearfrom"); ok {
		d.Years.From = y
	}
	if y, ok := f.Int("yearto"); ok {
		d.Years.To = y
	}

	d.Spec.EngineOil = fluidSection(f, "oilviscosity", "oilcapacity")
	d.Spec.TransmissionOil = fluidSection(f, "transoiltype", "transoilcapacity")
	d.Spec.DifferentialOil = fluidSection(f, "diffoiltype", "diffoilcapacity")
	d.Spec.Coolant = fluidSection(f, "coolanttype", "coolantcapacity")
	d.Spec.Refrigerant = fluidSection(f, "refrigeranttype", "refrigerantcapacity")

	if f.Has("partnumber") || f.Has("partcategory") {
		d.Spec.Parts = []catalog.PartSpec{{
			Category:   f.Text("partcategory"),
			Number:     f.Text("partnumber"),
			Brands:     f.List("partbrands"),
			IntervalKM: f.NumPtr("partintervalkm"),
		}}
	}

	if f.Has("tireposition") || f.Has("tiresize") {
		d.Spec.Tires = []catalog.TireFitment{{
			Position:    f.Text("tireposition"),
			Size:        f.Text("tiresize"),
			PressurePSI: f.NumPtr("tirepressurepsi"),
			Brands:      f.List("tirebrands"),
		}}
	}

	if f.Has("batterytype") || f.Has("batterycapacityah") {
		d.Spec.Battery = &catalog.BatterySpec{
			Type:       f.Text("batterytype"),
			CapacityAH: f.NumPtr("batterycapacityah"),
		}
	}

	if f.Has("brakefront") || f.Has("brakerear") {
		d.Spec.Brakes = &catalog.BrakeSpec{
			Front: f.Text("brakefront"),
			Rear:  f.Text("brakerear"),
		}
	}

	if f.Has("suspensionfront") || f.Has("suspensionrear") {
		d.Spec.Suspension = &catalog.SuspensionSpec{
			Front: f.Text("suspensionfront"),
			Rear:  f.Text("suspensionrear"),
		}
	}

	return d
}

// fluidSection builds an optional fluid spec, absent unless at least one of
// its columns was populated.
func fluidSection(f importer.Fields, typeField, capacityField string) *catalog.FluidSpec {
	if !f.Has(typeField) && !f.Has(capacityField) {
		return nil
	}
	return &catalog.FluidSpec{
		Type:          f.Text(typeField),
		CapacityLiter: f.NumPtr(capacityField),
	}
}

func (d *Draft) validate() error {
	if d.Brand == "" {
		return errors.New("missing required field Brand")
	}
	if d.Model == "" {
		return errors.New("missing required field Model")
	}
	if d.Variant == "" {
		return errors.New("missing required field Variant")
	}
	if d.Years.From != 0 && d.Years.To != 0 && d.Years.From > d.Years.To {
		return errors.New("YearFrom is greater than YearTo")
	}
	if len(d.Spec.Parts) == 1 && d.Spec.Parts[0].Number == "" {
		return errors.New("a replacement part needs a PartNumber")
	}
	if len(d.Spec.Tires) == 1 && d.Spec.Tires[0].Position == "" {
		return errors.New("a tire spec needs a TirePosition")
	}
	return nil
}

func (d *Draft) key() string {
	return importer.NaturalKey(d.Brand, d.Model, d.Variant)
}
