package vehicle

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
)

// memStore is the in-memory Store used to exercise the pipeline without a
// database.
type memStore struct {
	brands   []catalog.Brand
	models   []catalog.Model
	variants []catalog.Variant
	nextID   int
}

func (s *memStore) id() string {
	s.nextID++
	return fmt.Sprintf("id-%d", s.nextID)
}

func (s *memStore) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	return append([]catalog.Brand(nil), s.brands...), nil
}

func (s *memStore) ListModels(ctx context.Context) ([]catalog.Model, error) {
	return append([]catalog.Model(nil), s.models...), nil
}

func (s *memStore) ListVariants(ctx context.Context) ([]catalog.Variant, error) {
	return append([]catalog.Variant(nil), s.variants...), nil
}

func (s *memStore) CreateBrand(ctx context.Context, b catalog.Brand) (catalog.Brand, error) {
	b.ID = s.id()
	s.brands = append(s.brands, b)
	return b, nil
}

func (s *memStore) CreateModel(ctx context.Context, m catalog.Model) (catalog.Model, error) {
	m.ID = s.id()
	s.models = append(s.models, m)
	return m, nil
}

func (s *memStore) CreateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	v.ID = s.id()
	s.variants = append(s.variants, v)
	return v, nil
}

func (s *memStore) UpdateVariant(ctx context.Context, v catalog.Variant) (catalog.Variant, error) {
	for i := range s.variants {
		if s.variants[i].ID == v.ID {
			s.variants[i] = v
			return v, nil
		}
	}
	return catalog.Variant{}, fmt.Errorf("variant %s not found", v.ID)
}

func row(line int, cells map[string]string) importer.RawRow {
	return importer.RawRow{Line: line, Cells: cells}
}

func runImport(t *testing.T, store *memStore, rows []importer.RawRow) *importer.Report {
	t.Helper()
	report, err := importer.NewRunner(DomainKey, New(store), nil).Run(context.Background(), rows)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return report
}

func avanzaRow(line int) importer.RawRow {
	return row(line, map[string]string{
		"brand":        "Toyota",
		"model":        "Avanza",
		"variant":      "1.5 G CVT",
		"transmission": "CVT",
		"yearfrom":     "2021",
		"yearto":       "2024",
		"oilviscosity": "0W-20",
		"oilcapacity":  "4,0",
	})
}

func TestImportBuildsIdentityChainAndSpecTree(t *testing.T) {
	store := &memStore{}

	report := runImport(t, store, []importer.RawRow{avanzaRow(2)})
	if report.Created != 1 {
		t.Fatalf("Created = %d, want 1", report.Created)
	}

	if len(store.brands) != 1 || len(store.models) != 1 || len(store.variants) != 1 {
		t.Fatalf("store = %d brands / %d models / %d variants, want 1 of each",
			len(store.brands), len(store.models), len(store.variants))
	}
	if store.models[0].BrandID != store.brands[0].ID {
		t.Error("model not linked to its brand")
	}

	v := store.variants[0]
	if v.ModelID != store.models[0].ID {
		t.Error("variant not linked to its model")
	}
	if v.Transmission != catalog.TransmissionCVT {
		t.Errorf("Transmission = %q, want CVT", v.Transmission)
	}
	if v.Years != (catalog.YearRange{From: 2021, To: 2024}) {
		t.Errorf("Years = %+v", v.Years)
	}

	// "4,0" parses as the decimal 4.0 liters.
	oil := v.Spec.EngineOil
	if oil == nil || oil.Type != "0W-20" || oil.CapacityLiter == nil || *oil.CapacityLiter != 4.0 {
		t.Errorf("EngineOil = %+v, want 0W-20 / 4.0", oil)
	}
	// Sections the row never touched stay absent.
	if v.Spec.Coolant != nil || v.Spec.Battery != nil || v.Spec.Parts != nil {
		t.Errorf("untouched sections present: %+v", v.Spec)
	}
}

func TestReimportUpdatesInPlace(t *testing.T) {
	store := &memStore{}

	runImport(t, store, []importer.RawRow{avanzaRow(2)})
	snapshot := append([]catalog.Variant(nil), store.variants...)

	report := runImport(t, store, []importer.RawRow{avanzaRow(2)})
	if report.Updated != 1 || report.Created != 0 {
		t.Fatalf("second run = created %d / updated %d, want pure update", report.Created, report.Updated)
	}
	if len(store.variants) != 1 {
		t.Fatalf("re-import appended a variant: %d variants", len(store.variants))
	}
	if !reflect.DeepEqual(store.variants, snapshot) {
		t.Errorf("re-import changed the variant:\n got %+v\nwant %+v", store.variants, snapshot)
	}
}

func TestMatchIgnoresCaseAndWhitespace(t *testing.T) {
	store := &memStore{}
	runImport(t, store, []importer.RawRow{avanzaRow(2)})

	report := runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": " toyota ", "model": "AVANZA", "variant": "1.5 g  cvt",
			"coolanttype": "SLLC",
		}),
	})

	if report.Updated != 1 {
		t.Fatalf("Updated = %d, want match despite casing", report.Updated)
	}
	v := store.variants[0]
	if v.Brand != "Toyota" {
		t.Errorf("Brand = %q, want original casing kept", v.Brand)
	}
	if v.Spec.Coolant == nil || v.Spec.Coolant.Type != "SLLC" {
		t.Errorf("Coolant section not attached: %+v", v.Spec.Coolant)
	}
	// Sections the second row omitted survive the merge.
	if v.Spec.EngineOil == nil || v.Spec.EngineOil.Type != "0W-20" {
		t.Errorf("EngineOil lost in merge: %+v", v.Spec.EngineOil)
	}
}

func TestYearRangeWidens(t *testing.T) {
	store := &memStore{}
	runImport(t, store, []importer.RawRow{avanzaRow(2)})

	runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"yearfrom": "2019", "yearto": "2022",
		}),
	})

	if got := store.variants[0].Years; got != (catalog.YearRange{From: 2019, To: 2024}) {
		t.Errorf("Years = %+v, want widened [2019, 2024]", got)
	}
}

func TestPartsMergeByNumber(t *testing.T) {
	store := &memStore{}

	runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"partcategory": "oil filter", "partnumber": "90915-YZZE1",
			"partbrands": "Toyota", "partintervalkm": "10000",
		}),
	})

	// Same part number: brands union onto the one entry.
	runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"partnumber": "90915-YZZE1", "partbrands": "Denso",
		}),
	})

	// Different number: a second entry appends.
	runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"partcategory": "air filter", "partnumber": "17801-BZ170",
		}),
	})

	parts := store.variants[0].Spec.Parts
	if len(parts) != 2 {
		t.Fatalf("Parts = %+v, want 2 entries", parts)
	}
	if !reflect.DeepEqual(parts[0].Brands, []string{"Toyota", "Denso"}) {
		t.Errorf("part brands = %v, want union", parts[0].Brands)
	}
	if parts[0].Category != "oil filter" || parts[0].IntervalKM == nil || *parts[0].IntervalKM != 10000 {
		t.Errorf("merged entry lost fields: %+v", parts[0])
	}
	if parts[1].Number != "17801-BZ170" {
		t.Errorf("appended entry = %+v", parts[1])
	}
}

func TestTireFitmentsMergeByPosition(t *testing.T) {
	store := &memStore{}

	runImport(t, store, []importer.RawRow{
		row(2, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"tireposition": "front", "tiresize": "185/65R15", "tirepressurepsi": "33",
		}),
		row(3, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"tireposition": "FRONT", "tirebrands": "Bridgestone",
		}),
		row(4, map[string]string{
			"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
			"tireposition": "rear", "tiresize": "185/65R15",
		}),
	})

	tires := store.variants[0].Spec.Tires
	if len(tires) != 2 {
		t.Fatalf("Tires = %+v, want front and rear", tires)
	}
	front := tires[0]
	if front.Size != "185/65R15" || !reflect.DeepEqual(front.Brands, []string{"Bridgestone"}) {
		t.Errorf("front fitment = %+v, want size kept and brands attached", front)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		cells   map[string]string
		wantMsg string
	}{
		{
			name:    "missing brand",
			cells:   map[string]string{"model": "Avanza", "variant": "1.5 G CVT"},
			wantMsg: "missing required field Brand",
		},
		{
			name:    "missing variant",
			cells:   map[string]string{"brand": "Toyota", "model": "Avanza"},
			wantMsg: "missing required field Variant",
		},
		{
			name: "inverted year range",
			cells: map[string]string{
				"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
				"yearfrom": "2024", "yearto": "2019",
			},
			wantMsg: "YearFrom is greater than YearTo",
		},
		{
			name: "part without number",
			cells: map[string]string{
				"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
				"partcategory": "oil filter",
			},
			wantMsg: "a replacement part needs a PartNumber",
		},
		{
			name: "tire spec without position",
			cells: map[string]string{
				"brand": "Toyota", "model": "Avanza", "variant": "1.5 G CVT",
				"tiresize": "185/65R15",
			},
			wantMsg: "a tire spec needs a TirePosition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			report := runImport(t, store, []importer.RawRow{row(2, tt.cells)})

			if report.Skipped != 1 {
				t.Fatalf("Skipped = %d, want 1", report.Skipped)
			}
			if got := report.Rows[0].Message; got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
			if len(store.variants) != 0 {
				t.Error("invalid row reached the store")
			}
		})
	}
}

func TestWithinBatchModelReuse(t *testing.T) {
	store := &memStore{}

	report := runImport(t, store, []importer.RawRow{
		row(2, map[string]string{"brand": "Toyota", "model": "Avanza", "variant": "1.3 E MT"}),
		row(3, map[string]string{"brand": "toyota", "model": "avanza", "variant": "1.5 G CVT"}),
	})

	if report.Created != 2 {
		t.Fatalf("Created = %d, want 2", report.Created)
	}
	if len(store.brands) != 1 || len(store.models) != 1 {
		t.Errorf("store = %d brands / %d models, want 1 each", len(store.brands), len(store.models))
	}
}
