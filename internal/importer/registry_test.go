package importer

import "testing"

func testDefinition(key string) Definition {
	return Definition{
		Info:    DomainInfo{Key: key, Label: key},
		Columns: []FieldSpec{{Column: "Name", Kind: KindText, Required: true}},
		Build:   func(db DBTX) Pipeline { return &fakePipeline{} },
	}
}

func TestRegistry(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("beta"))
	Register(testDefinition("alpha"))

	if DomainCount() != 2 {
		t.Fatalf("DomainCount() = %d, want 2", DomainCount())
	}

	def, ok := Get("alpha")
	if !ok || def.Info.Key != "alpha" {
		t.Errorf("Get(alpha) = %+v, %v", def, ok)
	}
	if _, ok := Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}

	all := All()
	if len(all) != 2 || all[0].Info.Key != "alpha" || all[1].Info.Key != "beta" {
		t.Errorf("All() not sorted by key: %v", all)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Clear()
	defer Clear()

	Register(testDefinition("tire"))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(testDefinition("tire"))
}
