// Package vehicle is the vehicle-specification import plug-in: the column
// schema, draft shape, structural checks and merge rules for vehicle
// variants and their brand/model sub-entities. The generic pipeline order
// lives in the importer package.
package vehicle

import (
	"github.com/otohub/catalog-import/internal/catalog"
	"github.com/otohub/catalog-import/internal/importer"
	"github.com/otohub/catalog-import/internal/store/postgres"
)

// DomainKey identifies this domain in the registry and the HTTP API.
const DomainKey = "vehicle"

// One row carries at most one replacement part and one tire fitment; lists
// accumulate across rows through the union merge.
func columns() []importer.FieldSpec {
	return []importer.FieldSpec{
		{Column: "Brand", Kind: importer.KindText, Required: true},
		{Column: "Model", Kind: importer.KindText, Required: true},
		{Column: "Variant", Kind: importer.KindText, Required: true},
		{Column: "EngineCode", Kind: importer.KindText},
		{Column: "Transmission", Kind: importer.KindEnum, EnumValues: catalog.Transmissions()},
		{Column: "YearFrom", Kind: importer.KindInt},
		{Column: "YearTo", Kind: importer.KindInt},
		{Column: "EngineType", Kind: importer.KindText},

		{Column: "OilViscosity", Kind: importer.KindText},
		{Column: "OilCapacity", Kind: importer.KindNumber},
		{Column: "TransOilType", Kind: importer.KindText},
		{Column: "TransOilCapacity", Kind: importer.KindNumber},
		{Column: "DiffOilType", Kind: importer.KindText},
		{Column: "DiffOilCapacity", Kind: importer.KindNumber},
		{Column: "CoolantType", Kind: importer.KindText},
		{Column: "CoolantCapacity", Kind: importer.KindNumber},
		{Column: "RefrigerantType", Kind: importer.KindText},
		{Column: "RefrigerantCapacity", Kind: importer.KindNumber},

		{Column: "PartCategory", Kind: importer.KindText},
		{Column: "PartNumber", Kind: importer.KindText},
		{Column: "PartBrands", Kind: importer.KindList},
		{Column: "PartIntervalKM", Kind: importer.KindNumber},

		{Column: "TirePosition", Kind: importer.KindText},
		{Column: "TireSize", Kind: importer.KindText},
		{Column: "TirePressurePSI", Kind: importer.KindNumber},
		{Column: "TireBrands", Kind: importer.KindList},

		{Column: "BatteryType", Kind: importer.KindText},
		{Column: "BatteryCapacityAH", Kind: importer.KindNumber},
		{Column: "BrakeFront", Kind: importer.KindText},
		{Column: "BrakeRear", Kind: importer.KindText},
		{Column: "SuspensionFront", Kind: importer.KindText},
		{Column: "SuspensionRear", Kind: importer.KindText},
	}
}

func init() {
	importer.Register(importer.Definition{
		Info: importer.DomainInfo{
			Key:   DomainKey,
			Label: "Vehicle Variants",
		},
		Columns: columns(),
		Build: func(db importer.DBTX) importer.Pipeline {
			return New(postgres.NewVehicleStore(db))
		},
	})
}
