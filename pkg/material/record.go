package material

import "strings"

// InstallationStatus is the installation state reported by track staff.
// The zero value means the status was never recorded.
type InstallationStatus string

const (
	StatusInstalled    InstallationStatus = "Installed"
	StatusNotInstalled InstallationStatus = "Not Installed"
)

// Known reports whether s is one of the recognised status values.
func (s InstallationStatus) Known() bool {
	return s == StatusInstalled || s == StatusNotInstalled
}

// Record is one track-fitting material document.
//
// String fields use the empty string for "absent"; numeric fields are
// pointers so that an explicit zero (e.g. zero recorded failures) stays
// distinguishable from a missing value.
type Record struct {
	// Identity
	MaterialID       string `json:"materialId,omitempty" yaml:"materialId,omitempty" toml:"materialId,omitempty" bson:"materialId,omitempty"`
	ManufacturerID   string `json:"manufacturerId,omitempty" yaml:"manufacturerId,omitempty" toml:"manufacturerId,omitempty" bson:"manufacturerId,omitempty"`
	ManufacturerName string `json:"manufacturerName,omitempty" yaml:"manufacturerName,omitempty" toml:"manufacturerName,omitempty" bson:"manufacturerName,omitempty"`

	// Technical
	FittingType       string   `json:"fittingType,omitempty" yaml:"fittingType,omitempty" toml:"fittingType,omitempty" bson:"fittingType,omitempty"`
	DrawingNumber     string   `json:"drawingNumber,omitempty" yaml:"drawingNumber,omitempty" toml:"drawingNumber,omitempty" bson:"drawingNumber,omitempty"`
	MaterialSpec      string   `json:"materialSpec,omitempty" yaml:"materialSpec,omitempty" toml:"materialSpec,omitempty" bson:"materialSpec,omitempty"`
	WeightKg          *float64 `json:"weightKg,omitempty" yaml:"weightKg,omitempty" toml:"weightKg,omitempty" bson:"weightKg,omitempty"`
	BoardGauge        string   `json:"boardGauge,omitempty" yaml:"boardGauge,omitempty" toml:"boardGauge,omitempty" bson:"boardGauge,omitempty"`
	ManufacturingDate string   `json:"manufacturingDate,omitempty" yaml:"manufacturingDate,omitempty" toml:"manufacturingDate,omitempty" bson:"manufacturingDate,omitempty"`
	ExpectedLifeYears *float64 `json:"expectedLifeYears,omitempty" yaml:"expectedLifeYears,omitempty" toml:"expectedLifeYears,omitempty" bson:"expectedLifeYears,omitempty"`

	// Logistics
	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty" yaml:"purchaseOrderNumber,omitempty" toml:"purchaseOrderNumber,omitempty" bson:"purchaseOrderNumber,omitempty"`
	BatchNumber         string `json:"batchNumber,omitempty" yaml:"batchNumber,omitempty" toml:"batchNumber,omitempty" bson:"batchNumber,omitempty"`
	DepotCode           string `json:"depotCode,omitempty" yaml:"depotCode,omitempty" toml:"depotCode,omitempty" bson:"depotCode,omitempty"`
	DepotEntryDate      string `json:"depotEntryDate,omitempty" yaml:"depotEntryDate,omitempty" toml:"depotEntryDate,omitempty" bson:"depotEntryDate,omitempty"`
	UDMLotNumber        string `json:"udmLotNumber,omitempty" yaml:"udmLotNumber,omitempty" toml:"udmLotNumber,omitempty" bson:"udmLotNumber,omitempty"`
	InspectionOfficer   string `json:"inspectionOfficer,omitempty" yaml:"inspectionOfficer,omitempty" toml:"inspectionOfficer,omitempty" bson:"inspectionOfficer,omitempty"`

	// Lifecycle / TMS
	TMSTrackID          string             `json:"tmsTrackId,omitempty" yaml:"tmsTrackId,omitempty" toml:"tmsTrackId,omitempty" bson:"tmsTrackId,omitempty"`
	GPSLocation         string             `json:"gpsLocation,omitempty" yaml:"gpsLocation,omitempty" toml:"gpsLocation,omitempty" bson:"gpsLocation,omitempty"`
	InstallationStatus  InstallationStatus `json:"installationStatus,omitempty" yaml:"installationStatus,omitempty" toml:"installationStatus,omitempty" bson:"installationStatus,omitempty"`
	DispatchDate        string             `json:"dispatchDate,omitempty" yaml:"dispatchDate,omitempty" toml:"dispatchDate,omitempty" bson:"dispatchDate,omitempty"`
	WarrantyExpiry      string             `json:"warrantyExpiry,omitempty" yaml:"warrantyExpiry,omitempty" toml:"warrantyExpiry,omitempty" bson:"warrantyExpiry,omitempty"`
	FailureCount        *int               `json:"failureCount,omitempty" yaml:"failureCount,omitempty" toml:"failureCount,omitempty" bson:"failureCount,omitempty"`
	LastMaintenanceDate string             `json:"lastMaintenanceDate,omitempty" yaml:"lastMaintenanceDate,omitempty" toml:"lastMaintenanceDate,omitempty" bson:"lastMaintenanceDate,omitempty"`
	MaintenanceNotes    string             `json:"maintenanceNotes,omitempty" yaml:"maintenanceNotes,omitempty" toml:"maintenanceNotes,omitempty" bson:"maintenanceNotes,omitempty"`
}

// ID returns the trimmed material id, or "" when absent.
func (r *Record) ID() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.MaterialID)
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building records in code.
func Int(v int) *int { return &v }
