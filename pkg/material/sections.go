package material

// Section titles, in report order.
const (
	SectionCore      = "Core Details"
	SectionTechnical = "Technical Specifications"
	SectionLogistics = "Logistics / Purchase"
	SectionLifecycle = "Lifecycle / TMS"
)

// PlaceholderNotSet is shown for an unrecorded installation status.
const PlaceholderNotSet = "Not set"

// Field is one label/value row of a report section.
//
// Value holds the raw field value: a string, float64, int or nil. Absent
// optional numbers are nil, never a typed nil pointer. Placeholder overrides
// the renderer's default placeholder when non-empty.
type Field struct {
	Label       string
	Value       any
	Placeholder string
}

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// Sections returns the four report sections for r in fixed order.
// A nil record yields the same table with every value absent.
func Sections(r *Record) []Section {
	if r == nil {
		r = &Record{}
	}
	return []Section{
		{
			Title: SectionCore,
			Fields: []Field{
				{Label: "Material ID", Value: r.MaterialID},
				{Label: "Manufacturer ID", Value: r.ManufacturerID},
				{Label: "Manufacturer Name", Value: r.ManufacturerName},
				{Label: "Fitting Type", Value: r.FittingType},
			},
		},
		{
			Title: SectionTechnical,
			Fields: []Field{
				{Label: "Drawing Number", Value: r.DrawingNumber},
				{Label: "Material Specification", Value: r.MaterialSpec},
				{Label: "Weight (kg)", Value: optFloat(r.WeightKg)},
				{Label: "Board Gauge", Value: r.BoardGauge},
				{Label: "Manufacturing Date", Value: r.ManufacturingDate},
				{Label: "Expected Life (years)", Value: optFloat(r.ExpectedLifeYears)},
			},
		},
		{
			Title: SectionLogistics,
			Fields: []Field{
				{Label: "Purchase Order Number", Value: r.PurchaseOrderNumber},
				{Label: "Batch Number", Value: r.BatchNumber},
				{Label: "Depot Code", Value: r.DepotCode},
				{Label: "Depot Entry Date", Value: r.DepotEntryDate},
				{Label: "UDM Lot Number", Value: r.UDMLotNumber},
				{Label: "Inspection Officer", Value: r.InspectionOfficer},
			},
		},
		{
			Title: SectionLifecycle,
			Fields: []Field{
				{Label: "TMS Track ID", Value: r.TMSTrackID},
				{Label: "GPS Location", Value: r.GPSLocation},
				{Label: "Installation Status", Value: string(r.InstallationStatus), Placeholder: PlaceholderNotSet},
				{Label: "Dispatch Date", Value: r.DispatchDate},
				{Label: "Warranty Expiry", Value: r.WarrantyExpiry},
				{Label: "Fault Count", Value: optInt(r.FailureCount)},
				{Label: "Last Maintenance Date", Value: r.LastMaintenanceDate},
				{Label: "Maintenance Notes", Value: r.MaintenanceNotes},
			},
		},
	}
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
