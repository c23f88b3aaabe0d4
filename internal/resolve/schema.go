package resolve

// FieldMapping declares that one leaf field of a form section feeds one flat
// placeholder key. The schema is static: what placeholders exist is decided
// here, what data arrived is decided by the payload at runtime.
type FieldMapping struct {
	Section     string
	Field       string
	Placeholder string
}

// Schema is the full field-to-placeholder declaration for a report template.
type Schema struct {
	Fields []FieldMapping

	// GlobalContent is static boilerplate merged into every resolution,
	// keyed by placeholder.
	GlobalContent map[string]string

	// RepeatKey is the single placeholder bound to the repeating table
	// section; RepeatSection names the form section holding its entries.
	RepeatKey     string
	RepeatSection string
	RowFields     []FieldMapping

	// ImagesSection names the form section mapping image placeholder tags
	// to uploaded image file names.
	ImagesSection string
}

// DefaultSchema maps the standard valuation form.
func DefaultSchema() Schema {
	return Schema{
		Fields: []FieldMapping{
			{Section: "Info", Field: "Property Address", Placeholder: "Replace_Address"},
			{Section: "Info", Field: "Client Name", Placeholder: "Replace_Client"},
			{Section: "Info", Field: "Inspection Date", Placeholder: "Replace_Inspection_Date"},
			{Section: "Info", Field: "Valuation Date", Placeholder: "Replace_Valuation_Date"},
			{Section: "Info", Field: "Report Number", Placeholder: "Replace_Report_Number"},
			{Section: "Property", Field: "Property Type", Placeholder: "Replace_Property_Type"},
			{Section: "Property", Field: "Land Area", Placeholder: "Replace_Land_Area"},
			{Section: "Property", Field: "Floor Area", Placeholder: "Replace_Floor_Area"},
			{Section: "Property", Field: "Year Built", Placeholder: "Replace_Year_Built"},
			{Section: "Property", Field: "Zoning", Placeholder: "Replace_Zoning"},
			{Section: "Property", Field: "Bedrooms", Placeholder: "Replace_Bedrooms"},
			{Section: "Property", Field: "Bathrooms", Placeholder: "Replace_Bathrooms"},
			{Section: "Valuation", Field: "Market Value", Placeholder: "Replace_Market_Value"},
			{Section: "Valuation", Field: "Land Value", Placeholder: "Replace_Land_Value"},
			{Section: "Valuation", Field: "Improvements Value", Placeholder: "Replace_Improvements_Value"},
			{Section: "Valuation", Field: "Valuation Approach", Placeholder: "Replace_Valuation_Approach"},
			{Section: "Commentary", Field: "Location Commentary", Placeholder: "Replace_Location_Commentary"},
			{Section: "Commentary", Field: "Market Commentary", Placeholder: "Replace_Market_Commentary"},
			{Section: "Commentary", Field: "Risk Commentary", Placeholder: "Replace_Risk_Commentary"},
			{Section: "Commentary", Field: "General Comments", Placeholder: "Replace_General_Comments"},
		},
		GlobalContent: map[string]string{
			"Replace_Disclaimer": "This report has been prepared for the exclusive use of the instructing party and may not be relied upon by any other party.",
			"Replace_Firm_Name":  "Valuation Services",
		},
		RepeatKey:     "Comparable_Sales",
		RepeatSection: "ComparableSales",
		RowFields: []FieldMapping{
			{Field: "Address", Placeholder: "Sale_Address"},
			{Field: "Sale Date", Placeholder: "Sale_Date"},
			{Field: "Sale Price", Placeholder: "Sale_Price"},
			{Field: "Comparison", Placeholder: "Sale_Comparison"},
		},
		ImagesSection: "Images",
	}
}
