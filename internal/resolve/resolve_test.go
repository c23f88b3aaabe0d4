package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"VP-RPT/internal/models"
)

func addressOnlySchema() Schema {
	return Schema{
		Fields: []FieldMapping{
			{Section: "Info", Field: "Property Address", Placeholder: "Replace_Address"},
		},
	}
}

func TestResolveMapsFieldToPlaceholder(t *testing.T) {
	formData := map[string]any{
		"Info": map[string]any{"Property Address": "12 Test St"},
	}

	resolved := Resolve(addressOnlySchema(), formData, nil)

	assert.Equal(t, "12 Test St", resolved.Values["Replace_Address"])
	assert.Equal(t, 1, resolved.Populated)
}

func TestResolveMissingFieldDefaultsToEmpty(t *testing.T) {
	resolved := Resolve(addressOnlySchema(), map[string]any{}, nil)

	value, ok := resolved.Values["Replace_Address"]
	assert.True(t, ok, "schema-declared field must always have an entry")
	assert.Equal(t, "", value)
	assert.Equal(t, 0, resolved.Populated)
}

func TestResolveNotApplicableSentinelNotCounted(t *testing.T) {
	formData := map[string]any{
		"Info": map[string]any{"Property Address": "N/A"},
	}

	resolved := Resolve(addressOnlySchema(), formData, nil)

	assert.Equal(t, "N/A", resolved.Values["Replace_Address"])
	assert.Equal(t, 0, resolved.Populated)
}

func TestResolveGlobalContentCounted(t *testing.T) {
	schema := addressOnlySchema()
	schema.GlobalContent = map[string]string{"{{Replace_Disclaimer}}": "For the instructing party only."}

	resolved := Resolve(schema, map[string]any{
		"Info": map[string]any{"Property Address": "12 Test St"},
	}, nil)

	assert.Equal(t, "For the instructing party only.", resolved.Values["Replace_Disclaimer"])
	assert.Equal(t, 2, resolved.Populated)
}

func TestResolveRepeatingSection(t *testing.T) {
	schema := Schema{
		RepeatKey:     "Comparable_Sales",
		RepeatSection: "ComparableSales",
		RowFields: []FieldMapping{
			{Field: "Address", Placeholder: "Sale_Address"},
			{Field: "Sale Price", Placeholder: "Sale_Price"},
		},
	}
	formData := map[string]any{
		"ComparableSales": []any{
			map[string]any{"Address": "1 First Ave", "Sale Price": "$800,000"},
			map[string]any{"Address": "2 Second Ave"},
		},
	}

	resolved := Resolve(schema, formData, nil)

	assert.Len(t, resolved.Rows, 2)
	assert.Equal(t, "1 First Ave", resolved.Rows[0]["Sale_Address"])
	assert.Equal(t, "$800,000", resolved.Rows[0]["Sale_Price"])
	assert.Equal(t, "", resolved.Rows[1]["Sale_Price"])
	assert.Equal(t, "Comparable_Sales", resolved.RepeatKey)
}

func TestResolveImagesCarryConfiguredDimensions(t *testing.T) {
	schema := Schema{ImagesSection: "Images"}
	formData := map[string]any{
		"Images": map[string]any{
			"{{Img_Front}}": "a1b2c3d4e5f60708.png",
			"Img_Rear":      "0807f6e5d4c3b2a1.jpg",
		},
	}
	imageOptions := []models.ImageOption{
		{Placeholder: "Img_Front", Width: 320, Height: 240},
	}

	resolved := Resolve(schema, formData, imageOptions)

	front := resolved.Images["Img_Front"]
	assert.Equal(t, "a1b2c3d4e5f60708.png", front.Name)
	assert.Equal(t, 320, front.Width)
	assert.Equal(t, 240, front.Height)

	rear := resolved.Images["Img_Rear"]
	assert.Equal(t, "0807f6e5d4c3b2a1.jpg", rear.Name)
	assert.Equal(t, 0, rear.Width, "unconfigured dimensions defer to the renderer default")
}

func TestResolveNumericAndBoolValues(t *testing.T) {
	schema := Schema{
		Fields: []FieldMapping{
			{Section: "Property", Field: "Bedrooms", Placeholder: "Replace_Bedrooms"},
			{Section: "Property", Field: "Has Garage", Placeholder: "Replace_Garage"},
		},
	}
	formData := map[string]any{
		"Property": map[string]any{
			"Bedrooms":   float64(4), // JSON numbers decode as float64
			"Has Garage": true,
		},
	}

	resolved := Resolve(schema, formData, nil)

	assert.Equal(t, "4", resolved.Values["Replace_Bedrooms"])
	assert.Equal(t, "Yes", resolved.Values["Replace_Garage"])
}
