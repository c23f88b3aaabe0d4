// Package resolve flattens a nested form payload into the placeholder map
// consumed by the renderer, using a declarative field-to-placeholder schema.
package resolve

import (
	"fmt"

	"VP-RPT/internal/docstore"
	"VP-RPT/internal/models"
)

// sentinel value treated as "not provided" when counting populated fields
const notApplicable = "N/A"

// ImageRef points a placeholder at an uploaded image blob with the pixel
// dimensions it should be embedded at.
type ImageRef struct {
	Name   string
	Width  int
	Height int
}

// Resolved is the renderer-ready output: flat scalar values, the rows of the
// one repeating section, image bindings, and the count of populated fields.
type Resolved struct {
	Values    map[string]string
	Rows      []map[string]string
	Images    map[string]ImageRef
	RepeatKey string
	Populated int
}

// Resolve walks the schema over formData. Every schema-declared field gets an
// entry in the flat map, defaulting to "" when absent; the populated counter
// advances only for non-empty, non-"N/A" values. Dimension or type mismatches
// never fail resolution — they produce empty entries.
func Resolve(schema Schema, formData map[string]any, imageOptions []models.ImageOption) Resolved {
	out := Resolved{
		Values:    make(map[string]string),
		Images:    make(map[string]ImageRef),
		RepeatKey: schema.RepeatKey,
	}

	for _, m := range schema.Fields {
		value := lookupString(formData, m.Section, m.Field)
		key := docstore.NormalizePlaceholder(m.Placeholder)
		out.Values[key] = value
		if value != "" && value != notApplicable {
			out.Populated++
		}
	}

	for tag, text := range schema.GlobalContent {
		key := docstore.NormalizePlaceholder(tag)
		out.Values[key] = text
		if text != "" && text != notApplicable {
			out.Populated++
		}
	}

	out.Rows = resolveRows(schema, formData)
	out.Images = resolveImages(schema, formData, imageOptions)

	return out
}

func resolveRows(schema Schema, formData map[string]any) []map[string]string {
	if schema.RepeatSection == "" {
		return nil
	}
	raw, ok := formData[schema.RepeatSection].([]any)
	if !ok {
		return nil
	}

	rows := make([]map[string]string, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		row := make(map[string]string, len(schema.RowFields))
		for _, m := range schema.RowFields {
			row[docstore.NormalizePlaceholder(m.Placeholder)] = asString(fields[m.Field])
		}
		rows = append(rows, row)
	}
	return rows
}

func resolveImages(schema Schema, formData map[string]any, imageOptions []models.ImageOption) map[string]ImageRef {
	images := make(map[string]ImageRef)
	if schema.ImagesSection == "" {
		return images
	}
	section, ok := formData[schema.ImagesSection].(map[string]any)
	if !ok {
		return images
	}

	dims := make(map[string]models.ImageOption, len(imageOptions))
	for _, opt := range imageOptions {
		dims[docstore.NormalizePlaceholder(opt.Placeholder)] = opt
	}

	for tag, v := range section {
		name := asString(v)
		if name == "" {
			continue
		}
		key := docstore.NormalizePlaceholder(tag)
		ref := ImageRef{Name: name}
		if opt, ok := dims[key]; ok {
			ref.Width = opt.Width
			ref.Height = opt.Height
		}
		images[key] = ref
	}
	return images
}

func lookupString(formData map[string]any, section, field string) string {
	sec, ok := formData[section].(map[string]any)
	if !ok {
		return ""
	}
	return asString(sec[field])
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing ".0".
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", val)
	}
}
