package render

import (
	"fmt"
	"strings"
)

// expandTableRows duplicates the template table row containing the repeating
// section tag once per bound row, substituting that row's fields into each
// copy. Returns the new document XML and the number of row-field occurrences
// written. A document without the section tag is left untouched.
func expandTableRows(doc string, delims delimiters, repeatKey string, rows []map[string]string, breaks bool) (string, int, error) {
	repeatTag := delims.wrap(repeatKey)
	start, end := xmlAwareIndex(doc, repeatTag)
	if start == -1 {
		return doc, 0, nil
	}

	rowStart := lastRowOpener(doc[:start])
	rowEnd := strings.Index(doc[end:], "</w:tr>")
	if rowStart == -1 || rowEnd == -1 {
		return "", 0, fmt.Errorf("repeating section tag %s is not inside a table row", repeatTag)
	}
	rowEnd = end + rowEnd + len("</w:tr>")

	templateRow := doc[rowStart:rowEnd]
	// The section tag itself must not survive into the expanded rows.
	templateRow, _ = xmlAwareReplaceAll(templateRow, repeatTag, "")

	written := 0
	var expanded strings.Builder
	for _, row := range rows {
		rowXML := templateRow
		for key, value := range row {
			var n int
			rowXML, n = substitutePlaceholder(rowXML, delims.wrap(key), value, breaks)
			if n > 0 {
				written++
			}
		}
		expanded.WriteString(rowXML)
	}

	return doc[:rowStart] + expanded.String() + doc[rowEnd:], written, nil
}

// lastRowOpener returns the offset of the last <w:tr> opening tag in doc.
// The name must end at a tag boundary so row-property tags like <w:trPr>
// and <w:trHeight> are not mistaken for the row itself.
func lastRowOpener(doc string) int {
	for from := len(doc); from > 0; {
		i := strings.LastIndex(doc[:from], "<w:tr")
		if i == -1 {
			return -1
		}
		after := i + len("<w:tr")
		if after < len(doc) && (doc[after] == '>' || doc[after] == ' ') {
			return i
		}
		from = i
	}
	return -1
}
