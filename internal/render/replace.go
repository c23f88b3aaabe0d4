package render

import "strings"

// Word splits literal text across runs, so a placeholder typed as one string
// can arrive as "{{Re" "place_Address}}" separated by XML. The matcher walks
// the raw XML, skipping everything between '<' and '>', and compares only the
// visible characters — the approach carried over from the original document
// processor.

// xmlAwareReplaceAll replaces every occurrence of needle with repl, tolerant
// of XML tags interleaved in the needle's characters. Returns the new content
// and the number of occurrences replaced.
func xmlAwareReplaceAll(content, needle, repl string) (string, int) {
	if needle == "" {
		return content, 0
	}

	// Fast path when the needle is not split by markup.
	if n := strings.Count(content, needle); n > 0 && !splitEligible(content, needle) {
		return strings.ReplaceAll(content, needle, repl), n
	}

	contentRunes := []rune(content)
	needleRunes := []rune(needle)

	var result []rune
	count := 0
	i := 0
	for i < len(contentRunes) {
		if contentRunes[i] == '<' {
			// Never begin a match inside markup.
			end := i
			for end < len(contentRunes) && contentRunes[end] != '>' {
				end++
			}
			if end < len(contentRunes) {
				end++
			}
			result = append(result, contentRunes[i:end]...)
			i = end
			continue
		}

		matched, matchEnd := matchAcrossTags(contentRunes, i, needleRunes)
		if matched {
			result = append(result, []rune(repl)...)
			count++
			i = matchEnd
			continue
		}
		result = append(result, contentRunes[i])
		i++
	}

	if count == 0 {
		return content, 0
	}
	return string(result), count
}

// splitEligible reports whether any occurrence of needle could be split by
// markup, i.e. the simple count may miss matches. A needle found verbatim at
// least once and shorter than any markup gap is still replaced via the slow
// path when tags interleave elsewhere, so be conservative: only take the fast
// path when the document contains no '<' at all between candidate positions.
func splitEligible(content, needle string) bool {
	// The cheap heuristic: if removing all markup changes the match count,
	// some occurrence is split.
	return strings.Count(stripTags(content), needle) != strings.Count(content, needle)
}

// matchAcrossTags tries to match needle starting at startPos, skipping XML
// tags. Returns whether it matched and the position just past the match.
func matchAcrossTags(content []rune, startPos int, needle []rune) (bool, int) {
	needleIdx := 0
	pos := startPos
	inTag := false

	for pos < len(content) && needleIdx < len(needle) {
		char := content[pos]

		if char == '<' {
			inTag = true
		} else if char == '>' {
			inTag = false
		} else if !inTag {
			if char == needle[needleIdx] {
				needleIdx++
			} else {
				return false, startPos
			}
		}

		pos++

		// Bail out if markup has pushed the scan absurdly far past the
		// needle length; prevents quadratic blowups on dense markup.
		if pos-startPos > len(needle)*40 {
			return false, startPos
		}
	}

	return needleIdx == len(needle), pos
}

// xmlAwareIndex returns the raw-XML span [start, end) of the first occurrence
// of needle, or (-1, -1) when absent.
func xmlAwareIndex(content, needle string) (int, int) {
	if needle == "" {
		return -1, -1
	}
	if idx := strings.Index(content, needle); idx != -1 {
		return idx, idx + len(needle)
	}

	contentRunes := []rune(content)
	needleRunes := []rune(needle)

	// Byte offsets per rune index so callers can slice the original string.
	offsets := make([]int, len(contentRunes)+1)
	off := 0
	for i, r := range contentRunes {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(contentRunes)] = off

	inTag := false
	for i := 0; i < len(contentRunes); i++ {
		if contentRunes[i] == '<' {
			inTag = true
		} else if contentRunes[i] == '>' {
			inTag = false
		}
		if inTag || contentRunes[i] == '>' {
			continue
		}
		if matched, end := matchAcrossTags(contentRunes, i, needleRunes); matched {
			return offsets[i], offsets[end]
		}
	}
	return -1, -1
}

// stripTags removes all XML markup, leaving the visible document text.
func stripTags(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	inTag := false
	for _, char := range content {
		if char == '<' {
			inTag = true
		} else if char == '>' {
			inTag = false
		} else if !inTag {
			b.WriteRune(char)
		}
	}
	return b.String()
}

// xmlEscape escapes replacement text for insertion into document.xml.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
