// Package render produces filled .docx reports from a template blob and a
// resolved placeholder mapping. Substitution is attempted under two delimiter
// syntaxes and optional line-break normalization, in a fixed fallback order;
// each attempt starts over from the pristine template bytes.
package render

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type delimiters struct {
	Open  string
	Close string
}

func (d delimiters) wrap(key string) string {
	return d.Open + key + d.Close
}

var (
	primaryDelims  = delimiters{Open: "{{", Close: "}}"}
	fallbackDelims = delimiters{Open: "{%", Close: "%}"}
)

type attemptConfig struct {
	delims          delimiters
	normalizeBreaks bool
}

// The fixed attempt order: primary delimiters plain, primary with line-break
// normalization, then the fallback delimiter pair with normalization.
var attemptSequence = []attemptConfig{
	{delims: primaryDelims, normalizeBreaks: false},
	{delims: primaryDelims, normalizeBreaks: true},
	{delims: fallbackDelims, normalizeBreaks: true},
}

// Image is a bound image placeholder value: raw bytes plus the pixel size it
// is embedded at. Zero dimensions fall back to 400x300.
type Image struct {
	Bytes  []byte
	Ext    string
	Width  int
	Height int
}

// Input is the resolved placeholder mapping for one render. ImageKeys lists
// every known image placeholder key, bound or not: an image tag found in the
// document with no binding is a hard failure, unlike text tags which blank.
type Input struct {
	Values    map[string]string
	Rows      []map[string]string
	RepeatKey string
	Images    map[string]Image
	ImageKeys []string
	Populated int
}

// Result is a successful render. ReplacedCount is the resolver's populated
// fields plus the row-field occurrences written during table expansion.
type Result struct {
	Bytes          []byte
	ReplacedCount  int
	TextReplaced   bool
	ImagesReplaced bool
}

type Renderer struct {
	log zerolog.Logger
}

func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{log: log.With().Str("component", "renderer").Logger()}
}

// Render runs the attempt sequence until one succeeds. When all are
// exhausted, the returned *RenderError reports the first failure's
// explanation as its message.
func (r *Renderer) Render(template []byte, in Input) (*Result, error) {
	var failures []*AttemptError

	for i, cfg := range attemptSequence {
		result, err := r.renderOnce(template, in, cfg)
		if err == nil {
			r.log.Info().Int("attempt", i+1).Int("replaced", result.ReplacedCount).
				Str("delimiters", cfg.delims.Open+cfg.delims.Close).Msg("render succeeded")
			return result, nil
		}

		r.log.Warn().Int("attempt", i+1).Err(err).Msg("render attempt failed")
		failures = append(failures, &AttemptError{
			Attempt:     i + 1,
			Explanation: err.Error(),
			Err:         err,
		})
	}

	return nil, &RenderError{Attempts: failures}
}

func (r *Renderer) renderOnce(template []byte, in Input, cfg attemptConfig) (*Result, error) {
	st, err := newStage(template)
	if err != nil {
		return nil, err
	}
	defer st.cleanup()

	doc, err := st.readPart(documentPart)
	if err != nil {
		return nil, err
	}

	if err := checkWellFormed(doc, cfg.delims); err != nil {
		return nil, err
	}

	// The tag set is fixed before any substitution so that delimiter pairs
	// arriving inside substituted values are never treated as placeholders.
	templateTags := collectTags(doc, cfg.delims)

	// An image tag with no bound value signals a tag/key mismatch, not an
	// intentional blank: it fails the attempt no matter which delimiter
	// syntax it was written in, so the image is never silently omitted.
	for _, key := range in.ImageKeys {
		if _, bound := in.Images[key]; bound {
			continue
		}
		for _, d := range []delimiters{primaryDelims, fallbackDelims} {
			tag := d.wrap(key)
			if s, _ := xmlAwareIndex(doc, tag); s != -1 {
				return nil, fmt.Errorf("image placeholder %s has no bound image", tag)
			}
		}
	}

	rowCount := 0
	if in.RepeatKey != "" {
		doc, rowCount, err = expandTableRows(doc, cfg.delims, in.RepeatKey, in.Rows, cfg.normalizeBreaks)
		if err != nil {
			return nil, err
		}
	}

	imagesReplaced := false
	if len(in.ImageKeys) > 0 {
		ins, err := newImageInserter(st)
		if err != nil {
			return nil, err
		}
		for _, key := range in.ImageKeys {
			img, bound := in.Images[key]
			if !bound {
				continue
			}

			var found bool
			doc, found, err = ins.insert(doc, cfg.delims.wrap(key), img)
			if err != nil {
				return nil, err
			}
			if found {
				imagesReplaced = true
			}
		}
		if err := ins.flush(); err != nil {
			return nil, err
		}
	}
	// Images supplied but none substituted means the tags exist under a
	// different delimiter syntax, not that the template lacks them.
	if len(in.Images) > 0 && !imagesReplaced {
		return nil, fmt.Errorf("no image placeholder matched the %s...%s delimiters", cfg.delims.Open, cfg.delims.Close)
	}

	for key, value := range in.Values {
		doc, _ = substitutePlaceholder(doc, cfg.delims.wrap(key), value, cfg.normalizeBreaks)
	}

	doc = blankUnboundTags(doc, cfg.delims, templateTags, in.Values)

	if err := st.writePart(documentPart, doc); err != nil {
		return nil, err
	}

	out, err := st.rezip()
	if err != nil {
		return nil, err
	}

	return &Result{
		Bytes:          out,
		ReplacedCount:  in.Populated + rowCount,
		TextReplaced:   in.Populated > 0,
		ImagesReplaced: imagesReplaced,
	}, nil
}

func substitutePlaceholder(content, tag, value string, breaks bool) (string, int) {
	repl := xmlEscape(value)
	if breaks {
		repl = strings.ReplaceAll(repl, "\r\n", "\n")
		repl = strings.ReplaceAll(repl, "\n", `</w:t><w:br/><w:t xml:space="preserve">`)
	}
	return xmlAwareReplaceAll(content, tag, repl)
}

// checkWellFormed rejects a document whose visible text contains an opening
// delimiter with no closing one — the malformed-placeholder case that sends
// the renderer to its next attempt.
func checkWellFormed(doc string, delims delimiters) error {
	text := stripTags(doc)
	for {
		openIdx := strings.Index(text, delims.Open)
		if openIdx == -1 {
			return nil
		}
		rest := text[openIdx+len(delims.Open):]
		closeIdx := strings.Index(rest, delims.Close)
		if closeIdx == -1 {
			return fmt.Errorf("malformed placeholder: %q is never closed", delims.Open)
		}
		text = rest[closeIdx+len(delims.Close):]
	}
}

// collectTags returns every delimiter-bounded tag visible in the document's
// text, deduplicated, in order of first appearance.
func collectTags(doc string, delims delimiters) []string {
	text := stripTags(doc)
	seen := make(map[string]bool)
	var tags []string
	for {
		openIdx := strings.Index(text, delims.Open)
		if openIdx == -1 {
			return tags
		}
		rest := text[openIdx:]
		closeIdx := strings.Index(rest[len(delims.Open):], delims.Close)
		if closeIdx == -1 {
			return tags
		}
		tagLen := len(delims.Open) + closeIdx + len(delims.Close)
		tag := rest[:tagLen]
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
		text = rest[tagLen:]
	}
}

// blankUnboundTags erases the template's unbound placeholders after
// substitution. Only tags collected from the pristine document are candidates,
// and tags whose key has a bound value are skipped, so user content that
// happens to contain a delimiter pair always survives to the output.
func blankUnboundTags(doc string, delims delimiters, tags []string, values map[string]string) string {
	for _, tag := range tags {
		key := strings.TrimSuffix(strings.TrimPrefix(tag, delims.Open), delims.Close)
		if _, bound := values[key]; bound {
			continue
		}
		doc, _ = xmlAwareReplaceAll(doc, tag, "")
	}
	return doc
}
