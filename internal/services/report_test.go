package services

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/docstore"
	"VP-RPT/internal/models"
	"VP-RPT/internal/render"
	"VP-RPT/internal/resolve"
	"VP-RPT/internal/storage"
	"VP-RPT/internal/templates"
)

const testContentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const testRootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const testDocumentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string]string{
		"[Content_Types].xml":          testContentTypesXML,
		"_rels/.rels":                  testRootRelsXML,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": testDocumentRelsXML,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func extractDocumentXML(t *testing.T, docx []byte) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var out bytes.Buffer
		_, err = out.ReadFrom(rc)
		require.NoError(t, err)
		return out.String()
	}
	t.Fatal("word/document.xml not found")
	return ""
}

type reportFixture struct {
	service *ReportService
	store   *storage.MemoryStore
	repo    *templates.Repository
	history *docstore.HistoryStore
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	store := storage.NewMemoryStore()
	log := zerolog.Nop()
	repo := templates.NewRepository(store, log)
	history := docstore.NewHistoryStore(store, log)
	imageOptions := docstore.NewImageOptionStore(store)

	return &reportFixture{
		service: NewReportService(store, repo, render.NewRenderer(log), history, imageOptions, resolve.DefaultSchema(), log),
		store:   store,
		repo:    repo,
		history: history,
	}
}

func TestGenerateReportEndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	template := buildDocx(t, `<w:p><w:r><w:t xml:space="preserve">Address: {{Replace_Address}}</w:t></w:r></w:p>`)
	_, err := f.repo.Upload(ctx, "valuation.docx", template)
	require.NoError(t, err)

	draft := models.Draft{
		DraftID:         "draft-1",
		PropertyAddress: "12 Test St",
		FormData: map[string]any{
			"Info": map[string]any{"Property Address": "12 Test St"},
		},
	}

	result, err := f.service.Generate(ctx, draft, "valuation.docx")
	require.NoError(t, err)

	// The populated count covers every non-empty resolved scalar: the address
	// plus the two global content entries in the default schema.
	assert.Equal(t, 3, result.ReplacedCount)
	assert.True(t, strings.HasPrefix(result.ReportPath, templates.ReportPrefix))
	assert.True(t, strings.HasSuffix(result.ReportPath, ".docx"))
	assert.True(t, strings.HasPrefix(result.DataURI, "data:"+docxContentType+";base64,"))
	assert.True(t, f.store.Exists(result.ReportPath))

	stored, err := f.store.Read(ctx, result.ReportPath)
	require.NoError(t, err)
	doc := extractDocumentXML(t, stored)
	assert.Contains(t, doc, "Address: 12 Test St")
	assert.NotContains(t, doc, "{{Replace_Address}}")

	records, err := f.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "draft-1", records[0].DraftID)
	assert.Equal(t, result.ReportPath, records[0].ReportPath)
	assert.True(t, records[0].IfReplaceText)
	assert.False(t, records[0].IfReplaceImage)
}

func TestGenerateMalformedTemplateIsRenderError(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)

	template := buildDocx(t, `<w:p><w:r><w:t xml:space="preserve">Broken {{Replace_Address and {%also broken</w:t></w:r></w:p>`)
	_, err := f.repo.Upload(ctx, "broken.docx", template)
	require.NoError(t, err)

	_, err = f.service.Generate(ctx, models.Draft{PropertyAddress: "12 Test St"}, "broken.docx")
	require.Error(t, err)
	assert.Equal(t, apperr.KindRender, apperr.KindOf(err))

	records, err := f.history.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "failed renders must not be recorded in history")
}

func TestGenerateMissingTemplateIsNotFound(t *testing.T) {
	f := newReportFixture(t)
	_, err := f.service.Generate(context.Background(), models.Draft{PropertyAddress: "12 Test St"}, "missing.docx")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFetchReportRejectsPathSegments(t *testing.T) {
	f := newReportFixture(t)
	for _, name := range []string{"", "../drafts.json", "a/b.docx"} {
		_, err := f.service.FetchReport(context.Background(), name)
		require.Error(t, err, "name %q", name)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}
}
