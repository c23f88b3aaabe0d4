package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/storage"
)

func newTestRepo() (*Repository, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewRepository(store, zerolog.Nop()), store
}

func TestUploadListFetchRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	data := []byte("PK docx bytes")
	info, err := repo.Upload(ctx, "valuation.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "valuation.docx", info.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "valuation.docx", list[0].Name)

	got, err := repo.Fetch(ctx, "valuation.docx")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestUploadRejectsNonDocx(t *testing.T) {
	repo, _ := newTestRepo()
	_, err := repo.Upload(context.Background(), "valuation.pdf", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestUploadOverwritesSameName(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	_, err := repo.Upload(ctx, "valuation.docx", []byte("v1"))
	require.NoError(t, err)
	_, err = repo.Upload(ctx, "valuation.docx", []byte("v2"))
	require.NoError(t, err)

	got, err := repo.Fetch(ctx, "valuation.docx")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListSkipsNonDocxObjects(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()

	require.NoError(t, store.Write(ctx, TemplatePrefix+"notes.txt", []byte("x"), "text/plain"))
	require.NoError(t, store.Write(ctx, TemplatePrefix+"valuation.docx", []byte("x"), docxContentType))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "valuation.docx", list[0].Name)
}

func TestFetchMissingTemplateIsNotFound(t *testing.T) {
	repo, _ := newTestRepo()
	_, err := repo.Fetch(context.Background(), "missing.docx")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	_, err := repo.Upload(ctx, "valuation.docx", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "valuation.docx"))
	require.NoError(t, repo.Delete(ctx, "valuation.docx"))
}

func TestFileNameTraversalRejected(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo()

	for _, name := range []string{"", "../secret.docx", "a/b.docx", `a\b.docx`} {
		_, err := repo.Fetch(ctx, name)
		require.Error(t, err, "name %q", name)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}
}

func TestUploadImageGeneratesName(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepo()

	info, err := repo.UploadImage(ctx, "front photo.PNG", []byte("png bytes"), "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(info.Name, ".png"), "name %q keeps lowercased extension", info.Name)
	assert.Len(t, strings.TrimSuffix(info.Name, ".png"), 16, "8 random bytes hex-encoded")
	assert.Equal(t, "image/png", store.ContentType(ImagePrefix+info.Name))

	got, err := repo.FetchImage(ctx, info.Name)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), got)
}

func TestUploadImageRequiresExtension(t *testing.T) {
	repo, _ := newTestRepo()
	_, err := repo.UploadImage(context.Background(), "noext", []byte("x"), "image/png")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}
