package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// stage is one unpacked docx archive in a temp directory. Every rendering
// attempt gets a fresh stage from the pristine template bytes.
type stage struct {
	dir string
}

func newStage(template []byte) (*stage, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("render_docx_%d", time.Now().UnixNano()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	st := &stage{dir: dir}
	if err := st.unzip(template); err != nil {
		st.cleanup()
		return nil, err
	}
	return st, nil
}

func (st *stage) unzip(template []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return fmt.Errorf("failed to open docx archive: %w", err)
	}

	for _, file := range reader.File {
		if err := st.extractFile(file); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func (st *stage) extractFile(file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	path := filepath.Join(st.dir, file.Name)

	if file.FileInfo().IsDir() {
		return os.MkdirAll(path, file.FileInfo().Mode())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, rc)
	return err
}

func (st *stage) readPart(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(st.dir, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func (st *stage) writePart(name, content string) error {
	if err := os.WriteFile(filepath.Join(st.dir, filepath.FromSlash(name)), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (st *stage) writeBinaryPart(name string, data []byte) error {
	path := filepath.Join(st.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// rezip packs the staged tree back into docx bytes.
func (st *stage) rezip() ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	err := filepath.Walk(st.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(st.dir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		zipFile, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(zipFile, file)
		return err
	})
	if err != nil {
		zipWriter.Close()
		return nil, fmt.Errorf("failed to repack archive: %w", err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// cleanup is best-effort; a failure here must never mask a render result.
func (st *stage) cleanup() {
	os.RemoveAll(st.dir)
}
