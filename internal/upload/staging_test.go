package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() }) //nolint:errcheck
	return form.File["image"][0]
}

func TestStageWritesFileWithGeneratedName(t *testing.T) {
	dir := t.TempDir()
	stager := NewStager(dir, 1<<20)

	staged, err := stager.Stage(fileHeader(t, "photo.png", []byte("png-bytes")))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if filepath.Dir(staged.Path) != dir {
		t.Fatalf("expected file under %s, got %s", dir, staged.Path)
	}
	if !strings.HasSuffix(staged.Path, ".png") {
		t.Fatalf("expected .png suffix, got %s", staged.Path)
	}
	if filepath.Base(staged.Path) == "photo.png" {
		t.Fatal("expected a generated name, not the client-supplied one")
	}

	data, err := os.ReadFile(staged.Path)
	if err != nil {
		t.Fatalf("read staged file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestStagedFileRemove(t *testing.T) {
	stager := NewStager(t.TempDir(), 1<<20)

	staged, err := stager.Stage(fileHeader(t, "photo.jpg", []byte("jpg")))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	if err := staged.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Fatal("expected staged file to be gone")
	}
	// Remove is tolerated on an already-removed file.
	if err := staged.Remove(); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestStageRejectsMissingUpload(t *testing.T) {
	stager := NewStager(t.TempDir(), 1<<20)
	if _, err := stager.Stage(nil); err == nil {
		t.Fatal("expected missing upload to be rejected")
	}
}

func TestStageRejectsUnknownExtension(t *testing.T) {
	stager := NewStager(t.TempDir(), 1<<20)
	if _, err := stager.Stage(fileHeader(t, "malware.exe", []byte("nope"))); err == nil {
		t.Fatal("expected unknown extension to be rejected")
	}
}

func TestStageRejectsOversizedUpload(t *testing.T) {
	stager := NewStager(t.TempDir(), 4)
	if _, err := stager.Stage(fileHeader(t, "big.png", []byte("way too big"))); err == nil {
		t.Fatal("expected oversized upload to be rejected")
	}
}
