package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lnga")

	writer, err := NewArchiveWriter(path, "run-123")
	if err != nil {
		t.Fatalf("NewArchiveWriter failed: %v", err)
	}
	if err := writer.Add("edges.csv", []byte("Source,Target\nQatar,Japan\n")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := writer.Add("summary.json", []byte(`{"years":11}`)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	runID, entries, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if runID != "run-123" {
		t.Errorf("Expected run ID run-123, got %s", runID)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if !bytes.Equal(entries["edges.csv"], []byte("Source,Target\nQatar,Japan\n")) {
		t.Errorf("edges.csv round trip mismatch: %q", entries["edges.csv"])
	}
}

func TestArchiveCompressesRepetitiveData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lnga")

	writer, err := NewArchiveWriter(path, "run-ratio")
	if err != nil {
		t.Fatalf("NewArchiveWriter failed: %v", err)
	}
	if err := writer.Add("big.csv", []byte(strings.Repeat("Qatar,Japan,1.0\n", 1000))); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if ratio := writer.CompressionRatio(); ratio >= 0.5 {
		t.Errorf("Expected compression ratio below 0.5 for repetitive data, got %f", ratio)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestArchiveAddFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "results.csv")
	if err := os.WriteFile(src, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	path := filepath.Join(dir, "run.lnga")
	writer, err := NewArchiveWriter(path, "run-file")
	if err != nil {
		t.Fatalf("NewArchiveWriter failed: %v", err)
	}
	if err := writer.AddFile(src); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, entries, err := ReadArchive(path)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if string(entries["results.csv"]) != "a,b\n1,2\n" {
		t.Errorf("AddFile round trip mismatch: %q", entries["results.csv"])
	}
}

func TestArchiveRejectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lnga")

	writer, err := NewArchiveWriter(path, "run-corrupt")
	if err != nil {
		t.Fatalf("NewArchiveWriter failed: %v", err)
	}
	if err := writer.Add("edges.csv", []byte("Source,Target\nQatar,Japan\n")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	// Flip a byte inside the compressed payload.
	data[len(data)-6] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to rewrite archive: %v", err)
	}

	if _, _, err := ReadArchive(path); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected checksum mismatch, got %v", err)
	}
}

func TestArchiveRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_archive.csv")
	if err := os.WriteFile(path, []byte("just,a,csv\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, _, err := ReadArchive(path); !errors.Is(err, ErrNotArchive) {
		t.Errorf("Expected ErrNotArchive, got %v", err)
	}
}
