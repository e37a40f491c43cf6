package mmfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.bin")
	want := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 2048)
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, cleanup, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer func() {
		if cleanupErr := cleanup(); cleanupErr != nil {
			t.Fatalf("cleanup: %v", cleanupErr)
		}
	}()

	if !bytes.Equal(data, want) {
		t.Fatalf("mapped bytes differ from file contents")
	}
	if err := PreFault(data); err != nil {
		t.Fatalf("PreFault: %v", err)
	}
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, cleanup, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
	if err := PreFault(data); err != nil {
		t.Fatalf("PreFault: %v", err)
	}
	if cleanupErr := cleanup(); cleanupErr != nil {
		t.Fatalf("cleanup: %v", cleanupErr)
	}
}

func TestMapMissing(t *testing.T) {
	if _, _, err := Map(filepath.Join(t.TempDir(), "missing.bin")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestManualPreFault(t *testing.T) {
	if err := manualPreFault(make([]byte, 3*pageStep+1)); err != nil {
		t.Fatalf("manualPreFault: %v", err)
	}
}
