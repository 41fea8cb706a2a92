package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLeanLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add_comm.lean")
	source := "theorem add_comm : a + b = b + a := by\n  rw [Nat.add_comm]\n"
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	proof, err := NewLeanLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if proof.Source != source {
		t.Errorf("source mismatch: %q", proof.Source)
	}
	if proof.Title != "add_comm" {
		t.Errorf("title should drop the extension, got %q", proof.Title)
	}
	if proof.Path != path {
		t.Errorf("path mismatch: %q", proof.Path)
	}
}

func TestLeanLoader_DeterministicID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lean")
	if err := os.WriteFile(path, []byte("lemma a : 1 = 1 := by rfl"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	loader := NewLeanLoader()
	first, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	second, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if first.ID != second.ID {
		t.Error("same path must yield the same id")
	}
}

func TestLeanLoader_MissingFile(t *testing.T) {
	_, err := NewLeanLoader().Load(context.Background(), "/no/such/file.lean")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLeanLoader_SupportedExtensions(t *testing.T) {
	exts := NewLeanLoader().SupportedExtensions()
	if len(exts) != 1 || exts[0] != ".lean" {
		t.Errorf("unexpected extensions: %v", exts)
	}
}
