package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"pfsfiber/internal/catalog"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.txt")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writeTemp: %v", err)
	}
	return path
}

func TestReadSkipsCommentsAndBlankLines(t *testing.T) {
	path := writeTemp(t, `
# a comment
ID1 10.0 20.0 100.5 3   # trailing comment

ID2 11.0 21.0 50.0 1
`)
	tgts, err := catalog.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(tgts) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(tgts))
	}
	if tgts[0].ID != 1 || tgts[0].Pos[0] != 10.0 || tgts[0].Pri != 3 {
		t.Fatalf("unexpected first record: %+v", tgts[0])
	}
	if tgts[1].ID != 2 || tgts[1].Pri != 1 {
		t.Fatalf("unexpected second record: %+v", tgts[1])
	}
}

func TestReadWarnsAndSkipsMalformedLine(t *testing.T) {
	path := writeTemp(t, "ID1 10.0 20.0 100.5 3\nID2 notanumber 21.0 50.0 1\nID3 12.0 22.0 10.0 2\n")
	tgts, err := catalog.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(tgts) != 2 {
		t.Fatalf("expected the malformed line to be skipped, got %d targets", len(tgts))
	}
}

func TestReadFatalOnBadID(t *testing.T) {
	path := writeTemp(t, "NOTID 10.0 20.0 100.5 3\n")
	_, err := catalog.Read(path)
	if err == nil {
		t.Fatal("expected a fatal error for an id not beginning with ID")
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeTemp(t, "")
	tgts, err := catalog.Read(path)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(tgts) != 0 {
		t.Fatalf("expected no targets, got %d", len(tgts))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := catalog.Read(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected an error opening a nonexistent file")
	}
}
