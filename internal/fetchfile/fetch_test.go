package fetchfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFetchRelativeToBasePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "inc.dtd")
	if err := os.WriteFile(target, []byte("<!ELEMENT a EMPTY>"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	data, err := Fetch("inc.dtd", filepath.Join(dir, "root.dtd"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "<!ELEMENT a EMPTY>" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestFetchRejectsNetworkScheme(t *testing.T) {
	if _, err := Fetch("http://example.com/a.dtd", ""); err == nil {
		t.Fatal("expected an error for a network URI scheme")
	}
}

func TestFetchMissingFile(t *testing.T) {
	if _, err := Fetch(filepath.Join(t.TempDir(), "missing.dtd"), ""); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
