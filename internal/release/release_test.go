package release

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseTag(t *testing.T) {
	v, err := ParseTag("v1.2.5")
	if err != nil {
		t.Fatalf("ParseTag: %v", err)
	}
	if v != (Version{1, 2, 5}) {
		t.Fatalf("unexpected version: %+v", v)
	}
	if v.Tag() != "v1.2.5" {
		t.Fatalf("Tag() = %q", v.Tag())
	}

	for _, bad := range []string{"1.2.5", "v1.2", "v1.2.3.4", "v01.2.3", "v1.2.3-rc1", "va.b.c", ""} {
		if _, err := ParseTag(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"v1.0.0", "v1.0.0", 0},
		{"v1.0.1", "v1.0.0", 1},
		{"v1.9.0", "v2.0.0", -1},
		{"v2.0.0", "v1.99.99", 1},
	}
	for _, c := range cases {
		a, _ := ParseTag(c.a)
		b, _ := ParseTag(c.b)
		if got := a.Compare(b); got != c.want {
			t.Fatalf("Compare(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nespan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeManifest(t, "name = \"nespan\"\nversion = \"v0.3.0\"\n")
	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.Name != "nespan" || m.Version != "v0.3.0" {
		t.Fatalf("unexpected manifest: %+v", m)
	}

	empty := writeManifest(t, "name = \"nespan\"\n")
	if _, err := ReadManifest(empty); err == nil {
		t.Fatalf("expected missing version to be rejected")
	}
}

func TestCheckTag(t *testing.T) {
	m := &Manifest{Name: "nespan", Version: "v0.3.0"}
	if err := m.CheckTag("v0.3.0"); err != nil {
		t.Fatalf("CheckTag: %v", err)
	}
	if err := m.CheckTag("v0.4.0"); err == nil {
		t.Fatalf("expected mismatched tag to be rejected")
	}
	if err := m.CheckTag("0.3.0"); err == nil {
		t.Fatalf("expected malformed tag to be rejected")
	}
}

func TestInstallURL(t *testing.T) {
	u, err := InstallURL("nlpkit", "nespan", "v0.3.0")
	if err != nil {
		t.Fatalf("InstallURL: %v", err)
	}
	want := "git+https://github.com/nlpkit/nespan.git@v0.3.0"
	if u != want {
		t.Fatalf("got %q want %q", u, want)
	}
	if _, err := InstallURL("nlpkit", "nespan", "latest"); err == nil {
		t.Fatalf("expected invalid tag to be rejected")
	}
	if _, err := InstallURL("", "nespan", "v0.3.0"); err == nil {
		t.Fatalf("expected empty org to be rejected")
	}
}
