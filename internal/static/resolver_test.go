package static

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jpalmerr/httpie/proto"
)

func TestName(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"/", "index.html", true},
		{"/style.css", "style.css", true},
		{"/img/logo.png", "img/logo.png", true},
		{"//etc/passwd", "", false},
		{"/../secret", "", false},
		{"/a/../../secret", "", false},
		{"/./index.html", "", false},
		{"/docs/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Name(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Name(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html":   {Data: []byte("<h1>home</h1>")},
		"app.js":       {Data: []byte("console.log(1)")},
		"logo.png":     {Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}},
		"bad.json":     {Data: []byte{'{', 0xff, '}'}},
		"notes":        {Data: []byte("plain")},
		"sub/page.css": {Data: []byte("body{}")},
	}
}

func TestResolver_TextFile(t *testing.T) {
	r := NewResolverFS("mem", testFS(), 0)

	f, err := r.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve(/) error = %v", err)
	}
	if f.ContentType != proto.TextHTML {
		t.Errorf("ContentType = %v, want %v", f.ContentType, proto.TextHTML)
	}
	if !f.Text {
		t.Error("Text = false, want true")
	}
	if string(f.Data) != "<h1>home</h1>" {
		t.Errorf("Data = %q, want %q", f.Data, "<h1>home</h1>")
	}
}

func TestResolver_RawFile(t *testing.T) {
	r := NewResolverFS("mem", testFS(), 0)

	f, err := r.Resolve("/logo.png")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if f.Text {
		t.Error("Text = true, want false")
	}
	if f.ContentType != proto.ImagePNG {
		t.Errorf("ContentType = %v, want %v", f.ContentType, proto.ImagePNG)
	}
	if len(f.Data) != 6 {
		t.Errorf("len(Data) = %d, want 6", len(f.Data))
	}
}

func TestResolver_UnknownExtensionIsRaw(t *testing.T) {
	r := NewResolverFS("mem", testFS(), 0)

	f, err := r.Resolve("/notes")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if f.Text || f.ContentType != proto.ContentTypeUnknown {
		t.Errorf("got (Text=%v, ContentType=%v), want (false, %v)", f.Text, f.ContentType, proto.ContentTypeUnknown)
	}
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolverFS("mem", testFS(), 0)

	for _, p := range []string{"/missing.html", "/sub", "/../index.html", "/sub/"} {
		if _, err := r.Resolve(p); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want %v", p, err, ErrNotFound)
		}
	}
}

func TestResolver_InvalidUTF8TextIsReadError(t *testing.T) {
	r := NewResolverFS("mem", testFS(), 0)

	_, err := r.Resolve("/bad.json")
	if !errors.Is(err, ErrRead) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrRead)
	}
}

func TestResolver_Directory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("disk"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := NewResolver(dir, 0)
	if r.Root() != dir {
		t.Errorf("Root() = %q, want %q", r.Root(), dir)
	}

	f, err := r.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(f.Data) != "disk" {
		t.Errorf("Data = %q, want %q", f.Data, "disk")
	}
}

func TestResolver_CacheServesStaleUntilExpiry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r := NewResolver(dir, time.Hour)
	if _, err := r.Resolve("/app.js"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := r.Resolve("/app.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(f.Data) != "v1" {
		t.Errorf("Data = %q, want cached %q", f.Data, "v1")
	}
}

func TestResolver_NoCacheReadsThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.js")
	_ = os.WriteFile(path, []byte("v1"), 0o644)

	r := NewResolver(dir, 0)
	_, _ = r.Resolve("/app.js")
	_ = os.WriteFile(path, []byte("v2"), 0o644)

	f, err := r.Resolve("/app.js")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if string(f.Data) != "v2" {
		t.Errorf("Data = %q, want %q", f.Data, "v2")
	}
}
