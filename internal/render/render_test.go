package render

import (
	"strings"
	"testing"

	"github.com/diogo/malcolmweb/internal/config"
)

func TestMarkdownRendersContent(t *testing.T) {
	out, err := Markdown("# Title\n\nSome **bold** text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("rendered output missing heading: %q", out)
	}
	if !strings.Contains(out, "bold") {
		t.Errorf("rendered output missing body: %q", out)
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("plain text", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() error = %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 60 {
			t.Errorf("line exceeds width budget: %q", line)
		}
	}
}

func TestPoolReuse(t *testing.T) {
	ClearCache()

	opts := DefaultOptions()
	if _, err := Markdown("one", opts); err != nil {
		t.Fatal(err)
	}
	if _, err := Markdown("two", opts); err != nil {
		t.Fatal(err)
	}

	if CacheSize() != 1 {
		t.Errorf("CacheSize() = %d, want 1 for identical options", CacheSize())
	}

	if _, err := Markdown("three", opts.WithWidth(40)); err != nil {
		t.Fatal(err)
	}
	if CacheSize() != 2 {
		t.Errorf("CacheSize() = %d, want 2 after width change", CacheSize())
	}
}

func TestFromConfig(t *testing.T) {
	opts := FromConfig(config.MarkdownConfig{Style: "light", EnableEmoji: false, PreserveNewLines: true})
	if opts.Style != "light" {
		t.Errorf("Style = %q", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("EnableEmoji should be false")
	}
	if opts.Width != 80 {
		t.Errorf("Width = %d, want default 80", opts.Width)
	}

	// Empty style falls back to default.
	if got := FromConfig(config.MarkdownConfig{}); got.Style != "dark" {
		t.Errorf("empty style should default to dark, got %q", got.Style)
	}
}
