package testutil

import (
	"os"
	"strings"
	"testing"
)

func TestFixtureLifecycle(t *testing.T) {
	fix := NewFixture(t)
	if _, err := os.Stat(fix.Path("packs/rp/manifest.json")); err != nil {
		t.Fatalf("expected manifest: %v", err)
	}
	if !strings.Contains(fix.ReadFile(t, "docs/blocks/block-sounds.md"), Start) {
		t.Fatalf("expected marker page")
	}

	fix.WriteFile(t, "docs/extra.md", []byte("content"))
	if fix.ReadFile(t, "docs/extra.md") != "content" {
		t.Fatalf("unexpected content")
	}

	opts := fix.Options(t, true, true, false)
	if opts.RootDir != fix.Root {
		t.Fatalf("unexpected root: %s", opts.RootDir)
	}
	if opts.JSONOutput != true || opts.Verbose != true {
		t.Fatalf("unexpected options: %+v", opts)
	}

	jobs := fix.Jobs(t)
	if jobs.PackPath(jobs.Packs.Resource) != fix.Path("packs/rp") {
		t.Fatalf("unexpected resource pack path: %s", jobs.PackPath(jobs.Packs.Resource))
	}
}
