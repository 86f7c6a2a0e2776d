package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/bedrock-oss/wikigen/cmd"
	"github.com/bedrock-oss/wikigen/internal/config"
	"github.com/bedrock-oss/wikigen/internal/testutil"
)

func TestRunSuccessAndFailure(t *testing.T) {
	fix := testutil.NewFixture(t)
	t.Cleanup(func() { config.SetCurrent(nil) })

	root := cmd.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--root", fix.Root, "--config", fix.ConfigPath, "init"})
	if code := run(); code != 0 {
		t.Fatalf("expected success, got %d", code)
	}

	config.SetCurrent(nil)
	fix.WriteFile(t, "docs/broken.md", []byte(testutil.Start+"\n"))
	root.SetArgs([]string{"--root", fix.Root, "--config", fix.ConfigPath, "check", "docs/broken.md"})
	if code := run(); code != cmd.ExitCodeValidation {
		t.Fatalf("expected validation exit, got %d", code)
	}

	root.SetArgs(nil)
}
