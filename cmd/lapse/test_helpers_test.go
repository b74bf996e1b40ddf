package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig lays out a workspace with a config file, destination,
// and log directory, returning the config path and the workspace root.
func writeTestConfig(t *testing.T, extra string) (string, string) {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
dest_dir = %q
log_dir = %q

[catalog]
enabled = true
path = %q
%s`,
		filepath.Join(base, "timelapses"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "catalog.db"),
		extra)

	cfgPath := filepath.Join(base, "lapse.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath, base
}

// runCommand executes the CLI with the given stdin and arguments and
// returns combined stdout output.
func runCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustContain(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}
