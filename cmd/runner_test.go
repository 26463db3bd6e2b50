package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledantec/dbscrub/internal/shared"
	tu "github.com/ledantec/dbscrub/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Config: config, Logger: logger, Output: output})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})
			if runner.config == nil || runner.logger == nil || runner.output == nil {
				t.Error("expected defaults to be filled in")
			}
		})
	})

	t.Run("register exposes the commands", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		commands := runner.register()
		if len(commands) != 2 {
			t.Fatalf("got %d commands, want 2", len(commands))
		}
		if commands[0].Name != "run" || commands[1].Name != "setup" {
			t.Errorf("unexpected commands: %s, %s", commands[0].Name, commands[1].Name)
		}
	})

	t.Run("writePlain surfaces writer errors", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("writePlainln fails once the writer is exhausted", func(t *testing.T) {
		buf := &bytes.Buffer{}
		limited := tu.NewLimitedWriter(1, 0, buf)
		runner := NewRunner(RunnerOpts{Output: &limited})
		if err := runner.writePlainln("first"); err != nil {
			t.Fatalf("first write should succeed: %v", err)
		}
		if err := runner.writePlainln("second"); err == nil {
			t.Error("expected error once the write limit is reached")
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		t.Run("missing file", func(t *testing.T) {
			_, err := runner.loadConfig(filepath.Join(t.TempDir(), "none.toml"))
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("unparsable file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte("[database\ndriver="), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			_, err := runner.loadConfig(path)
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestProgressReporter(t *testing.T) {
	buf := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: buf})
	reporter := &progressReporter{r: runner}

	reporter.Start("spaces")
	reporter.Done("spaces")
	reporter.Start("domains")
	reporter.Fail("domains", errors.New("storage conflict"))

	out := buf.String()
	if !strings.Contains(out, "Anonymizing the spaces... ") {
		t.Errorf("missing start line: %q", out)
	}
	if !strings.Contains(out, "DONE") {
		t.Errorf("missing done marker: %q", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "storage conflict") {
		t.Errorf("missing failure marker: %q", out)
	}
}

func TestCommands(t *testing.T) {
	newApp := func(output *bytes.Buffer) *cli.Command {
		runner := NewRunner(RunnerOpts{
			Logger: shared.NewLogger(&bytes.Buffer{}),
			Output: output,
		})
		return &cli.Command{Name: "dbscrub", Commands: runner.register()}
	}

	t.Run("setup config writes the example file", func(t *testing.T) {
		output := &bytes.Buffer{}
		path := filepath.Join(t.TempDir(), "config.toml")

		err := newApp(output).Run(context.Background(), []string{"dbscrub", "setup", "config", "--path", path})
		if err != nil {
			t.Fatalf("setup config failed: %v", err)
		}
		tu.AssertFileExists(t, path)
		if _, err := shared.LoadConfig(path); err != nil {
			t.Errorf("written config does not parse: %v", err)
		}
	})

	t.Run("setup schema then run against an empty platform", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		content := fmt.Sprintf(`
[database]
driver = "sqlite3"
dsn = %q

[platform]
server_url = "https://demo.example.org"

[audit]
dir = %q
`, filepath.Join(dir, "platform.db"), filepath.Join(dir, "audit"))
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		output := &bytes.Buffer{}
		if err := newApp(output).Run(context.Background(), []string{"dbscrub", "setup", "schema", "--config", configPath}); err != nil {
			t.Fatalf("setup schema failed: %v", err)
		}
		if !strings.Contains(output.String(), "Platform schema applied") {
			t.Errorf("missing confirmation: %q", output.String())
		}

		output.Reset()
		if err := newApp(output).Run(context.Background(), []string{"dbscrub", "run", "--config", configPath}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		out := output.String()
		if strings.Count(out, "DONE") != 8 {
			t.Errorf("expected 8 DONE markers, got %d:\n%s", strings.Count(out, "DONE"), out)
		}
		if !strings.Contains(out, "Anonymization complete") {
			t.Errorf("missing completion line: %q", out)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "audit", "users.ssv"))
	})

	t.Run("run with a missing config file", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run(context.Background(), []string{"dbscrub", "run", "--config", filepath.Join(t.TempDir(), "none.toml")})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}
