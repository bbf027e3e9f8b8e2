package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/withgalaxy/trackly/pkg/app"
	"github.com/withgalaxy/trackly/pkg/config"
)

// execute runs the root command with args and returns captured output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRoutesList_Table(t *testing.T) {
	out, err := execute(t, "routes", "list", "--format", "table")
	if err != nil {
		t.Fatalf("routes list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(app.Pages())+1 {
		t.Fatalf("expected header plus %d rows, got:\n%s", len(app.Pages()), out)
	}
	if !strings.Contains(lines[0], "PATTERN") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(out, "/projects/:id/tasks/:taskId") || !strings.Contains(out, "id,taskId") {
		t.Errorf("missing task route:\n%s", out)
	}
}

func TestRoutesList_YAML(t *testing.T) {
	out, err := execute(t, "routes", "list", "--format", "yaml")
	if err != nil {
		t.Fatalf("routes list failed: %v", err)
	}

	var infos []routeInfo
	if err := yaml.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("output is not yaml: %v\n%s", err, out)
	}
	if len(infos) != len(app.Pages()) {
		t.Fatalf("expected %d routes, got %d", len(app.Pages()), len(infos))
	}
	if infos[0].Index != 1 || infos[0].Pattern != "/" {
		t.Errorf("unexpected first route: %+v", infos[0])
	}
}

func TestRoutesList_JSON(t *testing.T) {
	out, err := execute(t, "routes", "list", "--format", "json")
	if err != nil {
		t.Fatalf("routes list failed: %v", err)
	}

	var infos []routeInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	for i, info := range infos {
		if info.Pattern != app.Pages()[i].Pattern {
			t.Errorf("route %d: got %s, want %s", i, info.Pattern, app.Pages()[i].Pattern)
		}
	}
}

func TestRoutesList_UnknownFormat(t *testing.T) {
	_, err := execute(t, "routes", "list", "--format", "xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestRoutesLint_AppTable(t *testing.T) {
	out, err := execute(t, "routes", "lint")
	if err != nil {
		t.Fatalf("expected app table to pass lint: %v\n%s", err, out)
	}
	if !strings.Contains(out, "routes checked") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestRoutesLint_ShadowedPattern(t *testing.T) {
	out, err := execute(t, "routes", "lint", "/projects/:id", "/projects/active")
	if err == nil {
		t.Fatal("expected lint to fail")
	}
	if !strings.Contains(out, "error: /projects/active") {
		t.Errorf("expected shadowing finding, got:\n%s", out)
	}
}

func TestRoutesMatch(t *testing.T) {
	out, err := execute(t, "routes", "match", "/projects/PRJ-7%20A/board")
	if err != nil {
		t.Fatalf("routes match failed: %v", err)
	}
	if !strings.Contains(out, "pattern: /projects/:id/board") {
		t.Errorf("wrong pattern:\n%s", out)
	}
	if !strings.Contains(out, "page:    board") || !strings.Contains(out, "id = PRJ-7 A") {
		t.Errorf("wrong page or params:\n%s", out)
	}
}

func TestRoutesMatch_NoMatch(t *testing.T) {
	out, err := execute(t, "routes", "match", "/a/b/c/d/e")
	if err != nil {
		t.Fatalf("no match should not be an error: %v", err)
	}
	if !strings.Contains(out, "no route matches /a/b/c/d/e") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestInit_Defaults(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--root", dir, "init", "--yes", "--force=false")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("unexpected output: %s", out)
	}

	cfg, err := config.LoadFromDir(dir)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.App.Theme != config.ThemeLight || cfg.Server.Port != 4322 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	_, err = execute(t, "--root", dir, "init", "--yes", "--force=false")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}

	if _, err := execute(t, "--root", dir, "init", "--yes", "--force"); err != nil {
		t.Errorf("expected --force to overwrite: %v", err)
	}
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, config.FileName), []byte("[app]\ntheme = \"dark\"\n"), 0644)

	out, err := execute(t, "--root", dir, "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Trackly", "Theme                    dark", "not built", config.FileName} {
		if !strings.Contains(out, want) {
			t.Errorf("info missing %q:\n%s", want, out)
		}
	}
}

func TestInfo_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, config.FileName), []byte("[app]\ntheme = \"neon\"\n"), 0644)

	if _, err := execute(t, "--root", dir, "info"); err == nil {
		t.Error("expected invalid config to fail")
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		in      interface{}
		wantErr bool
	}{
		{"4322", false},
		{"0", true},
		{"70000", true},
		{"abc", true},
		{42, true},
	}
	for _, tt := range tests {
		if err := validatePort(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("validatePort(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
