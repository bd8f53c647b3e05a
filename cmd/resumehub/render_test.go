package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderCommand_Stdin(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("Summary: clear and concise.\nStrengths:\n- Impact\n- Scope"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render"})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"★ Overall Assessment", "clear and concise.", "+ Key Strengths", "  • Impact"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRenderCommand_HTML(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "feedback.txt")
	html := filepath.Join(dir, "feedback.html")
	if err := os.WriteFile(in, []byte("No headings here.\nJust notes."), 0644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"render", in, "--html", html})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		renderHTML = ""
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "No headings here.<br>Just notes.") {
		t.Errorf("html = %s", data)
	}
}

func TestLoadConfig_MissingDefaultUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RESUMEHUB_CONFIG", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:5001" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestLoadConfig_ExplicitMissingFails(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicit missing config")
	}
}
