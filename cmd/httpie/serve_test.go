package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/httpie"
)

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name            string
		flag, env, file string
		want            string
	}{
		{"flag wins", "127.0.0.1:1", "127.0.0.1:2", "127.0.0.1:3", "127.0.0.1:1"},
		{"env over file", "", "127.0.0.1:2", "127.0.0.1:3", "127.0.0.1:2"},
		{"file", "", "", "127.0.0.1:3", "127.0.0.1:3"},
		{"default", "", "", "", httpie.DefaultAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveAddress(tt.flag, tt.env, tt.file); got != tt.want {
				t.Errorf("resolveAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePublicDir(t *testing.T) {
	tests := []struct {
		name       string
		flag, file string
		want       string
	}{
		{"flag wins", "pub", "site", "pub"},
		{"file", "", "site", "site"},
		{"default", "", "", "www"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePublicDir(tt.flag, tt.file); got != tt.want {
				t.Errorf("resolvePublicDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

// newServeCmd returns a command with serve's flags parsed from args.
func newServeCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "serve"}
	addServeFlags(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cmd
}

func TestBuildServer_Defaults(t *testing.T) {
	t.Setenv(addressEnv, "")

	srv, logger, err := buildServer(newServeCmd(t))
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	if logger == nil {
		t.Fatal("buildServer() returned nil logger")
	}
	if srv.Address() != httpie.DefaultAddress {
		t.Errorf("Address() = %q, want %q", srv.Address(), httpie.DefaultAddress)
	}
	if srv.PublicDir() != "www" {
		t.Errorf("PublicDir() = %q, want %q", srv.PublicDir(), "www")
	}
	if srv.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", srv.Workers())
	}
	for _, path := range []string{"/hello", "/cwd"} {
		if _, ok := srv.Routes().Lookup(path); !ok {
			t.Errorf("Routes().Lookup(%s) ok = false, want default route", path)
		}
	}
}

func TestBuildServer_Precedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "httpie.yaml")
	content := "address: 127.0.0.1:3000\npublic_dir: site\nworkers: 2\nroutes: [/hello=echo]\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(addressEnv, "127.0.0.1:4000")

	srv, _, err := buildServer(newServeCmd(t, "-c", configPath, "-d", "public", "-w", "9"))
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	if srv.Address() != "127.0.0.1:4000" {
		t.Errorf("Address() = %q, want env value %q", srv.Address(), "127.0.0.1:4000")
	}
	if srv.PublicDir() != "public" {
		t.Errorf("PublicDir() = %q, want flag value %q", srv.PublicDir(), "public")
	}
	if srv.Workers() != 9 {
		t.Errorf("Workers() = %d, want flag value 9", srv.Workers())
	}
	if _, ok := srv.Routes().Lookup("/hello"); !ok {
		t.Error("Routes().Lookup(/hello) ok = false, want true")
	}

	srv, _, err = buildServer(newServeCmd(t, "-c", configPath, "-a", "127.0.0.1:5000"))
	if err != nil {
		t.Fatalf("buildServer() error = %v", err)
	}
	if srv.Address() != "127.0.0.1:5000" {
		t.Errorf("Address() = %q, want flag value %q", srv.Address(), "127.0.0.1:5000")
	}
	if srv.Workers() != 2 {
		t.Errorf("Workers() = %d, want config value 2", srv.Workers())
	}
}

func TestBuildServer_InvalidWorkersFlag(t *testing.T) {
	if _, _, err := buildServer(newServeCmd(t, "-w", "0")); err == nil {
		t.Error("buildServer() expected error for zero workers, got nil")
	}
}

func TestBuildServer_BadConfig(t *testing.T) {
	if _, _, err := buildServer(newServeCmd(t, "-c", "/nonexistent/httpie.yaml")); err == nil {
		t.Error("buildServer() expected error for missing config, got nil")
	}
}
