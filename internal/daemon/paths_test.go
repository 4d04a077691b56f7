package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npratt/gong/internal/config"
	"github.com/npratt/gong/internal/testutil"
)

func TestResolvePaths(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name  string
		paths config.PathsConfig
		want  config.PathsConfig
	}{
		{
			name:  "defaults are relative",
			paths: config.Default().Paths,
			want: config.PathsConfig{
				EventLog:    filepath.Join(tmp, ".gong/events.jsonl"),
				DebugLogDir: filepath.Join(tmp, ".gong"),
				Socket:      filepath.Join(tmp, ".gong/gong.sock"),
				PID:         filepath.Join(tmp, ".gong/gong.pid"),
			},
		},
		{
			name: "absolute paths unchanged",
			paths: config.PathsConfig{
				EventLog:    "/var/log/gong.jsonl",
				DebugLogDir: "/var/log",
				Socket:      "/run/gong.sock",
				PID:         "/run/gong.pid",
			},
			want: config.PathsConfig{
				EventLog:    "/var/log/gong.jsonl",
				DebugLogDir: "/var/log",
				Socket:      "/run/gong.sock",
				PID:         "/run/gong.pid",
			},
		},
		{
			name:  "empty stays empty",
			paths: config.PathsConfig{EventLog: "events.jsonl"},
			want:  config.PathsConfig{EventLog: filepath.Join(tmp, "events.jsonl")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePaths(tt.paths, tmp)
			if err != nil {
				t.Fatalf("ResolvePaths() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePaths() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolvePaths_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ResolvePaths(config.PathsConfig{Socket: "gong.sock"}, "")
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}
	if got.Socket != filepath.Join(wd, "gong.sock") {
		t.Errorf("Socket = %q", got.Socket)
	}
}

func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name   string
		marker string
	}{
		{"git marker", ".git"},
		{"gong marker", ".gong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.Mkdir(filepath.Join(root, tt.marker), 0755); err != nil {
				t.Fatal(err)
			}
			nested := filepath.Join(root, "a", "b")
			if err := os.MkdirAll(nested, 0755); err != nil {
				t.Fatal(err)
			}

			if got := FindProjectRoot(nested); got != root {
				t.Errorf("FindProjectRoot() = %q, want %q", got, root)
			}
		})
	}
}

func TestFindProjectRoot_MarkerMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".gong"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if got := FindProjectRoot(sub); got != root {
		t.Errorf("FindProjectRoot() = %q, want %q (a .gong file is not a marker)", got, root)
	}
}

func TestFindProjectRoot_ConfiguredProject(t *testing.T) {
	root, cleanup := testutil.SetupProjectDir(t, "timer:\n  rounds: \"5\"\n")
	defer cleanup()

	nested := filepath.Join(root, "drills")
	if err := os.Mkdir(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if got := FindProjectRoot(nested); got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
}
