package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/prexpr/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestTomlConfigLoader_FullFile(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, TomlConfigFileName), `[parse]
strict = false

[simplify]
mode = "basic"

[output]
format = "json"
notation = "infix"
show_stats = true

[variables]
x = 3
Total = -7

[input]
recursive = false
include_patterns = ["*.txt"]
exclude_patterns = ["skip/**"]

[performance]
max_workers = 2
timeout_seconds = 0
`)

	config, err := NewTomlConfigLoader().LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Parse.Strict {
		t.Error("Expected strict to be false")
	}
	if config.Simplify.Mode != "basic" {
		t.Errorf("Expected mode basic, got %s", config.Simplify.Mode)
	}
	if config.Output.Format != "json" || config.Output.Notation != "infix" || !config.Output.ShowStats {
		t.Errorf("Unexpected output config: %+v", config.Output)
	}
	if config.Variables["x"] != 3 || config.Variables["Total"] != -7 {
		t.Errorf("Unexpected variables: %v", config.Variables)
	}
	if config.Input.Recursive {
		t.Error("Expected recursive to be false")
	}
	if len(config.Input.IncludePatterns) != 1 || config.Input.IncludePatterns[0] != "*.txt" {
		t.Errorf("Unexpected include patterns: %v", config.Input.IncludePatterns)
	}
	if config.Performance.MaxWorkers != 2 {
		t.Errorf("Expected max_workers 2, got %d", config.Performance.MaxWorkers)
	}
	if config.Performance.TimeoutSeconds != 0 {
		t.Errorf("Expected explicit timeout 0, got %d", config.Performance.TimeoutSeconds)
	}
}

func TestTomlConfigLoader_PartialKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, TomlConfigFileName), "[simplify]\nmode = \"none\"\n")

	config, err := NewTomlConfigLoader().LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Simplify.Mode != "none" {
		t.Errorf("Expected mode none, got %s", config.Simplify.Mode)
	}
	if !config.Parse.Strict {
		t.Error("Expected strict default to survive")
	}
	if config.Performance.TimeoutSeconds != domain.DefaultTimeoutSeconds {
		t.Errorf("Expected default timeout, got %d", config.Performance.TimeoutSeconds)
	}
	if !config.Input.Recursive {
		t.Error("Expected recursive default to survive")
	}
}

func TestTomlConfigLoader_WalksUp(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(tempDir, TomlConfigFileName), "[output]\nformat = \"csv\"\n")

	config, err := NewTomlConfigLoader().LoadConfig(nested)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Expected format csv from parent directory, got %s", config.Output.Format)
	}
}

func TestTomlConfigLoader_NoFileReturnsDefaults(t *testing.T) {
	config, err := NewTomlConfigLoader().LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Simplify.Mode != string(domain.SimplifyFancy) {
		t.Errorf("Expected default mode, got %s", config.Simplify.Mode)
	}
}

func TestTomlConfigLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[simplify\nmode = 1", "failed to parse toml config"},
		{"bad mode", "[simplify]\nmode = \"aggressive\"\n", "simplify.mode"},
		{"operator variable", "[variables]\n\"+\" = 1\n", "is an operator"},
		{"numeric variable", "[variables]\n\"12\" = 1\n", "integer literal"},
		{"negative workers", "[performance]\nmax_workers = -1\n", "max_workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), TomlConfigFileName)
			writeFile(t, path, tt.content)

			_, err := NewTomlConfigLoader().LoadFile(path)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetSupportedConfigFiles(t *testing.T) {
	files := NewTomlConfigLoader().GetSupportedConfigFiles()
	if files[0] != TomlConfigFileName {
		t.Errorf("Expected %s first, got %s", TomlConfigFileName, files[0])
	}
	if len(files) != len(ConfigFileCandidates)+1 {
		t.Errorf("Expected %d files, got %d", len(ConfigFileCandidates)+1, len(files))
	}
}
