package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	// Create a temporary directory for test files
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Test cases
	tests := []struct {
		name    string
		config  string
		wantErr bool
	}{
		{
			name: "valid config",
			config: `version: "1.0"
server:port: "localhost:8080"
current_token: "token1"
token_expiry: "2026-12-31T00:00:00Z"`,
			wantErr: false,
		},
		{
			name: "valid config without token",
			config: `version: "1.0"
server:port: "siakad.example.sch.id:443"`,
			wantErr: false,
		},
		{
			name:    "missing server port",
			config:  `version: "1.0"`,
			wantErr: true,
		},
		{
			name: "server port without port number",
			config: `version: "1.0"
server:port: "localhost"`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			config:  `version: [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(file, []byte(tt.config), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			err := LoadConfig(file)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if got := GetConfig(); got == nil {
					t.Error("GetConfig() returned nil after successful load")
				}
			}
		})
	}
}

func TestMorphServer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:8080", "http://localhost:8080"},
		{"http://localhost:8080/", "http://localhost:8080"},
		{"https://siakad.example.sch.id:443", "https://siakad.example.sch.id:443"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MorphServer(tt.in); got != tt.want {
			t.Errorf("MorphServer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_write_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &Config{
		Version:    "1.0",
		ServerPort: "http://localhost:8080",
	}
	file := filepath.Join(tmpDir, "nested", "config.yaml")
	if err := cfg.WriteConfig(file); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	if err := LoadConfig(file); err != nil {
		t.Fatalf("LoadConfig() after write error = %v", err)
	}
	if got := GetConfig().ServerPort; got != "http://localhost:8080" {
		t.Errorf("ServerPort = %q, want %q", got, "http://localhost:8080")
	}
}
