package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadResourceFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "resource_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name     string
		manifest string
		wantKind string
		wantErr  bool
	}{
		{
			name: "valid student manifest",
			manifest: `kind: Student
spec:
  nis: "20260001"
  name: "Siti Rahmawati"
  status: active`,
			wantKind: "Student",
		},
		{
			name: "missing kind",
			manifest: `spec:
  name: "Siti Rahmawati"`,
			wantErr: true,
		},
		{
			name:     "missing spec",
			manifest: `kind: Student`,
			wantErr:  true,
		},
		{
			name:     "invalid yaml",
			manifest: `kind: [`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(file, []byte(tt.manifest), 0644); err != nil {
				t.Fatalf("Failed to write manifest: %v", err)
			}

			jsonData, resource, err := LoadResourceFromFile(file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadResourceFromFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if resource.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", resource.Kind, tt.wantKind)
			}

			var spec map[string]any
			if err := json.Unmarshal(jsonData, &spec); err != nil {
				t.Fatalf("spec payload is not valid JSON: %v", err)
			}
			if _, ok := spec["kind"]; ok {
				t.Error("spec payload should not contain the kind field")
			}
		})
	}
}

func TestGetResourceType(t *testing.T) {
	tests := []struct {
		kind    string
		want    string
		wantErr bool
	}{
		{kind: "School", want: "schools"},
		{kind: "User", want: "users"},
		{kind: "Student", want: "students"},
		{kind: "Attendance", want: "attendance"},
		{kind: "ExportJob", want: "exports"},
		{kind: "Invoice", wantErr: true},
	}

	for _, tt := range tests {
		got, err := GetResourceType(tt.kind)
		if (err != nil) != tt.wantErr {
			t.Errorf("GetResourceType(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("GetResourceType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestMapResourceTypeToURL(t *testing.T) {
	if _, err := MapResourceTypeToURL("students"); err != nil {
		t.Errorf("MapResourceTypeToURL(students) error = %v", err)
	}
	if _, err := MapResourceTypeToURL("users"); err != nil {
		t.Errorf("MapResourceTypeToURL(users) error = %v", err)
	}
	if _, err := MapResourceTypeToURL("invoices"); err == nil {
		t.Error("MapResourceTypeToURL(invoices) expected error")
	}
}
