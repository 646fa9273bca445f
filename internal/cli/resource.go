package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Resource represents a manifest with a Kind and a spec payload
type Resource struct {
	Kind string                 `json:"kind" yaml:"kind"`
	Spec map[string]interface{} `json:"spec" yaml:"spec"`
}

// LoadResourceFromFile loads a resource manifest from a YAML file and
// returns the spec payload as JSON along with the parsed resource
func LoadResourceFromFile(filename string) ([]byte, *Resource, error) {
	// Read the YAML file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %v", err)
	}

	// Convert YAML to JSON
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert YAML to JSON: %v", err)
	}

	// Parse the resource to get its kind
	var resource Resource
	if err := json.Unmarshal(jsonData, &resource); err != nil {
		return nil, nil, fmt.Errorf("failed to parse resource: %v", err)
	}
	if resource.Kind == "" {
		return nil, nil, fmt.Errorf("resource kind is required")
	}
	if resource.Spec == nil {
		return nil, nil, fmt.Errorf("resource spec is required")
	}

	specData, err := json.Marshal(resource.Spec)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal resource spec: %v", err)
	}

	return specData, &resource, nil
}

// GetResourceType returns the API endpoint path for a given resource kind
func GetResourceType(kind string) (string, error) {
	switch kind {
	case types.SchoolKind:
		return types.ResourceNameSchools, nil
	case "User":
		return "users", nil
	case types.StudentKind:
		return types.ResourceNameStudents, nil
	case types.TeacherKind:
		return types.ResourceNameTeachers, nil
	case types.ClassRoomKind:
		return types.ResourceNameClassRooms, nil
	case types.SubjectKind:
		return types.ResourceNameSubjects, nil
	case types.ScheduleKind:
		return types.ResourceNameSchedules, nil
	case types.GradeKind:
		return types.ResourceNameGrades, nil
	case types.AttendanceKind:
		return types.ResourceNameAttendance, nil
	case types.LetterKind:
		return types.ResourceNameLetters, nil
	case types.ExportJobKind:
		return types.ResourceNameExportJobs, nil
	default:
		return "", fmt.Errorf("unknown resource kind: %s", kind)
	}
}

// MapResourceTypeToURL maps a user-supplied resource type to its URL path
func MapResourceTypeToURL(resourceType string) (string, error) {
	if resourceType == "users" {
		return "users", nil
	}
	if types.KindForResource(resourceType) == types.InvalidKind {
		return "", fmt.Errorf("unknown resource type: %s", resourceType)
	}
	return resourceType, nil
}
