package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create -f FILENAME",
	Short: "Create a record from a file",
	Long: `Create a record from a file. The record type is determined by the 'kind' field in the YAML file.
Supported kinds include:
  - School
  - User
  - Student
  - Teacher
  - ClassRoom
  - Subject
  - Schedule
  - Grade
  - Attendance
  - Letter
  - ExportJob

Example:
  siakad create -f student.yaml
  siakad create -f school.yaml`,
	RunE: createResource,
}

func createResource(cmd *cobra.Command, args []string) error {
	filename, err := cmd.Flags().GetString("filename")
	if err != nil {
		return err
	}
	if filename == "" {
		return fmt.Errorf("filename is required")
	}

	jsonData, resource, err := LoadResourceFromFile(filename)
	if err != nil {
		return err
	}

	resourceType, err := GetResourceType(resource.Kind)
	if err != nil {
		return err
	}

	client := NewHTTPClient(GetConfig())

	_, location, err := client.CreateResource(resourceType, jsonData, nil)
	if err != nil {
		return err
	}

	if jsonOutput {
		kv := map[string]any{
			"kind":     resource.Kind,
			"created":  true,
			"location": location,
		}
		printJSON(kv)
	} else {
		fmt.Printf("Successfully created %s\n", resource.Kind)
		if location != "" {
			fmt.Printf("Location: %s\n", location)
		}
	}
	return nil
}

func init() {
	createCmd.Flags().StringP("filename", "f", "", "Filename to use to create the record")
	createCmd.MarkFlagRequired("filename")

	rootCmd.AddCommand(createCmd)
}
