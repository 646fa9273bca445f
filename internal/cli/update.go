package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <resourceType>/<id> -f FILENAME",
	Short: "Update a record from a file",
	Long: `Update a record from a file. The fields in the manifest spec replace the
corresponding fields of the stored record; fields outside the allowed set
are ignored by the server. The school record of the current tenant can be
updated with "siakad update school -f school.yaml".

Example:
  siakad update students/7b0c9f4e-3f0a-4f8f-9a2e-1c2d3e4f5a6b -f student.yaml
  siakad update school -f school.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: updateResource,
}

func updateResource(cmd *cobra.Command, args []string) error {
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

	client := NewHTTPClient(GetConfig())

	if args[0] == "school" {
		_, _, err := client.DoRequest(RequestOptions{
			Method: "PUT",
			Path:   "school",
			Body:   jsonData,
		})
		if err != nil {
			return err
		}
		return printUpdated(resource.Kind)
	}

	parts := strings.SplitN(args[0], "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid resource format. Expected <resourceType>/<id>")
	}

	urlResourceType, err := MapResourceTypeToURL(parts[0])
	if err != nil {
		return err
	}

	if _, err := client.UpdateResource(urlResourceType, parts[1], jsonData); err != nil {
		return err
	}
	return printUpdated(resource.Kind)
}

func printUpdated(kind string) error {
	if jsonOutput {
		printJSON(map[string]any{
			"kind":    kind,
			"updated": true,
		})
	} else {
		fmt.Printf("Successfully updated %s\n", kind)
	}
	return nil
}

func init() {
	updateCmd.Flags().StringP("filename", "f", "", "Filename to use to update the record")
	updateCmd.MarkFlagRequired("filename")

	rootCmd.AddCommand(updateCmd)
}
