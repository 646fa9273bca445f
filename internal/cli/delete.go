package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <resourceType>/<id>",
	Short: "Delete a record by type and id",
	Long: `Delete a record by type and id. The format is <resourceType>/<id>.
Deletion is refused while the record still has dependents; the server
reports every blocking relation in a single response.

Example:
  siakad delete students/7b0c9f4e-3f0a-4f8f-9a2e-1c2d3e4f5a6b
  siakad delete schedules/0d7e2a1b-9c8f-4e6d-b5a4-3c2d1e0f9a8b`,
	Args: cobra.ExactArgs(1),
	RunE: deleteResource,
}

func deleteResource(cmd *cobra.Command, args []string) error {
	parts := strings.SplitN(args[0], "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid resource format. Expected <resourceType>/<id>")
	}

	resourceType := parts[0]
	resourceName := parts[1]

	urlResourceType, err := MapResourceTypeToURL(resourceType)
	if err != nil {
		return err
	}

	client := NewHTTPClient(GetConfig())
	if err := client.DeleteResource(urlResourceType, resourceName); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]any{
			"resource": args[0],
			"deleted":  true,
		})
	} else {
		fmt.Printf("Successfully deleted %s\n", args[0])
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
