package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <resourceType>/<id>",
	Short: "Get a record by type and id",
	Long: `Get a record by type and id. The format is <resourceType>/<id>.
The school of the current tenant can be fetched with "siakad get school".

Example:
  siakad get school
  siakad get students/7b0c9f4e-3f0a-4f8f-9a2e-1c2d3e4f5a6b
  siakad get exports/V1StGXR8Z5jdHi6BmyT`,
	Args: cobra.ExactArgs(1),
	RunE: getResource,
}

func getResource(cmd *cobra.Command, args []string) error {
	if args[0] == "school" {
		client := NewHTTPClient(GetConfig())
		response, _, err := client.DoRequest(RequestOptions{
			Method: "GET",
			Path:   "school",
		})
		if err != nil {
			return err
		}
		return printResponse(response)
	}

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
	response, err := client.GetResource(urlResourceType, resourceName, nil)
	if err != nil {
		return err
	}

	return printResponse(response)
}

// printResponse prints a JSON response body, as YAML unless --json is set
func printResponse(response []byte) error {
	if jsonOutput {
		fmt.Println(string(response))
		return nil
	}

	yamlData, err := yaml.JSONToYAML(response)
	if err != nil {
		return fmt.Errorf("failed to format response: %v", err)
	}
	fmt.Print(string(yamlData))
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
