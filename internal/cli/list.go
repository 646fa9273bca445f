package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listParams []string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <resourceType>",
	Short: "List records of a given type",
	Long: `List records of a given type. Some listings require filter parameters
which can be supplied with -p key=value.

Example:
  siakad list students -p class_id=7b0c9f4e-3f0a-4f8f-9a2e-1c2d3e4f5a6b
  siakad list grades -p student_id=... -p subject_id=...
  siakad list attendance -p student_id=... -p from=2026-08-01 -p to=2026-08-31
  siakad list letters -p category=SK`,
	Args: cobra.ExactArgs(1),
	RunE: listResources,
}

func listResources(cmd *cobra.Command, args []string) error {
	urlResourceType, err := MapResourceTypeToURL(args[0])
	if err != nil {
		return err
	}

	queryParams := make(map[string]string)
	for _, p := range listParams {
		k, v, found := strings.Cut(p, "=")
		if !found || k == "" {
			return fmt.Errorf("invalid parameter %q. Expected key=value", p)
		}
		queryParams[k] = v
	}

	client := NewHTTPClient(GetConfig())
	response, err := client.ListResources(urlResourceType, queryParams)
	if err != nil {
		return err
	}

	return printResponse(response)
}

func init() {
	listCmd.Flags().StringArrayVarP(&listParams, "param", "p", nil, "Filter parameter as key=value (repeatable)")

	rootCmd.AddCommand(listCmd)
}
