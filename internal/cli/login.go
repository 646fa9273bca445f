package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login --email EMAIL",
	Short: "Log in to the Siakad server",
	Long: `Log in to the Siakad server with an email and password. The access token
is stored in the CLI configuration and used for subsequent commands until
it expires. The password may also be supplied via the SIAKAD_PASSWORD
environment variable.

Example:
  siakad login --email admin@school.sch.id`,
	RunE: login,
}

func login(cmd *cobra.Command, args []string) error {
	if loginEmail == "" {
		return fmt.Errorf("email is required")
	}
	password := loginPassword
	if password == "" {
		password = os.Getenv("SIAKAD_PASSWORD")
	}
	if password == "" {
		return fmt.Errorf("password is required (use --password or SIAKAD_PASSWORD)")
	}

	body, err := json.Marshal(map[string]string{
		"email":    loginEmail,
		"password": password,
	})
	if err != nil {
		return err
	}

	client := NewHTTPClient(GetConfig())
	response, _, err := client.DoRequest(RequestOptions{
		Method: http.MethodPost,
		Path:   "auth/login",
		Body:   body,
	})
	if err != nil {
		return err
	}

	var rsp loginResponse
	if err := json.Unmarshal(response, &rsp); err != nil {
		return fmt.Errorf("failed to parse login response: %v", err)
	}

	cfg := GetConfig()
	cfg.CurrentToken = rsp.AccessToken
	cfg.TokenExpiry = rsp.ExpiresAt
	if err := cfg.WriteConfig(configFile); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(map[string]string{
			"email":      loginEmail,
			"expires_at": rsp.ExpiresAt,
		})
	} else {
		fmt.Printf("Logged in as %s (token valid until %s)\n", loginEmail, rsp.ExpiresAt)
	}
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address to log in with")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prefer SIAKAD_PASSWORD)")
	loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd)
}
