package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for the Siakad CLI
// It contains server connection details and the current session token
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// ServerPort is the URL and port of the Siakad server
	ServerPort string `yaml:"server:port"`
	// CurrentToken is the access token obtained from the last login
	CurrentToken string `yaml:"current_token"`
	// TokenExpiry is when the current token expires
	TokenExpiry string `yaml:"token_expiry"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/siakad on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "siakad", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file
// If no file is specified, it uses the default config location
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	// Validate required fields
	if c.ServerPort == "" {
		return errors.New("server:port is required")
	}

	// Validate server port format
	if !strings.Contains(c.ServerPort, ":") {
		return errors.New("server:port must include port number")
	}

	// Morph the server URL before storing
	c.ServerPort = MorphServer(c.ServerPort)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the current configuration to the specified file
// If no file is specified, it uses the default config location
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0644))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// Print prints the current configuration in a human-readable format
func (cfg *Config) Print() {
	fmt.Printf("Server: %s\n", cfg.ServerPort)
}

// MorphServer ensures the server URL is properly formatted
// Adds http:// prefix if missing and removes trailing slashes
func MorphServer(server string) string {
	if server == "" {
		return server
	}

	// Remove any trailing slashes
	server = strings.TrimRight(server, "/")

	// Add http:// if no protocol is specified
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "http://" + server
	}

	return server
}

// GetServerURL returns the properly formatted server URL
func (cfg *Config) GetServerURL() string {
	return MorphServer(cfg.ServerPort)
}

var configCreateServer string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
}

var configCreateCmd = &cobra.Command{
	Use:   "create --server SERVER:PORT",
	Short: "Create a new configuration file",
	Long: `Create a new configuration file pointing at a Siakad server.

Example:
  siakad config create --server localhost:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configCreateServer == "" {
			return fmt.Errorf("server is required")
		}
		if !strings.Contains(configCreateServer, ":") {
			return fmt.Errorf("server must include port number")
		}

		cfg := &Config{
			Version:    "1.0",
			ServerPort: MorphServer(configCreateServer),
		}
		if err := cfg.WriteConfig(configFile); err != nil {
			return err
		}

		if jsonOutput {
			printJSON(map[string]string{
				"config": configFile,
				"server": cfg.ServerPort,
			})
		} else {
			fmt.Printf("Configuration written to %s\n", configFile)
		}
		return nil
	},
}

func init() {
	configCreateCmd.Flags().StringVar(&configCreateServer, "server", "", "Server host and port")
	configCreateCmd.MarkFlagRequired("server")
	configCmd.AddCommand(configCreateCmd)
	rootCmd.AddCommand(configCmd)
}
