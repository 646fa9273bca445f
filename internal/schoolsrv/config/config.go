package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const DefaultConfigFile = "/etc/siakad/siakadsrv.conf"

type ConfigParam struct {
	ServerPort        string `toml:"server_port"`
	HandleCORS        bool   `toml:"handle_cors"`
	CORSOrigin        string `toml:"cors_origin"`
	DBConn            string `toml:"db_conn"`
	DebugMode         bool   `toml:"debug_mode"`
	SingleTenantMode  bool   `toml:"single_tenant_mode"`
	DefaultTenantID   string `toml:"default_tenant_id"`
	DefaultTenantNPSN string `toml:"default_tenant_npsn"`
	FakeDevToken      string `toml:"fake_dev_token"`
	TokenValidity     int    `toml:"token_validity"` // seconds
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = &ConfigParam{
			ServerPort:       "8291",
			HandleCORS:       true,
			CORSOrigin:       "http://localhost:8290",
			SingleTenantMode: true,
			DefaultTenantID:  "TDEV001",
			FakeDevToken:     "dev-token",
			TokenValidity:    3600,
		}
		return nil
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	if cp.TokenValidity == 0 {
		cp.TokenValidity = 3600
	}
	cfg = &cp
	return nil
}

func init() {
	if err := LoadConfig(""); err != nil {
		panic(err)
	}
}
