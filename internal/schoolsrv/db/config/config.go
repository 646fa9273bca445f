package config

import (
	"fmt"
	"os"

	srvconfig "github.com/siakadlabs/siakad-internal/internal/schoolsrv/config"
)

type dbconncfg struct {
	host     string
	port     int
	dbname   string
	user     string
	password string
	sslmode  string
}

var siakadDbConn *dbconncfg

func init() {
	siakadDbConn = &dbconncfg{
		host:     "localhost",
		port:     5432,
		user:     "siakad_api",
		password: "abc@123",
		dbname:   "siakad",
		sslmode:  "disable",
	}
}

// SiakadDsn returns the connection string for the school database.
// The config file value wins; the SIAKAD_DB_CONN environment variable
// overrides both for test runs.
func SiakadDsn() string {
	if dsn := os.Getenv("SIAKAD_DB_CONN"); dsn != "" {
		return dsn
	}
	if cfg := srvconfig.Config(); cfg != nil && cfg.DBConn != "" {
		return cfg.DBConn
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		siakadDbConn.host, siakadDbConn.port, siakadDbConn.user, siakadDbConn.password, siakadDbConn.dbname, siakadDbConn.sslmode)
}
