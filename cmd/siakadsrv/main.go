package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/logtrace"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/config"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/server"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile *string
}

func main() {
	slog := log.With().Str("state", "init").Logger()
	opt := parseFlags()

	slog.Info().Str("config_file", *opt.configFile).Msg("loading config file")
	if err := config.LoadConfig(*opt.configFile); err != nil {
		slog.Error().Str("config_file", *opt.configFile).Err(err).Msg("unable to load config file")
		os.Exit(1)
	}
	if config.Config().ServerPort == "" {
		slog.Error().Msg("server port not defined")
		os.Exit(1)
	}

	if err := db.Init(context.Background()); err != nil {
		slog.Error().Err(err).Msg("unable to initialize database")
		os.Exit(1)
	}

	if config.Config().SingleTenantMode {
		slog.Info().Msg("single tenant mode enabled")
		if err := createDefaultSchool(); err != nil {
			slog.Error().Err(err).Msg("unable to create default school")
			os.Exit(1)
		}
	}

	s, err := server.CreateNewServer()
	if err != nil {
		slog.Error().Err(err).Msg("unable to create server")
		os.Exit(1)
	}
	s.MountHandlers()
	slog.Info().Str("port", config.Config().ServerPort).Msg("starting server")
	if err := http.ListenAndServe(":"+config.Config().ServerPort, s.Router); err != nil {
		slog.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// createDefaultSchool provisions the development tenant so a fresh
// single-tenant setup is usable without the super-admin flow.
func createDefaultSchool() error {
	ctx := db.ConnCtx(context.Background())
	defer db.DB(ctx).Close(ctx)

	npsn := config.Config().DefaultTenantNPSN
	if npsn == "" {
		npsn = "00000000"
	}
	school := &models.School{
		TenantID: types.TenantId(config.Config().DefaultTenantID),
		NPSN:     npsn,
		Name:     "Development School",
	}
	if err := db.DB(ctx).CreateSchool(ctx, school); err != nil {
		if !errors.Is(err, dberror.ErrAlreadyExists) {
			return err
		}
	}
	return nil
}

func parseFlags() cmdoptions {
	var opt cmdoptions
	opt.configFile = flag.String("config", config.DefaultConfigFile, "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}
