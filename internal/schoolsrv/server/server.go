package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	commonmiddleware "github.com/siakadlabs/siakad-internal/internal/common/middleware"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/apis"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/auth"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/config"
)

type SchoolServer struct {
	Router *chi.Mux
}

func CreateNewServer() (*SchoolServer, error) {
	s := &SchoolServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

func (s *SchoolServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{config.Config().CORSOrigin},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
			MaxAge:         300,
		}))
	}

	s.Router.Route("/auth", apis.AuthRouter)
	s.Router.Group(func(r chi.Router) {
		r.Use(auth.ContextMiddleware)
		apis.Router(r)
	})
	s.Router.Get("/version", s.getVersion)
}

type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

func (s *SchoolServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Siakad School Server: 0.1.0",
		ApiVersion:    "v1alpha1",
	}
	httpx.SendJsonRsp(w, http.StatusOK, rsp)
}
