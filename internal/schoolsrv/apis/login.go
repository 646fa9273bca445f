package apis

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/auth"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

func login(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	req := &loginRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if req.Email == "" || req.Password == "" {
		return nil, httpx.ErrInvalidRequest("email and password are required")
	}

	token, expiry, err := auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: loginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiry.Format(time.RFC3339),
		},
	}, nil
}

// AuthRouter mounts the unauthenticated login endpoint. It still needs
// a DB connection for the credential lookup.
func AuthRouter(r chi.Router) {
	r.Use(db.LoadScopedDBMiddleware)
	r.Method(http.MethodPost, "/login", httpx.WrapHttpRsp(login))
}
