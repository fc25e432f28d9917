// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/odrzavanje/internal/platform/middleware"
	requestutil "github.com/taibuivan/odrzavanje/internal/platform/request"
	"github.com/taibuivan/odrzavanje/internal/platform/respond"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
	"github.com/taibuivan/odrzavanje/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	verifier    middleware.TokenVerifier
}

// NewHandler constructs a new [Handler]. The verifier authenticates the
// routes that read token claims.
func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{authService: service, verifier: verifier}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account. An administrator token may set access_level.
//   - POST /login    : Authenticates and returns a JWT. Ignores any bearer header.
//   - GET  /me       : Echoes the verified token claims.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.With(middleware.IdentifyCaller(handler.verifier)).Post("/register", handler.register)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(handler.verifier))
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// UserRoutes returns the administrator-only account lookup routes.
//
// # Endpoints
//   - GET /{username} : Returns the public summary of one account.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Authenticate(handler.verifier))
	router.With(middleware.RequireRole(sec.RoleAdministrator)).Get("/{username}", handler.getUser)

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string           `json:"username"`
	DisplayName string           `json:"display_name"`
	Password    string           `json:"password"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	AccessLevel *sec.AccessLevel `json:"access_level"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	UserID    string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}

/*
Register handles the creation of a new account.

POST /api/v1/auth/register

Response:
  - 201: User: Created account, without credential material
  - 400: Validation failure or invalid JSON
  - 403: access_level set without an administrator token
  - 409: Username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var grantedBy sec.UserRole
	if caller := middleware.GetUser(request.Context()); caller != nil {
		grantedBy = sec.UserRole(caller.Role)
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Password:    input.Password,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		AccessLevel: input.AccessLevel,
		GrantedBy:   grantedBy,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates an account and returns a bearer token.

POST /api/v1/auth/login

Response:
  - 200: {token, expires_at, user}
  - 400: Missing fields or invalid JSON
  - 401: Invalid username or password (never says which)
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Custom(FieldPassword, input.Password == "", "This field is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Me returns the identity carried by the caller's token.

GET /api/v1/auth/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := meResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		response.ExpiresAt = claims.ExpiresAt.Unix()
	}

	respond.OK(writer, response)
}

/*
GetUser returns the public summary of an account.

GET /api/v1/users/{username}

Response:
  - 200: UserSummary
  - 403: Caller is not an administrator
  - 404: Unknown username
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.authService.GetSummary(request.Context(), requestutil.Param(request, FieldUsername))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
