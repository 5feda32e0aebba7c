package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/marmos91/resourced/pkg/api/auth"
	"github.com/marmos91/resourced/pkg/api/middleware"
)

// Credentials holds the configured admin user the API authenticates against.
type Credentials struct {
	// Username is the admin username.
	Username string

	// PasswordHash is the bcrypt hash of the admin password.
	PasswordHash string
}

// AuthHandler handles authentication-related API endpoints.
type AuthHandler struct {
	creds      Credentials
	jwtService *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(creds Credentials, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{creds: creds, jwtService: jwtService}
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for POST /api/v1/auth/login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

// RefreshRequest is the request body for POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles POST /api/v1/auth/login.
// Authenticates the admin credentials and returns a JWT token pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		BadRequest(w, "Username and password are required")
		return
	}

	if req.Username != h.creds.Username || h.creds.PasswordHash == "" {
		Unauthorized(w, "Invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(req.Password)); err != nil {
		Unauthorized(w, "Invalid username or password")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(req.Username, "admin")
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	WriteJSONOK(w, LoginResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
		Username:     req.Username,
		Role:         "admin",
	})
}

// Refresh handles POST /api/v1/auth/refresh.
// Returns a new token pair using a valid refresh token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.RefreshToken == "" {
		BadRequest(w, "Refresh token is required")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		Unauthorized(w, "Invalid refresh token")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(claims.Username, claims.Role)
	if err != nil {
		InternalServerError(w, "Failed to generate token")
		return
	}

	WriteJSONOK(w, LoginResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
		Username:     claims.Username,
		Role:         claims.Role,
	})
}

// Me handles GET /api/v1/auth/me.
// Returns the current authenticated user's information.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	WriteJSONOK(w, map[string]string{
		"username": claims.Username,
		"role":     claims.Role,
	})
}
