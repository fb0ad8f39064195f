package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/janus/apiserver/internal/auth"
	"github.com/janus/apiserver/internal/services"
	"github.com/janus/apiserver/types"
	"github.com/rs/zerolog/hlog"
)

// Authenticator verifies login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (types.User, error)
}

// AuditRecorder writes best-effort audit entries.
type AuditRecorder interface {
	RecordAction(ctx context.Context, actor types.Actor, action, resourceType string, resourceID *int, details string)
}

// AuthHandler provides the login endpoint.
type AuthHandler struct {
	users  Authenticator
	audit  AuditRecorder
	secret []byte
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(users Authenticator, audit AuditRecorder, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		users:  users,
		audit:  audit,
		secret: []byte(jwtSecret),
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, users Authenticator, audit AuditRecorder, jwtSecret string) {
	handler := NewAuthHandler(users, audit, jwtSecret)

	r.Post("/login", handler.Login)
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			if user.ID != 0 {
				actor := actorFromRequest(r)
				actor.UserID = &user.ID
				actor.Username = user.Username
				h.audit.RecordAction(r.Context(), actor, types.AuditActionLoginFailed, types.ResourceUser, &user.ID, "bad password")
			}
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("failed to authenticate")
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	subject := strconv.Itoa(user.ID)
	token, err := auth.Issue(subject, user.Role, user.Username, h.secret)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to create token")
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	actor := actorFromRequest(r)
	actor.UserID = &user.ID
	actor.Username = user.Username
	h.audit.RecordAction(r.Context(), actor, types.AuditActionLogin, types.ResourceUser, &user.ID, "")

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, UserID: subject, Role: user.Role})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

func (req *LoginRequest) Normalize() {
	req.Username = strings.TrimSpace(req.Username)
}

// LoginResponse carries the user id as a string, the same value as the
// token subject.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
