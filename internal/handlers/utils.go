package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/janus/apiserver/internal/auth"
	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeStoreError maps repository sentinels to status codes. Anything else is
// logged and reported with the fixed internal message.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, resource, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, resource+" already exists")
	default:
		hlog.FromRequest(r).Error().Err(err).Str("resource", resource).Msg("failed to " + action)
		writeError(w, http.StatusInternalServerError, "failed to "+action+" "+resource)
	}
}

// decodeAndValidate reads a JSON body into dst, which must implement
// normalizer, and runs the struct validation tags. Unknown fields are ignored.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst normalizer) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	dst.Normalize()
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

type normalizer interface {
	Normalize()
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("invalid %s", strings.Join(fields, ", "))
	}
	return errors.New("invalid request")
}

func parseID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// actorFromRequest describes the caller for the audit trail. The guard has
// already stored the claims, so a missing principal only yields an anonymous actor.
func actorFromRequest(r *http.Request) types.Actor {
	actor := types.Actor{
		IPAddress: clientIP(r),
		UserAgent: optionalString(r.UserAgent()),
	}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actor.Username = claims.Username
		if id, err := claims.UserID(); err == nil {
			actor.UserID = &id
		}
	}
	return actor
}

func clientIP(r *http.Request) *string {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return optionalString(host)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
