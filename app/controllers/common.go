package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"hadarblog/app/middleware"
	"hadarblog/app/models"
	"hadarblog/app/repositories"
	"hadarblog/app/services"
)

const (
	unauthorizedMessage = "You are not allowed to view this page"
	unreachableMessage  = "The content you are looking for is unreachable"
)

// isAPIRequest reports whether the client wants JSON.
func isAPIRequest(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// levelOf resolves the request's classification level. No session means
// guest.
func levelOf(r *http.Request) models.Level {
	user := middleware.UserFrom(r)
	if user == nil {
		return models.LevelGuest
	}
	return user.Classification
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// errorStatus maps service failures onto HTTP statuses with user-facing
// messages. Unauthorized and not-found messages stay generic; they must not
// reveal why access failed or what exists.
func errorStatus(err error) (int, string) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden, unauthorizedMessage
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound, unreachableMessage
	case errors.Is(err, repositories.ErrDuplicateTitle),
		errors.Is(err, repositories.ErrDuplicateEmail):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

// fieldErrors extracts per-field messages for re-rendering a form. Duplicate
// title and email violations surface on their field like any other
// validation failure.
func fieldErrors(err error) map[string]string {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	if errors.Is(err, repositories.ErrDuplicateTitle) {
		return map[string]string{"title": err.Error()}
	}
	if errors.Is(err, repositories.ErrDuplicateEmail) {
		return map[string]string{"email": err.Error()}
	}
	return nil
}

// loadTemplate parses the layout plus the named content templates.
func loadTemplate(basePath string, files ...string) *template.Template {
	paths := []string{filepath.Join(basePath, "app/views/layout.html")}
	for _, f := range files {
		paths = append(paths, filepath.Join(basePath, f))
	}
	return template.Must(template.ParseFiles(paths...))
}

// renderError shows the generic error page, or a JSON error for API calls.
func renderError(w http.ResponseWriter, r *http.Request, errTemplate *template.Template, message string, status int) {
	if isAPIRequest(r) {
		sendJSONError(w, message, status)
		return
	}
	w.WriteHeader(status)
	data := struct {
		Level   models.Level
		User    *models.User
		Message string
	}{levelOf(r), middleware.UserFrom(r), message}
	if err := errTemplate.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, message, status)
	}
}
