package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"hadarblog/app/middleware"
	"hadarblog/app/models"
	"hadarblog/app/services"
)

// PagesController serves the about and contact pages.
type PagesController struct {
	contact   *services.ContactService
	templates map[string]*template.Template
}

// NewPagesController creates a new PagesController
func NewPagesController(contact *services.ContactService, basePath string) *PagesController {
	return &PagesController{
		contact:   contact,
		templates: loadPagesTemplates(basePath),
	}
}

// loadPagesTemplates loads and parses the static page templates
func loadPagesTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["about"] = loadTemplate(basePath, "app/views/pages/about.html")
	templates["contact"] = loadTemplate(basePath, "app/views/pages/contact.html")
	templates["error"] = loadTemplate(basePath, "app/views/shared/error.html")
	return templates
}

// About renders the about page
func (gc *PagesController) About(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Level models.Level
		User  *models.User
	}{levelOf(r), middleware.UserFrom(r)}

	if err := gc.templates["about"].ExecuteTemplate(w, "layout", data); err != nil {
		renderError(w, r, gc.templates["error"], "Template error", http.StatusInternalServerError)
	}
}

// ContactForm renders the contact page
func (gc *PagesController) ContactForm(w http.ResponseWriter, r *http.Request) {
	gc.renderContact(w, r, &models.ContactMessage{}, nil, "", false)
}

// Contact handles a contact-form submission. A mail transport failure is
// reported as a retry-later status, never as a server error.
func (gc *PagesController) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, r, gc.templates["error"], "Failed to parse form", http.StatusBadRequest)
		return
	}

	msg := &models.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	err := gc.contact.Submit(msg)
	switch {
	case err == nil:
		gc.renderContact(w, r, &models.ContactMessage{}, nil, "The form was successfully sent :)", true)
	case errors.Is(err, services.ErrSendFailed):
		gc.renderContact(w, r, msg, nil,
			"We could not send the form at this moment, please try again later.", false)
	default:
		if fields := fieldErrors(err); fields != nil {
			gc.renderContact(w, r, msg, fields, "", false)
			return
		}
		status, message := errorStatus(err)
		renderError(w, r, gc.templates["error"], message, status)
	}
}

func (gc *PagesController) renderContact(w http.ResponseWriter, r *http.Request, msg *models.ContactMessage, fields map[string]string, status string, sent bool) {
	data := struct {
		Level  models.Level
		User   *models.User
		Input  *models.ContactMessage
		Errors map[string]string
		Status string
		IsSent bool
	}{levelOf(r), middleware.UserFrom(r), msg, fields, status, sent}

	if err := gc.templates["contact"].ExecuteTemplate(w, "layout", data); err != nil {
		renderError(w, r, gc.templates["error"], "Template error", http.StatusInternalServerError)
	}
}
