package controllers

import (
	"html/template"
	"net/http"

	"hadarblog/app/middleware"
	"hadarblog/app/models"
	"hadarblog/app/services"
	"hadarblog/app/sessions"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	identity  *services.IdentityService
	sessions  *sessions.Store
	templates map[string]*template.Template
}

// NewAuthController creates a new AuthController
func NewAuthController(identity *services.IdentityService, store *sessions.Store, basePath string) *AuthController {
	return &AuthController{
		identity:  identity,
		sessions:  store,
		templates: loadAuthTemplates(basePath),
	}
}

// loadAuthTemplates loads and parses all auth-related templates
func loadAuthTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["register"] = loadTemplate(basePath, "app/views/auth/register.html")
	templates["login"] = loadTemplate(basePath, "app/views/auth/login.html")
	templates["error"] = loadTemplate(basePath, "app/views/shared/error.html")
	return templates
}

// RegisterForm shows the registration page. Authenticated users are sent
// home instead.
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ac.renderForm(w, r, "register", "", "", nil)
}

// Register creates a member account and logs it in.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, r, ac.templates["error"], "Failed to parse form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	name := r.FormValue("name")
	user, err := ac.identity.Register(email, r.FormValue("password"), name)
	if err != nil {
		if fields := fieldErrors(err); fields != nil {
			ac.renderForm(w, r, "register", email, name, fields)
			return
		}
		status, message := errorStatus(err)
		renderError(w, r, ac.templates["error"], message, status)
		return
	}

	ac.startSession(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm shows the login page. Authenticated users are sent home.
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	ac.renderForm(w, r, "login", "", "", nil)
}

// Login authenticates a user and starts a session. The failure message is
// the same whether the email was unknown or the password wrong.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, r, ac.templates["error"], "Failed to parse form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	user, err := ac.identity.Authenticate(email, r.FormValue("password"))
	if err != nil {
		ac.renderForm(w, r, "login", email, "", map[string]string{
			"password": "Incorrect email or password, please try again",
		})
		return
	}

	ac.startSession(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the current session. Guests are sent to the login page.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if middleware.UserFrom(r) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if cookie, err := r.Cookie(sessions.CookieName); err == nil {
		ac.sessions.Destroy(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessions.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) startSession(w http.ResponseWriter, user *models.User) {
	token := ac.sessions.Create(user.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessions.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func (ac *AuthController) renderForm(w http.ResponseWriter, r *http.Request, name, email, userName string, fields map[string]string) {
	data := struct {
		Level  models.Level
		User   *models.User
		Email  string
		Name   string
		Errors map[string]string
	}{levelOf(r), middleware.UserFrom(r), email, userName, fields}

	if err := ac.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		renderError(w, r, ac.templates["error"], "Template error", http.StatusInternalServerError)
	}
}
