package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"hadarblog/app/repositories"
	"hadarblog/app/services"
	"hadarblog/app/sessions"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "adminpass"
	memberEmail   = "reader@example.com"
	memberPass    = "readerpass"
)

// fakeMailer records sent messages and can be told to fail.
type fakeMailer struct {
	sent int
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

// setupTestRouter builds the full router over an in-memory database with the
// admin account seeded, the way main does on boot.
func setupTestRouter(t *testing.T) (*mux.Router, *fakeMailer) {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	identity := services.NewIdentityService(repositories.NewBadgerUserRepository(db))
	require.NoError(t, identity.EnsureAdmin(adminEmail, adminPassword, "Hadar"))

	fm := &fakeMailer{}
	router := SetupRoutes(Deps{
		DB:        db,
		Sessions:  sessions.NewStore(),
		Mailer:    fm,
		ContactTo: "owner@example.com",
		BasePath:  "../..",
	})
	return router, fm
}

// postForm submits an application/x-www-form-urlencoded request.
func postForm(router *mux.Router, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router *mux.Router, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie extracts the session cookie set by a login or register
// response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessions.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// loginAs logs an existing account in and returns its session cookie.
func loginAs(t *testing.T, router *mux.Router, email, password string) *http.Cookie {
	t.Helper()
	rec := postForm(router, "/login", url.Values{
		"email":    {email},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return sessionCookie(t, rec)
}

// registerMember creates a member account and returns its session cookie.
func registerMember(t *testing.T, router *mux.Router) *http.Cookie {
	t.Helper()
	rec := postForm(router, "/register", url.Values{
		"email":    {memberEmail},
		"password": {memberPass},
		"name":     {"Reader"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	return sessionCookie(t, rec)
}

// createPostForm submits the web form for a new post with valid fields.
func createPostForm(router *mux.Router, cookie *http.Cookie, title string) *httptest.ResponseRecorder {
	return postForm(router, "/posts", url.Values{
		"title":     {title},
		"subtitle":  {"A closer look"},
		"image_url": {"https://example.com/cover.jpg"},
		"author":    {"Hadar Levi"},
		"body":      {"Plenty of words about the topic at hand."},
	}, cookie)
}
