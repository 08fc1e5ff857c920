package routes

import (
	"net/http"

	"hadarblog/app/controllers"
	"hadarblog/app/mailer"
	"hadarblog/app/middleware"
	"hadarblog/app/repositories"
	"hadarblog/app/services"
	"hadarblog/app/sessions"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Deps bundles everything the router needs.
type Deps struct {
	DB        *badger.DB
	Sessions  *sessions.Store
	Mailer    mailer.Mailer
	ContactTo string
	BasePath  string
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(deps.DB)
	postRepo := repositories.NewBadgerPostRepository(deps.DB)
	commentRepo := repositories.NewBadgerCommentRepository(deps.DB)

	identity := services.NewIdentityService(userRepo)
	content := services.NewContentService(postRepo, commentRepo)
	contact := services.NewContactService(deps.Mailer, deps.ContactTo)

	return Router(identity, content, contact, userRepo, deps.Sessions, deps.BasePath)
}

// Router wires controllers onto a mux router. Split from SetupRoutes so
// tests can inject mock repositories.
func Router(identity *services.IdentityService, content *services.ContentService,
	contact *services.ContactService, users repositories.UserRepository,
	store *sessions.Store, basePath string) *mux.Router {

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CurrentUser(store, users))

	postController := controllers.NewPostController(content, basePath)
	commentController := controllers.NewCommentController(content, basePath)
	authController := controllers.NewAuthController(identity, store, basePath)
	pagesController := controllers.NewPagesController(contact, basePath)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/about", pagesController.About).Methods("GET")
	router.HandleFunc("/contact", pagesController.ContactForm).Methods("GET")
	router.HandleFunc("/contact", pagesController.Contact).Methods("POST")

	router.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")

	// Posts web endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/new", postController.New).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/edit", postController.Edit).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Update).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/delete", postController.Delete).Methods("GET")

	// Comments web endpoints
	posts.HandleFunc("/{postId:[0-9]+}/comments/new", commentController.New).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/comments/{id:[0-9]+}/approve", commentController.Approve).Methods("GET")
	router.HandleFunc("/comments/{id:[0-9]+}/delete", commentController.Delete).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("", postController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Update).Methods("PUT")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	apiPosts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiPosts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}/approve", commentController.Approve).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
