package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"hadarblog/app/authz"
	"hadarblog/app/middleware"
	"hadarblog/app/models"
	"hadarblog/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	content   *services.ContentService
	templates map[string]*template.Template
}

// NewPostController creates a new PostController
func NewPostController(content *services.ContentService, basePath string) *PostController {
	return &PostController{
		content:   content,
		templates: loadPostTemplates(basePath),
	}
}

// loadPostTemplates loads and parses all post-related templates
func loadPostTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = loadTemplate(basePath, "app/views/posts/index.html")
	templates["show"] = loadTemplate(basePath, "app/views/posts/show.html", "app/views/shared/comments.html")
	templates["new"] = loadTemplate(basePath, "app/views/posts/new.html")
	templates["edit"] = loadTemplate(basePath, "app/views/posts/edit.html")
	templates["error"] = loadTemplate(basePath, "app/views/shared/error.html")
	return templates
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.content.ListPosts()
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{"posts": posts})
		return
	}

	data := struct {
		Level models.Level
		User  *models.User
		Posts []*models.Post
	}{levelOf(r), middleware.UserFrom(r), posts}

	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		pc.fail(w, r, err)
	}
}

// Show handles displaying a single post with its comments, unapproved
// first so pending moderation work is visible at the top.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, pc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	post, err := pc.content.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, post)
		return
	}

	data := struct {
		Level models.Level
		User  *models.User
		Post  *models.Post
	}{levelOf(r), middleware.UserFrom(r), post}

	if err := pc.templates["show"].ExecuteTemplate(w, "layout", data); err != nil {
		pc.fail(w, r, err)
	}
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	if !authz.Allowed(levelOf(r), authz.CreatePost) {
		renderError(w, r, pc.templates["error"], unauthorizedMessage, http.StatusForbidden)
		return
	}
	pc.renderForm(w, r, "new", services.PostInput{}, nil, 0)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := pc.parseInput(w, r)
	if !ok {
		return
	}

	post, err := pc.content.CreatePost(levelOf(r), input)
	if err != nil {
		if fields := fieldErrors(err); fields != nil && !isAPIRequest(r) {
			pc.renderForm(w, r, "new", input, fields, 0)
			return
		}
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, post)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// Edit displays the form for editing an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	if !authz.Allowed(levelOf(r), authz.EditPost) {
		renderError(w, r, pc.templates["error"], unauthorizedMessage, http.StatusForbidden)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, pc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}
	post, err := pc.content.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	input := services.PostInput{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImageURL: post.ImageURL,
		Author:   post.Author,
		Body:     post.Body,
	}
	pc.renderForm(w, r, "edit", input, nil, post.ID)
}

// Update handles overwriting an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, pc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	input, ok := pc.parseInput(w, r)
	if !ok {
		return
	}

	if err := pc.content.EditPost(levelOf(r), id, input); err != nil {
		if fields := fieldErrors(err); fields != nil && !isAPIRequest(r) {
			pc.renderForm(w, r, "edit", input, fields, id)
			return
		}
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		post, err := pc.content.GetPost(id)
		if err != nil {
			pc.fail(w, r, err)
			return
		}
		sendJSON(w, post)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
}

// Delete handles deleting a post and, with it, all of its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, pc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	if err := pc.content.DeletePost(levelOf(r), id); err != nil {
		pc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]string{"status": "deleted"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// parseInput reads a post submission from a form or JSON body.
func (pc *PostController) parseInput(w http.ResponseWriter, r *http.Request) (services.PostInput, bool) {
	var input services.PostInput
	if isAPIRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			sendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return input, false
		}
		return input, true
	}

	if err := r.ParseForm(); err != nil {
		renderError(w, r, pc.templates["error"], "Failed to parse form", http.StatusBadRequest)
		return input, false
	}
	input.Title = r.FormValue("title")
	input.Subtitle = r.FormValue("subtitle")
	input.ImageURL = r.FormValue("image_url")
	input.Author = r.FormValue("author")
	input.Body = r.FormValue("body")
	return input, true
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, name string, input services.PostInput, fields map[string]string, postID int) {
	data := struct {
		Level  models.Level
		User   *models.User
		Input  services.PostInput
		Errors map[string]string
		PostID int
	}{levelOf(r), middleware.UserFrom(r), input, fields, postID}

	if err := pc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		renderError(w, r, pc.templates["error"], "Template error", http.StatusInternalServerError)
	}
}

func (pc *PostController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	renderError(w, r, pc.templates["error"], message, status)
}
