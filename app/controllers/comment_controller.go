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

// CommentController handles HTTP requests for comments
type CommentController struct {
	content   *services.ContentService
	templates map[string]*template.Template
}

// NewCommentController creates a new CommentController
func NewCommentController(content *services.ContentService, basePath string) *CommentController {
	return &CommentController{
		content:   content,
		templates: loadCommentTemplates(basePath),
	}
}

// loadCommentTemplates loads and parses all comment-related templates
func loadCommentTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["new"] = loadTemplate(basePath, "app/views/comments/new.html")
	templates["error"] = loadTemplate(basePath, "app/views/shared/error.html")
	return templates
}

// New displays the form for commenting on a post
func (cc *CommentController) New(w http.ResponseWriter, r *http.Request) {
	if !authz.Allowed(levelOf(r), authz.Comment) {
		renderError(w, r, cc.templates["error"], unauthorizedMessage, http.StatusForbidden)
		return
	}

	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		renderError(w, r, cc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}
	if _, err := cc.content.GetPost(postID); err != nil {
		cc.fail(w, r, err)
		return
	}

	cc.renderForm(w, r, postID, "", nil)
}

// Index lists a post's comments in moderation-queue order
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		sendJSONError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.content.ListComments(postID)
	if err != nil {
		cc.fail(w, r, err)
		return
	}
	sendJSON(w, comments)
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		renderError(w, r, cc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	var body string
	if isAPIRequest(r) {
		var payload struct {
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			sendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		body = payload.Body
	} else {
		if err := r.ParseForm(); err != nil {
			renderError(w, r, cc.templates["error"], "Failed to parse form", http.StatusBadRequest)
			return
		}
		body = r.FormValue("body")
	}

	comment, err := cc.content.CreateComment(levelOf(r), middleware.UserFrom(r), postID, body)
	if err != nil {
		if fields := fieldErrors(err); fields != nil && !isAPIRequest(r) {
			cc.renderForm(w, r, postID, body, fields)
			return
		}
		cc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, comment)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusSeeOther)
}

// Approve marks a comment as approved and returns to its post
func (cc *CommentController) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, cc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	postID, err := cc.content.ApproveComment(levelOf(r), id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{"status": "approved", "post_id": postID})
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusSeeOther)
}

// Delete removes a comment and returns to its post
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(w, r, cc.templates["error"], unreachableMessage, http.StatusNotFound)
		return
	}

	postID, err := cc.content.DeleteComment(levelOf(r), id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}

	if isAPIRequest(r) {
		sendJSON(w, map[string]interface{}{"status": "deleted", "post_id": postID})
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(postID), http.StatusSeeOther)
}

func (cc *CommentController) renderForm(w http.ResponseWriter, r *http.Request, postID int, body string, fields map[string]string) {
	data := struct {
		Level  models.Level
		User   *models.User
		PostID int
		Body   string
		Errors map[string]string
	}{levelOf(r), middleware.UserFrom(r), postID, body, fields}

	if err := cc.templates["new"].ExecuteTemplate(w, "layout", data); err != nil {
		renderError(w, r, cc.templates["error"], "Template error", http.StatusInternalServerError)
	}
}

func (cc *CommentController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	renderError(w, r, cc.templates["error"], message, status)
}
