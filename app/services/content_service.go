package services

import (
	"hadarblog/app/authz"
	"hadarblog/app/models"
	"hadarblog/app/repositories"
)

// PostInput carries the mutable fields of a post submission.
type PostInput struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	Author   string `json:"author"`
	Body     string `json:"body"`
}

// ContentService orchestrates the post and comment lifecycles. Every
// mutating operation checks the caller's classification level against the
// policy table before touching a repository, so unauthorized callers cannot
// probe which ids exist.
type ContentService struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewContentService creates a new ContentService
func NewContentService(posts repositories.PostRepository, comments repositories.CommentRepository) *ContentService {
	return &ContentService{posts: posts, comments: comments}
}

// CreatePost publishes a new post dated now.
func (s *ContentService) CreatePost(level models.Level, input PostInput) (*models.Post, error) {
	if !authz.Allowed(level, authz.CreatePost) {
		return nil, ErrUnauthorized
	}

	post := &models.Post{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
		Author:   input.Author,
		Body:     input.Body,
	}
	if err := asValidationError(post.Validate()); err != nil {
		return nil, err
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost overwrites all mutable fields and resets the post date, so the
// page shows when the post was last touched rather than first published.
func (s *ContentService) EditPost(level models.Level, postID int, input PostInput) error {
	if !authz.Allowed(level, authz.EditPost) {
		return ErrUnauthorized
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		return err
	}

	post.Title = input.Title
	post.Subtitle = input.Subtitle
	post.ImageURL = input.ImageURL
	post.Author = input.Author
	post.Body = input.Body
	post.Touch()

	if err := asValidationError(post.Validate()); err != nil {
		return err
	}
	return s.posts.Update(post)
}

// DeletePost removes a post and all its comments atomically.
func (s *ContentService) DeletePost(level models.Level, postID int) error {
	if !authz.Allowed(level, authz.DeletePost) {
		return ErrUnauthorized
	}
	return s.posts.DeleteCascade(postID)
}

// ListPosts returns all posts in ascending id order.
func (s *ContentService) ListPosts() ([]*models.Post, error) {
	return s.posts.List()
}

// GetPost retrieves a post with its comments in moderation-queue order.
func (s *ContentService) GetPost(postID int) (*models.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return post, nil
}

// ListComments returns a post's comments, unapproved first.
func (s *ContentService) ListComments(postID int) ([]*models.Comment, error) {
	return s.comments.ListByPost(postID)
}

// CreateComment adds an unapproved comment by the given user to a post.
func (s *ContentService) CreateComment(level models.Level, user *models.User, postID int, body string) (*models.Comment, error) {
	if !authz.Allowed(level, authz.Comment) || user == nil {
		return nil, ErrUnauthorized
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   user.ID,
		UserName: user.Name,
		Body:     body,
		Approved: false,
	}
	if err := asValidationError(comment.Validate()); err != nil {
		return nil, err
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ApproveComment marks a comment as approved and returns the parent post id
// so the caller can navigate back to the post page.
func (s *ContentService) ApproveComment(level models.Level, commentID int) (int, error) {
	if !authz.Allowed(level, authz.ApproveComment) {
		return 0, ErrUnauthorized
	}

	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return 0, err
	}
	postID := comment.PostID

	comment.Approved = true
	if err := s.comments.Update(comment); err != nil {
		return 0, err
	}
	return postID, nil
}

// DeleteComment removes a comment and returns the parent post id. The id is
// captured before the delete; it is unrecoverable afterwards.
func (s *ContentService) DeleteComment(level models.Level, commentID int) (int, error) {
	if !authz.Allowed(level, authz.DeleteComment) {
		return 0, ErrUnauthorized
	}

	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		return 0, err
	}
	postID := comment.PostID

	if err := s.comments.Delete(commentID); err != nil {
		return 0, err
	}
	return postID, nil
}
