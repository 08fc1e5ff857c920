package repositories

import "hadarblog/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
	Update(post *models.Post) error
	// DeleteCascade removes the post and every comment attached to it as one
	// atomic operation.
	DeleteCascade(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	// ListByPost returns the post's comments in moderation-queue order:
	// unapproved before approved, ascending id within each group.
	ListByPost(postID int) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}
