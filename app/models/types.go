package models

import "time"

// Level is a user's classification rank. It drives every authorization
// decision in the application.
type Level int

const (
	LevelGuest  Level = 0
	LevelMember Level = 1
	LevelAdmin  Level = 2
)

// User represents a registered account. Password holds the bcrypt digest,
// never the plaintext.
type User struct {
	ID             int    `json:"id"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"-"`
	Name           string `json:"name" validate:"required,min=2,max=50"`
	Classification Level  `json:"classification"`
}

// Post represents a blog post with comments.
type Post struct {
	ID       int        `json:"id"`
	Title    string     `json:"title" validate:"required,min=2,max=100"`
	Subtitle string     `json:"subtitle" validate:"required,min=2,max=150"`
	ImageURL string     `json:"image_url" validate:"required,url"`
	Author   string     `json:"author" validate:"required,min=2,max=100,author_name"`
	Body     string     `json:"body" validate:"required,min=5"`
	Date     time.Time  `json:"date"`
	Comments []*Comment `json:"comments,omitempty" validate:"-"`
}

// Comment represents a reader's comment on a post. Approved starts false and
// is flipped by a moderator; no other field changes after creation.
type Comment struct {
	ID       int    `json:"id"`
	PostID   int    `json:"post_id"`
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	Body     string `json:"body" validate:"required,min=5"`
	Approved bool   `json:"approved"`
}
