// Package mock provides in-memory repositories mirroring the badger-backed
// ones, including their uniqueness, ordering and cascade semantics.
package mock

import (
	"sort"
	"sync"

	"hadarblog/app/models"
	"hadarblog/app/repositories"
)

type UserRepository struct {
	users  map[int]*models.User
	byMail map[string]int
	nextID int
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts    map[int]*models.Post
	byTitle  map[string]int
	comments *CommentRepository
	nextID   int
	mutex    sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	posts    *PostRepository
	nextID   int
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		byMail: make(map[string]int),
		nextID: 1,
	}
}

// NewContentRepositories returns a post and a comment repository sharing
// state, so cascade deletes and parent-post checks behave like the real
// store.
func NewContentRepositories() (*PostRepository, *CommentRepository) {
	pr := &PostRepository{
		posts:   make(map[int]*models.Post),
		byTitle: make(map[string]int),
		nextID:  1,
	}
	cr := &CommentRepository{
		comments: make(map[int]*models.Comment),
		posts:    pr,
		nextID:   1,
	}
	pr.comments = cr
	return pr, cr
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, taken := m.byMail[user.Email]; taken {
		return repositories.ErrDuplicateEmail
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	m.byMail[user.Email] = user.ID
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.byMail[email]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.users[id], nil
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, taken := m.byTitle[post.Title]; taken {
		return repositories.ErrDuplicateTitle
	}
	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	m.posts[post.ID] = post
	m.byTitle[post.Title] = post.ID
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	if existing.Title != post.Title {
		if _, taken := m.byTitle[post.Title]; taken {
			return repositories.ErrDuplicateTitle
		}
		delete(m.byTitle, existing.Title)
		m.byTitle[post.Title] = post.ID
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) DeleteCascade(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}

	m.comments.mutex.Lock()
	for cid, comment := range m.comments.comments {
		if comment.PostID == id {
			delete(m.comments.comments, cid)
		}
	}
	m.comments.mutex.Unlock()

	delete(m.byTitle, post.Title)
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	if m.posts != nil {
		if _, err := m.posts.GetByID(comment.PostID); err != nil {
			return err
		}
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Approved != comments[j].Approved {
			return !comments[i].Approved
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
