package repositories

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	post := testPost("Hello World")
	require.NoError(t, repo.Create(post))
	assert.Equal(t, 1, post.ID)
	assert.False(t, post.Date.IsZero())

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Title)

	_, err = repo.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostDuplicateTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	require.NoError(t, repo.Create(testPost("Hello")))

	// Same title, different everything else
	dup := testPost("Hello")
	dup.Subtitle = "totally different subtitle"
	dup.Author = "Someone Else"
	assert.ErrorIs(t, repo.Create(dup), ErrDuplicateTitle)

	// Exactly one post with that title survives
	posts, err := repo.List()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
}

func TestPostConcurrentDuplicateCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(testPost("Contested Title"))
		}(i)
	}
	wg.Wait()

	// Exactly one winner, the loser sees the duplicate
	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrDuplicateTitle)
	} else {
		assert.ErrorIs(t, errs[0], ErrDuplicateTitle)
		assert.NoError(t, errs[1])
	}

	posts, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPostListAscendingID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	// Enough posts that lexicographic key order would betray naive keys
	// ("post:10" before "post:2")
	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Create(testPost(uniqueTitle(i))))
	}

	posts, err := repo.List()
	require.NoError(t, err)
	require.Len(t, posts, 12)
	for i, post := range posts {
		assert.Equal(t, i+1, post.ID)
	}
}

func TestPostUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	post := testPost("Original Title")
	require.NoError(t, repo.Create(post))

	post.Subtitle = "amended subtitle"
	require.NoError(t, repo.Update(post))

	got, err := repo.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "amended subtitle", got.Subtitle)

	missing := testPost("Ghost")
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(missing), ErrNotFound)
}

func TestPostRename(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	first := testPost("First")
	second := testPost("Second")
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	// Renaming into a held title is rejected
	second.Title = "First"
	assert.ErrorIs(t, repo.Update(second), ErrDuplicateTitle)

	// Renaming to a fresh title frees the old one
	second.Title = "Renamed"
	require.NoError(t, repo.Update(second))

	third := testPost("Second")
	assert.NoError(t, repo.Create(third))
}

func TestPostDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	posts := NewBadgerPostRepository(db)
	comments := NewBadgerCommentRepository(db)

	post := testPost("Doomed")
	other := testPost("Survivor")
	require.NoError(t, posts.Create(post))
	require.NoError(t, posts.Create(other))

	for i := 0; i < 3; i++ {
		require.NoError(t, comments.Create(testComment(post.ID, "comment on doomed post")))
	}
	keeper := testComment(other.ID, "comment on surviving post")
	require.NoError(t, comments.Create(keeper))

	require.NoError(t, posts.DeleteCascade(post.ID))

	_, err := posts.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphans, err := comments.ListByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	// The other post's comments are untouched
	kept, err := comments.ListByPost(other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	// The title is free again after the delete
	assert.NoError(t, posts.Create(testPost("Doomed")))
}

func TestPostDeleteCascadeNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	assert.ErrorIs(t, repo.DeleteCascade(42), ErrNotFound)
}
