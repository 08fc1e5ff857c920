package repositories

import (
	"fmt"
	"testing"
	"time"

	"hadarblog/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testPost(title string) *models.Post {
	return &models.Post{
		Title:    title,
		Subtitle: "A subtitle for " + title,
		ImageURL: "https://example.com/img.jpg",
		Author:   "Hadar Cohen",
		Body:     "Body text long enough to be useful",
		Date:     time.Now(),
	}
}

func testComment(postID int, body string) *models.Comment {
	return &models.Comment{
		PostID:   postID,
		UserID:   1,
		UserName: "Ann",
		Body:     body,
	}
}

func testUser(email string) *models.User {
	return &models.User{
		Email:          email,
		Password:       "digest",
		Name:           "Ann",
		Classification: models.LevelMember,
	}
}

func uniqueTitle(i int) string {
	return fmt.Sprintf("Post number %d", i)
}
