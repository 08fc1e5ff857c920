package services

import (
	"testing"
	"time"

	"hadarblog/app/models"
	"hadarblog/app/repositories"
	"hadarblog/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService() *ContentService {
	posts, comments := mock.NewContentRepositories()
	return NewContentService(posts, comments)
}

func validInput(title string) PostInput {
	return PostInput{
		Title:    title,
		Subtitle: "A fitting subtitle",
		ImageURL: "https://example.com/cover.jpg",
		Author:   "Hadar Cohen",
		Body:     "Body text long enough to be a post",
	}
}

var member = &models.User{ID: 2, Name: "Ann", Classification: models.LevelMember}

func TestCreatePost(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)
	assert.False(t, post.Date.IsZero())
}

func TestCreatePostAuthorization(t *testing.T) {
	svc := newContentService()

	_, err := svc.CreatePost(models.LevelGuest, validInput("Hello"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.CreatePost(models.LevelMember, validInput("Hello"))
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	svc := newContentService()

	_, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	other := validInput("Hello")
	other.Subtitle = "entirely different subtitle"
	_, err = svc.CreatePost(models.LevelAdmin, other)
	assert.ErrorIs(t, err, repositories.ErrDuplicateTitle)

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestCreatePostValidation(t *testing.T) {
	svc := newContentService()

	input := validInput("Hello")
	input.Author = "R2-D2"

	var verr *ValidationError
	_, err := svc.CreatePost(models.LevelAdmin, input)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "author")
}

func TestEditPostBumpsDate(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	created := post.Date
	time.Sleep(5 * time.Millisecond)

	input := validInput("Hello")
	input.Subtitle = "updated subtitle"
	require.NoError(t, svc.EditPost(models.LevelAdmin, post.ID, input))

	got, err := svc.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated subtitle", got.Subtitle)
	assert.True(t, got.Date.After(created), "edit must reset the date")
}

func TestEditPostErrors(t *testing.T) {
	svc := newContentService()

	// Authorization is checked before existence
	err := svc.EditPost(models.LevelGuest, 999, validInput("Hello"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.EditPost(models.LevelAdmin, 999, validInput("Hello"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Doomed"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateComment(models.LevelMember, member, post.ID, "a comment to be cascaded")
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeletePost(models.LevelAdmin, post.ID))

	_, err = svc.GetPost(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	comments, err := svc.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeletePostAuthorization(t *testing.T) {
	svc := newContentService()

	assert.ErrorIs(t, svc.DeletePost(models.LevelGuest, 999), ErrUnauthorized)
	assert.ErrorIs(t, svc.DeletePost(models.LevelMember, 1), ErrUnauthorized)
	assert.ErrorIs(t, svc.DeletePost(models.LevelAdmin, 999), repositories.ErrNotFound)
}

func TestListPostsInsertionOrder(t *testing.T) {
	svc := newContentService()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.CreatePost(models.LevelAdmin, validInput(title))
		require.NoError(t, err)
	}

	posts, err := svc.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, "Third", posts[2].Title)
}

func TestCreateComment(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	comment, err := svc.CreateComment(models.LevelMember, member, post.ID, "what a great post")
	require.NoError(t, err)
	assert.False(t, comment.Approved)
	assert.Equal(t, member.ID, comment.UserID)
	assert.Equal(t, "Ann", comment.UserName)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	svc := newContentService()

	_, err := svc.CreateComment(models.LevelMember, member, 999, "shouting into the void")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateCommentGuestGetsUnauthorizedNotNotFound(t *testing.T) {
	svc := newContentService()

	// Even against a nonexistent post, a guest learns nothing
	_, err := svc.CreateComment(models.LevelGuest, nil, 999, "sneaky guest comment")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateCommentValidation(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.CreateComment(models.LevelMember, member, post.ID, "meh")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "body")
}

func TestApproveCommentReordering(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	first, err := svc.CreateComment(models.LevelMember, member, post.ID, "comment number one")
	require.NoError(t, err)
	second, err := svc.CreateComment(models.LevelMember, member, post.ID, "comment number two")
	require.NoError(t, err)

	postID, err := svc.ApproveComment(models.LevelAdmin, first.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, postID)

	// The approved comment now sorts after the still-pending one
	list, err := svc.ListComments(post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.False(t, list[0].Approved)
	assert.Equal(t, first.ID, list[1].ID)
	assert.True(t, list[1].Approved)
}

func TestApproveCommentErrors(t *testing.T) {
	svc := newContentService()

	_, err := svc.ApproveComment(models.LevelGuest, 999)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.ApproveComment(models.LevelMember, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.ApproveComment(models.LevelAdmin, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteCommentReturnsParentPost(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	comment, err := svc.CreateComment(models.LevelMember, member, post.ID, "soon to be removed")
	require.NoError(t, err)

	postID, err := svc.DeleteComment(models.LevelAdmin, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, postID)

	list, err := svc.ListComments(post.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.DeleteComment(models.LevelAdmin, comment.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteApprovedComment(t *testing.T) {
	svc := newContentService()

	post, err := svc.CreatePost(models.LevelAdmin, validInput("Hello"))
	require.NoError(t, err)

	comment, err := svc.CreateComment(models.LevelMember, member, post.ID, "approved then removed")
	require.NoError(t, err)

	_, err = svc.ApproveComment(models.LevelAdmin, comment.ID)
	require.NoError(t, err)

	// Approval does not shield a comment from deletion
	postID, err := svc.DeleteComment(models.LevelAdmin, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, postID)
}
