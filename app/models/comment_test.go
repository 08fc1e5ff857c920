package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name:    "valid comment",
			comment: &Comment{ID: 1, PostID: 1, UserID: 1, Body: "totally agree with this"},
			wantErr: false,
		},
		{
			name:    "body too short",
			comment: &Comment{ID: 1, PostID: 1, UserID: 1, Body: "nice"},
			wantErr: true,
		},
		{
			name:    "missing body",
			comment: &Comment{ID: 1, PostID: 1, UserID: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentDefaultsUnapproved(t *testing.T) {
	comment := Comment{Body: "waiting for the moderator"}
	assert.False(t, comment.Approved)
}

func TestCommentSetPost(t *testing.T) {
	post := &Post{ID: 7}
	comment := &Comment{Body: "loved every word"}

	assert.NoError(t, comment.SetPost(post))
	assert.Equal(t, 7, comment.PostID)

	assert.Error(t, comment.SetPost(nil))
}
