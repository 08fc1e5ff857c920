// Package authz holds the single policy table mapping classification levels
// to the actions they may perform. Handlers and services consult this table
// instead of comparing levels inline.
package authz

import "hadarblog/app/models"

// Action is a request a caller can make against the content of the site.
type Action int

const (
	ViewContent Action = iota
	Comment
	CreatePost
	EditPost
	DeletePost
	ApproveComment
	DeleteComment
)

// minLevel is the policy table: the lowest classification allowed to perform
// each action.
var minLevel = map[Action]models.Level{
	ViewContent:    models.LevelGuest,
	Comment:        models.LevelMember,
	CreatePost:     models.LevelAdmin,
	EditPost:       models.LevelAdmin,
	DeletePost:     models.LevelAdmin,
	ApproveComment: models.LevelAdmin,
	DeleteComment:  models.LevelAdmin,
}

// Allowed reports whether a caller at the given level may perform the action.
// Unknown actions are denied. Allowed never mutates state; callers translate
// a false result into an unauthorized outcome.
func Allowed(level models.Level, action Action) bool {
	min, ok := minLevel[action]
	if !ok {
		return false
	}
	return level >= min
}
