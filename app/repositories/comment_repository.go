package repositories

import (
	"sort"

	"hadarblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment. The parent post must exist; the check and
// the insert share one transaction so a concurrent post deletion cannot
// leave an orphan.
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		exists, err := keyExists(txn, postKey(comment.PostID))
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(commentKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
	})

	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost retrieves the post's comments in moderation-queue order:
// unapproved first so pending comments surface at the top, ascending id
// within each group.
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}

			if comment.PostID == postID {
				comments = append(comments, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The prefix scan already yields ascending ids; a stable sort on the
	// approved flag keeps that order within each group.
	sort.SliceStable(comments, func(i, j int) bool {
		return !comments[i].Approved && comments[j].Approved
	})

	return comments, nil
}

// Update overwrites an existing comment
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		_, err := txn.Get(commentKey(comment.ID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(commentKey(comment.ID), data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		_, err := txn.Get(commentKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(commentKey(id))
	})
}
