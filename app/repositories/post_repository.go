package repositories

import (
	"hadarblog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB.
//
// Title uniqueness is enforced with a "title:" index key written in the same
// transaction as the post record, so two concurrent creates with the same
// title serialize to one success and one ErrDuplicateTitle.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		taken, err := keyExists(txn, titleKey(post.Title))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateTitle
		}

		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(titleKey(post.Title), postKey(post.ID))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts in ascending id order.
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites an existing post. Renaming a post into a title held by
// another post fails with ErrDuplicateTitle; the title index follows the
// rename in the same transaction.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(post.ID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		if existing.Title != post.Title {
			taken, err := keyExists(txn, titleKey(post.Title))
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateTitle
			}
			if err := txn.Delete(titleKey(existing.Title)); err != nil {
				return err
			}
			if err := txn.Set(titleKey(post.Title), postKey(post.ID)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// DeleteCascade removes a post, its title index entry and every comment
// attached to it inside a single transaction, so readers never observe the
// post gone while its comments remain.
func (r *BadgerPostRepository) DeleteCascade(id int) error {
	return runUpdate(r.db, func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var post models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}

		// Collect the comment keys first; deleting while iterating is not
		// safe on a live iterator.
		var doomed [][]byte
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				it.Close()
				return err
			}
			if comment.PostID == id {
				doomed = append(doomed, it.Item().KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		if err := txn.Delete(titleKey(post.Title)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}
