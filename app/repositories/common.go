package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateTitle = errors.New("a post with that title already exists")
	ErrDuplicateEmail = errors.New("that email address is already in use")
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	UserKeyPrefix    = "user:"

	// Unique index prefixes
	TitleKeyPrefix = "title:"
	EmailKeyPrefix = "email:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
	UserSeqKey    = "seq:user"
)

// Entity keys carry zero-padded ids so badger's lexicographic prefix scans
// return records in ascending id order.

func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", PostKeyPrefix, id))
}

func commentKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", CommentKeyPrefix, id))
}

func userKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%010d", UserKeyPrefix, id))
}

func titleKey(title string) []byte {
	return []byte(TitleKeyPrefix + title)
}

func emailKey(email string) []byte {
	return []byte(EmailKeyPrefix + email)
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// runUpdate executes a read-modify-write transaction, retrying when badger
// reports a serialization conflict. Two concurrent creates with the same
// title or email therefore resolve to one success and one duplicate error,
// never a conflict surfaced to the caller.
func runUpdate(db *badger.DB, fn func(txn *badger.Txn) error) error {
	for {
		err := db.Update(fn)
		if err != badger.ErrConflict {
			return err
		}
	}
}

// keyExists reports whether a key is present in the transaction's view.
func keyExists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
