// Package badgerstore implements a persistent naming service on BadgerDB.
// Bindings survive server restarts; mail sessions deployed before a restart
// stay resolvable without redeployment.
package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/resourced/pkg/naming"
)

const bindingPrefix = "binding/"

// BadgerNamingService stores bindings in an embedded BadgerDB.
type BadgerNamingService struct {
	db *badger.DB
}

// New opens (or creates) a BadgerDB-backed naming service at path.
func New(path string) (*BadgerNamingService, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logging is too chatty for a small store

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open naming store at %q: %w", path, err)
	}
	return &BadgerNamingService{db: db}, nil
}

func keyBinding(info naming.ResourceInfo) []byte {
	return []byte(bindingPrefix + info.Key())
}

// Publish implements naming.Service.
func (s *BadgerNamingService) Publish(ctx context.Context, info naming.ResourceInfo, payload any, rebind bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := naming.EncodePayload(payload)
	if err != nil {
		return err
	}

	entry := naming.Entry{
		ResourceInfo: info,
		Payload:      data,
		PublishedAt:  time.Now().UTC(),
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode binding: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := keyBinding(info)
		if !rebind {
			_, err := txn.Get(key)
			if err == nil {
				return naming.ErrAlreadyBound
			}
			if err != badger.ErrKeyNotFound {
				return fmt.Errorf("failed to check binding: %w", err)
			}
		}
		if err := txn.Set(key, encoded); err != nil {
			return fmt.Errorf("failed to store binding: %w", err)
		}
		return nil
	})
}

// Unpublish implements naming.Service.
func (s *BadgerNamingService) Unpublish(ctx context.Context, info naming.ResourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := keyBinding(info)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return naming.ErrNotBound
		} else if err != nil {
			return fmt.Errorf("failed to check binding: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete binding: %w", err)
		}
		return nil
	})
}

// Lookup implements naming.Service.
func (s *BadgerNamingService) Lookup(ctx context.Context, info naming.ResourceInfo) (*naming.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entry naming.Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBinding(info))
		if err == badger.ErrKeyNotFound {
			return naming.ErrNotBound
		}
		if err != nil {
			return fmt.Errorf("failed to get binding: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List implements naming.Service. Entries come back in key order, which is
// (application, name) order given the key layout.
func (s *BadgerNamingService) List(ctx context.Context) ([]naming.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []naming.Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bindingPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var entry naming.Entry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return fmt.Errorf("failed to decode binding: %w", err)
			}
			out = append(out, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close implements naming.Service.
func (s *BadgerNamingService) Close() error {
	return s.db.Close()
}
