// Package boltdb implements the record stores on an embedded bbolt file: one bucket per entity,
// JSON values keyed by big-endian IDs.
package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
)

var (
	coursesBucket     = []byte("Courses")
	assignmentsBucket = []byte("Assignments")
)

type (
	Options struct {
		Fixtures bool      // seed a newly created file
		Now      time.Time // reference of the fixtures' due dates; zero means time.Now()
	}

	DB struct {
		db *bbolt.DB
	}
)

// Open opens (or creates) the DB file at `path`.
func Open(path string, opts Options) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating DB dir")
	}
	_, err := os.Stat(path)
	isNew := os.IsNotExist(err)

	bdb, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt DB")
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{coursesBucket, assignmentsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, errors.Wrap(err, "creating buckets")
	}

	db := &DB{db: bdb}
	if isNew && opts.Fixtures {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		if err = db.seed(now); err != nil {
			_ = bdb.Close()
			return nil, errors.Wrap(err, "seeding bolt DB")
		}
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

func (db *DB) seed(now time.Time) error {
	return db.db.Update(func(tx *bbolt.Tx) error {
		for _, c := range dummydb.CourseFixtures() {
			if _, err := insert(tx.Bucket(coursesBucket), &c.ID, &c); err != nil {
				return err
			}
		}
		for _, a := range dummydb.AssignmentFixtures(now) {
			if _, err := insert(tx.Bucket(assignmentsBucket), &a.ID, &a); err != nil {
				return err
			}
		}
		return nil
	})
}

func itob(id int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// insert assigns the bucket's next sequence to `*id`, then stores `v`; `v` must point to the record holding `id`.
func insert(b *bbolt.Bucket, id *int, v interface{}) (int, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	*id = int(seq)
	return *id, put(b, *id, v)
}

func put(b *bbolt.Bucket, id int, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(itob(id), data)
}

// get reports whether a value exists under `id`, decoding it into `v`.
func get(b *bbolt.Bucket, id int, v interface{}) (bool, error) {
	data := b.Get(itob(id))
	if data == nil {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

// remove reports whether a value existed under `id`.
func remove(b *bbolt.Bucket, id int) (bool, error) {
	key := itob(id)
	if b.Get(key) == nil {
		return false, nil
	}
	return true, b.Delete(key)
}
