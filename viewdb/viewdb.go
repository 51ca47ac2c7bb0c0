// Package viewdb stores named camera bookmarks.
package viewdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
	"go.uber.org/zap"
	"nyiyui.ca/hato/hakoniwa/camera"
)

var ErrNotFound = errors.New("view not found")

// View is a saved camera position.
type View struct {
	ID      uuid.UUID    `json:"id"`
	Name    string       `json:"name"`
	Camera  camera.Orbit `json:"camera"`
	Created time.Time    `json:"created"`
}

// Store keeps views in a buntdb file, one JSON value per view:<uuid>:data key.
type Store struct {
	db *buntdb.DB
}

// Open opens the store at path. ":memory:" keeps everything in memory.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.SetConfig(buntdb.Config{
		SyncPolicy:           buntdb.Always,
		AutoShrinkPercentage: 100,
		AutoShrinkMinSize:    32 * 1024 * 1024,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func key(id uuid.UUID) string {
	return fmt.Sprintf("view:%s:data", id)
}

// Save stores v, giving it a new ID and creation time if it has none.
func (s *Store) Save(v View) (View, error) {
	if v.ID == (uuid.UUID{}) {
		v.ID = uuid.New()
	}
	if v.Created.IsZero() {
		v.Created = time.Now()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return View{}, fmt.Errorf("marshal: %w", err)
	}
	err = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key(v.ID), string(data), nil)
		return err
	})
	if err != nil {
		return View{}, fmt.Errorf("save %s: %w", v.ID, err)
	}
	zap.S().Infow("saved view", "id", v.ID, "name", v.Name)
	return v, nil
}

// Get returns the view with id.
func (s *Store) Get(id uuid.UUID) (View, error) {
	var v View
	err := s.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(key(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(value), &v)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return View{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return View{}, fmt.Errorf("get %s: %w", id, err)
	}
	return v, nil
}

// Delete removes the view with id.
func (s *Store) Delete(id uuid.UUID) error {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key(id))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return err
}

// List returns every view, oldest first.
// Entries that fail to parse are logged and skipped.
func (s *Store) List() ([]View, error) {
	var views []View
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys("view:*", func(k, value string) bool {
			if !strings.HasSuffix(k, ":data") {
				return true
			}
			var v View
			if err := json.Unmarshal([]byte(value), &v); err != nil {
				zap.S().Errorw("unmarshalling failed",
					"key", k,
					"value", value)
				return true
			}
			views = append(views, v)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Created.Before(views[j].Created) })
	return views, nil
}
