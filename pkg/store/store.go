// Package store persists scenes for the HTTP server.
//
// Two implementations are provided: [MemoryStore] for development and tests,
// and [MongoStore] backed by a MongoDB collection.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	gderrors "github.com/graph-module/graphdraw/pkg/errors"
	"github.com/graph-module/graphdraw/pkg/scene"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = gderrors.New(gderrors.ErrCodeSceneNotFound, "scene not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 100

// Record is a stored scene.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	Scene     *scene.Scene `json:"scene" bson:"scene"`
	CreatedAt time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updated_at"`
}

// NewRecord wraps s in a record with a fresh id. The name defaults to the
// scene name.
func NewRecord(name string, s *scene.Scene) *Record {
	if name == "" && s != nil {
		name = s.Name
	}
	return &Record{
		ID:    uuid.NewString(),
		Name:  name,
		Scene: s,
	}
}

// Store is the scene storage contract.
type Store interface {
	// Put inserts or replaces a record. CreatedAt is kept for existing ids
	// and UpdatedAt is set to now.
	Put(ctx context.Context, r *Record) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Record, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
	// List returns records, most recently updated first.
	List(ctx context.Context, limit int) ([]*Record, error)
	Close(ctx context.Context) error
}

func validate(r *Record) error {
	if r == nil || r.Scene == nil {
		return gderrors.New(gderrors.ErrCodeInvalidInput, "record has no scene")
	}
	if r.ID == "" {
		return gderrors.New(gderrors.ErrCodeInvalidInput, "record has no id")
	}
	if r.Name != "" {
		if err := gderrors.ValidateSceneName(r.Name); err != nil {
			return err
		}
	}
	return r.Scene.Validate()
}

func listLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
