// Package farm tracks the creatures a user has picked during a session.
// A Farm belongs to a single session and is not safe for concurrent use.
package farm

import (
	"errors"
	"fmt"
	"time"

	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/util"
)

// DefaultLimit is the farm size used when none is configured.
const DefaultLimit = 30

var (
	// ErrFull is returned by Add when the farm is at its limit.
	ErrFull = errors.New("farm is full")
	// ErrNotFound is returned by Remove for an unknown entry id.
	ErrNotFound = errors.New("farm entry not found")
)

// Entry is one creature on the farm. The creature is shared with the
// catalog and must not be modified.
type Entry struct {
	ID       string
	Creature *models.Creature
	AddedAt  time.Time
}

// Farm is an ordered list of entries. The same species may be added more
// than once.
type Farm struct {
	limit   int
	entries []Entry
	now     func() time.Time
}

// New creates an empty farm holding at most limit entries. A limit of zero
// or less means DefaultLimit.
func New(limit int) *Farm {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Farm{
		limit: limit,
		now:   time.Now,
	}
}

// Add appends a creature and returns the new entry.
func (f *Farm) Add(c *models.Creature) (Entry, error) {
	if c == nil {
		return Entry{}, fmt.Errorf("adding to farm: nil creature")
	}
	if len(f.entries) >= f.limit {
		return Entry{}, fmt.Errorf("adding %s: %w (limit %d)", c.Name, ErrFull, f.limit)
	}

	e := Entry{
		ID:       util.NewID(),
		Creature: c,
		AddedAt:  f.now(),
	}
	f.entries = append(f.entries, e)
	return e, nil
}

// Remove deletes the entry with the given id. The id is matched in any
// letter case.
func (f *Farm) Remove(id string) error {
	normalized, err := util.ParseID(id)
	if err != nil {
		return fmt.Errorf("removing %q: %w", id, ErrNotFound)
	}
	for i, e := range f.entries {
		if e.ID == normalized {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing %s: %w", id, ErrNotFound)
}

// Clear removes every entry.
func (f *Farm) Clear() {
	f.entries = nil
}

// Entries returns a copy of the entries in the order they were added.
func (f *Farm) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of entries.
func (f *Farm) Len() int {
	return len(f.entries)
}

// Limit returns the maximum number of entries.
func (f *Farm) Limit() int {
	return f.limit
}

// Full reports whether Add would fail.
func (f *Farm) Full() bool {
	return len(f.entries) >= f.limit
}

// Contains reports whether a creature with the given name is on the farm.
func (f *Farm) Contains(name string) bool {
	key := models.NameKey(name)
	for _, e := range f.entries {
		if e.Creature.Key() == key {
			return true
		}
	}
	return false
}
