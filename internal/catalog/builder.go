package catalog

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"strings"

	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/record"
)

// Default file names inside the data directory.
const (
	DefaultUsageFile     = "monster_use_data.txt"
	DefaultParentageFile = "monster_parent_pairs.txt"
	DefaultCreatureFile  = "monster_data.txt"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Files names the three input files within the data filesystem.
type Files struct {
	Usage     string
	Parentage string
	Creatures string
}

// DefaultFiles returns the standard data file names.
func DefaultFiles() Files {
	return Files{
		Usage:     DefaultUsageFile,
		Parentage: DefaultParentageFile,
		Creatures: DefaultCreatureFile,
	}
}

// Build loads the three data files from fsys and returns the finished
// catalog. It runs three passes in order:
//
//  1. usage file into the uses index
//  2. parentage file into the parents index
//  3. creature file into the roster, attaching both relation lists
//
// In both indices a later line for the same name replaces an earlier one.
// Any malformed line aborts the build with a *LoadError; a partial catalog is
// never returned.
func Build(ctx context.Context, fsys fs.FS, files Files, tax *models.Taxonomy) (*Catalog, error) {
	if tax == nil {
		tax = models.DefaultTaxonomy()
	}

	c := &Catalog{
		tax:     tax,
		roster:  []*models.Creature{},
		byName:  make(map[string]*models.Creature),
		uses:    newRelationIndex(),
		parents: newRelationIndex(),
	}

	// Pass 1: usage edges
	err := scanFile(fsys, files.Usage, func(line string) error {
		edge, err := record.ParseUsage(line)
		if err != nil {
			return err
		}
		c.uses.put(edge.Parent, edge.Children)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("usage index built", "file", files.Usage, "entries", c.uses.len())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	// Pass 2: parentage edges
	err = scanFile(fsys, files.Parentage, func(line string) error {
		edge, err := record.ParseParentage(line)
		if err != nil {
			return err
		}
		c.parents.put(edge.Child, edge.Parents)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("parents index built", "file", files.Parentage, "entries", c.parents.len())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	// Pass 3: creature records
	err = scanFile(fsys, files.Creatures, func(line string) error {
		creature, err := record.ParseCreature(line, tax)
		if err != nil {
			return err
		}

		key := creature.Key()
		if _, exists := c.byName[key]; exists {
			return fmt.Errorf("duplicate creature name: %s", creature.Name)
		}

		creature.Produces = c.uses.get(key)
		creature.Parents = c.parents.get(key)

		c.roster = append(c.roster, creature)
		c.byName[key] = creature
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("catalog loaded",
		"creatures", len(c.roster),
		"uses", c.uses.len(),
		"parents", c.parents.len(),
		"unresolved", len(c.Unresolved()),
	)

	return c, nil
}

// scanFile opens name, calls fn for every line and closes the file on every
// path out. Errors from fn are wrapped with the file and line number.
func scanFile(fsys fs.FS, name string, fn func(line string) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return &LoadError{File: name, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if err := fn(raw); err != nil {
			return &LoadError{File: name, Line: lineNo, Raw: raw, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return &LoadError{File: name, Line: lineNo + 1, Err: fmt.Errorf("reading: %w", err)}
	}

	return nil
}

// relationIndex maps a creature name to an ordered list of related names.
// Keys are case-insensitive; the first spelling seen is kept for display.
type relationIndex struct {
	order   []string
	names   map[string]string
	related map[string][]string
}

func newRelationIndex() relationIndex {
	return relationIndex{
		names:   make(map[string]string),
		related: make(map[string][]string),
	}
}

// put stores related under name, replacing any earlier entry.
func (r *relationIndex) put(name string, related []string) {
	key := models.NameKey(name)
	if _, exists := r.related[key]; !exists {
		r.order = append(r.order, key)
		r.names[key] = name
	}
	r.related[key] = related
}

// get returns a copy of the related names for key, or an empty slice.
func (r *relationIndex) get(key string) []string {
	related := r.related[key]
	out := make([]string, len(related))
	copy(out, related)
	return out
}

func (r *relationIndex) all() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, key := range r.order {
			if !yield(r.names[key], r.get(key)) {
				return
			}
		}
	}
}

func (r *relationIndex) len() int {
	return len(r.related)
}
