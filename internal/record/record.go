// Package record parses single lines of the monster data files into typed
// records. Parsing is pure: no I/O, no shared state.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/monsterdex/monsterdex/internal/models"
)

// Kind selects which file format a line is parsed as.
type Kind int

const (
	// KindUsage is a usage-edge line: <parent> <child>...
	KindUsage Kind = iota
	// KindParentage is a parentage-edge line: <child> <parent>...
	KindParentage
	// KindCreature is a creature-record line with exactly 40 tokens.
	KindCreature
)

// String returns the display string for the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindParentage:
		return "parentage"
	case KindCreature:
		return "creature"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// UsageEdge lists the creatures a parent can help produce.
type UsageEdge struct {
	Parent   string
	Children []string
}

// ParentageEdge lists the creatures known to parent a child.
// The names are kept flat; pairing them up is left to the caller.
type ParentageEdge struct {
	Child   string
	Parents []string
}

// Record is the result of Parse. Exactly one of the pointer fields is set,
// matching Kind.
type Record struct {
	Kind      Kind
	Usage     *UsageEdge
	Parentage *ParentageEdge
	Creature  *models.Creature
}

// Parse converts one line into a record of the given kind.
func Parse(kind Kind, line string, tax *models.Taxonomy) (Record, error) {
	switch kind {
	case KindUsage:
		edge, err := ParseUsage(line)
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: kind, Usage: &edge}, nil
	case KindParentage:
		edge, err := ParseParentage(line)
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: kind, Parentage: &edge}, nil
	case KindCreature:
		c, err := ParseCreature(line, tax)
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: kind, Creature: c}, nil
	default:
		return Record{}, fmt.Errorf("unsupported record kind: %s", kind)
	}
}

// ParseUsage parses a usage-edge line. Repeated child names are dropped,
// keeping the first occurrence.
func ParseUsage(line string) (UsageEdge, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 1 {
		return UsageEdge{}, &MalformedEdgeError{Kind: KindUsage, Reason: "line has no tokens"}
	}

	return UsageEdge{
		Parent:   tokens[0],
		Children: distinct(tokens[1:]),
	}, nil
}

// ParseParentage parses a parentage-edge line.
func ParseParentage(line string) (ParentageEdge, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 1 {
		return ParentageEdge{}, &MalformedEdgeError{Kind: KindParentage, Reason: "line has no tokens"}
	}

	parents := make([]string, len(tokens)-1)
	copy(parents, tokens[1:])

	return ParentageEdge{
		Child:   tokens[0],
		Parents: parents,
	}, nil
}

// ParseCreature parses a creature-record line:
//
//	<name> <family> <8 stats> <3 skills> <27 resistances>
//
// The relation lists of the returned creature are empty; the catalog builder
// fills them in.
func ParseCreature(line string, tax *models.Taxonomy) (*models.Creature, error) {
	tokens := strings.Fields(line)
	if len(tokens) != models.RecordFieldCount {
		return nil, &MalformedRecordError{
			Tokens: len(tokens),
			Reason: fmt.Sprintf("expected %d tokens, got %d", models.RecordFieldCount, len(tokens)),
		}
	}

	c := &models.Creature{
		Name:     tokens[0],
		Family:   tax.ParseFamily(tokens[1]),
		Parents:  []string{},
		Produces: []string{},
	}

	pos := 2

	var stats [models.StatCount]int
	for i := range stats {
		v, err := parseInt(models.StatNames[i], tokens[pos])
		if err != nil {
			return nil, err
		}
		stats[i] = v
		pos++
	}
	c.Stats = models.StatsFromValues(stats)

	for i := range c.Skills {
		c.Skills[i] = tokens[pos]
		pos++
	}

	for i := range c.Resistances {
		field := fmt.Sprintf("resistance[%d] (%s)", i, tax.ResistanceCategory(i).Label)
		v, err := parseInt(field, tokens[pos])
		if err != nil {
			return nil, err
		}
		c.Resistances[i] = v
		pos++
	}

	return c, nil
}

func parseInt(field, token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &MalformedRecordError{
			Tokens: models.RecordFieldCount,
			Field:  field,
			Value:  token,
			Reason: "not an integer",
			Err:    err,
		}
	}
	return v, nil
}

// distinct drops repeated names, compared case-insensitively, keeping the
// first spelling.
func distinct(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := models.NameKey(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
