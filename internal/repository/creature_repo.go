package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/monsterdex/monsterdex/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreatureRepository handles creature snapshot data access.
type CreatureRepository struct {
	db  *sql.DB
	tax *models.Taxonomy
}

// NewCreatureRepository creates a new creature repository. The taxonomy
// supplies resistance category labels for stored rows.
func NewCreatureRepository(db *sql.DB, tax *models.Taxonomy) *CreatureRepository {
	if tax == nil {
		tax = models.DefaultTaxonomy()
	}
	return &CreatureRepository{db: db, tax: tax}
}

func (r *CreatureRepository) conn(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a creature and its resistances. Position is the creature's
// line order in the source file. Relation lists are stored with SetParents
// and SetProduces.
func (r *CreatureRepository) Create(ctx context.Context, tx *sql.Tx, c *models.Creature, position int) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ex := r.conn(tx)

	query := `
		INSERT INTO creatures (
			name, position, family,
			max_level, exp_growth, hp, mp, attack, defense, agility, intelligence,
			skill_1, skill_2, skill_3
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := ex.ExecContext(ctx, query,
		c.Name,
		position,
		string(c.Family),
		c.Stats.MaxLevel,
		c.Stats.ExpGrowth,
		c.Stats.HP,
		c.Stats.MP,
		c.Stats.Attack,
		c.Stats.Defense,
		c.Stats.Agility,
		c.Stats.Intelligence,
		c.Skills[0],
		c.Skills[1],
		c.Skills[2],
	)
	if err != nil {
		return fmt.Errorf("inserting creature %s: %w", c.Name, err)
	}

	for i, v := range c.Resistances {
		_, err := ex.ExecContext(ctx,
			`INSERT INTO creature_resistances (creature_name, category_index, category_label, value) VALUES (?, ?, ?, ?)`,
			c.Name, i, r.tax.ResistanceCategory(i).Label, v,
		)
		if err != nil {
			return fmt.Errorf("inserting resistance %d for %s: %w", i, c.Name, err)
		}
	}

	return nil
}

// SetParents replaces the stored parent list of name. The name need not
// belong to a stored creature.
func (r *CreatureRepository) SetParents(ctx context.Context, tx *sql.Tx, name string, parents []string) error {
	return r.setRelation(ctx, tx, "creature_parents", "parent_name", name, parents)
}

// SetProduces replaces the stored list of creatures name can help produce.
func (r *CreatureRepository) SetProduces(ctx context.Context, tx *sql.Tx, name string, children []string) error {
	return r.setRelation(ctx, tx, "creature_produces", "child_name", name, children)
}

func (r *CreatureRepository) setRelation(ctx context.Context, tx *sql.Tx, table, column, name string, related []string) error {
	ex := r.conn(tx)

	if _, err := ex.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE creature_name = ?", table), name); err != nil {
		return fmt.Errorf("clearing %s for %s: %w", table, name, err)
	}

	query := fmt.Sprintf("INSERT INTO %s (creature_name, position, %s) VALUES (?, ?, ?)", table, column)
	for i, rel := range related {
		if _, err := ex.ExecContext(ctx, query, name, i, rel); err != nil {
			return fmt.Errorf("inserting %s for %s: %w", table, name, err)
		}
	}

	return nil
}

// DeleteAll removes every stored creature and relation row.
func (r *CreatureRepository) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	ex := r.conn(tx)

	for _, table := range []string{"creature_produces", "creature_parents", "creature_resistances", "creatures"} {
		if _, err := ex.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return nil
}

const creatureColumns = `name, family,
			max_level, exp_growth, hp, mp, attack, defense, agility, intelligence,
			skill_1, skill_2, skill_3`

// GetByName retrieves a creature by name, ignoring case, with its
// resistances and relation lists.
func (r *CreatureRepository) GetByName(ctx context.Context, name string) (*models.Creature, error) {
	query := `SELECT ` + creatureColumns + ` FROM creatures WHERE name = ?`

	c, err := scanCreature(r.db.QueryRowContext(ctx, query, strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creature %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning creature: %w", err)
	}

	if err := r.loadDetails(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// List retrieves creatures in source order with filtering and pagination.
// Listed creatures carry stats and skills only.
func (r *CreatureRepository) List(ctx context.Context, filter models.CreatureFilter, page models.Pagination) (*models.CreatureList, error) {
	var conditions []string
	var args []any

	if filter.Family != nil {
		conditions = append(conditions, "family = ?")
		args = append(args, string(*filter.Family))
	}

	if filter.NamePrefix != "" {
		conditions = append(conditions, "name LIKE ? ESCAPE '\\'")
		args = append(args, escapeLike(filter.NamePrefix)+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM creatures " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting creatures: %w", err)
	}

	query := `SELECT ` + creatureColumns + ` FROM creatures ` + whereClause + ` ORDER BY position LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, append(args, page.Limit(), page.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("listing creatures: %w", err)
	}
	defer rows.Close()

	var creatures []*models.Creature
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning creature: %w", err)
		}
		creatures = append(creatures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating creatures: %w", err)
	}

	return &models.CreatureList{
		Creatures:  creatures,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.Limit(),
		TotalPages: page.TotalPages(total),
	}, nil
}

// Count returns the number of stored creatures.
func (r *CreatureRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM creatures").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting creatures: %w", err)
	}
	return n, nil
}

// CountByFamily returns the number of stored creatures per family.
func (r *CreatureRepository) CountByFamily(ctx context.Context) (map[models.Family]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT family, COUNT(*) FROM creatures GROUP BY family")
	if err != nil {
		return nil, fmt.Errorf("counting by family: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Family]int)
	for rows.Next() {
		var family string
		var n int
		if err := rows.Scan(&family, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[models.Family(family)] = n
	}

	return counts, rows.Err()
}

// Parents returns the stored parent list of name in file order.
func (r *CreatureRepository) Parents(ctx context.Context, name string) ([]string, error) {
	return r.relation(ctx, "creature_parents", "parent_name", name)
}

// Produces returns the stored child list of name in file order.
func (r *CreatureRepository) Produces(ctx context.Context, name string) ([]string, error) {
	return r.relation(ctx, "creature_produces", "child_name", name)
}

func (r *CreatureRepository) relation(ctx context.Context, table, column, name string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE creature_name = ? ORDER BY position", column, table)
	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var related string
		if err := rows.Scan(&related); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		out = append(out, related)
	}

	return out, rows.Err()
}

func (r *CreatureRepository) loadDetails(ctx context.Context, c *models.Creature) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT category_index, value FROM creature_resistances WHERE creature_name = ? ORDER BY category_index",
		c.Name,
	)
	if err != nil {
		return fmt.Errorf("querying resistances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx, value int
		if err := rows.Scan(&idx, &value); err != nil {
			return fmt.Errorf("scanning resistance: %w", err)
		}
		if idx >= 0 && idx < models.ResistanceCount {
			c.Resistances[idx] = value
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating resistances: %w", err)
	}

	if c.Parents, err = r.Parents(ctx, c.Name); err != nil {
		return err
	}
	if c.Produces, err = r.Produces(ctx, c.Name); err != nil {
		return err
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreature(row rowScanner) (*models.Creature, error) {
	c := &models.Creature{
		Parents:  []string{},
		Produces: []string{},
	}
	var family string

	err := row.Scan(
		&c.Name,
		&family,
		&c.Stats.MaxLevel,
		&c.Stats.ExpGrowth,
		&c.Stats.HP,
		&c.Stats.MP,
		&c.Stats.Attack,
		&c.Stats.Defense,
		&c.Stats.Agility,
		&c.Stats.Intelligence,
		&c.Skills[0],
		&c.Skills[1],
		&c.Skills[2],
	)
	if err != nil {
		return nil, err
	}

	c.Family = models.Family(family)
	return c, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
