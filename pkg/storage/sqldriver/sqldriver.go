// Package sqldriver provides storage operations over ent's dialect-aware SQL
// driver. It is database-agnostic and is embedded by the sqlite and postgres
// drivers.
package sqldriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/papercomputeco/pixelo/pkg/ranking"
	"github.com/papercomputeco/pixelo/pkg/storage"
)

// rankBatch bounds the rows per INSERT so bind parameters stay under the
// SQLite and PostgreSQL limits.
const rankBatch = 500

var (
	puzzlesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "target", Type: field.TypeString},
		{Name: "words", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
	}

	// PuzzlesTable holds one row per stored puzzle.
	PuzzlesTable = &schema.Table{
		Name:       "puzzles",
		Columns:    puzzlesColumns,
		PrimaryKey: []*schema.Column{puzzlesColumns[0]},
	}

	puzzleRanksColumns = []*schema.Column{
		{Name: "puzzle_id", Type: field.TypeString},
		{Name: "word", Type: field.TypeString},
		{Name: "word_rank", Type: field.TypeInt},
	}

	// PuzzleRanksTable holds one row per (puzzle, word).
	PuzzleRanksTable = &schema.Table{
		Name:       "puzzle_ranks",
		Columns:    puzzleRanksColumns,
		PrimaryKey: []*schema.Column{puzzleRanksColumns[0], puzzleRanksColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "puzzle_ranks_puzzles_ranks",
				Columns:    []*schema.Column{puzzleRanksColumns[0]},
				RefTable:   PuzzlesTable,
				RefColumns: []*schema.Column{puzzlesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// Tables lists every table the driver migrates.
	Tables = []*schema.Table{PuzzlesTable, PuzzleRanksTable}
)

// statement is a built query and its arguments.
type statement struct {
	query string
	args  []any
}

// Driver implements storage.Driver with one row per (puzzle, word).
type Driver struct {
	DB      *entsql.Driver
	builder *entsql.DialectBuilder
}

// New wraps db with ent's SQL driver for the given dialect (dialect.SQLite or
// dialect.Postgres) and migrates the schema.
func New(ctx context.Context, db *sql.DB, dialectName string) (*Driver, error) {
	drv := entsql.OpenDB(dialectName, db)

	m, err := schema.NewMigrate(drv)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare migration: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{DB: drv, builder: entsql.Dialect(dialectName)}, nil
}

// Put stores a table, replacing any previous one, in a single transaction.
func (d *Driver) Put(ctx context.Context, id string, table *ranking.Table) error {
	if table == nil {
		return errors.New("cannot store nil table")
	}
	if err := storage.ValidateID(id); err != nil {
		return err
	}

	tx, err := d.DB.Tx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, st := range d.deletePuzzle(id) {
		if err := tx.Exec(ctx, st.query, st.args, nil); err != nil {
			return fmt.Errorf("failed to clear puzzle: %w", err)
		}
	}

	query, args := d.builder.Insert(PuzzlesTable.Name).
		Columns("id", "target", "words", "created_at").
		Values(id, table.Target(), table.Len(), time.Now().UTC()).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to insert puzzle: %w", err)
	}

	for _, st := range d.insertRanks(id, table.Words()) {
		if err := tx.Exec(ctx, st.query, st.args, nil); err != nil {
			return fmt.Errorf("failed to insert ranks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Get retrieves a table by puzzle ID.
func (d *Driver) Get(ctx context.Context, id string) (*ranking.Table, error) {
	ok, err := d.Has(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}

	query, args := d.builder.Select("word", "word_rank").
		From(d.builder.Table(PuzzleRanksTable.Name)).
		Where(entsql.EQ("puzzle_id", id)).
		Query()

	var rows entsql.Rows
	if err := d.DB.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("failed to query ranks: %w", err)
	}
	defer rows.Close()

	ranks := make(map[string]int)
	for rows.Next() {
		var (
			word string
			rank int
		)
		if err := rows.Scan(&word, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan rank: %w", err)
		}
		ranks[word] = rank
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranks: %w", err)
	}

	return ranking.FromRanks(ranks)
}

// Has checks if a puzzle exists.
func (d *Driver) Has(ctx context.Context, id string) (bool, error) {
	query, args := d.builder.Select(entsql.Count("*")).
		From(d.builder.Table(PuzzlesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := d.DB.Query(ctx, query, args, &rows); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}

// List returns all puzzle IDs, sorted.
func (d *Driver) List(ctx context.Context) ([]string, error) {
	query, args := d.builder.Select("id").
		From(d.builder.Table(PuzzlesTable.Name)).
		OrderBy("id").
		Query()

	var rows entsql.Rows
	if err := d.DB.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("failed to list puzzles: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan puzzle id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes a puzzle and its ranks.
func (d *Driver) Delete(ctx context.Context, id string) error {
	tx, err := d.DB.Tx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmts := d.deletePuzzle(id)
	if err := tx.Exec(ctx, stmts[0].query, stmts[0].args, nil); err != nil {
		return fmt.Errorf("failed to delete ranks: %w", err)
	}

	var res entsql.Result
	if err := tx.Exec(ctx, stmts[1].query, stmts[1].args, &res); err != nil {
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return storage.NotFoundError{ID: id}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (d *Driver) Close() error {
	return d.DB.Close()
}

// deletePuzzle removes ranks before the puzzle row so it does not depend on
// the cascade being enforced.
func (d *Driver) deletePuzzle(id string) []statement {
	ranksQuery, ranksArgs := d.builder.Delete(PuzzleRanksTable.Name).
		Where(entsql.EQ("puzzle_id", id)).
		Query()
	puzzleQuery, puzzleArgs := d.builder.Delete(PuzzlesTable.Name).
		Where(entsql.EQ("id", id)).
		Query()

	return []statement{
		{query: ranksQuery, args: ranksArgs},
		{query: puzzleQuery, args: puzzleArgs},
	}
}

// insertRanks builds multi-row inserts of at most rankBatch rows each.
func (d *Driver) insertRanks(id string, words []string) []statement {
	var stmts []statement
	for start := 0; start < len(words); start += rankBatch {
		end := min(start+rankBatch, len(words))

		ins := d.builder.Insert(PuzzleRanksTable.Name).Columns("puzzle_id", "word", "word_rank")
		for rank := start; rank < end; rank++ {
			ins.Values(id, words[rank], rank)
		}

		query, args := ins.Query()
		stmts = append(stmts, statement{query: query, args: args})
	}
	return stmts
}
