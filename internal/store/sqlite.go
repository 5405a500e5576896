package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS nodes (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    kind  TEXT NOT NULL,
    props TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS edges (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    from_id INTEGER NOT NULL REFERENCES nodes(id),
    to_id   INTEGER NOT NULL REFERENCES nodes(id),
    label   TEXT NOT NULL,
    props   TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
CREATE INDEX IF NOT EXISTS idx_edges_from ON edges(from_id, label);
`

// SQLiteStore implements Graph using a local SQLite database in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

var _ Graph = (*SQLiteStore)(nil)

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// SQLite has a single writer; one pooled connection keeps the PRAGMAs in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// CreateNode inserts a node and returns its ID.
func (s *SQLiteStore) CreateNode(ctx context.Context, kind string, props Props) (NodeID, error) {
	raw, err := encodeProps(props)
	if err != nil {
		return 0, fmt.Errorf("store: create %s node: %w", kind, err)
	}
	res, err := s.db.ExecContext(ctx, "INSERT INTO nodes (kind, props) VALUES (?, ?)", kind, raw)
	if err != nil {
		return 0, fmt.Errorf("store: create %s node: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: create %s node id: %w", kind, err)
	}
	return NodeID(id), nil
}

// CreateEdge inserts a labeled edge between two existing nodes.
func (s *SQLiteStore) CreateEdge(ctx context.Context, from, to NodeID, label string, props Props) error {
	raw, err := encodeProps(props)
	if err != nil {
		return fmt.Errorf("store: create edge %d-%s->%d: %w", from, label, to, err)
	}
	const q = `INSERT INTO edges (from_id, to_id, label, props) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, from, to, label, raw); err != nil {
		return fmt.Errorf("store: create edge %d-%s->%d: %w", from, label, to, err)
	}
	return nil
}

// Node returns a node by ID, or ErrNoNode.
func (s *SQLiteStore) Node(ctx context.Context, id NodeID) (Node, error) {
	var (
		n   Node
		raw string
	)
	err := s.db.QueryRowContext(ctx, "SELECT id, kind, props FROM nodes WHERE id = ?", id).Scan(&n.ID, &n.Kind, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Node{}, fmt.Errorf("%w: %d", ErrNoNode, id)
	}
	if err != nil {
		return Node{}, fmt.Errorf("store: get node %d: %w", id, err)
	}
	if n.Props, err = decodeProps(raw); err != nil {
		return Node{}, fmt.Errorf("store: node %d props: %w", id, err)
	}
	return n, nil
}

// Follow returns the target of the single edge labeled label leaving from.
// It returns ErrNoEdge when there is none and ErrAmbiguousEdge when there are
// several.
func (s *SQLiteStore) Follow(ctx context.Context, from NodeID, label string) (NodeID, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT to_id FROM edges WHERE from_id = ? AND label = ? LIMIT 2", from, label)
	if err != nil {
		return 0, fmt.Errorf("store: follow %d-%s: %w", from, label, err)
	}
	defer rows.Close()

	var targets []NodeID
	for rows.Next() {
		var to NodeID
		if err := rows.Scan(&to); err != nil {
			return 0, fmt.Errorf("store: scan edge: %w", err)
		}
		targets = append(targets, to)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("store: iterate edges: %w", err)
	}

	switch len(targets) {
	case 0:
		return 0, fmt.Errorf("%w: %d-%s", ErrNoEdge, from, label)
	case 1:
		return targets[0], nil
	default:
		return 0, fmt.Errorf("%w: %d-%s", ErrAmbiguousEdge, from, label)
	}
}

// Edges returns every edge leaving from, ordered by creation.
func (s *SQLiteStore) Edges(ctx context.Context, from NodeID) ([]Edge, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, from_id, to_id, label, props FROM edges WHERE from_id = ? ORDER BY id", from)
	if err != nil {
		return nil, fmt.Errorf("store: edges of %d: %w", from, err)
	}
	defer rows.Close()

	var result []Edge
	for rows.Next() {
		var (
			e   Edge
			raw string
		)
		if err := rows.Scan(&e.ID, &e.From, &e.To, &e.Label, &raw); err != nil {
			return nil, fmt.Errorf("store: scan edge: %w", err)
		}
		if e.Props, err = decodeProps(raw); err != nil {
			return nil, fmt.Errorf("store: edge %d props: %w", e.ID, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate edges: %w", err)
	}
	return result, nil
}

// NodesOfKind returns every node of the given kind, ordered by ID.
func (s *SQLiteStore) NodesOfKind(ctx context.Context, kind string) ([]Node, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, kind, props FROM nodes WHERE kind = ? ORDER BY id", kind)
	if err != nil {
		return nil, fmt.Errorf("store: nodes of kind %q: %w", kind, err)
	}
	defer rows.Close()

	var result []Node
	for rows.Next() {
		var (
			n   Node
			raw string
		)
		if err := rows.Scan(&n.ID, &n.Kind, &raw); err != nil {
			return nil, fmt.Errorf("store: scan node: %w", err)
		}
		if n.Props, err = decodeProps(raw); err != nil {
			return nil, fmt.Errorf("store: node %d props: %w", n.ID, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate nodes: %w", err)
	}
	return result, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeProps(p Props) (string, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeProps(raw string) (Props, error) {
	p := Props{}
	if raw == "" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return p, nil
}
