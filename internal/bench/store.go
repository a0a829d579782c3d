// Package bench is the benchmark driver and result store: it runs a
// synthetic loop under each policy, measures per-worker load, and
// persists the results to SQLite.
package bench

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/victorswan/gompsched/internal/utils"
)

var (
	dbMu       sync.Mutex
	db         *sql.DB
	dbPath     string
	configured bool
)

// Configure sets the SQLite file a subsequent Open will use, kept
// separate from Open so tests can point the store at a temp directory
// before use.
func Configure(path string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	dbPath = path
	configured = true
}

// Open lazily opens (and migrates) the configured database.
func Open() (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if !configured {
		return nil, fmt.Errorf("bench: store not configured")
	}
	if db != nil {
		return db, nil
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("bench: open db: %w", err)
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("bench: migrate: %w", err)
	}
	db = conn
	return db, nil
}

// Close releases the open database handle, if any.
func Close() error {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	configured = false
	return err
}

func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			lb INTEGER NOT NULL,
			ub INTEGER NOT NULL,
			incr INTEGER NOT NULL,
			chunk_size INTEGER NOT NULL,
			team_size INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			imbalance_ratio REAL NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_workers (
			run_id TEXT NOT NULL REFERENCES runs(id),
			team_id INTEGER NOT NULL,
			executed INTEGER NOT NULL,
			PRIMARY KEY (run_id, team_id)
		);
	`)
	return err
}

// Run is one persisted benchmark invocation.
type Run struct {
	ID             string
	Policy         string
	LB, UB, Incr   int64
	ChunkSize      int64
	TeamSize       int
	DurationNS     int64
	ImbalanceRatio float64
	CreatedAt      int64
	PerWorker      []int64
}

// Save upserts r and its per-worker breakdown in a single transaction.
func Save(r Run) error {
	conn, err := Open()
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("bench: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				utils.Debug("bench: rollback failed: %v", rbErr)
			}
		}
	}()

	_, err = tx.Exec(`
		INSERT INTO runs (id, policy, lb, ub, incr, chunk_size, team_size, duration_ns, imbalance_ratio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			duration_ns=excluded.duration_ns,
			imbalance_ratio=excluded.imbalance_ratio
	`, r.ID, r.Policy, r.LB, r.UB, r.Incr, r.ChunkSize, r.TeamSize, r.DurationNS, r.ImbalanceRatio, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("bench: insert run: %w", err)
	}

	for teamID, executed := range r.PerWorker {
		_, err = tx.Exec(`
			INSERT INTO run_workers (run_id, team_id, executed) VALUES (?, ?, ?)
			ON CONFLICT(run_id, team_id) DO UPDATE SET executed=excluded.executed
		`, r.ID, teamID, executed)
		if err != nil {
			return fmt.Errorf("bench: insert run_worker: %w", err)
		}
	}

	return tx.Commit()
}

// Load fetches a single run and its per-worker breakdown by ID.
func Load(id string) (*Run, error) {
	conn, err := Open()
	if err != nil {
		return nil, err
	}

	var r Run
	r.ID = id
	row := conn.QueryRow(`
		SELECT policy, lb, ub, incr, chunk_size, team_size, duration_ns, imbalance_ratio, created_at
		FROM runs WHERE id = ?
	`, id)
	if err := row.Scan(&r.Policy, &r.LB, &r.UB, &r.Incr, &r.ChunkSize, &r.TeamSize, &r.DurationNS, &r.ImbalanceRatio, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("bench: run not found: %s", id)
		}
		return nil, fmt.Errorf("bench: query run: %w", err)
	}

	rows, err := conn.Query(`SELECT team_id, executed FROM run_workers WHERE run_id = ? ORDER BY team_id`, id)
	if err != nil {
		return nil, fmt.Errorf("bench: query run_workers: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			utils.Debug("bench: close rows failed: %v", cerr)
		}
	}()

	r.PerWorker = make([]int64, r.TeamSize)
	for rows.Next() {
		var teamID int
		var executed int64
		if err := rows.Scan(&teamID, &executed); err != nil {
			return nil, err
		}
		if teamID >= 0 && teamID < len(r.PerWorker) {
			r.PerWorker[teamID] = executed
		}
	}
	return &r, rows.Err()
}

// ListRuns returns every persisted run, most recent first.
func ListRuns() ([]Run, error) {
	conn, err := Open()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(`
		SELECT id, policy, lb, ub, incr, chunk_size, team_size, duration_ns, imbalance_ratio, created_at
		FROM runs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("bench: list runs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			utils.Debug("bench: close rows failed: %v", cerr)
		}
	}()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Policy, &r.LB, &r.UB, &r.Incr, &r.ChunkSize, &r.TeamSize, &r.DurationNS, &r.ImbalanceRatio, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
