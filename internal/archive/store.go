package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	runsTable  = "report_runs"
	filesTable = "report_files"

	// DefaultListLimit caps List when no limit is given
	DefaultListLimit = 20
)

var runColumns = []string{
	"id", "created_at", "station", "station_id", "open_date", "close_date",
	"seed", "input_hash", "merch_net", "fuel_total", "sales_tax",
	"mop_total", "pay_out", "cash", "balanced",
}

// Run is one archived report run
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Station   string
	StationID string
	OpenDate  time.Time
	CloseDate time.Time
	Seed      uint64
	InputHash string

	MerchNet  decimal.Decimal
	FuelTotal decimal.Decimal
	SalesTax  decimal.Decimal
	MOPTotal  decimal.Decimal
	PayOut    decimal.Decimal
	Cash      decimal.Decimal
	Balanced  bool

	Files []File
}

// File is a report written by a run
type File struct {
	Kind   string
	Path   string
	SHA256 string
}

// Store archives report runs in Postgres
type Store struct {
	db *sql.DB
}

// Open connects to Postgres and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// RunInTransaction runs fn in a transaction, committing when it returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Record saves a run and its files in one transaction. A zero ID is
// replaced with a new UUID.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	return s.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := insertRunQuery(run)
		if err != nil {
			return fmt.Errorf("building run insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}

		if len(run.Files) == 0 {
			return nil
		}

		query, args, err = insertFilesQuery(run.ID, run.Files)
		if err != nil {
			return fmt.Errorf("building file insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert report files: %w", err)
		}

		return nil
	})
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query, args, err := listRunsQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("building run query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	if len(runs) == 0 {
		return runs, nil
	}

	ids := make([]uuid.UUID, 0, len(runs))
	for _, r := range runs {
		ids = append(ids, r.ID)
	}

	query, args, err = listFilesQuery(ids)
	if err != nil {
		return nil, fmt.Errorf("building file query: %w", err)
	}

	fileRows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list report files: %w", err)
	}
	defer fileRows.Close()

	for fileRows.Next() {
		var runID uuid.UUID
		var f File
		if err := fileRows.Scan(&runID, &f.Kind, &f.Path, &f.SHA256); err != nil {
			return nil, fmt.Errorf("scanning report file: %w", err)
		}
		if i, ok := index[runID]; ok {
			runs[i].Files = append(runs[i].Files, f)
		}
	}
	if err := fileRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report files: %w", err)
	}

	return runs, nil
}

func insertRunQuery(run *Run) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert(runsTable).
		Columns(runColumns...).
		Values(
			run.ID,
			run.CreatedAt,
			run.Station,
			run.StationID,
			run.OpenDate.Format("2006-01-02"),
			run.CloseDate.Format("2006-01-02"),
			strconv.FormatUint(run.Seed, 10),
			run.InputHash,
			run.MerchNet,
			run.FuelTotal,
			run.SalesTax,
			run.MOPTotal,
			run.PayOut,
			run.Cash,
			run.Balanced,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func insertFilesQuery(runID uuid.UUID, files []File) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert(filesTable).
		Columns("run_id", "kind", "path", "sha256").
		PlaceholderFormat(squirrel.Dollar)

	for _, f := range files {
		query = query.Values(runID, f.Kind, f.Path, f.SHA256)
	}

	return query.ToSql()
}

func listRunsQuery(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	cols := make([]string, len(runColumns))
	for i, c := range runColumns {
		cols[i] = "r." + c
	}
	// seed comes back as text so it fits a uint64
	cols[6] = "r.seed::text"

	return squirrel.
		Select(cols...).
		From(runsTable + " r").
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func listFilesQuery(runIDs []uuid.UUID) (string, []interface{}, error) {
	return squirrel.
		Select("f.run_id", "f.kind", "f.path", "f.sha256").
		From(filesTable + " f").
		Where(squirrel.Eq{"f.run_id": runIDs}).
		OrderBy("f.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var seed string

	err := rows.Scan(
		&run.ID,
		&run.CreatedAt,
		&run.Station,
		&run.StationID,
		&run.OpenDate,
		&run.CloseDate,
		&seed,
		&run.InputHash,
		&run.MerchNet,
		&run.FuelTotal,
		&run.SalesTax,
		&run.MOPTotal,
		&run.PayOut,
		&run.Cash,
		&run.Balanced,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}

	run.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return Run{}, fmt.Errorf("parsing seed %q: %w", seed, err)
	}

	return run, nil
}
