package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
)

//go:embed migrations
var migrationsDir embed.FS

// InMemoryPath keeps the whole store in process memory. It is the
// default: the report recomputes everything per run and promises no
// persisted state.
const InMemoryPath = ":memory:"

type Database struct {
	logger *slog.Logger
	read   *sql.DB
	write  *sql.DB
	path   string
}

const initSQL = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;
	PRAGMA busy_timeout = 5000;
	PRAGMA foreign_keys = ON;
	PRAGMA trusted_schema = OFF;
`

// New opens the store and applies pending migrations. A file path gets
// separate read and write pools; the in-memory store pins a single
// connection, since every new sqlite memory connection would otherwise
// see its own empty database.
func New(ctx context.Context, dbPath string) (*Database, error) {
	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		_, err := conn.ExecContext(ctx, initSQL, nil)
		return err
	})

	d := &Database{
		logger: slog.Default().With(slog.String("module", "database")),
		path:   dbPath,
	}

	if strings.Contains(dbPath, ":memory:") {
		mem, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("error when opening in-memory database: %w", err)
		}
		mem.SetMaxOpenConns(1)
		mem.SetMaxIdleConns(1)
		mem.SetConnMaxIdleTime(0)
		d.read, d.write = mem, mem
	} else {
		read, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("error when opening database (read): %w", err)
		}
		read.SetMaxOpenConns(10)
		read.SetConnMaxIdleTime(time.Minute)

		write, err := sql.Open("sqlite", dbPath)
		if err != nil {
			read.Close()
			return nil, fmt.Errorf("error when opening database (write): %w", err)
		}
		write.SetMaxOpenConns(1) // only a single writer ever, no concurrency
		write.SetConnMaxIdleTime(time.Minute)

		d.read, d.write = read, write
	}

	if err := d.migrate(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return d, nil
}

func (d *Database) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Database) Close() {
	d.read.Close()
	if d.write != d.read {
		d.write.Close()
	}
}

func (d *Database) migrate(ctx context.Context) error {
	var currVer int
	err := d.write.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currVer)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	files, err := migrationsDir.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, f := range files {
		if !f.IsDir() && filepath.Ext(f.Name()) == ".sql" {
			sqlFiles = append(sqlFiles, f.Name())
		}
	}

	slices.Sort(sqlFiles)

	re := regexp.MustCompile(`^(\d+)[-_]`)

	for _, name := range sqlFiles {
		matches := re.FindStringSubmatch(name)
		if len(matches) < 2 {
			return fmt.Errorf("parse version from migration file: %s", name)
		}
		nextVer, err := strconv.Atoi(matches[1])
		if err != nil {
			return fmt.Errorf("convert migration version from file %s: %w", name, err)
		}
		if nextVer <= currVer {
			continue // Skip migration if already applied
		}

		d.logger.Debug(fmt.Sprintf("applying migration %d", nextVer))

		data, err := migrationsDir.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", name, err)
		}

		tx, err := d.write.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("start transaction for migration %d: %w", nextVer, err)
		}

		if _, err = tx.ExecContext(ctx, string(data)); err != nil {
			if err := tx.Rollback(); err != nil {
				return fmt.Errorf("rollback migration %d: %w", nextVer, err)
			}
			return fmt.Errorf("apply migration %d: %w", nextVer, err)
		}

		if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", nextVer)); err != nil {
			if err = tx.Rollback(); err != nil {
				return fmt.Errorf("rollback migration %d: %w", nextVer, err)
			}
			return fmt.Errorf("update database version for migration %d: %w", nextVer, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", nextVer, err)
		}
	}

	return nil
}
