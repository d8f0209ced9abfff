package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"sunflower/internal/plants/models"
	"sunflower/pkg/platform/sentinel"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect selects placeholder style and change notification.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// notifyChannel is the Postgres LISTEN/NOTIFY channel raised on every write.
const notifyChannel = "plants_changed"

const (
	listPlantsQuery = `SELECT plant_id, name, description, grow_zone_number, watering_interval, image_url
FROM plants ORDER BY name, plant_id`
	listPlantsByZoneQuery = `SELECT plant_id, name, description, grow_zone_number, watering_interval, image_url
FROM plants WHERE grow_zone_number = ? ORDER BY name, plant_id`
	upsertPlantQuery = `INSERT INTO plants (plant_id, name, description, grow_zone_number, watering_interval, image_url)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (plant_id) DO UPDATE SET
    name = excluded.name,
    description = excluded.description,
    grow_zone_number = excluded.grow_zone_number,
    watering_interval = excluded.watering_interval,
    image_url = excluded.image_url`
)

// SQLPlantStore persists plants in SQLite or PostgreSQL.
type SQLPlantStore struct {
	db       *sql.DB
	dialect  Dialect
	feed     *changeFeed
	logger   *slog.Logger
	listener *pq.Listener
	stop     chan struct{}
}

// OpenSQLite opens (creating if needed) a SQLite database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLPlantStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required: %w", sentinel.ErrInvalidInput)
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; a single connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s, err := NewSQLPlantStore(db, DialectSQLite, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects to dsn through the pgx driver and subscribes to the
// plants change channel so writes from other processes reach local watchers.
func OpenPostgres(ctx context.Context, dsn string, logger *slog.Logger) (*SQLPlantStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	s, err := NewSQLPlantStore(db, DialectPostgres, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.listen(dsn); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLPlantStore applies migrations on db and returns a store over it.
func NewSQLPlantStore(db *sql.DB, dialect Dialect, logger *slog.Logger) (*SQLPlantStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required: %w", sentinel.ErrInvalidInput)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLPlantStore{
		db:      db,
		dialect: dialect,
		feed:    newChangeFeed(),
		logger:  logger,
		stop:    make(chan struct{}),
	}, nil
}

func migrate(db *sql.DB) error {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
	}
	return nil
}

func (s *SQLPlantStore) listen(dsn string) error {
	s.listener = pq.NewListener(dsn, 500*time.Millisecond, 30*time.Second, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			s.logger.Warn("plants listener event", "event", int(ev), "error", err)
		}
	})
	if err := s.listener.Listen(notifyChannel); err != nil {
		_ = s.listener.Close()
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}
	go func() {
		for {
			select {
			case <-s.stop:
				return
			case _, ok := <-s.listener.Notify:
				if !ok {
					return
				}
				// nil notifications follow a reconnect; re-query either way
				bump(s.feed)
			}
		}
	}()
	return nil
}

// Close stops the change listener and closes the database.
func (s *SQLPlantStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	close(s.stop)
	if s.listener != nil {
		_ = s.listener.Close()
	}
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLPlantStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w: %w", s.dialect, sentinel.ErrUnavailable, err)
	}
	return nil
}

// Watch emits the matching plants now and after every write.
func (s *SQLPlantStore) Watch(ctx context.Context, zone models.GrowZone) (<-chan []models.Plant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return watch(ctx, s.logger, s.feed, zone, func(ctx context.Context) ([]models.Plant, error) {
		return s.List(ctx, zone)
	}), nil
}

// List returns the matching plants ordered by name.
func (s *SQLPlantStore) List(ctx context.Context, zone models.GrowZone) ([]models.Plant, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if zone.IsSet() {
		rows, err = s.db.QueryContext(ctx, s.rebind(listPlantsByZoneQuery), int(zone))
	} else {
		rows, err = s.db.QueryContext(ctx, s.rebind(listPlantsQuery))
	}
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()

	plants := []models.Plant{}
	for rows.Next() {
		var (
			p  models.Plant
			gz int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &gz, &p.WateringInterval, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		p.GrowZoneNumber = models.GrowZone(gz)
		plants = append(plants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

// Upsert writes plants in one transaction. A done ctx rolls the write back.
func (s *SQLPlantStore) Upsert(ctx context.Context, plants []models.Plant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.rebind(upsertPlantQuery))
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plants {
		interval := p.WateringInterval
		if interval == 0 {
			interval = models.DefaultWateringInterval
		}
		if _, err := stmt.ExecContext(ctx, string(p.ID), p.Name, p.Description, int(p.GrowZoneNumber), interval, p.ImageURL); err != nil {
			return fmt.Errorf("upsert plant %s: %w", p.ID, err)
		}
	}
	if s.dialect == DialectPostgres {
		if _, err := tx.ExecContext(ctx, "SELECT pg_notify($1, '')", notifyChannel); err != nil {
			return fmt.Errorf("notify plants changed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	bump(s.feed)
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLPlantStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
