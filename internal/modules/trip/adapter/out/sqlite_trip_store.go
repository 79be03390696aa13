package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"travellog/internal/modules/trip/domain"
	tripout "travellog/internal/modules/trip/port/out"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"

	_ "modernc.org/sqlite"
)

var memoryDBSeq atomic.Uint64

// SQLiteTripStore keeps trips in a private in-memory SQLite database. The
// database is gone when the store is closed or the process exits.
type SQLiteTripStore struct {
	db *sql.DB
}

func NewSQLiteTripStore(ctx context.Context) (*SQLiteTripStore, error) {
	dsn := fmt.Sprintf("file:travellog-%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps every statement on the same memory database.
	db.SetMaxOpenConns(1)
	store := &SQLiteTripStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ tripout.TripStore = (*SQLiteTripStore)(nil)

func (s *SQLiteTripStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS trips (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  date TEXT NOT NULL,
  notes TEXT NOT NULL,
  thumbnail TEXT NOT NULL,
  latitude REAL,
  longitude REAL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create trips table: %w", err)
	}
	return nil
}

func (s *SQLiteTripStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteTripStore) Prepend(ctx context.Context, trip domain.Trip) error {
	const stmt = `
INSERT INTO trips (id, title, date, notes, thumbnail, latitude, longitude)
VALUES (?, ?, ?, ?, ?, ?, ?);`
	var lat, lon sql.NullFloat64
	if trip.Coordinate != nil {
		lat = sql.NullFloat64{Float64: trip.Coordinate.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: trip.Coordinate.Longitude, Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, stmt, trip.ID, trip.Title, trip.Date, trip.Notes, trip.Thumbnail, lat, lon); err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (s *SQLiteTripStore) FindByID(ctx context.Context, id string) (domain.Trip, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, date, notes, thumbnail, latitude, longitude
FROM trips WHERE id = ?;`, id)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("find trip: %w", err)
	}
	return trip, nil
}

func (s *SQLiteTripStore) List(ctx context.Context) ([]domain.Trip, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, date, notes, thumbnail, latitude, longitude
FROM trips ORDER BY seq DESC;`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var out []domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return out, nil
}

func (s *SQLiteTripStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (domain.Trip, error) {
	var (
		trip     domain.Trip
		lat, lon sql.NullFloat64
	)
	if err := row.Scan(&trip.ID, &trip.Title, &trip.Date, &trip.Notes, &trip.Thumbnail, &lat, &lon); err != nil {
		return domain.Trip{}, err
	}
	if lat.Valid && lon.Valid {
		trip.Coordinate = geo.Coordinate{Latitude: lat.Float64, Longitude: lon.Float64}.Ptr()
	}
	return trip, nil
}
