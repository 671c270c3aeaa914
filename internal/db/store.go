package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storelocator/backend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS stores (
	position      INTEGER NOT NULL,
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	address       TEXT NOT NULL DEFAULT '',
	postcode      TEXT NOT NULL,
	lat           DOUBLE PRECISION NOT NULL,
	lon           DOUBLE PRECISION NOT NULL,
	image_url     TEXT NOT NULL DEFAULT '',
	opening_hours JSONB,
	phone         TEXT NOT NULL DEFAULT '',
	website       TEXT NOT NULL DEFAULT '',
	services      TEXT[] NOT NULL DEFAULT '{}',
	accessibility TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS reference_postcodes (
	postcode TEXT PRIMARY KEY,
	lat      DOUBLE PRECISION NOT NULL,
	lon      DOUBLE PRECISION NOT NULL
);`

var storeColumns = []string{
	"position", "id", "name", "address", "postcode", "lat", "lon",
	"image_url", "opening_hours", "phone", "website", "services", "accessibility",
}

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceStores swaps the persisted catalog for stores, keeping their order.
func (s *Store) ReplaceStores(ctx context.Context, stores []models.StoreLocation) (int64, error) {
	rows, err := storeRows(stores)
	if err != nil {
		return 0, err
	}
	var inserted int64
	err = s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE stores`); err != nil {
			return err
		}
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"stores"}, storeColumns, pgx.CopyFromRows(rows))
		inserted = n
		return err
	})
	return inserted, err
}

func (s *Store) ListStores(ctx context.Context) ([]models.StoreLocation, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, address, postcode, lat, lon, image_url, opening_hours, phone, website, services, accessibility
		FROM stores ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.StoreLocation
	for rows.Next() {
		var (
			st      models.StoreLocation
			id      string
			hours   []byte
			phone   string
			website string
		)
		if err := rows.Scan(&id, &st.Name, &st.Address, &st.Postcode, &st.Latitude, &st.Longitude,
			&st.ImageURL, &hours, &phone, &website, &st.Services, &st.Accessibility); err != nil {
			return nil, err
		}
		st.ID = models.StoreID(id)
		if len(hours) > 0 {
			if err := json.Unmarshal(hours, &st.OpeningHours); err != nil {
				return nil, fmt.Errorf("store %s opening hours: %w", id, err)
			}
		}
		if phone != "" || website != "" {
			st.Contact = &models.Contact{Phone: phone, Website: website}
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) ListReferencePostcodes(ctx context.Context) ([]models.ReferencePostcode, error) {
	rows, err := s.Pool.Query(ctx, `SELECT postcode, lat, lon FROM reference_postcodes ORDER BY postcode`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ReferencePostcode
	for rows.Next() {
		var p models.ReferencePostcode
		if err := rows.Scan(&p.Postcode, &p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpsertReferencePostcodes(ctx context.Context, items []models.ReferencePostcode) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range items {
		batch.Queue(`INSERT INTO reference_postcodes (postcode, lat, lon) VALUES ($1, $2, $3)
			ON CONFLICT (postcode) DO UPDATE SET lat = EXCLUDED.lat, lon = EXCLUDED.lon`, p.Postcode, p.Lat, p.Lng)
	}
	return s.Pool.SendBatch(ctx, batch).Close()
}

func storeRows(stores []models.StoreLocation) ([][]any, error) {
	rows := make([][]any, 0, len(stores))
	for i, st := range stores {
		if st.ID == "" {
			return nil, errors.New("store id required")
		}
		var hours []byte
		if len(st.OpeningHours) > 0 {
			b, err := json.Marshal(st.OpeningHours)
			if err != nil {
				return nil, err
			}
			hours = b
		}
		var phone, website string
		if st.Contact != nil {
			phone, website = st.Contact.Phone, st.Contact.Website
		}
		services := st.Services
		if services == nil {
			services = []string{}
		}
		access := st.Accessibility
		if access == nil {
			access = []string{}
		}
		rows = append(rows, []any{
			i, string(st.ID), st.Name, st.Address, st.Postcode, st.Latitude, st.Longitude,
			st.ImageURL, hours, phone, website, services, access,
		})
	}
	return rows, nil
}
