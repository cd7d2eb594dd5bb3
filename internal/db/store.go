package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JuanVergara-9/notification-service2/internal/models"
)

var ErrNotFound = errors.New("not found")

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

func (s *Store) SaveTicket(ctx context.Context, phone string, draft models.TicketDraft, source string) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO tickets (phone_number, category, description, zone, urgency, status, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`, phone, draft.Category, draft.Description, draft.Zone, draft.Urgency, models.StatusOpen, source).Scan(&id)
	return id, err
}

func (s *Store) ListTickets(ctx context.Context, limit int) ([]models.Ticket, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, phone_number, category, description, zone, urgency, status, source, created_at
		FROM tickets
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.PhoneNumber, &t.Category, &t.Description, &t.Zone, &t.Urgency, &t.Status, &t.Source, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTicketByID(ctx context.Context, id int64) (models.Ticket, error) {
	var t models.Ticket
	err := s.Pool.QueryRow(ctx, `
		SELECT id, phone_number, category, description, zone, urgency, status, source, created_at
		FROM tickets
		WHERE id = $1
	`, id).Scan(&t.ID, &t.PhoneNumber, &t.Category, &t.Description, &t.Zone, &t.Urgency, &t.Status, &t.Source, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Ticket{}, ErrNotFound
		}
		return models.Ticket{}, err
	}
	return t, nil
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id int64, status string) (models.Ticket, error) {
	var t models.Ticket
	err := s.Pool.QueryRow(ctx, `
		UPDATE tickets
		SET status = $1
		WHERE id = $2
		RETURNING id, phone_number, category, description, zone, urgency, status, source, created_at
	`, status, id).Scan(&t.ID, &t.PhoneNumber, &t.Category, &t.Description, &t.Zone, &t.Urgency, &t.Status, &t.Source, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Ticket{}, ErrNotFound
		}
		return models.Ticket{}, err
	}
	return t, nil
}

func (s *Store) GetUser(ctx context.Context, phone string) (models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, `
		SELECT phone_number, terms_accepted, accepted_at, COALESCE(terms_version, '')
		FROM users
		WHERE phone_number = $1
	`, phone).Scan(&u.PhoneNumber, &u.TermsAccepted, &u.AcceptedAt, &u.TermsVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, phone string) (models.User, error) {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO users (phone_number, terms_accepted)
		VALUES ($1, FALSE)
		ON CONFLICT (phone_number) DO NOTHING
	`, phone)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(ctx, phone)
}

func (s *Store) AcceptTerms(ctx context.Context, phone string, version string) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (phone_number, terms_accepted, accepted_at, terms_version)
			VALUES ($1, TRUE, NOW(), $2)
			ON CONFLICT (phone_number) DO UPDATE SET
				terms_accepted = TRUE,
				accepted_at = NOW(),
				terms_version = EXCLUDED.terms_version
		`, phone, version)
		return err
	})
}
