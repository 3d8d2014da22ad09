package appointments

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of a pgx pool the store needs; pgxmock satisfies it
// in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists appointments in Postgres. Selected when
// DATABASE_URL is configured; the schema lives in migrations/.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore creates a store backed by a pgx pool or compatible querier.
func NewPostgresStore(db Querier) *PostgresStore {
	if db == nil {
		panic("appointments: querier required")
	}
	return &PostgresStore{db: db}
}

// Add inserts one appointment row.
func (s *PostgresStore) Add(ctx context.Context, appt Appointment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO appointments (id, customer_name, treatment, phone_number, appointment_at, reminder_at, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		appt.ID,
		appt.CustomerName,
		appt.Treatment,
		appt.PhoneNumber,
		appt.AppointmentAt,
		appt.ReminderAt,
		appt.BookedAt,
	)
	if err != nil {
		return fmt.Errorf("appointments: insert: %w", err)
	}
	return nil
}

// List returns all appointments ordered by appointment time.
func (s *PostgresStore) List(ctx context.Context) ([]Appointment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, customer_name, treatment, phone_number, appointment_at, reminder_at, booked_at
		FROM appointments
		ORDER BY appointment_at`)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var appt Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.CustomerName,
			&appt.Treatment,
			&appt.PhoneNumber,
			&appt.AppointmentAt,
			&appt.ReminderAt,
			&appt.BookedAt,
		); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: iterate: %w", err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
