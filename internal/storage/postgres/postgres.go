package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"seatbooker/internal/config"
	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

// uniqueViolation is the postgres error code hit when the unique index on
// users.email rejects an insert.
const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(u models.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = storage.NormalizeEmail(u.Email)
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, name, email, phone, student_id, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.DB.Exec(query, u.ID, u.Name, u.Email, u.Phone, u.StudentID, u.RegisteredAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return "", fmt.Errorf("failed to create user %q: %w", u.Email, storage.ErrEmailTaken)
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return u.ID, nil
}

func (s *Storage) User(id string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, student_id, registered_at
		FROM users
		WHERE id = $1`

	var u models.User
	err := s.DB.QueryRow(query, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.StudentID,
		&u.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) UserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, student_id, registered_at
		FROM users
		WHERE email = $1`

	var u models.User
	err := s.DB.QueryRow(query, storage.NormalizeEmail(email)).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.StudentID,
		&u.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) CreateEvent(e models.Event) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	query := `
		INSERT INTO events (id, title, date, time, price, max_participants, current_participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.DB.Exec(query, e.ID, e.Title, e.Date, e.Time, e.Price, e.MaxParticipants, e.CurrentParticipants)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return e.ID, nil
}

func (s *Storage) Event(id string) (*models.Event, error) {
	query := `
		SELECT id, title, date, time, price, max_participants, current_participants
		FROM events
		WHERE id = $1`

	var e models.Event
	err := s.DB.QueryRow(query, id).Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&e.Time,
		&e.Price,
		&e.MaxParticipants,
		&e.CurrentParticipants,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &e, nil
}

func (s *Storage) Events() ([]models.Event, error) {
	query := `
		SELECT id, title, date, time, price, max_participants, current_participants
		FROM events
		ORDER BY date ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		err = rows.Scan(
			&e.ID,
			&e.Title,
			&e.Date,
			&e.Time,
			&e.Price,
			&e.MaxParticipants,
			&e.CurrentParticipants,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(id string, p storage.EventPatch) error {
	query := `
		UPDATE events
		SET title = COALESCE($2, title),
		    date = COALESCE($3, date),
		    time = COALESCE($4, time),
		    price = COALESCE($5, price),
		    max_participants = COALESCE($6, max_participants),
		    current_participants = COALESCE($7, current_participants)
		WHERE id = $1`

	result, err := s.DB.Exec(query, id, p.Title, p.Date, p.Time, p.Price, p.MaxParticipants, p.CurrentParticipants)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return requireRow(result, storage.ErrEventNotFound)
}

func (s *Storage) IncrementParticipants(id string) (int, error) {
	// The guarded UPDATE makes the read-modify-write atomic; a full event
	// matches zero rows instead of overbooking.
	query := `
		UPDATE events
		SET current_participants = current_participants + 1
		WHERE id = $1 AND current_participants < max_participants
		RETURNING current_participants`

	var count int
	err := s.DB.QueryRow(query, id).Scan(&count)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("failed to increment participants: %w", err)
		}

		if _, getErr := s.Event(id); getErr != nil {
			return 0, getErr
		}

		return 0, fmt.Errorf("event %s: %w", id, storage.ErrEventFull)
	}

	return count, nil
}

func (s *Storage) CreateBooking(b models.Booking) (string, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO bookings (id, user_id, event_id, created_at, status, payment_status, amount, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.DB.Exec(query, b.ID, b.UserID, b.EventID, b.CreatedAt, b.Status, b.PaymentStatus, b.Amount, b.PaymentID)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	return b.ID, nil
}

func (s *Storage) Booking(id string) (*models.Booking, error) {
	query := `
		SELECT id, user_id, event_id, created_at, status, payment_status, amount, payment_id
		FROM bookings
		WHERE id = $1`

	var b models.Booking
	err := s.DB.QueryRow(query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.CreatedAt,
		&b.Status,
		&b.PaymentStatus,
		&b.Amount,
		&b.PaymentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (s *Storage) BookingsByEvent(eventID string) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, event_id, created_at, status, payment_status, amount, payment_id
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := s.DB.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err = rows.Scan(
			&b.ID,
			&b.UserID,
			&b.EventID,
			&b.CreatedAt,
			&b.Status,
			&b.PaymentStatus,
			&b.Amount,
			&b.PaymentID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func (s *Storage) UpdateBooking(id string, p storage.BookingPatch) error {
	query := `
		UPDATE bookings
		SET status = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    payment_id = COALESCE($4, payment_id)
		WHERE id = $1`

	result, err := s.DB.Exec(query, id, statusValue(p.Status), paymentStatusValue(p.PaymentStatus), p.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return requireRow(result, storage.ErrBookingNotFound)
}

func (s *Storage) CancelExpiredBookings(olderThan time.Duration) (int, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE status = $2 AND payment_status = $3 AND created_at < $4`

	result, err := s.DB.Exec(query,
		models.BookingCancelled,
		models.BookingPending,
		models.PaymentPending,
		time.Now().UTC().Add(-olderThan),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel expired bookings: %w", err)
	}

	cancelled, _ := result.RowsAffected()

	return int(cancelled), nil
}

func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}

func statusValue(s *models.BookingStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)

	return &v
}

func paymentStatusValue(s *models.PaymentStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)

	return &v
}
