package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("user not found")

// Репозиторий для работы с пользователями.
type Repository interface {
	// Save inserts u when u.ID is zero, otherwise overwrites the row with
	// that id. It returns the stored user with its id set.
	Save(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindByBirthDateBetween(ctx context.Context, from, to Date) ([]User, error)
}

type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, birth_date, address, phone_number`

func (r *postgresRepository) Save(ctx context.Context, u *User) (*User, error) {
	if u.ID == 0 {
		return r.insert(ctx, u)
	}
	return r.update(ctx, u)
}

func (r *postgresRepository) insert(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO user_service.users (email, first_name, last_name, birth_date, address, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	saved := *u
	err := r.db.QueryRow(ctx, query,
		u.Email,
		u.FirstName,
		u.LastName,
		u.BirthDate.In(time.UTC),
		u.Address,
		u.PhoneNumber,
	).Scan(&saved.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert user: %w", err)
	}

	return &saved, nil
}

func (r *postgresRepository) update(ctx context.Context, u *User) (*User, error) {
	query := `
		UPDATE user_service.users
		SET email = $1, first_name = $2, last_name = $3, birth_date = $4,
			address = $5, phone_number = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		u.Email,
		u.FirstName,
		u.LastName,
		u.BirthDate.In(time.UTC),
		u.Address,
		u.PhoneNumber,
		u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update user %d: %w", u.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Int64("user_id", u.ID).Msg("repository: user not found for update")
		return nil, ErrNotFound
	}

	saved := *u
	return &saved, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM user_service.users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to select user by id %d: %w", id, err)
	}

	return u, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_service.users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check user %d exists: %w", id, err)
	}
	return exists, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM user_service.users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete user %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) FindByBirthDateBetween(ctx context.Context, from, to Date) ([]User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM user_service.users
		WHERE birth_date BETWEEN $1 AND $2
		ORDER BY birth_date, id
	`

	rows, err := r.db.Query(ctx, query, from.In(time.UTC), to.In(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query users born between %s and %s: %w", from, to, err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: failed iterating users born between %s and %s: %w", from, to, err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u         User
		birthDate time.Time
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&birthDate,
		&u.Address,
		&u.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}
	u.BirthDate = civil.DateOf(birthDate)
	return &u, nil
}
