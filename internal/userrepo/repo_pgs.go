// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/dbpkg"
	"github.com/avelhart/duobank/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    users (name, email, hashed_password, mobile_number, country)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, name, email, hashed_password, mobile_number, country, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Name, arg.Email, arg.HashedPassword, arg.MobileNumber, arg.Country)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.HashedPassword,
		&u.MobileNumber,
		&u.Country,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_email_key" {
				return u, domain.ErrEmailAlreadyExists
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT
	id, name, email, hashed_password, mobile_number, country, created_at
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.scanUser(ctx, getQuery, id)
}

const getByEmailQuery = `
SELECT
	id, name, email, hashed_password, mobile_number, country, created_at
FROM users
WHERE email = $1
`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(ctx, getByEmailQuery, email)
}

func (r *RepoPGS) scanUser(ctx context.Context, query string, key interface{}) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, key)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.HashedPassword,
		&u.MobileNumber,
		&u.Country,
		&u.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getAuthUserQuery = `
SELECT
	u.id, ca.id, sa.id
FROM users u
LEFT JOIN current_accounts ca ON ca.owner_id = u.id
LEFT JOIN savings_accounts sa ON sa.owner_id = u.id
WHERE u.id = $1
`

// GetAuthUser returns the caller identity with its linked account ids.
// Missing accounts are reported as zero uuids.
func (r *RepoPGS) GetAuthUser(ctx context.Context, id uuid.UUID) (domain.AuthUser, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getAuthUserQuery, id)

	var (
		userID           uuid.UUID
		currentAccountID uuid.NullUUID
		savingsAccountID uuid.NullUUID
	)

	err := row.Scan(&userID, &currentAccountID, &savingsAccountID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.AuthUser{}, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return domain.AuthUser{}, errorspkg.ErrInternal
	}

	return domain.AuthUser{
		ID:               userID,
		CurrentAccountID: currentAccountID.UUID,
		SavingsAccountID: savingsAccountID.UUID,
	}, nil
}
