// Package accountrepo manages repository layer of accounts.
//
// Accounts are partitioned by type: each account type is stored in its own
// table with the same shape. Every method resolves the partition first via
// an exhaustive match on the account type.
package accountrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/dbpkg"
	"github.com/avelhart/duobank/pkg/errorspkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns account RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns account RepoPGS scoped to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// tableFor maps the account type to its partition table.
func tableFor(t domain.AccountType) (string, error) {
	switch t {
	case domain.Current:
		return "current_accounts", nil
	case domain.Savings:
		return "savings_accounts", nil
	}

	return "", domain.ErrInvalidAccountType
}

// whereClause builds the conjunction of equality predicates for the given filter.
// Zero-valued fields are skipped.
func whereClause(f domain.AccountFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.ID != uuid.Nil {
		args = append(args, f.ID)
		conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
	}

	if f.OwnerID != uuid.Nil {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	if f.AccountNumber != 0 {
		args = append(args, f.AccountNumber)
		conds = append(conds, fmt.Sprintf("account_number = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

const createQuery = `
INSERT INTO
    %s (owner_id, account_number, type)
VALUES
    ($1, $2, $3)
RETURNING id, owner_id, account_number, type, balance, created_at
`

// Create inserts the account row with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	table, err := tableFor(arg.Type)
	if err != nil {
		return a, err
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(createQuery, table),
		arg.OwnerID, arg.AccountNumber, arg.Type)

	err = row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case table + "_owner_id_fkey":
				return a, domain.ErrOwnerNotFound
			case table + "_owner_id_key":
				return a, domain.ErrAccountTypeExists
			case table + "_account_number_key":
				return a, domain.ErrAccountNumberTaken
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const findQuery = `
SELECT
	id, owner_id, account_number, type, balance, created_at
FROM %s
WHERE %s
`

// FindOne returns the single account of the given type matching the filter.
func (r *RepoPGS) FindOne(ctx context.Context, t domain.AccountType, f domain.AccountFilter) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	table, err := tableFor(t)
	if err != nil {
		return a, err
	}

	where, args := whereClause(f)
	if where == "" {
		return a, errorspkg.ErrInternal
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(findQuery, table, where), args...)

	err = row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const findManyQuery = `
SELECT
	id, owner_id, account_number, type, balance, created_at
FROM %s
WHERE %s
ORDER BY created_at
`

// FindMany returns all accounts of the given type matching the filter.
func (r *RepoPGS) FindMany(ctx context.Context, t domain.AccountType, f domain.AccountFilter) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}

	where, args := whereClause(f)
	if where == "" {
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(findManyQuery, table, where), args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.OwnerID,
			&a.AccountNumber,
			&a.Type,
			&a.Balance,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateBalanceQuery = `
UPDATE %s
SET balance = $1
WHERE id = $2
`

// UpdateBalance applies a conditional update keyed by id and reports
// how many rows it affected. Zero rows signal a lost race to the caller.
func (r *RepoPGS) UpdateBalance(ctx context.Context, t domain.AccountType, id uuid.UUID, balance int64) (int64, error) {
	l := zerolog.Ctx(ctx)

	table, err := tableFor(t)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(updateBalanceQuery, table), balance, id)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == table+"_balance_check" {
				return 0, domain.ErrInsufficientFunds
			}
		}

		return 0, errorspkg.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return affected, nil
}

// TransferTx applies the sender and receiver balance writes within a single
// database transaction. Either both balances move or neither does.
func (r *RepoPGS) TransferTx(ctx context.Context, sender, receiver domain.BalanceUpdate) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txRepo := NewTxRepoPGS(tx)

	for _, u := range []domain.BalanceUpdate{sender, receiver} {
		affected, err := txRepo.UpdateBalance(ctx, u.Type, u.AccountID, u.Balance)
		if err != nil {
			return err
		}

		if affected == 0 {
			l.Warn().
				Str("account_id", u.AccountID.String()).
				Str("account_type", string(u.Type)).
				Msg("transfer balance update affected no rows")

			return domain.ErrUpdateConflict
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
