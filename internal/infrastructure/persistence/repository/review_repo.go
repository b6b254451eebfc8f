package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/branchbooks/reviewd/internal/application/port"
	"github.com/branchbooks/reviewd/internal/domain/entity"
	"github.com/branchbooks/reviewd/internal/domain/review"
	"github.com/branchbooks/reviewd/pkg/database"
)

// ReviewRepository implements port.ReviewRepository on sqlite. One
// repository serves all three record collections; the kind selects the
// table. Lists are ordered by rowid, which follows insertion order, so
// paging is stable absent new writes.
type ReviewRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *database.DB, logger *zap.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:     db,
		logger: logger,
	}
}

// Legacy rows may predate the review columns. COALESCE normalizes a missing
// state to pending on every read path, so callers never observe an unset
// state even if the backfill migration has not run.
const (
	normalizedState = `COALESCE(NULLIF(review_state, ''), 'pending')`

	expenseColumns = `id, worker_id, branch_id, expense_date, expense_description,
		vendor_payee, expense_category, total_amount, notes,
		` + normalizedState + `, review_observations, created_at, updated_at`

	payrollColumns = `id, worker_id, branch_id, date, days_worked, amount, payroll_type,
		notes, ` + normalizedState + `, review_observations, created_at`

	salesColumns = `id, worker_id, branch_id, closure_date, closure_number, sales_total,
		card_total, cash_total, notes, ` + normalizedState + `,
		review_observations, created_at`
)

func tableFor(kind review.Kind) (table, columns string, err error) {
	switch kind {
	case review.KindExpense:
		return "expenses", expenseColumns, nil
	case review.KindPayroll:
		return "payroll_entries", payrollColumns, nil
	case review.KindSales:
		return "sales_records", salesColumns, nil
	default:
		return "", "", fmt.Errorf("%w: %q", review.ErrUnknownKind, kind)
	}
}

// FindByID loads one record by kind and id
func (r *ReviewRepository) FindByID(ctx context.Context, kind review.Kind, id string) (review.Reviewable, error) {
	table, columns, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columns, table)
	row := r.db.QueryRowContext(ctx, query, id)

	record, err := scanRecord(kind, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s", review.ErrNotFound, kind, id)
	}
	if err != nil {
		r.logger.Error("Failed to load record",
			zap.String("kind", kind.String()), zap.String("id", id), zap.Error(err))
		return nil, storageError("load record", err)
	}
	return record, nil
}

// Save persists the full record in a single UPDATE, so the review state and
// observations can never be applied partially
func (r *ReviewRepository) Save(ctx context.Context, record review.Reviewable) error {
	var (
		result sql.Result
		err    error
	)

	switch rec := record.(type) {
	case *entity.Expense:
		result, err = r.db.ExecContext(ctx, `
			UPDATE expenses SET
				worker_id = ?, branch_id = ?, expense_date = ?, expense_description = ?,
				vendor_payee = ?, expense_category = ?, total_amount = ?, notes = ?,
				review_state = ?, review_observations = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			rec.WorkerID, rec.BranchID, rec.ExpenseDate, rec.Description,
			rec.VendorPayee, rec.Category, rec.TotalAmount, rec.Notes,
			rec.State.String(), rec.ReviewObservations, rec.ID,
		)
	case *entity.PayrollEntry:
		result, err = r.db.ExecContext(ctx, `
			UPDATE payroll_entries SET
				worker_id = ?, branch_id = ?, date = ?, days_worked = ?, amount = ?,
				payroll_type = ?, notes = ?, review_state = ?, review_observations = ?
			WHERE id = ?`,
			rec.WorkerID, rec.BranchID, rec.Date, rec.DaysWorked, rec.Amount,
			rec.PayrollType, rec.Notes, rec.State.String(), rec.ReviewObservations, rec.ID,
		)
	case *entity.SalesRecord:
		result, err = r.db.ExecContext(ctx, `
			UPDATE sales_records SET
				worker_id = ?, branch_id = ?, closure_date = ?, closure_number = ?,
				sales_total = ?, card_total = ?, cash_total = ?, notes = ?,
				review_state = ?, review_observations = ?
			WHERE id = ?`,
			rec.WorkerID, rec.BranchID, rec.ClosureDate, rec.ClosureNumber,
			rec.SalesTotal, rec.CardTotal, rec.CashTotal, rec.Notes,
			rec.State.String(), rec.ReviewObservations, rec.ID,
		)
	default:
		return fmt.Errorf("%w: %q", review.ErrUnknownKind, record.GetKind())
	}

	if err != nil {
		r.logger.Error("Failed to save record",
			zap.String("kind", record.GetKind().String()),
			zap.String("id", record.GetID()), zap.Error(err))
		return storageError("save record", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("save record", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", review.ErrNotFound, record.GetKind(), record.GetID())
	}
	return nil
}

// ListByState returns records of the given kind and review state in
// creation order
func (r *ReviewRepository) ListByState(ctx context.Context, kind review.Kind, state review.State, skip, limit int) ([]review.Reviewable, error) {
	table, columns, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE `+normalizedState+` = ?
		ORDER BY rowid
		LIMIT ? OFFSET ?`, columns, table)

	rows, err := r.db.QueryContext(ctx, query, state.String(), limit, skip)
	if err != nil {
		r.logger.Error("Failed to list records by state",
			zap.String("kind", kind.String()), zap.String("state", state.String()), zap.Error(err))
		return nil, storageError("list records", err)
	}
	defer rows.Close()

	var records []review.Reviewable
	for rows.Next() {
		record, err := scanRecord(kind, rows)
		if err != nil {
			return nil, storageError("scan record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list records", err)
	}
	return records, nil
}

// ListPending returns the page of records awaiting review
func (r *ReviewRepository) ListPending(ctx context.Context, kind review.Kind, skip, limit int) ([]review.Reviewable, error) {
	return r.ListByState(ctx, kind, review.StatePending, skip, limit)
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(kind review.Kind, row rowScanner) (review.Reviewable, error) {
	switch kind {
	case review.KindExpense:
		var (
			rec        entity.Expense
			state      string
			notes, obs sql.NullString
		)
		err := row.Scan(
			&rec.ID, &rec.WorkerID, &rec.BranchID, &rec.ExpenseDate, &rec.Description,
			&rec.VendorPayee, &rec.Category, &rec.TotalAmount, &notes,
			&state, &obs, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Notes = nullableString(notes)
		rec.State = review.State(state)
		rec.ReviewObservations = nullableString(obs)
		return &rec, nil

	case review.KindPayroll:
		var (
			rec        entity.PayrollEntry
			state      string
			notes, obs sql.NullString
		)
		err := row.Scan(
			&rec.ID, &rec.WorkerID, &rec.BranchID, &rec.Date, &rec.DaysWorked,
			&rec.Amount, &rec.PayrollType, &notes, &state, &obs, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Notes = nullableString(notes)
		rec.State = review.State(state)
		rec.ReviewObservations = nullableString(obs)
		return &rec, nil

	case review.KindSales:
		var (
			rec        entity.SalesRecord
			state      string
			notes, obs sql.NullString
		)
		err := row.Scan(
			&rec.ID, &rec.WorkerID, &rec.BranchID, &rec.ClosureDate, &rec.ClosureNumber,
			&rec.SalesTotal, &rec.CardTotal, &rec.CashTotal, &notes,
			&state, &obs, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Notes = nullableString(notes)
		rec.State = review.State(state)
		rec.ReviewObservations = nullableString(obs)
		return &rec, nil

	default:
		return nil, fmt.Errorf("%w: %q", review.ErrUnknownKind, kind)
	}
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, review.ErrStorage, err)
}

// Verify interface compliance
var _ port.ReviewRepository = (*ReviewRepository)(nil)
