package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
	pgdb "github.com/ogurasousui/shift-scheduler/internal/platform/db/postgres"
)

const shiftColumns = `id, staff_id, shift_date, shift_type, created_at, updated_at`

// ShiftRepository は PostgreSQL を利用したシフト永続化の実装です。
type ShiftRepository struct {
	pool pgdb.Queryer
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(pool pgdb.Queryer) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// Create はシフトを 1 件登録します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO shifts (staff_id, shift_date, shift_type, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+shiftColumns,
		s.StaffID,
		shift.NormalizeDate(s.Date),
		s.Type,
		s.CreatedAt,
		s.UpdatedAt,
	)

	created, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return created, nil
}

// Update はシフトを上書きします。
func (r *ShiftRepository) Update(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE shifts
           SET staff_id = $1,
               shift_date = $2,
               shift_type = $3,
               updated_at = $4
         WHERE id = $5
        RETURNING `+shiftColumns,
		s.StaffID,
		shift.NormalizeDate(s.Date),
		s.Type,
		s.UpdatedAt,
		s.ID,
	)

	updated, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return updated, nil
}

// Delete はシフトを物理削除します。
func (r *ShiftRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return translateShiftPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// FindByID は ID でシフトを取得します。
func (r *ShiftRepository) FindByID(ctx context.Context, id int64) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)

	found, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return found, nil
}

// FindByStaffAndDate は同一スタッフ・同一日のシフトを 1 件返します。
func (r *ShiftRepository) FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+shiftColumns+`
          FROM shifts
         WHERE staff_id = $1 AND shift_date = $2
         ORDER BY id ASC
         LIMIT 1
    `, staffID, shift.NormalizeDate(date))

	found, err := scanShift(row)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	return found, nil
}

// List は全シフトを ID 昇順で返します。
func (r *ShiftRepository) List(ctx context.Context) ([]*shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY id ASC`)
	if err != nil {
		return nil, translateShiftPgError(err)
	}
	defer rows.Close()

	shifts := make([]*shift.Shift, 0)
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, translateShiftPgError(err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, translateShiftPgError(err)
	}
	return shifts, nil
}

// DeleteInRange は期間内のシフトをスタッフに関係なく削除し、削除件数を返します。
func (r *ShiftRepository) DeleteInRange(ctx context.Context, start, end time.Time) (int64, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM shifts WHERE shift_date >= $1 AND shift_date <= $2`,
		shift.NormalizeDate(start), shift.NormalizeDate(end))
	if err != nil {
		return 0, translateShiftPgError(err)
	}
	return tag.RowsAffected(), nil
}

// CreateBatch は配列パラメータを unnest して 1 文でまとめて登録します。
func (r *ShiftRepository) CreateBatch(ctx context.Context, shifts []*shift.Shift) (int64, error) {
	if len(shifts) == 0 {
		return 0, nil
	}

	staffIDs := make([]int64, len(shifts))
	dates := make([]time.Time, len(shifts))
	types := make([]string, len(shifts))
	createdAt := make([]time.Time, len(shifts))
	updatedAt := make([]time.Time, len(shifts))
	for i, s := range shifts {
		staffIDs[i] = s.StaffID
		dates[i] = shift.NormalizeDate(s.Date)
		types[i] = s.Type
		createdAt[i] = s.CreatedAt
		updatedAt[i] = s.UpdatedAt
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `
        INSERT INTO shifts (staff_id, shift_date, shift_type, created_at, updated_at)
        SELECT * FROM unnest($1::bigint[], $2::date[], $3::text[], $4::timestamptz[], $5::timestamptz[])
    `, staffIDs, dates, types, createdAt, updatedAt)
	if err != nil {
		return 0, translateShiftPgError(err)
	}
	return tag.RowsAffected(), nil
}

func scanShift(row pgx.Row) (*shift.Shift, error) {
	var s shift.Shift
	if err := row.Scan(
		&s.ID,
		&s.StaffID,
		&s.Date,
		&s.Type,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}
	s.Date = shift.NormalizeDate(s.Date)
	return &s, nil
}

func translateShiftPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shift.ErrShiftNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolation:
			switch pgErr.ColumnName {
			case "shift_type":
				return shift.ErrInvalidType
			case "shift_date":
				return shift.ErrInvalidDate
			}
		case checkViolationCode:
			if pgErr.ConstraintName == shiftTypeCheckConstraint {
				return shift.ErrInvalidType
			}
		case stringDataRightTruncation:
			return fmt.Errorf("%w: %s", shift.ErrInvalidType, pgErr.Message)
		}
	}

	return err
}
