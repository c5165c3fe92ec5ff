package blockedtime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	"github.com/arentz1234-code/jrodstudios/pkg/dbmetrics"
	"github.com/arentz1234-code/jrodstudios/pkg/psqlbuilder"
	"github.com/arentz1234-code/jrodstudios/pkg/timeslot"
)

var blockColumns = []string{
	"id",
	"blocked_date",
	"start_minutes",
	"end_minutes",
	"all_day",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок времени (отпуска, личные дни)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую блокировку
func (r *Repository) Create(ctx context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var startMin, endMin interface{}
	if !block.AllDay && block.StartTime != nil && block.EndTime != nil {
		startMin = block.StartTime.Minutes()
		endMin = block.EndTime.Minutes()
	}

	query, args, err := psqlbuilder.Insert("blocked_times").
		Columns("blocked_date", "start_minutes", "end_minutes", "all_day", "reason").
		Values(block.Date, startMin, endMin, block.AllDay, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	block.CreatedAt = createdAt.Time

	return block, nil
}

// GetByDate получает все блокировки на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_times").
		Where(squirrel.Eq{"blocked_date": date}).
		OrderBy("start_minutes ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// List получает блокировки начиная с даты from (для админ-календаря)
func (r *Repository) List(ctx context.Context, from *time.Time) ([]*domain.BlockedTime, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("blocked_times").
		OrderBy("blocked_date ASC, start_minutes ASC NULLS FIRST")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blocked_date": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlocks(rows)
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

func scanBlocks(rows *sql.Rows) ([]*domain.BlockedTime, error) {
	blocks := make([]*domain.BlockedTime, 0)

	for rows.Next() {
		var block domain.BlockedTime
		var startMin, endMin sql.NullInt64
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.Date,
			&startMin,
			&endMin,
			&block.AllDay,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %w", ErrScanRow, err)
		}

		if startMin.Valid {
			t := timeslot.TimeOfDay(startMin.Int64)
			block.StartTime = &t
		}
		if endMin.Valid {
			t := timeslot.TimeOfDay(endMin.Int64)
			block.EndTime = &t
		}
		block.CreatedAt = createdAt.Time

		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}
