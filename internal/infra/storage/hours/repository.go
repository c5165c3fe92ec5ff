package hours

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

var ruleColumns = []string{
	"id",
	"weekday",
	"is_open",
	"open_minutes",
	"close_minutes",
	"break_start_minutes",
	"break_end_minutes",
	"updated_at",
}

// Repository репозиторий расписания работы (7 правил, по одному на день недели)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWeekday получает правило для дня недели.
// Возвращает ErrRuleNotFound, если день не настроен - движок доступности
// трактует это как "закрыто".
func (r *Repository) GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.DayRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("business_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// GetAll получает все правила, отсортированные по дню недели
func (r *Repository) GetAll(ctx context.Context) ([]*domain.DayRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("business_hours").
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.DayRule, 0, 7)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// Upsert создает или обновляет правило для дня недели
func (r *Repository) Upsert(ctx context.Context, rule domain.DayRuleUpdate) (*domain.DayRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_hours").
		Columns(
			"weekday",
			"is_open",
			"open_minutes",
			"close_minutes",
			"break_start_minutes",
			"break_end_minutes",
		).
		Values(
			int(rule.Weekday),
			rule.IsOpen,
			minutesOrNil(rule.OpenTime),
			minutesOrNil(rule.CloseTime),
			minutesOrNil(rule.BreakStart),
			minutesOrNil(rule.BreakEnd),
		).
		Suffix(`ON CONFLICT (weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_minutes = EXCLUDED.open_minutes,
			close_minutes = EXCLUDED.close_minutes,
			break_start_minutes = EXCLUDED.break_start_minutes,
			break_end_minutes = EXCLUDED.break_end_minutes,
			updated_at = NOW()
		RETURNING id, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	result := &domain.DayRule{
		Weekday:    rule.Weekday,
		IsOpen:     rule.IsOpen,
		OpenTime:   rule.OpenTime,
		CloseTime:  rule.CloseTime,
		BreakStart: rule.BreakStart,
		BreakEnd:   rule.BreakEnd,
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&result.ID, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	result.UpdatedAt = updatedAt.Time

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.DayRule, error) {
	var rule domain.DayRule
	var weekday int
	var openMin, closeMin, breakStartMin, breakEndMin sql.NullInt64
	var updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&weekday,
		&rule.IsOpen,
		&openMin,
		&closeMin,
		&breakStartMin,
		&breakEndMin,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekday = time.Weekday(weekday)
	rule.OpenTime = timeOfDayOrNil(openMin)
	rule.CloseTime = timeOfDayOrNil(closeMin)
	rule.BreakStart = timeOfDayOrNil(breakStartMin)
	rule.BreakEnd = timeOfDayOrNil(breakEndMin)
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func minutesOrNil(t *timeslot.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return t.Minutes()
}

func timeOfDayOrNil(v sql.NullInt64) *timeslot.TimeOfDay {
	if !v.Valid {
		return nil
	}
	t := timeslot.TimeOfDay(v.Int64)
	return &t
}
