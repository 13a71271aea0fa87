package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barber-booking/internal/domain"
	"github.com/m04kA/barber-booking/pkg/dbmetrics"
	"github.com/m04kA/barber-booking/pkg/psqlbuilder"
)

const upsertSuffix = `ON CONFLICT (shop_id) DO UPDATE SET
	working_days = EXCLUDED.working_days,
	start_hour = EXCLUDED.start_hour,
	end_hour = EXCLUDED.end_hour,
	interval_minutes = EXCLUDED.interval_minutes,
	same_day_cutoff_hour = EXCLUDED.same_day_cutoff_hour,
	same_day_min_advance_minutes = EXCLUDED.same_day_min_advance_minutes,
	default_service_duration_minutes = EXCLUDED.default_service_duration_minutes,
	updated_at = NOW()
RETURNING id, created_at, updated_at`

// Repository репозиторий правил бронирования барбершопов (таблица shop_rules).
// NULL в колонке означает "наследовать значение по умолчанию".
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShopID получает правила барбершопа
func (r *Repository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"shop_id",
		"working_days",
		"start_hour",
		"end_hour",
		"interval_minutes",
		"same_day_cutoff_hour",
		"same_day_min_advance_minutes",
		"default_service_duration_minutes",
		"created_at",
		"updated_at",
	).
		From("shop_rules").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rules                domain.ShopRules
		workingDays          sql.NullInt16
		startHour, endHour   sql.NullInt32
		interval, cutoff     sql.NullInt32
		advance, duration    sql.NullInt32
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.ID,
		&rules.ShopID,
		&workingDays,
		&startHour,
		&endHour,
		&interval,
		&cutoff,
		&advance,
		&duration,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopID - scan rules: %v", ErrScanRow, err)
	}

	if workingDays.Valid {
		days := domain.Weekdays(workingDays.Int16)
		rules.WorkingDays = &days
	}
	rules.StartHour = nullableInt(startHour)
	rules.EndHour = nullableInt(endHour)
	rules.IntervalMinutes = nullableInt(interval)
	rules.SameDayCutoffHour = nullableInt(cutoff)
	rules.SameDayMinAdvanceMinutes = nullableInt(advance)
	rules.DefaultServiceDurationMinutes = nullableInt(duration)
	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}

// Upsert создает или полностью перезаписывает правила барбершопа
func (r *Repository) Upsert(ctx context.Context, rules *domain.ShopRules) (*domain.ShopRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var workingDays *int16
	if rules.WorkingDays != nil {
		v := int16(*rules.WorkingDays)
		workingDays = &v
	}

	query, args, err := psqlbuilder.Insert("shop_rules").
		Columns(
			"shop_id",
			"working_days",
			"start_hour",
			"end_hour",
			"interval_minutes",
			"same_day_cutoff_hour",
			"same_day_min_advance_minutes",
			"default_service_duration_minutes",
		).
		Values(
			rules.ShopID,
			workingDays,
			rules.StartHour,
			rules.EndHour,
			rules.IntervalMinutes,
			rules.SameDayCutoffHour,
			rules.SameDayMinAdvanceMinutes,
			rules.DefaultServiceDurationMinutes,
		).
		Suffix(upsertSuffix).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rules.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}

// Delete удаляет правила барбершопа, после чего действуют значения по умолчанию
func (r *Repository) Delete(ctx context.Context, shopID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("shop_rules").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRulesNotFound
	}

	return nil
}

func nullableInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}
