package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/pkg/dbmetrics"
	"github.com/clinicdesk/reservation-service/pkg/psqlbuilder"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// Repository репозиторий для работы с временными холдами слотов
//
// Таблица temporary_holds несёт уникальный ключ
// (clinic_id, doctor_id, slot_date, slot_time), поэтому создание холда —
// это create-if-absent запись: при конкурентных попытках на один слот
// успешной окажется ровно одна.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает холд атомарно через ON CONFLICT DO NOTHING
// Если живая запись с тем же ключом уже существует, возвращает ErrHoldExists
// и ничего не создает. Вызывается внутри сериализуемой транзакции вместе с
// ReclaimStale и проверкой занятости слота записью.
func (r *Repository) Create(ctx context.Context, h *domain.TemporaryHold) (*domain.TemporaryHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("temporary_holds").
		Columns(
			"clinic_id",
			"doctor_id",
			"slot_date",
			"slot_time",
			"status",
			"created_at",
			"expires_at",
		).
		Values(
			h.ClinicID,
			h.DoctorID,
			h.SlotDate,
			h.SlotTime,
			h.Status,
			h.CreatedAt,
			h.ExpiresAt,
		).
		Suffix("ON CONFLICT (clinic_id, doctor_id, slot_date, slot_time) DO NOTHING RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID)
	if err == sql.ErrNoRows {
		// Конфликт по уникальному ключу: слот уже удержан
		return nil, ErrHoldExists
	}
	if isUniqueViolation(err) {
		return nil, ErrHoldExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return h, nil
}

// GetByKey получает холд по детерминированному ключу слота
func (r *Repository) GetByKey(ctx context.Context, key domain.HoldKey) (*domain.TemporaryHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"clinic_id",
		"doctor_id",
		"slot_date",
		"slot_time",
		"status",
		"created_at",
		"expires_at",
	).
		From("temporary_holds").
		Where(keyEq(key)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.TemporaryHold
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID,
		&h.ClinicID,
		&h.DoctorID,
		&h.SlotDate,
		&h.SlotTime,
		&h.Status,
		&h.CreatedAt,
		&h.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan hold: %v", ErrScanRow, err)
	}

	return &h, nil
}

// ListActiveTimes возвращает времена слотов с живыми (blocked, не истёкшими)
// холдами для доктора на дату. Фильтр идёт по expires_at > now, а не только
// по статусу: истёкший, но ещё не свипнутый холд должен считаться свободным.
func (r *Repository) ListActiveTimes(ctx context.Context, clinicID, doctorID int64, date time.Time, now time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_time").
		From("temporary_holds").
		Where(squirrel.Eq{
			"clinic_id": clinicID,
			"doctor_id": doctorID,
			"slot_date": date,
			"status":    domain.HoldStatusBlocked,
		}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("slot_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListActiveTimes - scan slot_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// Confirm переводит живой заблокированный холд в confirmed
// Вызывается в одной транзакции с записью Appointment, чтобы подтверждённый
// холд и его запись существовали только вместе.
// Возвращает ErrHoldNotActive, если живого заблокированного холда нет.
func (r *Repository) Confirm(ctx context.Context, key domain.HoldKey, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("temporary_holds").
		Set("status", domain.HoldStatusConfirmed).
		Where(keyEq(key)).
		Where(squirrel.Eq{"status": domain.HoldStatusBlocked}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotActive
	}

	return nil
}

// DeleteBlocked удаляет заблокированный холд по ключу (освобождение слота)
// Возвращает ErrHoldNotFound, если заблокированного холда нет; вызывающая
// сторона трактует это как no-op (идемпотентное освобождение).
func (r *Repository) DeleteBlocked(ctx context.Context, key domain.HoldKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("temporary_holds").
		Where(keyEq(key)).
		Where(squirrel.Eq{"status": domain.HoldStatusBlocked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// ReclaimStale удаляет неживую запись по ключу слота: истёкший blocked-холд
// либо оставшийся confirmed/released хвост. Живой заблокированный холд
// остаётся нетронутым. Вызывается перед Create в той же транзакции, чтобы
// уникальный ключ не блокировал легально свободный слот между свипами.
func (r *Repository) ReclaimStale(ctx context.Context, key domain.HoldKey, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("temporary_holds").
		Where(keyEq(key)).
		Where(squirrel.Or{
			squirrel.NotEq{"status": domain.HoldStatusBlocked},
			squirrel.LtOrEq{"expires_at": now},
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReclaimStale - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReclaimStale - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// SweepExpired удаляет одним батчем все истёкшие заблокированные холды
// и возвращает количество удалённых записей. Безопасен при конкурентном
// запуске: повторный свип ничего не найдёт.
func (r *Repository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("temporary_holds").
		Where(squirrel.Eq{"status": domain.HoldStatusBlocked}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SweepExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// keyEq возвращает условие WHERE по детерминированному ключу слота
func keyEq(key domain.HoldKey) squirrel.Eq {
	return squirrel.Eq{
		"clinic_id": key.ClinicID,
		"doctor_id": key.DoctorID,
		"slot_date": key.Date,
		"slot_time": key.Time,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
