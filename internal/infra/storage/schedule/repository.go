package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clinicdesk/reservation-service/internal/domain"
	"github.com/clinicdesk/reservation-service/pkg/dbmetrics"
	"github.com/clinicdesk/reservation-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с рабочими расписаниями докторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDoctor получает расписание доктора в клинике
// Возвращает ErrScheduleNotFound, если расписание не настроено
func (r *Repository) GetByDoctor(ctx context.Context, clinicID, doctorID int64) (*domain.WorkingSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"clinic_id",
		"doctor_id",
		"working_days",
		"start_time",
		"end_time",
		"is_24_hours",
		"slot_duration_minutes",
		"max_daily_appointments",
		"created_at",
		"updated_at",
	).
		From("doctor_schedules").
		Where(squirrel.Eq{
			"clinic_id": clinicID,
			"doctor_id": doctorID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.WorkingSchedule
	var workingDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ClinicID,
		&s.DoctorID,
		&workingDays,
		&s.StartTime,
		&s.EndTime,
		&s.Is24Hours,
		&s.SlotDurationMinutes,
		&s.MaxDailyAppointments,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDoctor - scan schedule: %v", ErrScanRow, err)
	}

	s.WorkingDays = make([]time.Weekday, len(workingDays))
	for i, d := range workingDays {
		s.WorkingDays[i] = time.Weekday(d)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет расписание доктора
// Уникальность обеспечивается парой (clinic_id, doctor_id)
func (r *Repository) Upsert(ctx context.Context, s *domain.WorkingSchedule) (*domain.WorkingSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	workingDays := make(pq.Int64Array, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("doctor_schedules").
		Columns(
			"clinic_id",
			"doctor_id",
			"working_days",
			"start_time",
			"end_time",
			"is_24_hours",
			"slot_duration_minutes",
			"max_daily_appointments",
		).
		Values(
			s.ClinicID,
			s.DoctorID,
			workingDays,
			s.StartTime,
			s.EndTime,
			s.Is24Hours,
			s.SlotDurationMinutes,
			s.MaxDailyAppointments,
		).
		Suffix(`ON CONFLICT (clinic_id, doctor_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			is_24_hours = EXCLUDED.is_24_hours,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			max_daily_appointments = EXCLUDED.max_daily_appointments,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Delete удаляет расписание доктора (возврат к расписанию по умолчанию)
func (r *Repository) Delete(ctx context.Context, clinicID, doctorID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("doctor_schedules").
		Where(squirrel.Eq{
			"clinic_id": clinicID,
			"doctor_id": doctorID,
		}).
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
		return ErrScheduleNotFound
	}

	return nil
}
