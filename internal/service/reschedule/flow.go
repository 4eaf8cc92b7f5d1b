package reschedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/reservation-service/internal/usecase/create_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/release_hold"
	"github.com/clinicdesk/reservation-service/internal/usecase/reschedule_appointment"
	"github.com/clinicdesk/reservation-service/pkg/types"
)

// State состояние диалога переноса записи
type State string

const (
	StateIdle         State = "idle"          // Диалог открыт, дата не выбрана
	StateDateSelected State = "date_selected" // Дата выбрана, слот не удержан
	StateSlotHeld     State = "slot_held"     // Слот удержан, ждём подтверждения
	StateSubmitting   State = "submitting"    // Отправка переноса выполняется
	StateCompleted    State = "completed"     // Перенос выполнен (терминальное)
	StateFailed       State = "failed"        // Перенос не удался (терминальное)
)

// Flow конечный автомат диалога переноса записи на новый слот
//
// Диалог в каждый момент владеет не более чем одним холдом, и любой
// выход из состояния SlotHeld — смена даты, смена времени, сбой
// отправки, закрытие диалога — освобождает текущий холд. Слот никогда
// не остаётся заблокированным брошенным диалогом дольше аренды.
//
// Потокобезопасен: все переходы сериализуются мьютексом.
type Flow struct {
	mu sync.Mutex

	appointmentID int64
	clinicID      int64
	doctorID      int64

	state        State
	closed       bool
	selectedDate time.Time
	selectedTime types.TimeString
	blockID      string
	expiresAt    time.Time

	createHold   CreateHoldUseCase
	releaseHold  ReleaseHoldUseCase
	reschedule   RescheduleUseCase
	timeProvider TimeProvider
	logger       Logger
}

// NewFlow открывает диалог переноса для записи
func NewFlow(
	appointmentID, clinicID, doctorID int64,
	createHold CreateHoldUseCase,
	releaseHold ReleaseHoldUseCase,
	reschedule RescheduleUseCase,
	logger Logger,
) *Flow {
	return &Flow{
		appointmentID: appointmentID,
		clinicID:      clinicID,
		doctorID:      doctorID,
		state:         StateIdle,
		createHold:    createHold,
		releaseHold:   releaseHold,
		reschedule:    reschedule,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// State возвращает текущее состояние диалога
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// BlockID возвращает идентификатор текущего холда, если слот удержан
func (f *Flow) BlockID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockID
}

// SelectDate выбирает дату переноса
// Допустим из Idle, DateSelected, SlotHeld и Failed; удерживаемый слот
// при смене даты освобождается
func (f *Flow) SelectDate(ctx context.Context, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFlowClosed
	}

	switch f.state {
	case StateIdle, StateDateSelected, StateSlotHeld, StateFailed:
	default:
		return fmt.Errorf("%w: SelectDate in state %s", ErrInvalidTransition, f.state)
	}

	f.releaseCurrentHold(ctx, release_hold.Request{Status: "cancelled"})

	f.selectedDate = date
	f.selectedTime = ""
	f.state = StateDateSelected

	f.logger.Info("RescheduleFlow: appointment=%d date selected %s",
		f.appointmentID, date.Format("2006-01-02"))

	return nil
}

// SelectTime удерживает слот на выбранной дате
// Повторный выбор времени освобождает предыдущий холд перед созданием нового
func (f *Flow) SelectTime(ctx context.Context, slotTime types.TimeString) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return time.Time{}, ErrFlowClosed
	}

	switch f.state {
	case StateDateSelected, StateSlotHeld:
	default:
		return time.Time{}, fmt.Errorf("%w: SelectTime in state %s", ErrInvalidTransition, f.state)
	}

	f.releaseCurrentHold(ctx, release_hold.Request{Status: "cancelled"})

	resp, err := f.createHold.Execute(ctx, &create_hold.Request{
		ClinicID: f.clinicID,
		DoctorID: f.doctorID,
		Date:     f.selectedDate,
		Time:     slotTime,
	})
	if err != nil {
		// Слот не достался: остаёмся на выборе времени
		f.state = StateDateSelected
		return time.Time{}, err
	}

	f.selectedTime = slotTime
	f.blockID = resp.BlockID
	f.expiresAt = resp.ExpiresAt
	f.state = StateSlotHeld

	f.logger.Info("RescheduleFlow: appointment=%d slot %s held until %s",
		f.appointmentID, f.blockID, f.expiresAt.Format(time.RFC3339))

	return resp.ExpiresAt, nil
}

// Submit подтверждает перенос записи на удержанный слот
// Истёкшая аренда возвращает диалог к выбору времени; сбой отправки
// переводит диалог в Failed и освобождает холд
func (f *Flow) Submit(ctx context.Context) (*reschedule_appointment.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrFlowClosed
	}

	if f.state != StateSlotHeld {
		return nil, fmt.Errorf("%w: Submit in state %s", ErrInvalidTransition, f.state)
	}

	// Локальная проверка аренды до обращения к серверу
	if !f.expiresAt.After(f.timeProvider.Now()) {
		f.releaseCurrentHold(ctx, release_hold.Request{Status: "expired"})
		f.state = StateDateSelected
		f.logger.Warn("RescheduleFlow: appointment=%d hold expired before submit", f.appointmentID)
		return nil, ErrHoldExpired
	}

	f.state = StateSubmitting

	resp, err := f.reschedule.Execute(ctx, &reschedule_appointment.Request{
		AppointmentID: f.appointmentID,
		BlockID:       f.blockID,
	})
	if err != nil {
		if errors.Is(err, reschedule_appointment.ErrHoldExpired) {
			// Аренда истекла на сервере; освобождение идемпотентно,
			// поэтому истёкшая строка убирается сразу, не дожидаясь уборки
			f.releaseCurrentHold(ctx, release_hold.Request{Status: "expired"})
			f.state = StateDateSelected
			return nil, ErrHoldExpired
		}

		f.releaseCurrentHold(ctx, release_hold.Request{Status: "cancelled"})
		f.state = StateFailed
		f.logger.Error("RescheduleFlow: appointment=%d submit failed: %v", f.appointmentID, err)
		return nil, err
	}

	// Холд подтверждён переносом и больше не принадлежит диалогу
	f.blockID = ""
	f.state = StateCompleted

	f.logger.Info("RescheduleFlow: appointment=%d rescheduled to %s %s",
		f.appointmentID, resp.Date.Format("2006-01-02"), resp.Time)

	return resp, nil
}

// Close закрывает диалог
// Выход из любого нетерминального состояния освобождает удерживаемый слот;
// повторное закрытие — no-op
func (f *Flow) Close(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true

	if f.state == StateCompleted || f.state == StateFailed {
		return
	}

	f.releaseCurrentHold(ctx, release_hold.Request{Status: "cancelled"})
	f.logger.Info("RescheduleFlow: appointment=%d flow closed in state %s", f.appointmentID, f.state)
}

// releaseCurrentHold освобождает текущий холд, если он есть
// Освобождение идемпотентно, поэтому ошибка только логируется
func (f *Flow) releaseCurrentHold(ctx context.Context, req release_hold.Request) {
	if f.blockID == "" {
		return
	}

	req.BlockID = f.blockID
	if _, err := f.releaseHold.Execute(ctx, &req); err != nil {
		f.logger.Error("RescheduleFlow: appointment=%d failed to release hold %s: %v",
			f.appointmentID, f.blockID, err)
	}

	f.blockID = ""
	f.expiresAt = time.Time{}
}
