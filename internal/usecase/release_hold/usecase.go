package release_hold

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinicdesk/reservation-service/internal/domain"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
)

// UseCase use case для освобождения удержанного слота
//
// Идемпотентная операция: отсутствие холда (уже освобождён, подтверждён
// или свипнут) не считается ошибкой. Повторный unblock и unblock после
// book возвращают успех.
type UseCase struct {
	holdRepo HoldRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(holdRepo HoldRepository, logger Logger) *UseCase {
	return &UseCase{
		holdRepo: holdRepo,
		logger:   logger,
	}
}

// Execute выполняет use case освобождения холда
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseHold: blockId=%s, status=%s", req.BlockID, req.Status)

	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReleaseHold: validation failed: %v", err)
		return nil, err
	}

	if err := uc.holdRepo.DeleteBlocked(ctx, *key); err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			// Холд уже отсутствует: истёк, подтверждён или освобождён ранее
			uc.logger.Info("ReleaseHold: hold %s not found, nothing to release", key)
			return &Response{Success: true}, nil
		}
		uc.logger.Error("ReleaseHold: failed to delete hold %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to delete hold: %v", ErrInternal, err)
	}

	uc.logger.Info("ReleaseHold: hold %s released", key)

	return &Response{Success: true}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*domain.HoldKey, error) {
	if req.BlockID == "" {
		return nil, fmt.Errorf("%w: blockId is required", ErrInvalidInput)
	}

	if !domain.ValidHoldReleaseStatus(domain.HoldStatus(req.Status)) {
		return nil, fmt.Errorf("%w: status must be %q or %q",
			ErrInvalidInput, domain.HoldStatusCancelled, domain.HoldStatusExpired)
	}

	key, err := domain.ParseHoldKey(req.BlockID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed blockId: %v", ErrInvalidInput, err)
	}

	return &key, nil
}
