package release_hold

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/reservation-service/internal/domain"
	holdRepo "github.com/clinicdesk/reservation-service/internal/infra/storage/hold"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeHoldRepo struct {
	deleted []domain.HoldKey
	err     error
}

func (f *fakeHoldRepo) DeleteBlocked(ctx context.Context, key domain.HoldKey) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

const blockID = "1:2:2026-08-31:09:00"

func TestExecute_ReleasesHold(t *testing.T) {
	repo := &fakeHoldRepo{}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BlockID: blockID, Status: "cancelled"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, blockID, repo.deleted[0].String())
}

func TestExecute_MissingHoldIsNoOp(t *testing.T) {
	// Холд уже истёк, подтверждён или освобождён: unblock обязан вернуть успех
	repo := &fakeHoldRepo{err: holdRepo.ErrHoldNotFound}
	uc := NewUseCase(repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BlockID: blockID, Status: "expired"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestExecute_RepeatedReleaseIsIdempotent(t *testing.T) {
	repo := &fakeHoldRepo{}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BlockID: blockID, Status: "cancelled"})
	require.NoError(t, err)

	repo.err = holdRepo.ErrHoldNotFound
	resp, err := uc.Execute(context.Background(), &Request{BlockID: blockID, Status: "cancelled"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestExecute_StorageErrorIsInternal(t *testing.T) {
	repo := &fakeHoldRepo{err: errors.New("connection reset")}
	uc := NewUseCase(repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BlockID: blockID, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeHoldRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  Request
	}{
		{name: "empty block id", req: Request{Status: "cancelled"}},
		{name: "malformed block id", req: Request{BlockID: "not-a-key", Status: "cancelled"}},
		{name: "empty status", req: Request{BlockID: blockID}},
		{name: "confirmed is not a release status", req: Request{BlockID: blockID, Status: "confirmed"}},
		{name: "blocked is not a release status", req: Request{BlockID: blockID, Status: "blocked"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
