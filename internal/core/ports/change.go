package ports

import (
	"context"

	"github.com/DanielPopoola/changebot/internal/core/domain"
)

// ChangeClient defines the behavior of the remote change management service.
type ChangeClient interface {
	Create(ctx context.Context, draft domain.ChangeRequestDraft) (*domain.ChangeResponse, error)
	UpdateState(ctx context.Context, sysID string, req domain.StateUpdateRequest) (*domain.ChangeResponse, error)
	Get(ctx context.Context, sysID string) (*domain.ChangeResponse, error)
}
