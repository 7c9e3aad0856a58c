package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/DanielPopoola/changebot/internal/core/ports"
)

// LifecycleService creates a change request and walks it through an ordered
// list of state transitions.
type LifecycleService struct {
	client ports.ChangeClient
	logger *slog.Logger
}

func NewLifecycleService(client ports.ChangeClient, logger *slog.Logger) *LifecycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{
		client: client,
		logger: logger,
	}
}

// Run performs one create call followed by one call per transition. It never
// returns an error: every failure is folded into the result. A failed
// transition leaves the record in the state the previous step reached.
func (s *LifecycleService) Run(ctx context.Context, draft domain.ChangeRequestDraft, transitions []domain.StateTransition) domain.LifecycleResult {
	resp, err := s.client.Create(ctx, draft)
	if err != nil {
		s.logger.Error("error creating change request", "error", domain.ErrorPayload(err))
		return domain.FailedCreate(domain.NewCreateError(err))
	}

	sysID := resp.Result.SysID.String()
	if sysID == "" {
		s.logger.Error("error creating change request",
			"error", domain.ErrMissingSysID.Error(),
			"sys_id_shape", resp.Result.SysID.Kind.String(),
		)
		return domain.FailedCreate(domain.NewCreateError(domain.ErrMissingSysID))
	}
	number := resp.Result.Number.String()

	logger := s.logger.With("sys_id", sysID)
	if number != "" {
		logger = logger.With("number", number)
	}
	logger.Info("change request created",
		"planned_start_date", draft.String(domain.FieldPlannedStartDate),
		"planned_end_date", draft.String(domain.FieldPlannedEndDate),
	)

	for i, t := range transitions {
		_, err := s.client.UpdateState(ctx, sysID, domain.StateUpdateRequest{State: t.TargetState})
		if err != nil {
			logger.Error("error transitioning change state",
				"index", i,
				"state", t.TargetState,
				"error", domain.ErrorPayload(err),
			)
			return domain.FailedTransition(sysID, number, i, domain.NewTransitionError(i, t.TargetState, err))
		}
		logger.Info(fmt.Sprintf("change request transitioned to state %d", t.TargetState), "index", i)
	}

	return domain.Succeeded(sysID, number)
}
