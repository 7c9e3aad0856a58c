package service

import (
	"context"
	"sync"

	"github.com/DanielPopoola/changebot/internal/core/domain"
)

// Call is one recorded invocation of MockChangeClient.
type Call struct {
	Method string
	SysID  string
	State  int
	Draft  domain.ChangeRequestDraft
}

// MockChangeClient records every call in order. Unset Fn fields return a
// record with sys_id "sys-123".
type MockChangeClient struct {
	mu    sync.Mutex
	calls []Call

	CreateFn      func(ctx context.Context, draft domain.ChangeRequestDraft) (*domain.ChangeResponse, error)
	UpdateStateFn func(ctx context.Context, sysID string, req domain.StateUpdateRequest) (*domain.ChangeResponse, error)
	GetFn         func(ctx context.Context, sysID string) (*domain.ChangeResponse, error)
}

func (m *MockChangeClient) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns a copy of the recorded calls.
func (m *MockChangeClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockChangeClient) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockChangeClient) Create(ctx context.Context, draft domain.ChangeRequestDraft) (*domain.ChangeResponse, error) {
	m.record(Call{Method: "Create", Draft: draft})
	if m.CreateFn != nil {
		return m.CreateFn(ctx, draft)
	}
	return RecordResponse("sys-123"), nil
}

func (m *MockChangeClient) UpdateState(ctx context.Context, sysID string, req domain.StateUpdateRequest) (*domain.ChangeResponse, error) {
	m.record(Call{Method: "UpdateState", SysID: sysID, State: req.State})
	if m.UpdateStateFn != nil {
		return m.UpdateStateFn(ctx, sysID, req)
	}
	return RecordResponse(sysID), nil
}

func (m *MockChangeClient) Get(ctx context.Context, sysID string) (*domain.ChangeResponse, error) {
	m.record(Call{Method: "Get", SysID: sysID})
	if m.GetFn != nil {
		return m.GetFn(ctx, sysID)
	}
	return RecordResponse(sysID), nil
}

// RecordResponse builds a response whose sys_id uses the reference shape.
func RecordResponse(sysID string) *domain.ChangeResponse {
	return &domain.ChangeResponse{
		Result: domain.ChangeRecord{
			SysID: domain.FieldValue{Kind: domain.FieldReference, Value: sysID, DisplayValue: sysID},
		},
	}
}
