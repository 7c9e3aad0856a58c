package cli

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/DanielPopoola/changebot/internal/adapters/servicenow"
	"github.com/DanielPopoola/changebot/internal/config"
	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/DanielPopoola/changebot/internal/core/ports"
)

var ErrLifecycleFailed = errors.New("change request lifecycle failed")

// App holds the process level collaborators of the CLI. NewApp wires the
// real ones; tests replace individual fields.
type App struct {
	LoadConfig func() (*config.Config, error)
	NewClient  func(cfg config.ServiceNowConfig) ports.ChangeClient
	Stdout     io.Writer
	Stderr     io.Writer
	Now        func() time.Time
	Rand       domain.RandSource
}

func NewApp() *App {
	return &App{
		LoadConfig: config.LoadConfig,
		NewClient:  servicenow.NewChangeClient,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Now:        time.Now,
		Rand:       domain.NewRandSource(time.Now().UnixNano()),
	}
}

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case domain.IsErrorCode(err, domain.ErrCodeInvalidInput):
		return 2
	default:
		return 1
	}
}

func draftDefaults(cfg config.DefaultsConfig) domain.DraftDefaults {
	return domain.DraftDefaults{
		AssignmentGroup:    cfg.AssignmentGroup,
		Service:            cfg.Service,
		Justification:      cfg.Justification,
		ImplementationPlan: cfg.ImplementationPlan,
		RiskAndImpact:      cfg.RiskAndImpact,
		BackoutPlan:        cfg.BackoutPlan,
		TestPlan:           cfg.TestPlan,
	}
}
