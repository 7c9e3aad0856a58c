package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/DanielPopoola/changebot/internal/adapters/report"
	"github.com/DanielPopoola/changebot/internal/config"
	"github.com/DanielPopoola/changebot/internal/core/domain"
	"github.com/DanielPopoola/changebot/internal/core/service"
)

// RootCmd is the root Cobra command that gets called from the main func.
func (a *App) RootCmd() *cobra.Command {
	var transitions string

	cmd := &cobra.Command{
		Use:   "changebot [overrides-json]",
		Short: "changebot creates a change request and moves it through its states.",
		Long: `Create a change request with a randomized planned window, then apply the
configured state transitions in order.

The optional argument is a JSON object whose keys replace the default fields:

  changebot '{"service":"Payroll EU","assignment_group":"CAB"}'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Overrides are parsed before anything else so bad input never
			// reaches the network.
			overrides := domain.OverrideSet{}
			if len(args) == 1 {
				parsed, err := domain.ParseOverrides(args[0])
				if err != nil {
					return err
				}
				overrides = parsed
			}

			cfg, err := a.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("transitions") {
				cfg.Lifecycle.Transitions = transitions
			}

			return a.runLifecycle(commandContext(cmd), cfg, overrides)
		},
	}

	cmd.Flags().StringVar(&transitions, "transitions", "",
		"comma separated target states applied after creation, overrides CHANGE_LIFECYCLE__TRANSITIONS (use --transitions=-4)")

	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	cmd.AddCommand(a.getCmd())

	return cmd
}

func (a *App) runLifecycle(ctx context.Context, cfg *config.Config, overrides domain.OverrideSet) error {
	states, err := cfg.Lifecycle.TransitionStates()
	if err != nil {
		return domain.NewInputError(err)
	}
	loc, err := cfg.Lifecycle.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	logger := a.logger(cfg)
	logger.Info("starting change request lifecycle",
		"instance", cfg.ServiceNow.Instance,
		"transitions", states,
		"overrides", len(overrides),
	)

	runTime := a.Now()
	window := domain.NewWindowGenerator(a.Rand).Generate(runTime)
	draft := domain.NewPayloadBuilder(draftDefaults(cfg.Defaults), loc).Build(window, runTime, overrides)

	lifecycle := service.NewLifecycleService(a.NewClient(cfg.ServiceNow), logger)
	result := lifecycle.Run(ctx, draft, domain.TransitionsFromStates(states))

	reporter := report.NewReporter(
		report.NewWriterConsole(a.Stdout),
		report.NewFileSink(cfg.Report.OutputFile),
		logger,
	)
	// A sink failure is already logged and does not change the outcome.
	_ = reporter.Report(result, cfg.ServiceNow.Instance)

	if !result.Succeeded() {
		return fmt.Errorf("%w at stage %s: %w", ErrLifecycleFailed, result.Stage, result.Err)
	}
	return nil
}

func (a *App) logger(cfg *config.Config) *slog.Logger {
	return cfg.Logger.NewLogger(a.Stdout).With("run_id", uuid.NewString())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
