package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DanielPopoola/changebot/internal/core/domain"
)

func (a *App) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <sys_id>",
		Short: "Print a change request by sys_id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sysID := args[0]

			cfg, err := a.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := a.logger(cfg).With("sys_id", sysID)

			resp, err := a.NewClient(cfg.ServiceNow).Get(commandContext(cmd), sysID)
			if err != nil {
				logger.Error("error fetching change request", "error", domain.ErrorPayload(err))
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, resp.Raw, "", "  "); err != nil {
				out.Reset()
				out.Write(resp.Raw)
			}
			fmt.Fprintln(a.Stdout, out.String())
			return nil
		},
	}
}
