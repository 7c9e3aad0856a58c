package report

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/DanielPopoola/changebot/internal/core/domain"
)

type Reporter struct {
	console Console
	sink    Sink
	logger  *slog.Logger
}

// NewReporter builds a reporter. sink may be nil.
func NewReporter(console Console, sink Sink, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		console: console,
		sink:    sink,
		logger:  logger,
	}
}

// ViewURL is the classic UI form URL of a change request.
func ViewURL(instanceHost, sysID string) string {
	return fmt.Sprintf("https://%s/change_request.do?sys_id=%s", instanceHost, url.QueryEscape(sysID))
}

// Report prints the outcome. A sink write failure is logged and returned as a
// SINK_WRITE_FAILED error but never turns a successful run into a failed one.
func (r *Reporter) Report(result domain.LifecycleResult, instanceHost string) error {
	if !result.Succeeded() {
		line := fmt.Sprintf("change request failed at stage=%s", result.Stage)
		if result.Stage == domain.StageTransition {
			line = fmt.Sprintf("%s index=%d sys_id=%s", line, result.Index, result.SysID)
		}
		r.console.Println(fmt.Sprintf("%s: %s", line, result.Reason()))
		return nil
	}

	viewURL := ViewURL(instanceHost, result.SysID)
	r.console.Println("SYSID=" + result.SysID)
	r.console.Println("view_url=" + viewURL)

	if r.sink == nil {
		return nil
	}

	if err := r.sink.WriteLine("view_url=" + viewURL); err != nil {
		sinkErr := domain.NewSinkWriteError(err)
		r.logger.Error("failed to write view_url to output sink", "error", sinkErr)
		return sinkErr
	}
	return nil
}
