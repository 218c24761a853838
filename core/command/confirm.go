package command

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mpetrov/askmycar/core/logger"
	"github.com/mpetrov/askmycar/core/telematics"
)

// IssueFunc starts an asynchronous remote command.
type IssueFunc func(ctx context.Context, vehicleID string) (telematics.CommandResponse, error)

// ConfirmFunc polls the outcome of a previously issued command.
type ConfirmFunc func(ctx context.Context, vehicleID, commandID string) (telematics.CommandResponse, error)

// Runner executes the issue/confirm protocol against one telematics client.
type Runner struct {
	client telematics.Client
	log    logger.Logger
}

// NewRunner creates a Runner. The logger receives the raw offending payload
// whenever a command is rejected or its confirmation is unclear.
func NewRunner(client telematics.Client, log logger.Logger) *Runner {
	return &Runner{client: client, log: log}
}

// Accepted reports whether an issue response meets the provider's acceptance
// predicate: HTTP 202 with a SUCCESS status, a COMPLETED command status and a
// command id to poll.
func Accepted(res telematics.CommandResponse) bool {
	return res.StatusCode == http.StatusAccepted &&
		res.Body != nil &&
		res.Body.Status == "SUCCESS" &&
		res.Body.CommandStatus == "COMPLETED" &&
		res.Body.CommandID != ""
}

// RunWithConfirmation issues the command named kind and confirms it once.
// A rejected issue call never triggers the confirm call. The returned message
// classifies the confirmation outcome: confirmed, pending, an unexpected
// command status, a status-only body, or no recognizable status at all.
func (r *Runner) RunWithConfirmation(ctx context.Context, kind, vehicleID string, issue IssueFunc, confirm ConfirmFunc) string {
	res, err := issue(ctx, vehicleID)
	if err != nil {
		r.log.Errorf("%s issue call failed: %v", kind, err)
		return fmt.Sprintf("Failed to %s.", kind)
	}
	if !Accepted(res) {
		r.log.Debugw("command rejected", map[string]any{"kind": kind, "status_code": res.StatusCode, "body": res.Body})
		return fmt.Sprintf("Failed to %s.", kind)
	}

	msg := fmt.Sprintf("Sent %s command", kind)

	chk, err := confirm(ctx, vehicleID, res.Body.CommandID)
	if err != nil {
		r.log.Errorf("%s confirm call failed: %v", kind, err)
		return msg + " but confirmation failed."
	}
	switch {
	case chk.StatusCode != http.StatusOK:
		msg += fmt.Sprintf(" but confirmation gave status code %d.", chk.StatusCode)
	case chk.Body != nil && chk.Body.CommandStatus == "COMPLETED":
		msg += " and got confirmation."
	case chk.Body != nil && chk.Body.CommandStatus == "PENDINGRESPONSE":
		msg += " but confirmation is pending."
	case chk.Body != nil && chk.Body.CommandStatus != "":
		msg += fmt.Sprintf(" but confirmation is %s.", chk.Body.CommandStatus)
	case chk.Body != nil && chk.Body.Status != "":
		msg += fmt.Sprintf(" but confirmation status is %s.", chk.Body.Status)
	default:
		r.log.Debugw("confirmation unrecognized", map[string]any{"kind": kind, "status_code": chk.StatusCode, "body": chk.Body})
		msg += " but confirmation failed."
	}
	return msg
}
