package console

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/playgrid/tictactoe-engine/internal/contract"
	"github.com/playgrid/tictactoe-engine/internal/registry"
)

// Request is one invocation envelope: an operation name, the sender the
// host authenticated, and the raw parameter bytes for that operation.
type Request struct {
	Action  string          `json:"action"`
	Sender  contract.Sender `json:"sender"`
	Payload []byte          `json:"payload,omitempty"`
}

// Response carries the operation's output bytes, or its error.
type Response struct {
	Action  string `json:"action"`
	Payload []byte `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type snapshotRepo interface {
	Save(ctx context.Context, state *registry.Registry) error
}

// Runner stands in for the hosting execution environment: it reads one
// envelope per line, executes it, and persists the registry after every
// successful mutating invocation. Invocations run strictly one at a time,
// which is the single-writer guarantee the engine relies on.
type Runner struct {
	logger    *slog.Logger
	contract  *contract.Contract
	snapshots snapshotRepo
}

func New(logger *slog.Logger, engine *contract.Contract, snapshots snapshotRepo) *Runner {
	return &Runner{
		logger:    logger.With("component", "console"),
		contract:  engine,
		snapshots: snapshots,
	}
}

// Run consumes envelopes from in until EOF or context cancellation,
// writing one response line per request to out.
func (that *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		response := that.handle(ctx, line)

		responseBytes, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("failed to marshal response: %w", err)
		}

		if _, err = writer.Write(append(responseBytes, '\n')); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}

		if err = writer.Flush(); err != nil {
			return fmt.Errorf("failed to flush response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	return nil
}

func (that *Runner) handle(ctx context.Context, line []byte) Response {
	var request Request
	if err := json.Unmarshal(line, &request); err != nil {
		that.logger.Debug("malformed request", "error", err)
		return Response{Error: "could not parse request"}
	}

	op := contract.Operation(request.Action)

	output, err := that.contract.Invoke(op, request.Sender, request.Payload)
	if err != nil {
		that.logger.Debug("invocation rejected", "action", request.Action, "error", err)
		return Response{Action: request.Action, Error: err.Error()}
	}

	// Commit only after the whole invocation succeeded; a rejected call
	// leaves the stored snapshot untouched.
	if op.IsMutating() {
		if err = that.snapshots.Save(ctx, that.contract.State()); err != nil {
			that.logger.Error("could not persist registry", "action", request.Action, "error", err)
			return Response{Action: request.Action, Error: "could not persist registry"}
		}
	}

	return Response{Action: request.Action, Payload: output}
}
