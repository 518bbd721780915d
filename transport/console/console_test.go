package console

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/playgrid/tictactoe-engine/internal/contract"
	"github.com/playgrid/tictactoe-engine/internal/entity"
	"github.com/playgrid/tictactoe-engine/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySnapshots records every committed registry snapshot.
type memorySnapshots struct {
	saves int
	fail  error
}

func (that *memorySnapshots) Save(_ context.Context, _ *registry.Registry) error {
	if that.fail != nil {
		return that.fail
	}

	that.saves++

	return nil
}

func newTestRunner(t *testing.T, snapshots *memorySnapshots) (*Runner, *contract.Contract) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := contract.New(logger, registry.New())

	return New(logger, engine, snapshots), engine
}

func runScript(t *testing.T, runner *Runner, requests ...Request) []Response {
	t.Helper()

	var in bytes.Buffer
	for _, request := range requests {
		line, err := json.Marshal(request)
		require.NoError(t, err)
		in.Write(append(line, '\n'))
	}

	var out bytes.Buffer
	require.NoError(t, runner.Run(context.Background(), &in, &out))

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var response Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
		responses = append(responses, response)
	}
	require.NoError(t, scanner.Err())

	return responses
}

func TestRunner_Run(t *testing.T) {
	alice := contract.Sender{Account: entity.Identity{0x01}}
	bob := contract.Sender{Account: entity.Identity{0x02}}

	t.Run("Create, join and move commit one snapshot each", func(t *testing.T) {
		// Given: a runner over a fresh contract
		snapshots := &memorySnapshots{}
		runner, engine := newTestRunner(t, snapshots)

		// When: a game is created, joined and opened
		responses := runScript(t, runner,
			Request{Action: "create_game", Sender: alice},
			Request{Action: "join_game", Sender: bob, Payload: contract.EncodeJoinParams(0)},
			Request{Action: "make_move", Sender: alice, Payload: contract.EncodeMakeMoveParams(0, 4)},
		)

		// Then: every call succeeded and was persisted
		require.Len(t, responses, 3)
		for _, response := range responses {
			assert.Empty(t, response.Error)
		}
		assert.Equal(t, 3, snapshots.saves)

		game, err := engine.State().Game(0)
		require.NoError(t, err)
		assert.False(t, game.Board[4].IsEmpty())
	})

	t.Run("Rejected invocations are answered but never persisted", func(t *testing.T) {
		// Given: a runner over a fresh contract
		snapshots := &memorySnapshots{}
		runner, engine := newTestRunner(t, snapshots)

		// When: a join targets a game that does not exist
		responses := runScript(t, runner,
			Request{Action: "join_game", Sender: bob, Payload: contract.EncodeJoinParams(9)},
		)

		// Then: the error comes back and no snapshot was taken
		require.Len(t, responses, 1)
		assert.Contains(t, responses[0].Error, "game does not exist")
		assert.Equal(t, 0, snapshots.saves)
		assert.Empty(t, engine.State().Games)
	})

	t.Run("Read operations return payloads without persisting", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		runner, _ := newTestRunner(t, snapshots)

		responses := runScript(t, runner,
			Request{Action: "create_game", Sender: alice},
			Request{Action: "game_view", Sender: bob, Payload: contract.EncodeJoinParams(0)},
			Request{Action: "view", Sender: bob},
		)

		require.Len(t, responses, 3)
		assert.Empty(t, responses[1].Error)
		assert.Len(t, responses[1].Payload, 4)
		assert.Empty(t, responses[2].Error)
		assert.NotEmpty(t, responses[2].Payload)

		// Only create_game committed.
		assert.Equal(t, 1, snapshots.saves)
	})

	t.Run("Malformed envelopes and blank lines do not stop the runner", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		runner, _ := newTestRunner(t, snapshots)

		in := strings.NewReader("not json\n\n" + `{"action":"create_game","sender":{"account":"` +
			entity.Identity{0x01}.String() + `"}}` + "\n")

		var out bytes.Buffer
		require.NoError(t, runner.Run(context.Background(), in, &out))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "could not parse request")
		assert.Equal(t, 1, snapshots.saves)
	})

	t.Run("Failed persistence surfaces as an error response", func(t *testing.T) {
		snapshots := &memorySnapshots{fail: errors.New("store is down")}
		runner, _ := newTestRunner(t, snapshots)

		responses := runScript(t, runner,
			Request{Action: "create_game", Sender: alice},
		)

		require.Len(t, responses, 1)
		assert.Contains(t, responses[0].Error, "could not persist registry")
	})
}
