package traceSequencer

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/solscope/solscope/internal/testUtils"
	"github.com/solscope/solscope/pkg/config"
	"github.com/solscope/solscope/pkg/eventDecoder"
	"github.com/solscope/solscope/pkg/programLogParser"
	"github.com/solscope/solscope/pkg/programResolver"
	"github.com/solscope/solscope/pkg/transactionError"
	"github.com/solscope/solscope/pkg/types"
)

func newTestSequencer(t *testing.T, dtf DistributeTraceFunc) *TraceSequencer {
	logger := zaptest.NewLogger(t)
	resolver, err := programResolver.NewProgramResolver(nil, logger)
	require.NoError(t, err)
	parser := programLogParser.NewProgramLogParser(
		resolver,
		transactionError.NewTransactionErrorClassifier(),
		eventDecoder.NewRegistryWithDefaults(),
		logger,
	)
	return NewTraceSequencer(parser, config.Cluster_MainnetBeta, dtf, logger)
}

func Test_TraceSequencer(t *testing.T) {
	t.Run("Should distribute parsed traces in arrival order", func(t *testing.T) {
		var distributed []*types.TransactionRecord
		var traceCounts []int
		sequencer := newTestSequencer(t, func(record *types.TransactionRecord, traces []*programLogParser.InstructionTrace) error {
			distributed = append(distributed, record)
			traceCounts = append(traceCounts, len(traces))
			return nil
		})

		sequencer.GetChannel() <- &types.TransactionRecord{Signature: "sig1", LogMessages: testUtils.SimpleSuccessLogs()}
		sequencer.GetChannel() <- &types.TransactionRecord{Signature: "sig2", LogMessages: testUtils.NestedInvocationLogs()}
		close(sequencer.GetChannel())

		err := sequencer.ProcessTransactions(context.Background())
		require.NoError(t, err)

		require.Len(t, distributed, 2)
		assert.Equal(t, "sig1", distributed[0].Signature)
		assert.Equal(t, "sig2", distributed[1].Signature)
		assert.Equal(t, []int{1, 1}, traceCounts)
	})

	t.Run("Should surface a distribute error and stop", func(t *testing.T) {
		sequencer := newTestSequencer(t, func(*types.TransactionRecord, []*programLogParser.InstructionTrace) error {
			return errors.New("sink unavailable")
		})

		sequencer.GetChannel() <- &types.TransactionRecord{Signature: "sig1", LogMessages: testUtils.SimpleSuccessLogs()}

		err := sequencer.ProcessTransactions(context.Background())
		assert.NotNil(t, err)
	})

	t.Run("Should stop cleanly when the context is cancelled", func(t *testing.T) {
		sequencer := newTestSequencer(t, nil)

		ctx, cancel := context.WithCancel(context.Background())
		finished := make(chan error, 1)
		go func() {
			finished <- sequencer.ProcessTransactions(ctx)
		}()
		cancel()

		select {
		case err := <-finished:
			assert.Nil(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("sequencer did not stop after context cancellation")
		}
	})
}
