package traceSequencer

import (
	"context"

	"go.uber.org/zap"

	"github.com/solscope/solscope/pkg/config"
	"github.com/solscope/solscope/pkg/programLogParser"
	"github.com/solscope/solscope/pkg/types"
)

type DistributeTraceFunc func(*types.TransactionRecord, []*programLogParser.InstructionTrace) error

// TraceSequencer drains transaction records off a channel, runs each one
// through the program log parser and hands the resulting traces to the
// distribute callback in arrival order.
type TraceSequencer struct {
	sequencerChannel chan *types.TransactionRecord
	logger           *zap.Logger

	programLogParser *programLogParser.ProgramLogParser
	cluster          config.Cluster

	distributeTraceFunc DistributeTraceFunc
}

func NewTraceSequencer(
	programLogParser *programLogParser.ProgramLogParser,
	cluster config.Cluster,
	dtf DistributeTraceFunc,
	logger *zap.Logger,
) *TraceSequencer {
	return &TraceSequencer{
		sequencerChannel:    make(chan *types.TransactionRecord, 10000),
		logger:              logger,
		programLogParser:    programLogParser,
		cluster:             cluster,
		distributeTraceFunc: dtf,
	}
}

func (ts *TraceSequencer) GetChannel() chan *types.TransactionRecord {
	return ts.sequencerChannel
}

func (ts *TraceSequencer) ProcessTransactions(ctx context.Context) error {

	for {
		select {
		case record, ok := <-ts.sequencerChannel:
			if !ok {
				ts.logger.Info("Trace sequencer channel closed, stopping processing transactions")
				return nil
			}
			if err := ts.processTransaction(record); err != nil {
				ts.logger.Error("Error processing transaction", zap.Error(err))
				return err
			}
		case <-ctx.Done():
			ts.logger.Info("Trace sequencer context done, stopping processing transactions")
			return nil
		}
	}
}

func (ts *TraceSequencer) processTransaction(record *types.TransactionRecord) error {
	traces := ts.programLogParser.ParseProgramLogs(record.LogMessages, record.Err, ts.cluster)

	if ts.distributeTraceFunc != nil {
		if err := ts.distributeTraceFunc(record, traces); err != nil {
			ts.logger.Error("Error distributing traces", zap.Error(err))
			return err
		}
	}
	return nil
}
