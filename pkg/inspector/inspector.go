package inspector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/solscope/solscope/pkg/eventDecoder"
	"github.com/solscope/solscope/pkg/inspector/inspectorConfig"
	"github.com/solscope/solscope/pkg/programLogParser"
	"github.com/solscope/solscope/pkg/programResolver"
	"github.com/solscope/solscope/pkg/traceSequencer"
	"github.com/solscope/solscope/pkg/transactionError"
	"github.com/solscope/solscope/pkg/types"
)

// Inspector wires the parser and its collaborators together and drives
// transaction records from an input stream through to a rendered trace
// on the output stream.
type Inspector struct {
	config   *inspectorConfig.InspectorConfig
	logger   *zap.Logger
	resolver programResolver.Resolver
	parser   *programLogParser.ProgramLogParser
}

func NewInspector(cfg *inspectorConfig.InspectorConfig, logger *zap.Logger) (*Inspector, error) {
	overrides := make([]programResolver.Override, 0, len(cfg.ProgramLabels))
	for _, label := range cfg.ProgramLabels {
		overrides = append(overrides, programResolver.Override{
			Address: label.Address,
			Label:   label.Label,
			Cluster: label.Cluster,
		})
	}
	resolver, err := programResolver.NewProgramResolver(overrides, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build program resolver: %w", err)
	}

	parser := programLogParser.NewProgramLogParser(
		resolver,
		transactionError.NewTransactionErrorClassifier(),
		eventDecoder.NewRegistryWithDefaults(),
		logger,
	)

	return &Inspector{
		config:   cfg,
		logger:   logger,
		resolver: resolver,
		parser:   parser,
	}, nil
}

// Run decodes transaction records from input and writes rendered traces
// to output. In follow mode input is NDJSON, one record per line;
// otherwise it is a single JSON array of records. Run returns when the
// input is exhausted or the context is cancelled.
func (i *Inspector) Run(ctx context.Context, input io.Reader, output io.Writer, follow bool) error {
	sequencer := traceSequencer.NewTraceSequencer(
		i.parser,
		i.config.Cluster,
		func(record *types.TransactionRecord, traces []*programLogParser.InstructionTrace) error {
			return i.renderTraces(output, record, traces)
		},
		i.logger,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	processed := make(chan error, 1)
	go func() {
		processed <- sequencer.ProcessTransactions(ctx)
		// Unblock the feeder if processing stopped early.
		cancel()
	}()

	var feedErr error
	if follow {
		feedErr = i.feedLines(ctx, input, sequencer.GetChannel())
	} else {
		feedErr = i.feedBatch(ctx, input, sequencer.GetChannel())
	}
	close(sequencer.GetChannel())

	if err := <-processed; err != nil {
		return err
	}
	return feedErr
}

func (i *Inspector) feedBatch(ctx context.Context, input io.Reader, sink chan *types.TransactionRecord) error {
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read transactions input: %w", err)
	}
	records, err := types.NewTransactionRecordsFromJsonBytes(data)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
		select {
		case sink <- record:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

func (i *Inspector) feedLines(ctx context.Context, input io.Reader, sink chan *types.TransactionRecord) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, err := types.NewTransactionRecordFromJsonBytes([]byte(line))
		if err != nil {
			i.logger.Sugar().Warnw("Skipping undecodable transaction record", zap.Error(err))
			continue
		}
		if err := record.Validate(); err != nil {
			i.logger.Sugar().Warnw("Skipping invalid transaction record", zap.Error(err))
			continue
		}
		select {
		case sink <- record:
		case <-ctx.Done():
			return nil
		}
	}
	return scanner.Err()
}

func (i *Inspector) renderTraces(w io.Writer, record *types.TransactionRecord, traces []*programLogParser.InstructionTrace) error {
	if _, err := fmt.Fprintf(w, "Transaction %s (slot %d)\n", record.Signature, record.Slot); err != nil {
		return err
	}
	for idx, trace := range traces {
		label := "(no explicit invocation)"
		if trace.InvokedProgram != "" {
			label = i.resolver.ResolveProgramName(trace.InvokedProgram, i.config.Cluster)
		}
		status := "ok"
		if trace.Failed {
			status = "failed"
		}
		if _, err := fmt.Fprintf(w, "Instruction #%d: %s [%s, %d compute units]\n", idx, label, status, trace.ComputeUnits); err != nil {
			return err
		}
		if trace.Truncated {
			if _, err := fmt.Fprintf(w, "  (logs truncated)\n"); err != nil {
				return err
			}
		}
		for _, line := range trace.Logs {
			if _, err := fmt.Fprintf(w, "  %s%s\n", line.Prefix, line.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
