package programLogParser

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/solscope/solscope/pkg/config"
	"github.com/solscope/solscope/pkg/eventDecoder"
	"github.com/solscope/solscope/pkg/programResolver"
	"github.com/solscope/solscope/pkg/transactionError"
)

const (
	programLogPrefix   = "Program log: "
	logTruncatedPrefix = "Log truncated"
	programDataPrefix  = "Program data: "

	// indentToken is repeated (depth - 1) times in front of "> ".
	indentToken = "  "
)

var (
	invokePattern   = regexp.MustCompile(`^Program (\w+) invoke \[(\d+)\]$`)
	consumedPattern = regexp.MustCompile(`^Program (\w+) consumed (\d+) (.*)$`)
)

// ProgramLogParser turns raw runtime log messages into structured
// instruction traces. It never rejects input: lines it cannot classify
// are carried through verbatim as muted log lines.
type ProgramLogParser struct {
	resolver   programResolver.Resolver
	classifier transactionError.Classifier
	registry   *eventDecoder.Registry
	logger     *zap.Logger
}

// NewProgramLogParser creates a new ProgramLogParser with the provided
// collaborators.
//
// Parameters:
//   - resolver: Maps program addresses to display labels
//   - classifier: Attributes transaction errors to instruction indexes
//   - registry: Decoders for binary event payloads, keyed by program
//   - logger: Logger for recording diagnostics
//
// Returns:
//   - *ProgramLogParser: A configured program log parser
func NewProgramLogParser(
	resolver programResolver.Resolver,
	classifier transactionError.Classifier,
	registry *eventDecoder.Registry,
	logger *zap.Logger,
) *ProgramLogParser {
	return &ProgramLogParser{
		resolver:   resolver,
		classifier: classifier,
		registry:   registry,
		logger:     logger,
	}
}

// ParseProgramLogs processes logMessages in order and returns one
// InstructionTrace per top-level instruction. txErr is the raw
// transaction error value (nil for a successful transaction); cluster
// parameterizes program name resolution. The call is a pure function of
// its inputs and holds no state across invocations, so concurrent calls
// are safe.
func (plp *ProgramLogParser) ParseProgramLogs(
	logMessages []string,
	txErr interface{},
	cluster config.Cluster,
) []*InstructionTrace {
	traces := make([]*InstructionTrace, 0, 4)

	// currentTraceIndex is the handle to the trace being filled in;
	// -1 means no trace has been opened yet.
	currentTraceIndex := -1
	depth := 0
	invocationStack := make([]string, 0, 4)

	openTrace := func() *InstructionTrace {
		if currentTraceIndex < 0 {
			return nil
		}
		return traces[currentTraceIndex]
	}
	appendTrace := func(trace *InstructionTrace) *InstructionTrace {
		traces = append(traces, trace)
		currentTraceIndex = len(traces) - 1
		return trace
	}
	// ensureOpenTrace covers logs that arrive at depth 0 without an
	// explicit invocation marker (native program output).
	ensureOpenTrace := func() *InstructionTrace {
		if depth == 0 {
			appendTrace(&InstructionTrace{Logs: []LogLine{}})
			depth = 1
		}
		return openTrace()
	}
	// currentOrSynthesized attaches return markers to the trace they
	// belong to without opening a synthetic instruction; a trace is only
	// created when the marker is the very first line seen.
	currentOrSynthesized := func() *InstructionTrace {
		if trace := openTrace(); trace != nil {
			return trace
		}
		return appendTrace(&InstructionTrace{Logs: []LogLine{}})
	}
	appendLine := func(trace *InstructionTrace, style LogStyle, text string) {
		trace.Logs = append(trace.Logs, LogLine{
			Prefix: plp.buildPrefix(depth),
			Style:  style,
			Text:   text,
		})
	}
	popInvocation := func() {
		if len(invocationStack) > 0 {
			invocationStack = invocationStack[:len(invocationStack)-1]
		}
	}

	for _, raw := range logMessages {
		switch {
		case strings.HasPrefix(raw, programLogPrefix):
			trace := ensureOpenTrace()
			message := strings.TrimPrefix(raw, programLogPrefix)
			appendLine(trace, LogStyle_Muted, fmt.Sprintf("Program logged: \"%s\"", message))

		case strings.HasPrefix(raw, logTruncatedPrefix):
			// No line is appended for the truncation marker itself.
			if trace := openTrace(); trace != nil {
				trace.Truncated = true
			}

		case invokePattern.MatchString(raw):
			matches := invokePattern.FindStringSubmatch(raw)
			programAddress := matches[1]
			if depth == 0 {
				appendTrace(&InstructionTrace{
					InvokedProgram: programAddress,
					Logs:           []LogLine{},
				})
			} else {
				programName := plp.resolver.ResolveProgramName(programAddress, cluster)
				appendLine(openTrace(), LogStyle_Info, fmt.Sprintf("Program invoked: %s", programName))
			}
			invocationStack = append(invocationStack, programAddress)
			depth++

		case strings.Contains(raw, "success"):
			popInvocation()
			appendLine(currentOrSynthesized(), LogStyle_Success, "Program returned success")
			depth--

		case strings.Contains(raw, "failed"):
			popInvocation()
			trace := currentOrSynthesized()
			trace.Failed = true

			text := fmt.Sprintf("Program returned error: \"%s\"", messageAfterColon(raw))
			if strings.HasPrefix(raw, "failed") {
				// Verification failure for the previous program: the
				// runtime already closed that invocation's nesting, so
				// bump the depth back up to report it at the right
				// indent and use the full line as the message.
				depth++
				text = sentenceCase(raw)
			}
			appendLine(trace, LogStyle_Warning, text)
			depth--

		case consumedPattern.MatchString(raw):
			matches := consumedPattern.FindStringSubmatch(raw)
			trace := ensureOpenTrace()
			if depth == 1 {
				if units, err := strconv.ParseUint(matches[2], 10, 64); err == nil {
					trace.ComputeUnits += units
				}
			}
			appendLine(trace, LogStyle_Muted, fmt.Sprintf("Program consumed: %s %s", matches[2], matches[3]))

		default:
			// Native program logs don't carry the "Program log:" prefix;
			// everything unrecognized passes through verbatim.
			trace := ensureOpenTrace()
			appendLine(trace, LogStyle_Muted, raw)
			plp.maybeDecodeEventPayload(trace, raw, invocationStack, appendLine)
		}
	}

	return plp.attributeTransactionError(traces, txErr)
}

// maybeDecodeEventPayload appends a pretty-printed rendering of a
// "Program data:" payload when the currently executing program has a
// registered decoder and the payload's discriminator matches. This is
// best-effort enrichment; every failure path is silent.
func (plp *ProgramLogParser) maybeDecodeEventPayload(
	trace *InstructionTrace,
	raw string,
	invocationStack []string,
	appendLine func(*InstructionTrace, LogStyle, string),
) {
	if !strings.HasPrefix(raw, programDataPrefix) || len(invocationStack) == 0 {
		return
	}
	decoder, ok := plp.registry.Lookup(invocationStack[len(invocationStack)-1])
	if !ok {
		return
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(raw, programDataPrefix))
	if err != nil || !eventDecoder.Matches(decoder, payload) {
		return
	}
	pretty, err := decoder.DecodeEvent(payload[eventDecoder.DiscriminatorLength:])
	if err != nil {
		plp.logger.Sugar().Debugw("Failed to decode event payload",
			zap.String("program", invocationStack[len(invocationStack)-1]),
			zap.Error(err),
		)
		return
	}
	appendLine(trace, LogStyle_Muted, pretty)
}

// attributeTransactionError applies the post-pass rules: a transaction
// that failed without emitting any logs gets a single already-failed
// trace, and an instruction-level error pointing at the last trace marks
// it failed unless its own logs already did. An index that does not point
// at the last trace is ignored.
func (plp *ProgramLogParser) attributeTransactionError(
	traces []*InstructionTrace,
	txErr interface{},
) []*InstructionTrace {
	if txErr == nil {
		return traces
	}

	if len(traces) == 0 {
		traces = append(traces, &InstructionTrace{
			Logs:   []LogLine{},
			Failed: true,
		})
	}

	instructionError := plp.classifier.ClassifyTransactionError(txErr)
	if instructionError == nil {
		return traces
	}
	if instructionError.InstructionIndex < 0 || instructionError.InstructionIndex != len(traces)-1 {
		return traces
	}

	failedTrace := traces[instructionError.InstructionIndex]
	if failedTrace.Failed {
		return traces
	}
	failedTrace.Failed = true
	failedTrace.Logs = append(failedTrace.Logs, LogLine{
		Prefix: plp.buildPrefix(1),
		Style:  LogStyle_Warning,
		Text:   fmt.Sprintf("Runtime error: %s", instructionError.Message),
	})
	return traces
}

// buildPrefix renders the visual indent for a line emitted at
// indentLevel. Levels at or below zero indicate a bookkeeping bug in the
// caller; recover with the minimal prefix rather than failing the parse.
func (plp *ProgramLogParser) buildPrefix(indentLevel int) string {
	if indentLevel <= 0 {
		plp.logger.Sugar().Warnw("Tried to build a log prefix for a non-positive indent level",
			zap.Int("indentLevel", indentLevel),
		)
		return "> "
	}
	return strings.Repeat(indentToken, indentLevel-1) + "> "
}

// messageAfterColon extracts the failure message following the first
// ": " separator, falling back to the whole line.
func messageAfterColon(raw string) string {
	if idx := strings.Index(raw, ": "); idx >= 0 {
		return raw[idx+2:]
	}
	return raw
}

func sentenceCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
