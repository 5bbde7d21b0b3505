// Package programLogParser reconstructs the per-instruction execution
// trace of a transaction from the flat sequence of log messages the
// runtime emitted while executing it. It helps transform raw runtime
// output into structured, nesting-aware records.
package programLogParser

// LogStyle hints how a log line should be displayed.
type LogStyle string

const (
	LogStyle_Muted   LogStyle = "muted"
	LogStyle_Info    LogStyle = "info"
	LogStyle_Success LogStyle = "success"
	LogStyle_Warning LogStyle = "warning"
)

// LogLine is one formatted line of a trace. Prefix encodes the nesting
// depth the line was emitted at; Text is display-ready.
type LogLine struct {
	// Prefix is the indentation marker for the line's nesting depth
	Prefix string
	// Style hints how the line should be rendered
	Style LogStyle
	// Text is the display-ready line content
	Text string
}

// InstructionTrace is the full execution history of one top-level
// instruction, including every nested invocation it made.
type InstructionTrace struct {
	// InvokedProgram is the address of the program invoked at depth 1,
	// or empty for a trace synthesized from logs that appeared before
	// any explicit invocation
	InvokedProgram string
	// Logs are the formatted lines, in input order
	Logs []LogLine
	// ComputeUnits is the total consumption reported at the top level;
	// depth-1 consumption already rolls up inner-instruction cost
	ComputeUnits uint64
	// Truncated is set when the runtime reported log truncation
	Truncated bool
	// Failed is set when the instruction's own logs reported failure or
	// a transaction error was attributed to this instruction
	Failed bool
}
