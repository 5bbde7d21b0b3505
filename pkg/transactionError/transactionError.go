// Package transactionError classifies the raw error value attached to a
// failed transaction. The runtime reports instruction-level failures as
// {"InstructionError": [index, detail]}; anything else does not name an
// instruction and yields no classification.
package transactionError

import (
	"encoding/json"
	"fmt"
)

// InstructionError attributes a transaction failure to the instruction at
// InstructionIndex with a display-ready message.
type InstructionError struct {
	InstructionIndex int
	Message          string
}

type Classifier interface {
	ClassifyTransactionError(txErr interface{}) *InstructionError
}

type TransactionErrorClassifier struct{}

func NewTransactionErrorClassifier() *TransactionErrorClassifier {
	return &TransactionErrorClassifier{}
}

// ClassifyTransactionError returns nil whenever the error value does not
// carry the InstructionError shape; callers fall back to whatever the
// log lines themselves reported.
func (tec *TransactionErrorClassifier) ClassifyTransactionError(txErr interface{}) *InstructionError {
	if txErr == nil {
		return nil
	}

	errMap, ok := txErr.(map[string]interface{})
	if !ok {
		return nil
	}
	payload, ok := errMap["InstructionError"]
	if !ok {
		return nil
	}
	parts, ok := payload.([]interface{})
	if !ok || len(parts) != 2 {
		return nil
	}

	index, ok := instructionIndex(parts[0])
	if !ok {
		return nil
	}

	return &InstructionError{
		InstructionIndex: index,
		Message:          renderErrorDetail(parts[1]),
	}
}

// instructionIndex accepts the numeric representations json decoding
// produces for the index element.
func instructionIndex(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func renderErrorDetail(detail interface{}) string {
	switch d := detail.(type) {
	case string:
		return d
	case map[string]interface{}:
		if code, ok := customErrorCode(d); ok {
			return fmt.Sprintf("custom program error: %#x", code)
		}
	}
	rendered, err := json.Marshal(detail)
	if err != nil {
		return fmt.Sprintf("%v", detail)
	}
	return string(rendered)
}

func customErrorCode(detail map[string]interface{}) (uint64, bool) {
	raw, ok := detail["Custom"]
	if !ok {
		return 0, false
	}
	switch code := raw.(type) {
	case float64:
		return uint64(code), true
	case json.Number:
		i, err := code.Int64()
		if err != nil {
			return 0, false
		}
		return uint64(i), true
	default:
		return 0, false
	}
}
