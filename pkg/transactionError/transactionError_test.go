package transactionError

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ClassifyTransactionError(t *testing.T) {
	classifier := NewTransactionErrorClassifier()

	t.Run("Should classify a custom program error", func(t *testing.T) {
		txErr := map[string]interface{}{
			"InstructionError": []interface{}{float64(2), map[string]interface{}{"Custom": float64(1)}},
		}

		result := classifier.ClassifyTransactionError(txErr)

		require.NotNil(t, result)
		assert.Equal(t, 2, result.InstructionIndex)
		assert.Equal(t, "custom program error: 0x1", result.Message)
	})

	t.Run("Should pass string error variants through verbatim", func(t *testing.T) {
		txErr := map[string]interface{}{
			"InstructionError": []interface{}{float64(0), "InvalidArgument"},
		}

		result := classifier.ClassifyTransactionError(txErr)

		require.NotNil(t, result)
		assert.Equal(t, 0, result.InstructionIndex)
		assert.Equal(t, "InvalidArgument", result.Message)
	})

	t.Run("Should render unknown object variants as compact JSON", func(t *testing.T) {
		txErr := map[string]interface{}{
			"InstructionError": []interface{}{float64(1), map[string]interface{}{"BorshIoError": "unexpected length"}},
		}

		result := classifier.ClassifyTransactionError(txErr)

		require.NotNil(t, result)
		assert.Equal(t, 1, result.InstructionIndex)
		assert.Equal(t, `{"BorshIoError":"unexpected length"}`, result.Message)
	})

	t.Run("Should classify errors decoded straight from RPC JSON", func(t *testing.T) {
		var txErr interface{}
		require.NoError(t, json.Unmarshal([]byte(`{"InstructionError":[0,{"Custom":6000}]}`), &txErr))

		result := classifier.ClassifyTransactionError(txErr)

		require.NotNil(t, result)
		assert.Equal(t, 0, result.InstructionIndex)
		assert.Equal(t, "custom program error: 0x1770", result.Message)
	})

	t.Run("Should return nil for errors that do not name an instruction", func(t *testing.T) {
		tests := []struct {
			name  string
			txErr interface{}
		}{
			{name: "nil error", txErr: nil},
			{name: "top-level string error", txErr: "AccountNotFound"},
			{name: "unrelated object", txErr: map[string]interface{}{"InsufficientFundsForFee": nil}},
			{name: "malformed payload", txErr: map[string]interface{}{"InstructionError": "oops"}},
			{name: "wrong arity", txErr: map[string]interface{}{"InstructionError": []interface{}{float64(1)}}},
			{name: "non-numeric index", txErr: map[string]interface{}{"InstructionError": []interface{}{"one", "Custom"}}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Nil(t, classifier.ClassifyTransactionError(tt.txErr))
			})
		}
	})
}
