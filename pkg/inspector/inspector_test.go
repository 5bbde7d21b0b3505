package inspector

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/solscope/solscope/pkg/config"
	"github.com/solscope/solscope/pkg/inspector/inspectorConfig"
)

const transactionsJson = `
[
	{
		"signature": "5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7",
		"slot": 210399504,
		"logMessages": [
			"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA invoke [1]",
			"Program log: Instruction: Transfer",
			"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA consumed 4645 of 200000 compute units",
			"Program TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA success"
		]
	}
]`

func newTestInspector(t *testing.T) *Inspector {
	cfg := &inspectorConfig.InspectorConfig{Cluster: config.Cluster_MainnetBeta}
	ins, err := NewInspector(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return ins
}

func Test_Inspector(t *testing.T) {
	t.Run("Should render traces for a batch of transactions", func(t *testing.T) {
		ins := newTestInspector(t)
		var output bytes.Buffer

		err := ins.Run(context.Background(), strings.NewReader(transactionsJson), &output, false)
		require.NoError(t, err)

		rendered := output.String()
		assert.Contains(t, rendered, "Transaction 5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7 (slot 210399504)")
		assert.Contains(t, rendered, "Instruction #0: Token Program [ok, 4645 compute units]")
		assert.Contains(t, rendered, `Program logged: "Instruction: Transfer"`)
		assert.Contains(t, rendered, "Program returned success")
	})

	t.Run("Should render NDJSON records in follow mode", func(t *testing.T) {
		ins := newTestInspector(t)
		var output bytes.Buffer
		input := `{"signature":"sig1","slot":1,"logMessages":["Program 11111111111111111111111111111111 invoke [1]","Program 11111111111111111111111111111111 success"]}` + "\n" +
			"not json\n" +
			`{"signature":"sig2","slot":2,"logMessages":[],"err":"AccountNotFound"}` + "\n"

		err := ins.Run(context.Background(), strings.NewReader(input), &output, true)
		require.NoError(t, err)

		rendered := output.String()
		assert.Contains(t, rendered, "Transaction sig1 (slot 1)")
		assert.Contains(t, rendered, "Instruction #0: System Program [ok, 0 compute units]")
		// The undecodable line is skipped, not fatal.
		assert.Contains(t, rendered, "Transaction sig2 (slot 2)")
		assert.Contains(t, rendered, "Instruction #0: (no explicit invocation) [failed, 0 compute units]")
	})

	t.Run("Should fail on a batch that is not a JSON array", func(t *testing.T) {
		ins := newTestInspector(t)
		var output bytes.Buffer

		err := ins.Run(context.Background(), strings.NewReader(`{"not":"an array"}`), &output, false)
		assert.NotNil(t, err)
	})

	t.Run("Should reject invalid program label overrides", func(t *testing.T) {
		cfg := &inspectorConfig.InspectorConfig{
			Cluster: config.Cluster_MainnetBeta,
			ProgramLabels: []inspectorConfig.ProgramLabel{
				{Address: "not-base58", Label: "Broken", Cluster: config.Cluster_MainnetBeta},
			},
		}
		ins, err := NewInspector(cfg, zaptest.NewLogger(t))
		assert.NotNil(t, err)
		assert.Nil(t, ins)
	})
}
