// Package testUtils provides canonical log fixtures shared by package
// tests across the module.
package testUtils

import (
	"encoding/base64"
	"encoding/binary"
)

const (
	SystemProgramAddress  = "11111111111111111111111111111111"
	TokenProgramAddress   = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	OpenBookV2Address     = "opnb2LAfJYbRMAHHvqjCwQxanZn7ReEHp1k81EohpZb"
	UnknownProgramAddress = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
)

// SimpleSuccessLogs is a single instruction that logs once and returns.
func SimpleSuccessLogs() []string {
	return []string{
		"Program " + TokenProgramAddress + " invoke [1]",
		"Program log: Instruction: Transfer",
		"Program " + TokenProgramAddress + " consumed 4645 of 200000 compute units",
		"Program " + TokenProgramAddress + " success",
	}
}

// NestedInvocationLogs is one top-level instruction that invokes the
// token program through a cross-program invocation. The inner consumed
// line must not count toward the outer instruction's compute units.
func NestedInvocationLogs() []string {
	return []string{
		"Program " + UnknownProgramAddress + " invoke [1]",
		"Program log: starting swap",
		"Program " + TokenProgramAddress + " invoke [2]",
		"Program " + TokenProgramAddress + " consumed 4645 of 180000 compute units",
		"Program " + TokenProgramAddress + " success",
		"Program " + UnknownProgramAddress + " consumed 30000 of 200000 compute units",
		"Program " + UnknownProgramAddress + " success",
	}
}

// FailureLogs is a single instruction that consumes and then fails with a
// custom program error.
func FailureLogs() []string {
	return []string{
		"Program " + TokenProgramAddress + " invoke [1]",
		"Program " + TokenProgramAddress + " consumed 100 of 200000 compute units",
		"Program " + TokenProgramAddress + " failed: custom program error: 0x1",
	}
}

// EncodeFillEventPayload serializes a fill event the way the program
// does: discriminator, three little-endian u128 values and 40 bytes of
// zeroed padding.
func EncodeFillEventPayload(discriminator [8]byte, price, baseQuantity, quoteQuantity uint64) []byte {
	payload := make([]byte, 0, 96)
	payload = append(payload, discriminator[:]...)
	for _, value := range []uint64{price, baseQuantity, quoteQuantity} {
		var wide [16]byte
		binary.LittleEndian.PutUint64(wide[:8], value)
		payload = append(payload, wide[:]...)
	}
	payload = append(payload, make([]byte, 40)...)
	return payload
}

// FillEventLogs wraps a payload in the log lines the program emits
// around it.
func FillEventLogs(payload []byte) []string {
	return []string{
		"Program " + OpenBookV2Address + " invoke [1]",
		"Program data: " + base64.StdEncoding.EncodeToString(payload),
		"Program " + OpenBookV2Address + " success",
	}
}
