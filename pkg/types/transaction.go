package types

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// TransactionRecord is the slice of RPC transaction metadata the inspector
// consumes: the ordered runtime log messages plus the raw transaction error
// value (nil when the transaction succeeded). The error is kept as the
// untyped JSON value the RPC layer produced; classification happens later.
type TransactionRecord struct {
	Signature   string      `json:"signature" yaml:"signature"`
	Slot        uint64      `json:"slot" yaml:"slot"`
	LogMessages []string    `json:"logMessages" yaml:"logMessages"`
	Err         interface{} `json:"err,omitempty" yaml:"err,omitempty"`
}

func (tr *TransactionRecord) Validate() error {
	if tr.Signature == "" {
		return fmt.Errorf("transaction record is missing a signature")
	}
	return nil
}

func NewTransactionRecordFromJsonBytes(data []byte) (*TransactionRecord, error) {
	var tr TransactionRecord
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal TransactionRecord from JSON")
	}
	return &tr, nil
}

func NewTransactionRecordsFromJsonBytes(data []byte) ([]*TransactionRecord, error) {
	var records []*TransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal TransactionRecord list from JSON")
	}
	return records, nil
}
