// Package programResolver maps program addresses to human-readable labels.
// The mapping is best-effort: an address with no known label resolves to
// itself, so callers can always render the result directly.
package programResolver

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/solscope/solscope/pkg/config"
)

type Resolver interface {
	ResolveProgramName(address string, cluster config.Cluster) string
}

// wellKnownPrograms covers programs deployed at the same address on every
// cluster. Cluster-specific labels come in through overrides.
var wellKnownPrograms = map[string]string{
	"11111111111111111111111111111111":             "System Program",
	"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA":  "Token Program",
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": "Associated Token Program",
	"ComputeBudget111111111111111111111111111111":  "Compute Budget Program",
	"Vote111111111111111111111111111111111111111":  "Vote Program",
	"Stake11111111111111111111111111111111111111":  "Stake Program",
	"MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr":  "Memo Program",
	"BPFLoaderUpgradeab1e11111111111111111111111":  "BPF Upgradeable Loader",
	"opnb2LAfJYbRMAHHvqjCwQxanZn7ReEHp1k81EohpZb":  "OpenBook V2 Program",
}

type ProgramResolver struct {
	overrides map[config.Cluster]map[string]string
	logger    *zap.Logger
}

// Override attaches a label to a program address on one cluster,
// shadowing any built-in label.
type Override struct {
	Address string
	Label   string
	Cluster config.Cluster
}

func NewProgramResolver(overrides []Override, logger *zap.Logger) (*ProgramResolver, error) {
	byCluster := make(map[config.Cluster]map[string]string)
	for _, o := range overrides {
		if _, err := solana.PublicKeyFromBase58(o.Address); err != nil {
			return nil, errors.Wrapf(err, "invalid program address '%s' in resolver override", o.Address)
		}
		if byCluster[o.Cluster] == nil {
			byCluster[o.Cluster] = make(map[string]string)
		}
		byCluster[o.Cluster][o.Address] = o.Label
	}
	return &ProgramResolver{
		overrides: byCluster,
		logger:    logger,
	}, nil
}

func (pr *ProgramResolver) ResolveProgramName(address string, cluster config.Cluster) string {
	if labels, ok := pr.overrides[cluster]; ok {
		if label, ok := labels[address]; ok {
			return label
		}
	}
	if label, ok := wellKnownPrograms[address]; ok {
		return label
	}
	return address
}
