package config

import "strings"

// Cluster identifies which Solana cluster a transaction was executed on.
// Program name resolution is parameterized by cluster since the same
// address can host different programs on different clusters.
type Cluster string

const (
	Cluster_MainnetBeta Cluster = "mainnet-beta"
	Cluster_Testnet     Cluster = "testnet"
	Cluster_Devnet      Cluster = "devnet"
	Cluster_Custom      Cluster = "custom"
)

var (
	SupportedClusters = []Cluster{
		Cluster_MainnetBeta,
		Cluster_Testnet,
		Cluster_Devnet,
		Cluster_Custom,
	}
)

func KebabToSnakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// NormalizeFlagName maps a cobra flag name to the viper key it is bound under.
func NormalizeFlagName(name string) string {
	return KebabToSnakeCase(name)
}
