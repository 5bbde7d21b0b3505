package inspectorConfig

import (
	"encoding/json"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"

	"github.com/solscope/solscope/pkg/config"
)

const (
	EnvPrefix = "INSPECTOR_"

	Debug   = "debug"
	Cluster = "cluster"
)

// ProgramLabel attaches a human-readable label to a program address on
// one cluster, overriding the built-in table.
type ProgramLabel struct {
	Address string         `json:"address" yaml:"address"`
	Label   string         `json:"label" yaml:"label"`
	Cluster config.Cluster `json:"cluster" yaml:"cluster"`
}

func (pl *ProgramLabel) Validate() field.ErrorList {
	var allErrors field.ErrorList
	if pl.Address == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("address"), "address is required"))
	} else if _, err := solana.PublicKeyFromBase58(pl.Address); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("address"), pl.Address, "address is not a valid base58 public key"))
	}
	if pl.Label == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("label"), "label is required"))
	}
	if !slices.Contains(config.SupportedClusters, pl.Cluster) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("cluster"), pl.Cluster, "unsupported cluster"))
	}
	return allErrors
}

type InspectorConfig struct {
	Debug         bool           `json:"debug" yaml:"debug"`
	Cluster       config.Cluster `json:"cluster" yaml:"cluster"`
	ProgramLabels []ProgramLabel `json:"program_labels" yaml:"program_labels"`
}

func (ic *InspectorConfig) Validate() error {
	var allErrors field.ErrorList
	if !slices.Contains(config.SupportedClusters, ic.Cluster) {
		allErrors = append(allErrors, field.Invalid(field.NewPath("cluster"), ic.Cluster, "unsupported cluster"))
	}
	for _, label := range ic.ProgramLabels {
		if labelErrors := label.Validate(); len(labelErrors) > 0 {
			allErrors = append(allErrors, field.Invalid(field.NewPath("program_labels"), label, "invalid program label"))
		}
	}
	return allErrors.ToAggregate()
}

func NewInspectorConfigFromJsonBytes(data []byte) (*InspectorConfig, error) {
	var c InspectorConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal InspectorConfig from JSON")
	}
	return &c, nil
}

func NewInspectorConfigFromYamlBytes(data []byte) (*InspectorConfig, error) {
	var c InspectorConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal InspectorConfig from YAML")
	}
	return &c, nil
}

func NewInspectorConfig() *InspectorConfig {
	cluster := config.Cluster(viper.GetString(config.NormalizeFlagName(Cluster)))
	if cluster == "" {
		cluster = config.Cluster_MainnetBeta
	}
	return &InspectorConfig{
		Debug:   viper.GetBool(config.NormalizeFlagName(Debug)),
		Cluster: cluster,
	}
}
