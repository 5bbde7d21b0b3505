package main

import (
	"os"
	"strings"

	"github.com/solscope/solscope/pkg/inspector/inspectorConfig"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "inspector",
	Short: "Reconstruct per-instruction execution traces from transaction logs",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var configFile string
var Config *inspectorConfig.InspectorConfig

func init() {
	cobra.OnInitialize(initConfigIfPresent)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().Lookup("config")

	rootCmd.PersistentFlags().Bool(inspectorConfig.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().Lookup(inspectorConfig.Debug)

	rootCmd.PersistentFlags().String(inspectorConfig.Cluster, "mainnet-beta", "cluster the transactions were executed on")
	rootCmd.PersistentFlags().Lookup(inspectorConfig.Cluster)

	viper.SetEnvPrefix(inspectorConfig.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd)
}

func initConfigIfPresent() {
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			panic(err)
		}
		config, err := inspectorConfig.NewInspectorConfigFromYamlBytes(data)
		if err != nil {
			panic(err)
		}
		Config = config
	} else {
		Config = inspectorConfig.NewInspectorConfig()
	}
}

func main() {
	Execute()
}
