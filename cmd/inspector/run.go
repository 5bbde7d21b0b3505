package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/solscope/solscope/pkg/config"
	"github.com/solscope/solscope/pkg/inspector"
	"github.com/solscope/solscope/pkg/logger"
	"github.com/solscope/solscope/pkg/shutdown"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	transactionsFile string
	follow           bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Parse transaction logs into instruction traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		initRunCmd(cmd)

		log, _ := logger.NewLogger(&logger.LoggerConfig{Debug: Config.Debug})
		sugar := log.Sugar()

		if err := Config.Validate(); err != nil {
			sugar.Errorw("Invalid configuration", "error", err)
			return err
		}

		if follow {
			return runWithShutdown(func(ctx context.Context) error {
				return startInspector(ctx, os.Stdin, log)
			}, log)
		}

		if transactionsFile == "" {
			return fmt.Errorf("--transactions is required unless --follow reads from stdin")
		}
		input, err := os.Open(transactionsFile)
		if err != nil {
			sugar.Errorw("Failed to open transactions file", "error", err)
			return err
		}
		defer func() {
			_ = input.Close()
		}()

		return startInspector(cmd.Context(), input, log)
	},
}

func init() {
	runCmd.Flags().StringVar(&transactionsFile, "transactions", "", "path to a JSON array of transaction records")
	runCmd.Flags().BoolVar(&follow, "follow", false, "read NDJSON transaction records from stdin")
}

func initRunCmd(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(config.KebabToSnakeCase(f.Name), f); err != nil {
			fmt.Printf("Failed to bind flag '%s': %+v\n", f.Name, err)
		}
		if err := viper.BindEnv(f.Name); err != nil {
			fmt.Printf("Failed to bind env '%s': %+v\n", f.Name, err)
		}
	})
}

func runWithShutdown(startFunc func(ctx context.Context) error, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	done := make(chan bool, 1)
	go func() {
		errs <- startFunc(ctx)
		done <- true
	}()

	gracefulShutdownNotifier := shutdown.CreateGracefulShutdownChannel()
	go shutdown.ListenForShutdown(gracefulShutdownNotifier, done, func() {
		logger.Sugar().Info("Shutting down inspector...")
		cancel()
	}, 5*time.Second, logger)

	return <-errs
}

func startInspector(ctx context.Context, input io.Reader, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ins, err := inspector.NewInspector(Config, log)
	if err != nil {
		return err
	}
	return ins.Run(ctx, input, os.Stdout, follow)
}
