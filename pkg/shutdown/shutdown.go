package shutdown

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// CreateGracefulShutdownChannel returns a channel that receives
// SIGINT/SIGTERM exactly once.
func CreateGracefulShutdownChannel() chan os.Signal {
	gracefulShutdownNotifier := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdownNotifier, syscall.SIGINT, syscall.SIGTERM)
	return gracefulShutdownNotifier
}

// ListenForShutdown blocks until a signal arrives, invokes onShutdown and
// then waits for done (or the timeout) before returning.
func ListenForShutdown(
	notifier chan os.Signal,
	done chan bool,
	onShutdown func(),
	timeout time.Duration,
	logger *zap.Logger,
) {
	sig := <-notifier
	logger.Sugar().Infow("Received shutdown signal", "signal", sig.String())

	go func() {
		onShutdown()
		done <- true
	}()

	select {
	case <-done:
		logger.Sugar().Infow("Shutdown complete")
	case <-time.After(timeout):
		logger.Sugar().Warnw("Shutdown timed out, exiting", "timeout", timeout)
	}
}
