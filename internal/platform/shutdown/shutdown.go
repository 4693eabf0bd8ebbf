package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// NotifyContext is cancelled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Graceful runs run until it returns or ctx is cancelled, then calls stop
// with a grace period of timeout. It returns run's error, if any.
func Graceful(ctx context.Context, timeout time.Duration, run func() error, stop func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := stop(stopCtx); err != nil {
		return err
	}
	return <-errCh
}
