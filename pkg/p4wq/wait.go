package p4wq

import (
	"context"
	"time"
)

// Wait observes the completion of the last submission of w.
//
// Sync items block for up to timeout (Forever blocks, NoWait polls) and
// consume the completion. Other items are polled without blocking and the
// completion stays recorded. Waiting on an item never submitted is undefined.
func (w *Work) Wait(timeout time.Duration) error {
	done := w.sem()
	if !w.Sync {
		if len(done) > 0 {
			return nil
		}
		return ErrBusy
	}

	switch {
	case timeout == NoWait:
		select {
		case <-done:
			return nil
		default:
			return ErrBusy
		}
	case timeout < 0:
		<-done
		return nil
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-done:
		return nil
	case <-t.C:
		return ErrTimeout
	}
}

// WaitContext blocks until a Sync item completes or ctx is done.
func (w *Work) WaitContext(ctx context.Context) error {
	if !w.Sync {
		return w.Wait(NoWait)
	}
	select {
	case <-w.sem():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
