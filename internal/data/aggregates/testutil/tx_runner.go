package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/survey-backend/internal/data/aggregates"
	"github.com/yungbote/survey-backend/internal/platform/dbctx"
)

// FakeTxRunner runs fn outside any transaction, so repos fall back to
// their root handle. BeginErr and CommitErr inject failures around fn.
type FakeTxRunner struct {
	mu sync.Mutex

	BeginErr  error
	CommitErr error

	Commits   int
	Rollbacks int
}

var _ aggregates.TxRunner = (*FakeTxRunner)(nil)

func (r *FakeTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if r.BeginErr != nil {
		return r.BeginErr
	}
	err := r.CommitErr
	if fn != nil {
		if bodyErr := fn(dbctx.Context{Ctx: ctx}); bodyErr != nil {
			err = bodyErr
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Rollbacks++
		return err
	}
	r.Commits++
	return nil
}
