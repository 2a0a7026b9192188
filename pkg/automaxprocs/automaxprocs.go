// Package automaxprocs sets GOMAXPROCS from the container CPU quota and logs the change.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/toan5ks1/code-challenge/pkg/logger"
	"github.com/toan5ks1/code-challenge/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

// Init sets GOMAXPROCS once. It returns a func restoring the previous value.
// A GOMAXPROCS environment variable always wins over the quota.
func Init(ctx context.Context) (undo func(), err error) {
	prev := runtime.GOMAXPROCS(0)
	ctx = logger.WithContext(ctx,
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", prev),
	)

	printf := func(format string, v ...any) {
		logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf(format, v...), slogx.Int("maxprocs", runtime.GOMAXPROCS(0)))
	}
	undo, err = maxprocs.Set(maxprocs.Logger(printf), maxprocs.Min(1))
	if err != nil {
		return func() {}, errors.WithStack(err)
	}
	return undo, nil
}
