package worker

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// Runner is a long running component started by the run command.
type Runner interface {
	// Run blocks until ctx is done, Shutdown is called or the component fails.
	Run(ctx context.Context) error
	Shutdown() error
}

var (
	_ Runner = (*Worker)(nil)
	_ Runner = (*idle)(nil)
)

type idle struct {
	cleanupFuncs []func(context.Context) error

	quitOnce sync.Once
	quit     chan struct{}
}

// Idle returns a Runner with no work of its own. It runs cleanupFuncs on Shutdown.
func Idle(cleanupFuncs ...func(context.Context) error) Runner {
	return &idle{
		cleanupFuncs: cleanupFuncs,
		quit:         make(chan struct{}),
	}
}

func (i *idle) Run(ctx context.Context) error {
	select {
	case <-i.quit:
	case <-ctx.Done():
	}
	return nil
}

func (i *idle) Shutdown() error {
	var errList []error
	i.quitOnce.Do(func() {
		close(i.quit)
		for _, cleanup := range i.cleanupFuncs {
			if err := cleanup(context.Background()); err != nil {
				errList = append(errList, err)
			}
		}
	})
	return errors.WithStack(errors.Join(errList...))
}
