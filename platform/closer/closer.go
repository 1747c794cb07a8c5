package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type closeFn struct {
	name string
	fn   func(ctx context.Context) error
}

// Closer runs registered shutdown functions in reverse registration order.
type Closer struct {
	mu     sync.Mutex
	funcs  []closeFn
	logger Logger
	done   bool
}

func New() *Closer { return &Closer{} }

var global = New()

func SetLogger(l Logger) { global.SetLogger(l) }

func AddNamed(name string, fn func(ctx context.Context) error) { global.AddNamed(name, fn) }

func CloseAll(ctx context.Context) error { return global.CloseAll(ctx) }

func (c *Closer) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *Closer) AddNamed(name string, fn func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, closeFn{name: name, fn: fn})
}

// CloseAll is idempotent: the second call is a no-op.
func (c *Closer) CloseAll(ctx context.Context) error {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return nil
	}
	c.done = true
	funcs := c.funcs
	c.funcs = nil
	log := c.logger
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]
		if err := f.fn(ctx); err != nil {
			if log != nil {
				log.Error(ctx, "close resource", zap.String("name", f.name), zap.Error(err))
			}
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}
		if log != nil {
			log.Info(ctx, "resource closed", zap.String("name", f.name))
		}
	}

	return errors.Join(errs...)
}
