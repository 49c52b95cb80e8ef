package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-csr/internal/logger"
)

// Transaction runs steps in order. When a step fails, the compensations of
// the steps that already ran are applied in reverse.
type Transaction struct {
	steps  []Step
	logger logger.Logger
}

type Step struct {
	Name       string
	Fn         func(context.Context) error
	Compensate func(context.Context) error
}

func NewTransaction(log logger.Logger) *Transaction {
	return &Transaction{logger: log}
}

func (t *Transaction) AddStep(name string, fn, compensate func(context.Context) error) {
	t.steps = append(t.steps, Step{Name: name, Fn: fn, Compensate: compensate})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, step := range t.steps {
		if err := step.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("step %q failed: %w", step.Name, err)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		step := t.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			t.logger.Warn("compensation failed", map[string]interface{}{"step": step.Name, "error": err.Error()})
		}
	}
}
