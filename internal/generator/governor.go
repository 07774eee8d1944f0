package generator

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Governor limita quantos bancos são gerados ao mesmo tempo.
type Governor struct {
	sem   *semaphore.Weighted
	limit int
}

// NewGovernor cria o limitador; limite < 1 vira 1.
func NewGovernor(limit int) *Governor {
	if limit < 1 {
		limit = 1
	}
	return &Governor{sem: semaphore.NewWeighted(int64(limit)), limit: limit}
}

// Acquire bloqueia até existir uma vaga (ou o contexto ser cancelado).
func (g *Governor) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release devolve a vaga obtida com Acquire.
func (g *Governor) Release() {
	g.sem.Release(1)
}

func (g *Governor) Limit() int { return g.limit }
