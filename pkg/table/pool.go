package table

import (
	"context"
	"errors"
	"sync/atomic"
)

var ErrPoolClosed = errors.New("pool is closed")

// pool caps how many tables run at once. Each running job holds one ticket.
type pool struct {
	limit   int
	tickets chan int
	num     atomic.Int32
}

func newPool(limit int) *pool {
	if limit <= 0 {
		limit = 1
	}
	p := &pool{
		limit:   limit,
		tickets: make(chan int, limit),
	}
	for i := 0; i < limit; i++ {
		p.tickets <- i
	}
	return p
}

// Do blocks for a free ticket, then runs job on its own goroutine.
func (p *pool) Do(ctx context.Context, job func(ticket int)) error {
	var (
		ticket int
		ok     bool
	)
	select {
	case ticket, ok = <-p.tickets:
		if !ok {
			return ErrPoolClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	p.num.Add(1)
	go func() {
		defer func() {
			p.num.Add(-1)
			p.tickets <- ticket
		}()
		job(ticket)
	}()
	return nil
}

// Wait collects every ticket back and closes the pool.
func (p *pool) Wait() {
	for i := 0; i < p.limit; i++ {
		<-p.tickets
	}
	close(p.tickets)
}

// Num returns the number of jobs in flight.
func (p *pool) Num() int {
	return int(p.num.Load())
}
