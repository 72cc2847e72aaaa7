package connector

import (
	"context"
	"sync"
)

// PendingAnswer is the handle returned by RequestGenerativeAIAnswer. The
// connector hands it out unsettled and never touches it again; settlement
// is driven externally, and a host that never replies leaves the handle
// pending forever. Callers that cannot wait indefinitely should use Wait
// with a deadline context.
type PendingAnswer struct {
	once sync.Once
	done chan struct{}
	item ChatItem
	err  error
}

func newPendingAnswer() *PendingAnswer {
	return &PendingAnswer{done: make(chan struct{})}
}

// Complete settles the handle with an answer. First settlement wins.
func (p *PendingAnswer) Complete(item ChatItem) {
	p.once.Do(func() {
		p.item = item
		close(p.done)
	})
}

// Fail settles the handle with an error. First settlement wins.
func (p *PendingAnswer) Fail(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the handle settles.
func (p *PendingAnswer) Done() <-chan struct{} {
	return p.done
}

// Result reports the settled value. Valid only after Done is closed.
func (p *PendingAnswer) Result() (ChatItem, error) {
	return p.item, p.err
}

// Wait blocks until the handle settles or ctx ends.
func (p *PendingAnswer) Wait(ctx context.Context) (ChatItem, error) {
	select {
	case <-p.done:
		return p.item, p.err
	case <-ctx.Done():
		return ChatItem{}, ctx.Err()
	}
}
