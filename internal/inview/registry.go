package inview

import (
	"github.com/google/uuid"

	"github.com/devpradp/portfolio/internal/eventloop"
)

// Registry owns the subscriptions of one page so they can be torn down
// together when the page unmounts.
type Registry struct {
	sched eventloop.Scheduler
	src   IntersectionSource
	subs  map[uuid.UUID]*Subscription
	opts  []Option
}

// NewRegistry returns a registry whose subscriptions share sched, src and
// the default options opts.
func NewRegistry(sched eventloop.Scheduler, src IntersectionSource, opts ...Option) *Registry {
	return &Registry{
		sched: sched,
		src:   src,
		subs:  make(map[uuid.UUID]*Subscription),
		opts:  opts,
	}
}

// Observe subscribes to target. Per-call options are applied after the
// registry defaults.
func (r *Registry) Observe(target any, opts ...Option) (uuid.UUID, *Subscription) {
	all := append(append([]Option{}, r.opts...), opts...)
	sub := Observe(r.sched, r.src, target, all...)
	id := uuid.New()
	r.subs[id] = sub
	return id, sub
}

// Release closes and forgets one subscription.
func (r *Registry) Release(id uuid.UUID) bool {
	sub, ok := r.subs[id]
	if !ok {
		return false
	}
	sub.Close()
	delete(r.subs, id)
	return true
}

// CloseAll closes every subscription.
func (r *Registry) CloseAll() {
	for id, sub := range r.subs {
		sub.Close()
		delete(r.subs, id)
	}
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int { return len(r.subs) }
