// Package notify fans values out from one sender to many subscribers.
package notify

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const multiplexerTimeout = 200 * time.Millisecond

type subscriber[E any] struct {
	ch     chan E
	name   string
	missed int
}

type MultiplexerSender[E any] struct {
	m   *Multiplexer[E]
	seq atomic.Uint64
}

// Send delivers e to every subscriber without blocking the caller.
// If a later Send is delivered first, e is skipped.
func (ms *MultiplexerSender[E]) Send(e E) {
	seq := ms.seq.Add(1)
	go ms.m.deliver(seq, e)
}

// SendSync delivers e to every subscriber, waiting at most the subscriber timeout for each.
func (ms *MultiplexerSender[E]) SendSync(e E) {
	ms.m.deliver(ms.seq.Add(1), e)
}

func NewMultiplexerSender[E any](name string) (*MultiplexerSender[E], *Multiplexer[E]) {
	m := &Multiplexer[E]{name: name}
	return &MultiplexerSender[E]{m: m}, m
}

// Multiplexer is the receiving side of a MultiplexerSender.
// Subscribers see sends in order; a send is never delivered after a later one.
type Multiplexer[E any] struct {
	name string

	lock      sync.Mutex
	subs      []subscriber[E]
	delivered uint64
	dropped   int
	stale     int
}

func (m *Multiplexer[E]) Subscribe(name string, c chan E) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.subs = append(m.subs, subscriber[E]{ch: c, name: name})
}

func (m *Multiplexer[E]) Unsubscribe(c chan E) {
	m.lock.Lock()
	defer m.lock.Unlock()
	i := slices.IndexFunc(m.subs, func(sub subscriber[E]) bool { return sub.ch == c })
	if i == -1 {
		panic("already unsubscribed")
	}
	if sub := m.subs[i]; sub.missed > 0 {
		zap.S().Debugf("notify %s: %s leaves having missed %d", m.name, sub.name, sub.missed)
	}
	m.subs = slices.Delete(m.subs, i, i+1)
}

// Subscribers returns the number of subscribers.
func (m *Multiplexer[E]) Subscribers() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.subs)
}

// Dropped returns how many deliveries timed out so far.
func (m *Multiplexer[E]) Dropped() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.dropped
}

// Stale returns how many sends were skipped because a later one got there first.
func (m *Multiplexer[E]) Stale() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.stale
}

func (m *Multiplexer[E]) deliver(seq uint64, e E) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if seq <= m.delivered {
		m.stale++
		return
	}
	m.delivered = seq
	for i := range m.subs {
		select {
		case m.subs[i].ch <- e:
		case <-time.After(multiplexerTimeout):
			m.subs[i].missed++
			m.dropped++
			zap.S().Warnf("notify %s: %s missed send %d (%d so far)", m.name, m.subs[i].name, seq, m.subs[i].missed)
		}
	}
}
