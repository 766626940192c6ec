// Package watch fans room snapshots out to subscribers. A single
// registry goroutine owns all subscription state; everything reaches it
// through the inbox, so no locks are needed.
package watch

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lol-team-randomizer/backend/internal/room"
)

type msg interface{ isWatchMsg() }

type subscribe struct {
	Code   string
	ID     string
	Outbox chan room.Room
}

type unsubscribe struct {
	Code string
	ID   string
}

type publish struct {
	Room room.Room
}

type shutdown struct{}

func (subscribe) isWatchMsg()   {}
func (unsubscribe) isWatchMsg() {}
func (publish) isWatchMsg()     {}
func (shutdown) isWatchMsg()    {}

// Outbox capacity per subscriber; a client that falls this far behind
// gets dropped rather than stalling the registry.
const outboxSize = 8

type Registry struct {
	inbox  chan msg
	subs   map[string]map[string]chan room.Room
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

func NewRegistry(parent context.Context, log *zap.Logger) *Registry {
	ctx, cancel := context.WithCancel(parent)
	r := &Registry{
		inbox:  make(chan msg, 64),
		subs:   make(map[string]map[string]chan room.Room),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	go r.loop()
	return r
}

// Subscribe registers a listener for one room code. The returned
// channel closes when the subscription ends; the cancel func is safe to
// call more than once.
func (r *Registry) Subscribe(code string) (<-chan room.Room, func()) {
	out := make(chan room.Room, outboxSize)
	id := uuid.NewString()

	r.send(subscribe{Code: code, ID: id, Outbox: out})

	var once sync.Once
	cancel := func() {
		once.Do(func() { r.send(unsubscribe{Code: code, ID: id}) })
	}
	return out, cancel
}

// Publish broadcasts the room to every subscriber of its code.
func (r *Registry) Publish(rm room.Room) {
	r.send(publish{Room: rm})
}

// Shutdown closes all subscriber channels and stops the loop.
func (r *Registry) Shutdown() {
	r.send(shutdown{})
}

func (r *Registry) send(m msg) {
	select {
	case r.inbox <- m:
	case <-r.ctx.Done():
	}
}

func (r *Registry) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.closeAll()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case subscribe:
				outs := r.subs[msg.Code]
				if outs == nil {
					outs = make(map[string]chan room.Room)
					r.subs[msg.Code] = outs
				}
				outs[msg.ID] = msg.Outbox

			case unsubscribe:
				if ch, ok := r.subs[msg.Code][msg.ID]; ok {
					close(ch)
					delete(r.subs[msg.Code], msg.ID)
					if len(r.subs[msg.Code]) == 0 {
						delete(r.subs, msg.Code)
					}
				}

			case publish:
				r.broadcast(msg.Room)

			case shutdown:
				r.closeAll()
				r.cancel()
				return
			}
		}
	}
}

func (r *Registry) broadcast(rm room.Room) {
	for id, ch := range r.subs[rm.ID] {
		select {
		case ch <- rm:
		default:
			// Subscriber is slow/full - drop it.
			close(ch)
			delete(r.subs[rm.ID], id)
			r.log.Debug("dropped slow subscriber",
				zap.String("room", rm.ID), zap.String("subscriber", id))
		}
	}
	if len(r.subs[rm.ID]) == 0 {
		delete(r.subs, rm.ID)
	}
}

func (r *Registry) closeAll() {
	for code, outs := range r.subs {
		for id, ch := range outs {
			close(ch)
			delete(outs, id)
		}
		delete(r.subs, code)
	}
}
