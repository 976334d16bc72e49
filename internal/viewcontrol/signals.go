// Package viewcontrol owns the interactive state of the explainer diagrams
// and reacts to the page's interaction signals: view and role switches,
// zoom and drag.
package viewcontrol

import (
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
)

// SignalType names an interaction signal.
type SignalType string

const (
	SignalZoomIn     SignalType = "diagram-zoom-in"
	SignalZoomOut    SignalType = "diagram-zoom-out"
	SignalResetView  SignalType = "diagram-reset-view"
	SignalChangeView SignalType = "change-visualization-view"
	SignalChangeRole SignalType = "change-role-visualization"
)

// SignalTypes lists every accepted signal.
func SignalTypes() []SignalType {
	return []SignalType{SignalZoomIn, SignalZoomOut, SignalResetView, SignalChangeView, SignalChangeRole}
}

// ErrUnknownSignal is returned for signal types outside SignalTypes.
var ErrUnknownSignal = errors.New("unknown signal")

// Signal is one interaction. View and Role are only meaningful for the
// change-view and change-role signals.
type Signal struct {
	Type SignalType `json:"type"`
	View string     `json:"view,omitempty"`
	Role string     `json:"role,omitempty"`
}

func (t SignalType) valid() bool {
	for _, s := range SignalTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// ParseSignal decodes a signal from its type and optional JSON detail
// ({"view": ...} or {"role": ...}).
func ParseSignal(typ string, detail json.RawMessage) (Signal, error) {
	sig := Signal{Type: SignalType(typ)}
	if !sig.Type.valid() {
		return Signal{}, errors.Wrapf(ErrUnknownSignal, "%q", typ)
	}
	if len(detail) == 0 || string(detail) == "null" {
		return sig, nil
	}
	var d struct {
		View string `json:"view"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(detail, &d); err != nil {
		return Signal{}, errors.Wrapf(err, "decoding %s detail", typ)
	}
	switch sig.Type {
	case SignalChangeView:
		sig.View = d.View
	case SignalChangeRole:
		sig.Role = d.Role
	}
	return sig, nil
}

// Handler receives published signals.
type Handler func(Signal)

type subscription struct {
	id int
	h  Handler
}

// Bus is a synchronous typed signal emitter. Handlers run on the
// publishing goroutine in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[SignalType][]subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[SignalType][]subscription)}
}

// Subscribe registers h for t and returns a function removing it.
func (b *Bus) Subscribe(t SignalType, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscription{id: id, h: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[t]
		for i, s := range subs {
			if s.id == id {
				b.subs[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers s to every handler subscribed to its type.
func (b *Bus) Publish(s Signal) error {
	if !s.Type.valid() {
		return errors.Wrapf(ErrUnknownSignal, "%q", s.Type)
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[s.Type]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.h(s)
	}
	return nil
}
