// Package drag tracks a reorder gesture over the visible rows and turns it
// into Reorder calls on the todo store.
package drag

import (
	"errors"
	"slices"
)

var ErrUnknownTask = errors.New("drag: dragged task is not visible")

// Reorderer is the part of the todo store a drag session commits to.
type Reorderer interface {
	Reorder(order []int64)
}

type Mode int

const (
	// ModeLive commits every change of the proposed order as it happens.
	ModeLive Mode = iota
	// ModeDrop keeps the proposed order local and commits once on Drop.
	ModeDrop
)

// Session is one pick-up / move / drop gesture. The order it manipulates is
// the visible subset only; tasks hidden by the filter are placed by the
// store's reconciliation when the order is committed.
type Session struct {
	target  Reorderer
	mode    Mode
	dragged int64
	order   []int64
	commits int
	done    bool
}

// Start picks up dragged from the visible order.
func Start(target Reorderer, mode Mode, visible []int64, dragged int64) (*Session, error) {
	if !slices.Contains(visible, dragged) {
		return nil, ErrUnknownTask
	}
	return &Session{
		target:  target,
		mode:    mode,
		dragged: dragged,
		order:   slices.Clone(visible),
	}, nil
}

func (s *Session) Dragged() int64 { return s.dragged }

// Order is the current proposed visual order.
func (s *Session) Order() []int64 { return slices.Clone(s.order) }

func (s *Session) Active() bool { return !s.done }

// Over moves the dragged row next to over: before it when the pointer is in
// the upper half of that row, after it otherwise. It reports whether the
// proposed order changed. Hovering the dragged row itself, an unknown row,
// or a finished session does nothing.
func (s *Session) Over(over int64, upperHalf bool) bool {
	if s.done || over == s.dragged {
		return false
	}
	if !slices.Contains(s.order, over) {
		return false
	}
	next := slices.DeleteFunc(slices.Clone(s.order), func(id int64) bool { return id == s.dragged })
	at := slices.Index(next, over)
	if !upperHalf {
		at++
	}
	next = slices.Insert(next, at, s.dragged)
	if slices.Equal(next, s.order) {
		return false
	}
	s.order = next
	if s.mode == ModeLive {
		s.commit()
	}
	return true
}

// Step moves the dragged row one place up (delta < 0) or down (delta > 0),
// the keyboard equivalent of crossing a neighbour's midpoint.
func (s *Session) Step(delta int) bool {
	i := slices.Index(s.order, s.dragged)
	switch {
	case delta < 0 && i > 0:
		return s.Over(s.order[i-1], true)
	case delta > 0 && i < len(s.order)-1:
		return s.Over(s.order[i+1], false)
	default:
		return false
	}
}

// Drop ends the gesture. In drop mode the accumulated order is committed
// once; in live mode it has already been committed.
func (s *Session) Drop() {
	if s.done {
		return
	}
	s.done = true
	if s.mode == ModeDrop {
		s.commit()
	}
}

// Cancel ends the gesture without a final commit. Live changes already made
// stay in place.
func (s *Session) Cancel() {
	s.done = true
}

// Commits counts Reorder calls made by this session.
func (s *Session) Commits() int { return s.commits }

func (s *Session) commit() {
	s.target.Reorder(slices.Clone(s.order))
	s.commits++
}
