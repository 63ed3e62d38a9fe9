// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter provides a channel that is closed by the next broadcast.
type Waiter interface {
	C() <-chan struct{}
}

// Signal is a channel based rendezvous point: goroutines take a waiter and select on it
// together with their other channels, and a broadcast releases every waiter taken before it.
// The zero value is ready to use.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes all goroutines that are waiting on s.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()

	close(s.current())
	s.ch = make(chan struct{})
}

// NewWaiter returns a waiter bound to the next broadcast.
func (s *Signal) NewWaiter() Waiter {
	s.l.Lock()
	defer s.l.Unlock()

	return waiter(s.current())
}

type waiter chan struct{}

func (w waiter) C() <-chan struct{} {
	return w
}
