// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lockstake/lockstake/co"
)

func fired(w co.Waiter) bool {
	select {
	case <-w.C():
		return true
	default:
		return false
	}
}

func TestSignal_BroadcastBeforeWait(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	// a waiter taken after the broadcast waits for the next one
	assert.False(t, fired(sig.NewWaiter()))
}

func TestSignal_BroadcastAfterWait(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for i := 0; i < 10; i++ {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	for _, w := range ws {
		assert.True(t, fired(w))
	}
	assert.False(t, fired(sig.NewWaiter()))
}

func TestSignal_Wakeup(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	go func() {
		time.Sleep(10 * time.Millisecond)
		sig.Broadcast()
	}()

	select {
	case <-w.C():
	case <-time.After(5 * time.Second):
		t.Fatal("waiter not released")
	}
}

func TestGoes(t *testing.T) {
	var goes co.Goes
	var n [4]int
	for i := range n {
		i := i
		goes.Go(func() { n[i] = i + 1 })
	}
	select {
	case <-goes.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("goroutines not done")
	}
	assert.Equal(t, [4]int{1, 2, 3, 4}, n)
}
