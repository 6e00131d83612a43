// Package ratelimit caps how many AI requests a single run may issue.
package ratelimit

import "sync"

// Limiter is a per-run request budget. It does not pace requests over
// time; it only stops a run from exceeding its quota.
type Limiter struct {
	mu    sync.Mutex
	max   int
	count int
}

func New(max int) *Limiter {
	return &Limiter{max: max}
}

// Allow consumes one unit of budget and reports whether the request may
// proceed.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count >= l.max {
		return false
	}
	l.count++
	return true
}

// Used returns how many units have been consumed.
func (l *Limiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
