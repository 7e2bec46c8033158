package middleware

import (
	"sync"
	"time"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = time.Minute
)

// LoginRateLimiter throttles login attempts per client IP, 5 per minute.
// A successful login resets the counter so only streaks of failures hit
// the limit.
type LoginRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

func NewLoginRateLimiter() *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts: make(map[string]*attemptInfo),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the IP still has attempts left in the current window.
func (r *LoginRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > loginAttemptWindow {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= loginAttemptLimit {
		return false
	}
	info.count++
	return true
}

// Reset clears the counter for an IP after a successful login.
func (r *LoginRateLimiter) Reset(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attempts, ip)
}

// cleanup periodically drops expired windows so the map does not grow with
// one entry per IP ever seen.
func (r *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > loginAttemptWindow {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
