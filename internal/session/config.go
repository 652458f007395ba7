package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/coursebuddy/internal/stream"
)

// Config holds the session's timing parameters.
type Config struct {
	// Thinking delay: ThinkingBase + min(len(text)*ThinkingPerChar, ThinkingCap)
	// plus a random share of ThinkingJitter.
	ThinkingBase    time.Duration
	ThinkingPerChar time.Duration
	ThinkingCap     time.Duration
	ThinkingJitter  time.Duration

	// StreamTick is the interval between revealed words.
	StreamTick time.Duration

	// SettleDelay is how long the avatar keeps speaking after a reply ends.
	SettleDelay time.Duration

	// IdleThreshold is the idle count above which help is offered.
	IdleThreshold int

	// IdleTick is the idle counter period. Zero disables the ticker.
	IdleTick time.Duration
}

// DefaultConfig returns the standard pacing.
func DefaultConfig() Config {
	return Config{
		ThinkingBase:    1000 * time.Millisecond,
		ThinkingPerChar: 10 * time.Millisecond,
		ThinkingCap:     2000 * time.Millisecond,
		ThinkingJitter:  500 * time.Millisecond,
		StreamTick:      stream.DefaultTick,
		SettleDelay:     2 * time.Second,
		IdleThreshold:   30,
		IdleTick:        time.Second,
	}
}

// ThinkingDelay returns the simulated thinking time for a message.
func (c Config) ThinkingDelay(text string) time.Duration {
	d := c.ThinkingBase + min(time.Duration(len(text))*c.ThinkingPerChar, c.ThinkingCap)
	if c.ThinkingJitter > 0 {
		d += rand.N(c.ThinkingJitter)
	}
	return d
}
