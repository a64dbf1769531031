package model

import "time"

// Clock tracks both colors' remaining time on one board in milliseconds.
// Only the active color burns time; UpdateTime charges the elapsed interval
// and re-anchors the timestamp, so repeated calls are safe. Values may dip
// below zero between a flag fall and the next timeout poll.
type Clock struct {
	White     int64     `json:"white"`
	Black     int64     `json:"black"`
	LastMoved time.Time `json:"-"`
}

func NewClock(initial time.Duration, now time.Time) *Clock {
	ms := initial.Milliseconds()
	return &Clock{White: ms, Black: ms, LastMoved: now}
}

func (c *Clock) UpdateTime(now time.Time, active Color) {
	elapsed := now.Sub(c.LastMoved).Milliseconds()
	if active == White {
		c.White -= elapsed
	} else {
		c.Black -= elapsed
	}
	c.LastMoved = now
}

func (c *Clock) Remaining(color Color) int64 {
	if color == White {
		return c.White
	}
	return c.Black
}
