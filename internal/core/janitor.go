package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Janitor wipes every channel's message history on a fixed interval.
// Membership survives the wipe. It starts once at process startup and runs
// until the process context is cancelled.
type Janitor struct {
	channels *ChannelStore
	interval time.Duration
	log      *zerolog.Logger
}

// NewJanitor constructs a janitor over the given store. A non-positive
// interval falls back to the default 30 minutes.
func NewJanitor(channels *ChannelStore, interval time.Duration, logger *zerolog.Logger) *Janitor {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Janitor{channels: channels, interval: interval, log: logger}
}

// Run blocks, clearing all channel histories every interval.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.channels.ClearAll()
			j.log.Info().Dur("interval", j.interval).Msg("all channel histories cleared")
		case <-ctx.Done():
			return
		}
	}
}
