package bot

import (
	"context"
	"time"

	"calorie-tracker-bot/internal/common/logger"
	"calorie-tracker-bot/internal/platform/telegram"
)

// Poller pulls updates via long polling and hands each one to the
// dispatcher on its own goroutine.
type Poller struct {
	client     *telegram.Client
	dispatcher *Dispatcher
	timeoutSec int
}

func NewPoller(client *telegram.Client, dispatcher *Dispatcher, timeoutSec int) *Poller {
	return &Poller{client: client, dispatcher: dispatcher, timeoutSec: timeoutSec}
}

// Run blocks until ctx is canceled.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64

	logger.Info().Int("timeout_sec", p.timeoutSec).Msg("Polling for updates")

	for {
		updates, err := p.client.GetUpdates(ctx, offset, p.timeoutSec)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error().Err(err).Msg("getUpdates failed, backing off")
			select {
			case <-time.After(3 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go p.dispatcher.Dispatch(ctx, update)
		}
	}
}
