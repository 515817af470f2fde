package contact

import (
	"context"
	"log/slog"

	"github.com/teslashibe/go-folio/internal/log"
)

// Chain implements Relay by trying multiple relays in order.
// The first successful relay wins; if all fail, returns an aggregate error.
type Chain struct {
	relays []Relay
	logger *slog.Logger
}

// NewChain creates a relay chain that tries relays in order.
// Nil relays are skipped; at least one relay is required.
func NewChain(relays ...Relay) (*Chain, error) {
	var live []Relay
	for _, r := range relays {
		if r != nil {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return nil, ErrNoRelays
	}

	return &Chain{
		relays: live,
		logger: log.L().With("component", "contact.chain"),
	}, nil
}

// NewChainWithLogger creates a relay chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, relays ...Relay) (*Chain, error) {
	chain, err := NewChain(relays...)
	if err != nil {
		return nil, err
	}
	chain.logger = logger.With("component", "contact.chain")
	return chain, nil
}

// Name implements Relay.
func (c *Chain) Name() string { return "chain" }

// Len returns the number of relays.
func (c *Chain) Len() int { return len(c.relays) }

// Send tries each relay until one succeeds. An invalid form fails
// immediately without contacting any relay.
func (c *Chain) Send(ctx context.Context, f Form) (Receipt, error) {
	if err := f.Validate(); err != nil {
		return Receipt{}, err
	}

	var errs []error
	for i, r := range c.relays {
		receipt, err := r.Send(ctx, f)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback relay succeeded",
					"relay", r.Name(),
					"relay_index", i,
				)
			}
			return receipt, nil
		}

		errs = append(errs, WrapError(r.Name(), err))
		c.logger.Warn("relay failed, trying next",
			"relay", r.Name(),
			"relay_index", i,
			"error", err,
		)

		// Check if context was cancelled
		if ctx.Err() != nil {
			return Receipt{}, ctx.Err()
		}
	}

	return Receipt{}, &ChainError{Errors: errs}
}
