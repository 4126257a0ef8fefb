// Package eventstreamutils builds an eventstream.Publisher from configuration.
package eventstreamutils

import (
	"fmt"
	"log/slog"

	"github.com/papercomputeco/pixelo/pkg/eventstream"
	"github.com/papercomputeco/pixelo/pkg/eventstream/kafka"
	"github.com/papercomputeco/pixelo/pkg/eventstream/nop"
)

type NewPublisherOpts struct {
	// Provider is "none" (or empty) or "kafka".
	Provider string
	Brokers  []string
	Topic    string
	Logger   *slog.Logger
}

func NewPublisher(o *NewPublisherOpts) (eventstream.Publisher, error) {
	switch o.Provider {
	case "none", "":
		return nop.NewPublisher(), nil
	case "kafka":
		return kafka.NewPublisher(kafka.Config{
			Brokers: o.Brokers,
			Topic:   o.Topic,
			Logger:  o.Logger,
		})
	default:
		return nil, fmt.Errorf("unsupported event provider: %s", o.Provider)
	}
}
