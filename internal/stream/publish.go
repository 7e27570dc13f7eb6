package stream

import "context"

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, string, any) {}

// NopPublisher is used when no Kafka brokers are configured.
func NopPublisher() Publisher { return nopPublisher{} }
