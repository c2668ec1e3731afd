package rabbitmq

import (
	"fmt"

	"travel-po/internal/general/contracts"

	amqp "github.com/rabbitmq/amqp091-go"
)

// auditQueue keeps every published event durable even when no external
// consumer is bound yet. Downstream workers declare their own queues.
const auditQueue = "travel.events.audit"

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(contracts.ExchangeTravelTopic, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", contracts.ExchangeTravelTopic, err)
	}

	if _, err := ch.QueueDeclare(auditQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", auditQueue, err)
	}

	if err := ch.QueueBind(auditQueue, "#", contracts.ExchangeTravelTopic, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", auditQueue, contracts.ExchangeTravelTopic, err)
	}

	return nil
}
