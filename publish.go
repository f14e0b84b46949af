package main

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// AMQPPublisher publishes job updates to the job_updates topic exchange.
type AMQPPublisher struct {
	Conn *amqp.Connection
}

// Setup declares the exchange and queue the worker relies on.
func (p *AMQPPublisher) Setup() error {
	ch, err := p.Conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(updatesExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(jobsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	return nil
}

func (p *AMQPPublisher) PublishJobUpdate(jobID string, update JobUpdate) error {
	ch, err := p.Conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("job.%s", jobID)

	return ch.Publish(
		updatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
