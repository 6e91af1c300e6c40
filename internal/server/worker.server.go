package serverApp

import (
	"context"
	"fmt"
	"portrait-backend/internal/pkg/logger"
	"portrait-backend/internal/pkg/rabbitmq"
	conversionService "portrait-backend/internal/service/conversion"
	pushService "portrait-backend/internal/service/push"
	"time"

	"github.com/panjf2000/ants"
	amqp "github.com/rabbitmq/amqp091-go"
)

// consumer binds a queue to a body handler.
type consumer struct {
	queue   string
	workers int
	handle  func(ctx context.Context, body []byte) error
}

// InitWorker starts one subscriber per queue on a shared pool and returns
// them so the caller can stop them on shutdown.
func InitWorker(
	ctx context.Context,
	rb *rabbitmq.ConnectionManager,
	push pushService.IService,
	conversion conversionService.IService,
) ([]*rabbitmq.Subscriber, error) {
	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(10, ants.WithOptions(poolOpts))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	consumers := []consumer{
		{queue: pushService.QueuePushMessages, workers: 3, handle: push.ConsumePush},
		{queue: pushService.QueuePushClicks, workers: 2, handle: push.ConsumeClick},
		{queue: conversionService.QueueBookingConfirmed, workers: 2, handle: conversion.ConsumeBookingConfirmed},
	}

	subscribers := make([]*rabbitmq.Subscriber, 0, len(consumers))
	errs := make(chan error, len(consumers))

	for _, cs := range consumers {
		opts := rabbitmq.DefaultSubscribeOptions(cs.queue)
		opts.WorkerCount = cs.workers

		handle := cs.handle
		sub, err := rabbitmq.NewSubscriber(ctx, rb, func(ctx context.Context, msg *amqp.Delivery) error {
			return handle(ctx, msg.Body)
		}, opts)
		if err != nil {
			return subscribers, fmt.Errorf("failed to create subscriber for %s: %w", cs.queue, err)
		}
		subscribers = append(subscribers, sub)

		queue := cs.queue
		if err = pool.Submit(func() {
			if err := sub.Start(); err != nil {
				errs <- fmt.Errorf("failed to start subscriber for %s: %w", queue, err)
				return
			}
			logger.Info.Printf("Subscriber started on %s", queue)
			errs <- nil
		}); err != nil {
			return subscribers, fmt.Errorf("failed to submit task to pool: %w", err)
		}
	}

	for range consumers {
		if err := <-errs; err != nil {
			return subscribers, err
		}
	}

	return subscribers, nil
}
