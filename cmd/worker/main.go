package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"github.com/stayloft/lodge-booking-backend/internal/config"
	"github.com/stayloft/lodge-booking-backend/internal/email"
	"github.com/stayloft/lodge-booking-backend/internal/events"
)

// The worker consumes booking lifecycle events and sends guest notifications.
// It runs separately from the API server so notification delivery cannot slow
// down request handling.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required for the worker")
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.BookingEventsTopic)
	defer consumer.Close()

	sender := email.NewSender()

	log.Printf("worker consuming %s as group %s", cfg.BookingEventsTopic, cfg.KafkaGroupID)

	err = consumer.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			// A malformed message will never parse; skip it instead of
			// wedging the partition.
			log.Printf("skipping malformed event at offset %d: %v", msg.Offset, err)
			return nil
		}

		if err := sender.Send(ctx, event); err != nil {
			log.Printf("failed to send notification for booking %s: %v", event.BookingID, err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("consumer error: %v", err)
	}

	log.Println("worker exited gracefully")
}
