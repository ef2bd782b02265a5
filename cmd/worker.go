package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"filebot/src/infrastructure/bus"
	"filebot/src/log"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume chat events from the message bus",
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	logger := log.Watermill("worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := buildDispatcher(ctx)
	if err != nil {
		return err
	}

	// Initialize AMQP publisher
	amqpPublisher, err := amqp.NewPublisher(
		amqp.NewDurableQueueConfig(viper.GetString("amqp.url")),
		logger,
	)
	if err != nil {
		return err
	}
	defer amqpPublisher.Close()

	// Initialize AMQP subscriber
	subscriberConfig := amqp.NewDurableQueueConfig(viper.GetString("amqp.url"))
	subscriberConfig.Consume.NoRequeueOnNack = true
	amqpSubscriber, err := amqp.NewSubscriber(subscriberConfig, logger)
	if err != nil {
		return err
	}
	defer amqpSubscriber.Close()

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return err
	}

	// File operations are not retried.
	router.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
	)

	busService, err := bus.NewService(
		amqpPublisher,
		d,
		viper.GetString("amqp.outbound_topic"),
		viper.GetInt64("bus.node_id"),
		logger,
	)
	if err != nil {
		return err
	}

	router.AddNoPublisherHandler(
		"chat_event_processor",
		viper.GetString("amqp.inbound_topic"),
		amqpSubscriber,
		busService.HandleMessage,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(ctx)
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-c:
	}

	log.Info("shutting down worker")
	cancel()
	if err := <-errCh; err != nil {
		return err
	}
	log.Info("router stopped")

	return nil
}
