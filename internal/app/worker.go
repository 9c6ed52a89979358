package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/messaging/kafka/producer"
	"go-hrm/internal/policy"
	"go-hrm/internal/scheduler"
	"go-hrm/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker hosts the background side of the system: the outbox relay that
// drains pending events to Kafka and the scheduler that applies the monthly
// accrual and yearly reset.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	tracker := scheduler.NewJobTracker(gormDB)
	policyService := policy.NewService(policy.NewRepository(gormDB))
	employeeRepo := employee.NewRepository(gormDB)
	runner := scheduler.NewRunner(tracker, policyService, employeeRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)
	go runner.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
