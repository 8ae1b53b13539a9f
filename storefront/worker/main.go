package main

import (
	"log"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"moms-kitchen/storefront/activities"
	"moms-kitchen/storefront/config"
	"moms-kitchen/storefront/logging"
	"moms-kitchen/storefront/workflows"
)

func main() {
	cfg, err := config.Load(getEnv("STOREFRONT_CONFIG", "storefront.yaml"))
	if err != nil {
		log.Fatalln("Unable to load config", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalln("Unable to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	// Create Temporal client
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    logging.NewTemporalLogger(logger),
	})
	if err != nil {
		logger.Fatal("Unable to create Temporal client", zap.Error(err))
	}
	defer c.Close()

	identity := "kitchen-worker-" + hostname()
	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{
		Identity:                               identity,
		MaxConcurrentActivityExecutionSize:     100,
		MaxConcurrentWorkflowTaskExecutionSize: 50,
	})

	w.RegisterWorkflow(workflows.KitchenWorkflow)

	// Tickets go to stdout; logs go wherever logging.file points
	kitchenActivities := &activities.KitchenActivities{Tickets: os.Stdout}
	w.RegisterActivity(kitchenActivities.NotifyKitchen)

	logger.Info("Worker starting",
		zap.String("task_queue", cfg.Temporal.TaskQueue),
		zap.String("identity", identity),
	)

	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("Unable to start worker", zap.Error(err))
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
