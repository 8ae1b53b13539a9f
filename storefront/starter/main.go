package main

import (
	"context"
	"log"
	"os"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"moms-kitchen/storefront/config"
	"moms-kitchen/storefront/logging"
	"moms-kitchen/storefront/types"
	"moms-kitchen/storefront/workflows"
)

// seedMenu is what a fresh kitchen serves.
var seedMenu = []types.NewMenuItem{
	{Name: "Classic Lasagna", Description: "Layers of pasta, beef ragù and béchamel", Price: 1450},
	{Name: "Chicken Pot Pie", Description: "Flaky crust, creamy chicken and vegetables", Price: 1275},
	{Name: "Meatloaf Dinner", Description: "With mashed potatoes and green beans", Price: 1350},
	{Name: "Tomato Soup", Description: "Slow-simmered, with a grilled cheese", Price: 895},
	{Name: "Apple Pie", Description: "Grandma's recipe, served warm", Price: 650},
}

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

	switch action := getEnv("KITCHEN_ACTION", "open"); action {
	case "open":
		openKitchen(c, cfg, logger)
	case "close":
		closeKitchen(c, cfg, logger)
	default:
		logger.Fatal("Unknown action (use 'open' or 'close')", zap.String("action", action))
	}
}

func openKitchen(c client.Client, cfg *config.Config, logger *zap.Logger) {
	workflowOptions := client.StartWorkflowOptions{
		ID:        cfg.Temporal.WorkflowID,
		TaskQueue: cfg.Temporal.TaskQueue,
	}

	// A kitchen that is already open is returned as is
	we, err := c.ExecuteWorkflow(context.Background(), workflowOptions, workflows.KitchenWorkflow, workflows.KitchenInput{
		SeedMenu: seedMenu,
	})
	if err != nil {
		logger.Fatal("Unable to start workflow", zap.Error(err))
	}

	logger.Info("Kitchen open",
		zap.String("workflow_id", we.GetID()),
		zap.String("run_id", we.GetRunID()),
		zap.Int("menu_items", len(seedMenu)),
	)
}

func closeKitchen(c client.Client, cfg *config.Config, logger *zap.Logger) {
	reason := getEnv("CLOSE_REASON", "closing time")
	err := c.SignalWorkflow(context.Background(), cfg.Temporal.WorkflowID, "", workflows.SignalCloseKitchen, reason)
	if err != nil {
		logger.Fatal("Unable to signal workflow", zap.Error(err))
	}
	logger.Info("Kitchen closing", zap.String("workflow_id", cfg.Temporal.WorkflowID), zap.String("reason", reason))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
