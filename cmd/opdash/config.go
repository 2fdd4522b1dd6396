package main

import (
	"context"
	"fmt"
	"os"

	"opdash/internal/api"
	"opdash/internal/config"
	"opdash/internal/repository"
	"opdash/internal/repository/sqlite"
	"opdash/internal/validation"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GatewayFactory creates storage gateways based on environment
type GatewayFactory struct {
	env Environment
}

// NewGatewayFactory creates a new gateway factory for the given environment
func NewGatewayFactory(env Environment) *GatewayFactory {
	return &GatewayFactory{env: env}
}

// CreateGateway creates a gateway instance based on the current environment
func (gf *GatewayFactory) CreateGateway(cfg *config.Config) (repository.Gateway, error) {
	switch gf.env {
	case Development:
		return gf.createDevelopmentGateway()
	case Testing:
		return gf.createTestingGateway()
	default:
		return gf.createProductionGateway(cfg)
	}
}

// createDevelopmentGateway uses a sqlite file in the working directory
func (gf *GatewayFactory) createDevelopmentGateway() (repository.Gateway, error) {
	gw, err := sqlite.New("opdash.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return gw, nil
}

// createTestingGateway uses an in-memory sqlite database
func (gf *GatewayFactory) createTestingGateway() (repository.Gateway, error) {
	return config.CreateTestGateway()
}

// createProductionGateway uses the configured backend
func (gf *GatewayFactory) createProductionGateway(cfg *config.Config) (repository.Gateway, error) {
	return config.CreateGateway(cfg)
}

// Open builds the dashboard on the gateway selected for this environment
func (gf *GatewayFactory) Open(ctx context.Context, cfg *config.Config) (api.DashboardAPI, error) {
	gw, err := gf.CreateGateway(cfg)
	if err != nil {
		return nil, err
	}

	dashboard, err := api.New(ctx, gw, api.Options{
		NotificationLimit: cfg.Notifications.Limit,
		NotificationTTL:   cfg.Notifications.TTL,
		StorageTimeout:    cfg.Storage.Timeout,
		FallbackTheme:     cfg.SystemTheme,
		Validator:         validation.NewTaskValidatorWithConfig(cfg),
	})
	if err != nil {
		gw.Close()
		return nil, err
	}
	return dashboard, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("OPDASH_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		// Default to production for safety
		return Production
	}
}
