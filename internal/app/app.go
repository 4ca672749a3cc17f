package app

import (
	"log/slog"

	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Use cases
	DeploySuite        *usecase.DeploySuite
	DeployLocal        *usecase.DeployLocal
	DeployCI           *usecase.DeployCI
	MintToken          *usecase.MintToken
	PopulateDescriptor *usecase.PopulateDescriptor
	CreateProposal     *usecase.CreateProposal
	RunLocal           *usecase.RunLocal
	UpdateConfigs      *usecase.UpdateConfigs
	ManageNode         *usecase.ManageNode
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	deploySuite *usecase.DeploySuite,
	deployLocal *usecase.DeployLocal,
	deployCI *usecase.DeployCI,
	mintToken *usecase.MintToken,
	populateDescriptor *usecase.PopulateDescriptor,
	createProposal *usecase.CreateProposal,
	runLocal *usecase.RunLocal,
	updateConfigs *usecase.UpdateConfigs,
	manageNode *usecase.ManageNode,
) (*App, error) {
	return &App{
		Config:             cfg,
		Logger:             logger,
		DeploySuite:        deploySuite,
		DeployLocal:        deployLocal,
		DeployCI:           deployCI,
		MintToken:          mintToken,
		PopulateDescriptor: populateDescriptor,
		CreateProposal:     createProposal,
		RunLocal:           runLocal,
		UpdateConfigs:      updateConfigs,
		ManageNode:         manageNode,
	}, nil
}
