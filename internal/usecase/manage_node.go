package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// NodeOperation is an action on the development node
type NodeOperation string

const (
	NodeStatus NodeOperation = "status"
	NodeStop   NodeOperation = "stop"
)

// localNodeInstance describes the node run-local manages
func localNodeInstance() *models.AnvilInstance {
	return &models.AnvilInstance{
		Name:    "myths",
		Port:    localNodePort,
		ChainID: strconv.FormatUint(domain.ChainIDLocal, 10),
	}
}

// ManageNode inspects or stops the development node started by run-local
type ManageNode struct {
	anvil    AnvilManager
	progress ProgressSink
}

// NewManageNode creates a new node management use case
func NewManageNode(anvil AnvilManager, progress ProgressSink) *ManageNode {
	return &ManageNode{
		anvil:    anvil,
		progress: progress,
	}
}

// ManageNodeResult contains the node state after the operation
type ManageNodeResult struct {
	Operation NodeOperation
	Instance  *models.AnvilInstance
	Status    *models.AnvilStatus
	Message   string
}

// Run performs the operation on the development node
func (uc *ManageNode) Run(ctx context.Context, op NodeOperation) (*ManageNodeResult, error) {
	instance := localNodeInstance()

	status, err := uc.anvil.GetStatus(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	result := &ManageNodeResult{Operation: op, Instance: instance, Status: status}

	switch op {
	case NodeStatus:
		return result, nil
	case NodeStop:
		if !status.Running {
			result.Message = fmt.Sprintf("Node '%s' is not running", instance.Name)
			return result, nil
		}
		uc.progress.Info(fmt.Sprintf("Stopping node '%s' (PID %d)...", instance.Name, status.PID))
		if err := uc.anvil.Stop(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to stop node: %w", err)
		}
		result.Status = &models.AnvilStatus{LogFile: status.LogFile}
		result.Message = "Node stopped"
		return result, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", op)
	}
}
