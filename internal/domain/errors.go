package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when the connected chain is not the expected one
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrMissingWETH is returned when no WETH address is known for the target chain
	ErrMissingWETH = errors.New("WETH address not available")

	// ErrInvalidPlan is returned when a deployment plan is not a valid topological order
	ErrInvalidPlan = errors.New("invalid deployment plan")

	// ErrDuplicateContract is returned when a contract is recorded twice in a registry
	ErrDuplicateContract = errors.New("contract already recorded")

	// ErrNonceDrift is returned when the deployer nonce no longer matches a predicted address
	ErrNonceDrift = errors.New("deployer nonce drifted from prediction")

	// ErrDeploymentFailed is returned when a deployment transaction reverted
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrMissingDeployment is returned when a required contract is absent from a registry
	ErrMissingDeployment = errors.New("deployment missing from registry")

	// ErrNoDeployerKey is returned when no signing key is configured
	ErrNoDeployerKey = errors.New("no deployer private key configured")
)

// AddressMismatchError is raised when a deployed address differs from its prediction.
type AddressMismatchError struct {
	Contract string
	Expected string
	Actual   string
}

func (e AddressMismatchError) Error() string {
	return fmt.Sprintf("unexpected %s address. Expected: %s. Actual: %s.", e.Contract, e.Expected, e.Actual)
}

// NonceDriftError reports a predicted contract whose creation nonce has moved.
type NonceDriftError struct {
	Contract  string
	Predicted string
	Next      string
}

func (e NonceDriftError) Error() string {
	return fmt.Sprintf("%s was predicted at %s but the next creation address is %s (a previous step was skipped or an extra transaction was sent)",
		e.Contract, e.Predicted, e.Next)
}

func (e NonceDriftError) Unwrap() error { return ErrNonceDrift }

// UnresolvedDependencyError is returned when a contract reads a registry entry
// that no earlier step produced.
type UnresolvedDependencyError struct {
	Contract string
	Missing  []string
}

func (e UnresolvedDependencyError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("%s depends on contracts that were never deployed: %s", e.Contract, strings.Join(missing, ", "))
}

// ArtifactNotFoundError is returned when no compiled artifact matches a contract name.
type ArtifactNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e ArtifactNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("artifact for %s not found (did you run forge build?)", e.Name)
	}
	return fmt.Sprintf("artifact for %s not found, did you mean: %s", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e ArtifactNotFoundError) Unwrap() error { return ErrNotFound }
