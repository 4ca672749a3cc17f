package models

import (
	"fmt"
	"strings"

	"github.com/mythsdao/myths-deploy/internal/domain"
)

// Validator checks a contract right after it was recorded in the registry.
type Validator func(rc *ResolveContext) error

// ContractSpec describes one deployment step of a plan.
type ContractSpec struct {
	Name string
	// Artifact is the compiled contract name, defaults to Name.
	Artifact            string
	Args                []Arg
	Libraries           LibraryLinks
	WaitForConfirmation bool
	// Predicted marks contracts whose address is computed from the deployer
	// nonce before the run starts.
	Predicted bool
	Validate  Validator
}

// ArtifactName returns the compiled artifact to deploy.
func (s ContractSpec) ArtifactName() string {
	if s.Artifact != "" {
		return s.Artifact
	}
	return s.Name
}

// Dependencies lists every registry entry read by the contract args and libraries.
func (s ContractSpec) Dependencies() []string {
	var deps []string
	for _, arg := range s.Args {
		deps = append(deps, arg.Dependencies()...)
	}
	return append(deps, s.Libraries.Dependencies()...)
}

// MatchesPrediction returns a validator failing when the recorded address of
// name differs from its prediction.
func MatchesPrediction(name string) Validator {
	return func(rc *ResolveContext) error {
		expected, err := rc.Predicted(name)
		if err != nil {
			return err
		}
		deployed, ok := rc.Registry().Get(name)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrMissingDeployment, name)
		}
		want := strings.ToLower(expected.Hex())
		got := strings.ToLower(deployed.Address.Hex())
		if want != got {
			return domain.AddressMismatchError{Contract: name, Expected: want, Actual: got}
		}
		return nil
	}
}

// Plan is an ordered list of deployments. The order must be a topological
// order of the dependency graph.
type Plan struct {
	Specs []ContractSpec
}

// NewPlan creates a plan from specs in deployment order.
func NewPlan(specs ...ContractSpec) *Plan {
	return &Plan{Specs: specs}
}

// Validate checks names are unique and every dependency is deployed earlier.
func (p *Plan) Validate() error {
	seen := make(map[string]bool, len(p.Specs))
	for _, spec := range p.Specs {
		if spec.Name == "" {
			return fmt.Errorf("%w: unnamed contract", domain.ErrInvalidPlan)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: %s appears twice", domain.ErrInvalidPlan, spec.Name)
		}
		for _, dep := range spec.Dependencies() {
			if !seen[dep] {
				return fmt.Errorf("%w: %s reads %s before it is deployed", domain.ErrInvalidPlan, spec.Name, dep)
			}
		}
		seen[spec.Name] = true
	}
	return nil
}

// PredictionOffsets returns, for each predicted contract, the number of
// deployments that happen before it.
func (p *Plan) PredictionOffsets() map[string]uint64 {
	offsets := make(map[string]uint64)
	for i, spec := range p.Specs {
		if spec.Predicted {
			offsets[spec.Name] = uint64(i)
		}
	}
	return offsets
}

// Names returns contract names in deployment order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Specs))
	for i, spec := range p.Specs {
		names[i] = spec.Name
	}
	return names
}

// Dependents returns the later contracts that read name.
func (p *Plan) Dependents(name string) []string {
	var dependents []string
	for _, spec := range p.Specs {
		for _, dep := range spec.Dependencies() {
			if dep == name {
				dependents = append(dependents, spec.Name)
				break
			}
		}
	}
	return dependents
}
