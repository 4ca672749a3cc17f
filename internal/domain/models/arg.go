package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Arg is a constructor argument or library address of a ContractSpec.
// It is either a Literal known when the plan is built, or a Deferred value
// computed from the registry at the moment the contract is deployed.
type Arg interface {
	Resolve(rc *ResolveContext) (any, error)
	// Dependencies lists the registry entries the value reads.
	Dependencies() []string
	isArg()
}

// Literal is a value fixed at plan construction.
type Literal struct {
	Value any
}

func (l Literal) Resolve(*ResolveContext) (any, error) { return l.Value, nil }
func (Literal) Dependencies() []string                 { return nil }
func (Literal) isArg()                                 {}

// Deferred is a value evaluated lazily, right before its contract is deployed.
type Deferred struct {
	Deps     []string
	Resolver func(rc *ResolveContext) (any, error)
}

func (d Deferred) Resolve(rc *ResolveContext) (any, error) {
	if d.Resolver == nil {
		return nil, fmt.Errorf("deferred argument has no resolver")
	}
	return d.Resolver(rc)
}

func (d Deferred) Dependencies() []string { return d.Deps }
func (Deferred) isArg()                   {}

// Lit wraps a literal value.
func Lit(v any) Arg { return Literal{Value: v} }

// Defer builds a Deferred argument reading the named registry entries.
func Defer(deps []string, fn func(rc *ResolveContext) (any, error)) Arg {
	return Deferred{Deps: deps, Resolver: fn}
}

// AddressOf reads the deployed address of another contract of the plan.
func AddressOf(name string) Arg {
	return Deferred{
		Deps: []string{name},
		Resolver: func(rc *ResolveContext) (any, error) {
			return rc.Address(name), nil
		},
	}
}

// PredictedAddressOf reads the address predicted for a contract from the
// deployer nonce at the start of the run.
func PredictedAddressOf(name string) Arg {
	return Deferred{
		Resolver: func(rc *ResolveContext) (any, error) {
			return rc.Predicted(name)
		},
	}
}

// ResolveContext gives deferred values access to the run state.
// Reads of missing registry entries produce the zero address and are
// recorded so the executor can decide what to do with them.
type ResolveContext struct {
	registry    *Registry
	predictions Predictions
	unresolved  []string
}

// NewResolveContext creates a resolve context over a registry and prediction table.
func NewResolveContext(registry *Registry, predictions Predictions) *ResolveContext {
	if predictions == nil {
		predictions = Predictions{}
	}
	return &ResolveContext{registry: registry, predictions: predictions}
}

// Registry returns the registry of the current run.
func (rc *ResolveContext) Registry() *Registry { return rc.registry }

// Predictions returns the prediction table of the current run.
func (rc *ResolveContext) Predictions() Predictions { return rc.predictions }

// Address returns the deployed address of name, or the zero address when
// name has not been deployed.
func (rc *ResolveContext) Address(name string) common.Address {
	deployed, ok := rc.registry.Get(name)
	if !ok {
		rc.markUnresolved(name)
		return common.Address{}
	}
	return deployed.Address
}

// Predicted returns the predicted address of name.
func (rc *ResolveContext) Predicted(name string) (common.Address, error) {
	addr, ok := rc.predictions[name]
	if !ok {
		return common.Address{}, fmt.Errorf("no address prediction for %s", name)
	}
	return addr, nil
}

// Unresolved returns the registry names read but missing since the last Reset.
func (rc *ResolveContext) Unresolved() []string {
	return append([]string(nil), rc.unresolved...)
}

// Reset clears the unresolved reads.
func (rc *ResolveContext) Reset() { rc.unresolved = nil }

func (rc *ResolveContext) markUnresolved(name string) {
	for _, n := range rc.unresolved {
		if n == name {
			return
		}
	}
	rc.unresolved = append(rc.unresolved, name)
}

// ResolveArgs evaluates a list of arguments in order.
func ResolveArgs(args []Arg, rc *ResolveContext) ([]any, error) {
	values := make([]any, 0, len(args))
	for i, arg := range args {
		v, err := arg.Resolve(rc)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// LibraryLinks maps a library name to the address it is linked against.
type LibraryLinks map[string]Arg

// Resolve evaluates every library address.
func (l LibraryLinks) Resolve(rc *ResolveContext) (map[string]common.Address, error) {
	resolved := make(map[string]common.Address, len(l))
	for name, arg := range l {
		v, err := arg.Resolve(rc)
		if err != nil {
			return nil, fmt.Errorf("library %s: %w", name, err)
		}
		addr, ok := v.(common.Address)
		if !ok {
			return nil, fmt.Errorf("library %s: resolved to %T, want address", name, v)
		}
		resolved[name] = addr
	}
	return resolved, nil
}

// Dependencies lists the registry entries read by the library links.
func (l LibraryLinks) Dependencies() []string {
	var deps []string
	for _, arg := range l {
		deps = append(deps, arg.Dependencies()...)
	}
	return deps
}
