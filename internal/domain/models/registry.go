package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mythsdao/myths-deploy/internal/domain"
)

// Instance is a live handle on a deployed contract
type Instance struct {
	Address     common.Address
	ABI         *abi.ABI
	TxHash      common.Hash
	BlockNumber uint64
}

// DeployedContract is the registry entry of one deployed contract
type DeployedContract struct {
	Name                 string
	Address              common.Address
	Instance             *Instance
	ConstructorArguments []any
	Libraries            map[string]common.Address
}

// TransactionHash returns the creation transaction hash when known.
func (d *DeployedContract) TransactionHash() common.Hash {
	if d.Instance == nil {
		return common.Hash{}
	}
	return d.Instance.TxHash
}

// BlockNumber returns the block the contract was created in when known.
func (d *DeployedContract) BlockNumber() uint64 {
	if d.Instance == nil {
		return 0
	}
	return d.Instance.BlockNumber
}

type deployedContractJSON struct {
	Name                 string                    `json:"name"`
	Address              common.Address            `json:"address"`
	ConstructorArguments []any                     `json:"constructorArguments"`
	Libraries            map[string]common.Address `json:"libraries"`
	TransactionHash      *common.Hash              `json:"transactionHash,omitempty"`
	BlockNumber          uint64                    `json:"blockNumber,omitempty"`
}

// MarshalJSON renders binary arguments as hex and big integers as decimal strings.
func (d *DeployedContract) MarshalJSON() ([]byte, error) {
	args := make([]any, len(d.ConstructorArguments))
	for i, arg := range d.ConstructorArguments {
		args[i] = jsonArgument(arg)
	}
	libs := d.Libraries
	if libs == nil {
		libs = map[string]common.Address{}
	}
	out := deployedContractJSON{
		Name:                 d.Name,
		Address:              d.Address,
		ConstructorArguments: args,
		Libraries:            libs,
	}
	if d.Instance != nil {
		if d.Instance.TxHash != (common.Hash{}) {
			hash := d.Instance.TxHash
			out.TransactionHash = &hash
		}
		out.BlockNumber = d.Instance.BlockNumber
	}
	return json.Marshal(out)
}

func (d *DeployedContract) UnmarshalJSON(data []byte) error {
	var in deployedContractJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.Name = in.Name
	d.Address = in.Address
	d.ConstructorArguments = in.ConstructorArguments
	d.Libraries = in.Libraries
	d.Instance = &Instance{Address: in.Address, BlockNumber: in.BlockNumber}
	if in.TransactionHash != nil {
		d.Instance.TxHash = *in.TransactionHash
	}
	return nil
}

func jsonArgument(arg any) any {
	switch x := arg.(type) {
	case []byte:
		return hexutil.Bytes(x)
	case *big.Int:
		return x.String()
	case []any:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = jsonArgument(v)
		}
		return out
	default:
		return arg
	}
}

// Registry is the ordered set of contracts deployed during a run.
type Registry struct {
	order   []string
	entries map[string]*DeployedContract
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*DeployedContract)}
}

// Put records a deployed contract. Each name can be recorded once.
func (r *Registry) Put(d *DeployedContract) error {
	if _, exists := r.entries[d.Name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateContract, d.Name)
	}
	r.entries[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Get returns the entry of name.
func (r *Registry) Get(name string) (*DeployedContract, bool) {
	d, ok := r.entries[name]
	return d, ok
}

// Address returns the address of name or ErrMissingDeployment.
func (r *Registry) Address(name string) (common.Address, error) {
	d, ok := r.entries[name]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", domain.ErrMissingDeployment, name)
	}
	return d.Address, nil
}

// Names returns the recorded names in deployment order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns the entries in deployment order.
func (r *Registry) All() []*DeployedContract {
	out := make([]*DeployedContract, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Len returns the number of recorded contracts.
func (r *Registry) Len() int { return len(r.order) }

// MarshalJSON writes the registry as an object keyed by contract name,
// keeping deployment order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.entries[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a registry written by MarshalJSON, keeping key order.
func (r *Registry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("registry must be a JSON object")
	}
	r.order = nil
	r.entries = make(map[string]*DeployedContract)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected registry key %v", tok)
		}
		var entry DeployedContract
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		if entry.Name == "" {
			entry.Name = key
		}
		if err := r.Put(&entry); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
