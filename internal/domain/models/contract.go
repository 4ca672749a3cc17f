package models

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// LinkReference is a placeholder position inside unlinked bytecode
type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string                                `json:"object"`
	SourceMap      string                                `json:"sourceMap,omitempty"`
	LinkReferences map[string]map[string][]LinkReference `json:"linkReferences"`
}

// Artifact represents a Foundry compilation artifact
type Artifact struct {
	Name     string          `json:"-"`
	Path     string          `json:"-"`
	RawABI   json.RawMessage `json:"abi"`
	Bytecode BytecodeObject  `json:"bytecode"`

	ABI abi.ABI `json:"-"`
}

// ParseArtifact decodes a Foundry artifact and its ABI.
func ParseArtifact(name string, data []byte) (*Artifact, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", name, err)
	}
	parsed, err := abi.JSON(strings.NewReader(string(artifact.RawABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", name, err)
	}
	artifact.Name = name
	artifact.ABI = parsed
	return &artifact, nil
}

// RequiredLibraries lists the library names the bytecode must be linked against.
func (a *Artifact) RequiredLibraries() []string {
	var names []string
	for _, libs := range a.Bytecode.LinkReferences {
		for name := range libs {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Link replaces every library placeholder with its address and returns the
// creation bytecode.
func (a *Artifact) Link(libraries map[string]common.Address) ([]byte, error) {
	object := strings.TrimPrefix(a.Bytecode.Object, "0x")
	code := []byte(object)
	for _, libs := range a.Bytecode.LinkReferences {
		for name, refs := range libs {
			addr, ok := libraries[name]
			if !ok {
				return nil, fmt.Errorf("%s: missing address for library %s", a.Name, name)
			}
			hexAddr := hex.EncodeToString(addr.Bytes())
			for _, ref := range refs {
				start := ref.Start * 2
				end := start + ref.Length*2
				if ref.Length != common.AddressLength || end > len(code) {
					return nil, fmt.Errorf("%s: invalid link reference for %s at %d", a.Name, name, ref.Start)
				}
				copy(code[start:end], hexAddr)
			}
		}
	}
	bytecode, err := hex.DecodeString(string(code))
	if err != nil {
		return nil, fmt.Errorf("%s: bytecode is not fully linked: %w", a.Name, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s: artifact has no creation bytecode (abstract contract or interface?)", a.Name)
	}
	return bytecode, nil
}

// ConstructorArgs converts resolved values to the Go types the constructor
// inputs expect.
func (a *Artifact) ConstructorArgs(values []any) ([]any, error) {
	args, err := CoerceArgs(a.ABI.Constructor.Inputs, values)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", a.Name, err)
	}
	return args, nil
}

// EncodeCall packs a method call, converting the arguments first.
func EncodeCall(contractABI *abi.ABI, method string, values ...any) ([]byte, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found in ABI", method)
	}
	args, err := CoerceArgs(m.Inputs, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return contractABI.Pack(method, args...)
}
