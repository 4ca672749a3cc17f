package models

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythsdao/myths-deploy/internal/domain"
)

var deployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestPredictAddress(t *testing.T) {
	assert.Equal(t, crypto.CreateAddress(deployer, 16), PredictAddress(deployer, 10, 6))
	assert.Equal(t, PredictAddress(deployer, 10, 6), PredictAddress(deployer, 16, 0))

	predictions := PredictAddresses(deployer, 3, map[string]uint64{"A": 0, "B": 2})
	assert.Equal(t, crypto.CreateAddress(deployer, 3), predictions["A"])
	assert.Equal(t, crypto.CreateAddress(deployer, 5), predictions["B"])
}

func TestResolveContext(t *testing.T) {
	registry := NewRegistry()
	a := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, registry.Put(&DeployedContract{Name: "A", Address: a}))
	rc := NewResolveContext(registry, Predictions{"P": deployer})

	t.Run("deferred reads the registry at resolve time", func(t *testing.T) {
		values, err := ResolveArgs([]Arg{Lit(uint64(7)), AddressOf("A")}, rc)
		require.NoError(t, err)
		assert.Equal(t, []any{uint64(7), a}, values)
		assert.Empty(t, rc.Unresolved())
	})

	t.Run("missing entry resolves to zero and is recorded", func(t *testing.T) {
		rc.Reset()
		values, err := ResolveArgs([]Arg{AddressOf("B"), AddressOf("B")}, rc)
		require.NoError(t, err)
		assert.Equal(t, []any{common.Address{}, common.Address{}}, values)
		assert.Equal(t, []string{"B"}, rc.Unresolved())
		rc.Reset()
		assert.Empty(t, rc.Unresolved())
	})

	t.Run("predictions", func(t *testing.T) {
		v, err := PredictedAddressOf("P").Resolve(rc)
		require.NoError(t, err)
		assert.Equal(t, deployer, v)

		_, err = ResolveArgs([]Arg{PredictedAddressOf("Q")}, rc)
		assert.EqualError(t, err, "argument 0: no address prediction for Q")
	})

	t.Run("library links", func(t *testing.T) {
		links, err := LibraryLinks{"Lib": AddressOf("A")}.Resolve(rc)
		require.NoError(t, err)
		assert.Equal(t, map[string]common.Address{"Lib": a}, links)

		_, err = LibraryLinks{"Lib": Lit("0xaa")}.Resolve(rc)
		assert.ErrorContains(t, err, "resolved to string, want address")
	})
}

func TestMatchesPrediction(t *testing.T) {
	predicted := crypto.CreateAddress(deployer, 4)
	validator := MatchesPrediction("Proxy")

	registry := NewRegistry()
	require.NoError(t, registry.Put(&DeployedContract{Name: "Proxy", Address: predicted}))
	assert.NoError(t, validator(NewResolveContext(registry, Predictions{"Proxy": predicted})))

	other := NewRegistry()
	require.NoError(t, other.Put(&DeployedContract{Name: "Proxy", Address: crypto.CreateAddress(deployer, 5)}))
	err := validator(NewResolveContext(other, Predictions{"Proxy": predicted}))
	var mismatch domain.AddressMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "Proxy", mismatch.Contract)

	err = validator(NewResolveContext(NewRegistry(), Predictions{"Proxy": predicted}))
	assert.ErrorIs(t, err, domain.ErrMissingDeployment)
}

func TestPlan(t *testing.T) {
	plan := NewPlan(
		ContractSpec{Name: "Lib"},
		ContractSpec{Name: "Impl", Libraries: LibraryLinks{"Lib": AddressOf("Lib")}},
		ContractSpec{Name: "Proxy", Args: []Arg{AddressOf("Impl")}, Predicted: true},
	)
	require.NoError(t, plan.Validate())
	assert.Equal(t, map[string]uint64{"Proxy": 2}, plan.PredictionOffsets())
	assert.Equal(t, []string{"Lib", "Impl", "Proxy"}, plan.Names())

	tests := []struct {
		name  string
		specs []ContractSpec
	}{
		{"unnamed", []ContractSpec{{}}},
		{"duplicate", []ContractSpec{{Name: "A"}, {Name: "A"}}},
		{"reads ahead", []ContractSpec{{Name: "A", Args: []Arg{AddressOf("B")}}, {Name: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NewPlan(tt.specs...).Validate(), domain.ErrInvalidPlan)
		})
	}

	assert.Equal(t, "MythsToken", ContractSpec{Name: "MythsToken"}.ArtifactName())
	assert.Equal(t, "WETH9", ContractSpec{Name: "WETH", Artifact: "WETH9"}.ArtifactName())
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Put(&DeployedContract{
		Name:                 "Token",
		Address:              common.HexToAddress("0x01"),
		ConstructorArguments: []any{big.NewInt(1000), []byte{0xca, 0xfe}},
		Instance:             &Instance{TxHash: common.HexToHash("0xabc"), BlockNumber: 12},
	}))
	require.NoError(t, registry.Put(&DeployedContract{Name: "Auction", Address: common.HexToAddress("0x02")}))
	assert.ErrorIs(t, registry.Put(&DeployedContract{Name: "Token"}), domain.ErrDuplicateContract)

	_, err := registry.Address("DAO")
	assert.ErrorIs(t, err, domain.ErrMissingDeployment)

	data, err := json.Marshal(registry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"constructorArguments":["1000","0xcafe"]`)

	decoded := NewRegistry()
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, []string{"Token", "Auction"}, decoded.Names())
	token, ok := decoded.Get("Token")
	require.True(t, ok)
	assert.Equal(t, uint64(12), token.BlockNumber())
	assert.Equal(t, common.HexToHash("0xabc"), token.TransactionHash())

	assert.Error(t, json.Unmarshal([]byte(`[]`), decoded))
}

func TestCoerceValue(t *testing.T) {
	newType := func(name string) abi.Type {
		typ, err := abi.NewType(name, "", nil)
		require.NoError(t, err)
		return typ
	}

	v, err := CoerceValue(newType("uint256"), "1000")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), v)

	v, err = CoerceValue(newType("uint8"), float64(2))
	require.NoError(t, err)
	assert.Equal(t, uint8(2), v)

	v, err = CoerceValue(newType("int8"), -128)
	require.NoError(t, err)
	assert.Equal(t, int8(-128), v)

	_, err = CoerceValue(newType("uint8"), 300)
	assert.EqualError(t, err, "value 300 overflows 8 bits")

	_, err = CoerceValue(newType("uint256"), -1)
	assert.ErrorContains(t, err, "negative value")

	v, err = CoerceValue(newType("address[]"), []string{deployer.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []common.Address{deployer}, v)

	_, err = CoerceValue(newType("address"), "0x1234")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	v, err = CoerceValue(newType("bytes"), "0x")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "1.0", FormatEther(big.NewInt(1e18)))
	assert.Equal(t, "0.05", FormatEther(big.NewInt(5e16)))
	assert.Equal(t, "0.0", FormatEther(nil))
	assert.Equal(t, "-1.5", FormatUnits(big.NewInt(-15), 1))

	assert.Equal(t, big.NewInt(30e9), GweiToWei(30))
	assert.Equal(t, int64(2), WeiToGweiRounded(big.NewInt(1_500_000_000)))
	assert.Equal(t, int64(1), WeiToGweiRounded(big.NewInt(1_499_999_999)))

	cost := DeploymentCost(21000, GweiToWei(100))
	assert.Equal(t, "0.0021", FormatEther(cost))
}

func TestParseDirective(t *testing.T) {
	d, err := ParseDirective(" skip ")
	require.NoError(t, err)
	assert.Equal(t, DirectiveSkip, d)

	_, err = ParseDirective("retry")
	assert.EqualError(t, err, `unknown directive "retry"`)
}
