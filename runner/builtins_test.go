package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuzzableParams_StripsBuiltinSlots(t *testing.T) {
	params := []ParamType{
		{GenericTypeID: "core::pedersen::Pedersen"},
		{GenericTypeID: "core::RangeCheck"},
		{GenericTypeID: "core::integer::u32"},
		{GenericTypeID: "core::gas::GasBuiltin"},
		{GenericTypeID: "core::bool"},
	}

	fuzzable := fuzzableParams(params)
	expected := []string{"core::integer::u32", "core::bool"}
	assert.Len(t, fuzzable, len(expected))
	for i, p := range fuzzable {
		assert.Equal(t, expected[i], p.GenericTypeID)
	}
}

func TestFuzzableParams_EmptyWhenOnlyBuiltins(t *testing.T) {
	params := []ParamType{
		{GenericTypeID: "core::pedersen::Pedersen"},
		{GenericTypeID: "core::starknet::System"},
	}
	assert.Empty(t, fuzzableParams(params))
}

func TestGenericTypeName(t *testing.T) {
	assert.Equal(t, "u32", genericTypeName("core::integer::u32"))
	assert.Equal(t, "felt252", genericTypeName("core::felt252"))
	assert.Equal(t, "u8", genericTypeName("u8"))
}

func TestFuzzableParams_PreservesOrder(t *testing.T) {
	params := []ParamType{
		{GenericTypeID: "core::integer::u8"},
		{GenericTypeID: "core::RangeCheck"},
		{GenericTypeID: "core::integer::u16"},
	}
	fuzzable := fuzzableParams(params)
	assert.Len(t, fuzzable, 2)
	assert.Equal(t, "core::integer::u8", fuzzable[0].GenericTypeID)
	assert.Equal(t, "core::integer::u16", fuzzable[1].GenericTypeID)
}
