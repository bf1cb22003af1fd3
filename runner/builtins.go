package runner

import (
	"strings"

	"github.com/software-mansion/casm-test-runner/utils"
)

// builtinSlotNames is the fixed, ordered set of VM-injected parameter types that are never part of a case's fuzz
// signature. A parameter whose GenericTypeID matches one of these (by debug-name suffix) is stripped before the
// Dispatcher decides deterministic-vs-fuzzed.
var builtinSlotNames = []string{
	"Pedersen",
	"RangeCheck",
	"Bitwise",
	"EcOp",
	"Poseidon",
	"SegmentArena",
	"GasBuiltin",
	"System",
}

// isBuiltinSlot reports whether a parameter's generic type id names one of the fixed builtin slots.
func isBuiltinSlot(genericTypeID string) bool {
	for _, name := range builtinSlotNames {
		if strings.HasSuffix(genericTypeID, name) {
			return true
		}
	}
	return false
}

// genericTypeName extracts the bare type name from a fully-qualified generic type id, e.g.
// "core::integer::u32" -> "u32". Ids with no path separator are returned unchanged.
func genericTypeName(genericTypeID string) string {
	if idx := strings.LastIndex(genericTypeID, "::"); idx >= 0 {
		return genericTypeID[idx+2:]
	}
	return genericTypeID
}

// fuzzableParams returns the subset of params that are not builtin slots, preserving order. This is the
// "parameter_types minus known builtin slots" computation from the Dispatcher's contract.
func fuzzableParams(params []ParamType) []ParamType {
	return utils.SliceWhere(params, func(p ParamType) bool {
		return !isBuiltinSlot(p.GenericTypeID)
	})
}
