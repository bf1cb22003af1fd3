package runner

import (
	"math/big"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/software-mansion/casm-test-runner/utils"
)

// supportedArgTypes is the fixed set of parameter type names the Fuzzer knows how to sample. A felt252 is sampled
// as an unsigned 252-bit integer; the signed/unsigned integer family mirrors the widths Cairo exposes.
var supportedArgTypes = map[string]argSampler{
	"felt252": {signed: false, bitLength: 252},
	"bool":    {signed: false, bitLength: 1},
	"u8":      {signed: false, bitLength: 8},
	"u16":     {signed: false, bitLength: 16},
	"u32":     {signed: false, bitLength: 32},
	"u64":     {signed: false, bitLength: 64},
	"u128":    {signed: false, bitLength: 128},
	"u256":    {signed: false, bitLength: 256},
	"i8":      {signed: true, bitLength: 8},
	"i16":     {signed: true, bitLength: 16},
	"i32":     {signed: true, bitLength: 32},
	"i64":     {signed: true, bitLength: 64},
	"i128":    {signed: true, bitLength: 128},
}

// argSampler describes how to bound-sample one supported argument type.
type argSampler struct {
	signed    bool
	bitLength int
}

// Fuzzer is a deterministic pseudo-random generator over a typed argument vector. Given a seed and a list of
// parameter type descriptors, it yields a bounded lazy sequence of concrete argument tuples.
type Fuzzer struct {
	random   *rand.Rand
	samplers []argSampler
	runs     uint32
	produced uint32
}

// NewFuzzer constructs a Fuzzer seeded deterministically from seed. It fails with a CaseConfigurationError if any
// type name in argTypeNames is not in the supported set.
func NewFuzzer(seed uint64, runs uint32, argTypeNames []string) (*Fuzzer, error) {
	samplers := make([]argSampler, len(argTypeNames))
	for i, name := range argTypeNames {
		sampler, ok := supportedArgTypes[name]
		if !ok {
			return nil, newCaseConfigurationError(errors.Errorf("unsupported fuzz argument type %q", name))
		}
		samplers[i] = sampler
	}

	return &Fuzzer{
		random:   rand.New(rand.NewSource(int64(seed))),
		samplers: samplers,
		runs:     runs,
	}, nil
}

// NextArgs returns the next argument tuple in the deterministic sequence. It is infallible and pure with respect to
// the Fuzzer's internal counter state: identical (seed, type list) yields identical traces regardless of which
// goroutine calls it, so long as calls are serialized on the owning Fuzzer (it is owned by exactly one campaign
// driver invocation and is never shared across goroutines).
func (f *Fuzzer) NextArgs() []any {
	args := make([]any, len(f.samplers))
	for i, sampler := range f.samplers {
		args[i] = f.sampleOne(sampler)
	}
	f.produced++
	return args
}

// sampleOne draws one bounded value for the given sampler, uniform over the full domain of the fixed-width integer
// it describes.
func (f *Fuzzer) sampleOne(sampler argSampler) any {
	if sampler.bitLength == 1 {
		return f.random.Uint32()%2 == 0
	}

	byteLen := (sampler.bitLength + 7) / 8
	b := make([]byte, byteLen)
	f.random.Read(b)

	raw := new(big.Int).SetBytes(b)
	return utils.ConstrainIntegerToBitLength(raw, sampler.signed, sampler.bitLength)
}
