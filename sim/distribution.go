package sim

import (
	"fmt"
	"math/rand"
)

// Distribution type names accepted in DistSpec.Type.
const (
	DistExponential = "exponential"
	DistUniform     = "uniform"
	DistConstant    = "constant"
)

// DistSpec parameterizes a duration distribution. Mean is used by
// exponential and uniform, Value by constant.
type DistSpec struct {
	Type  string `yaml:"type"`
	Mean  int64  `yaml:"mean,omitempty"`
	Value int64  `yaml:"value,omitempty"`
}

// DurationSampler draws raw durations in ticks. A draw may be zero;
// callers that need strictly positive durations resample.
type DurationSampler interface {
	Sample(rng *rand.Rand) int64
}

// ExponentialSampler draws truncated exponential durations with the given mean.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() * s.mean)
}

// UniformSampler draws integers uniformly from [0, 2*mean).
type UniformSampler struct {
	mean int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	return rng.Int63n(2 * s.mean)
}

// ConstantSampler always returns the same fixed value.
// Used for deterministic scenarios (zero variance).
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return s.value
}

// NewDurationSampler creates a DurationSampler from a DistSpec.
// Every distribution must be able to produce a positive draw, otherwise
// resampling would never terminate.
func NewDurationSampler(spec DistSpec) (DurationSampler, error) {
	switch spec.Type {
	case DistExponential:
		if spec.Mean <= 0 {
			return nil, fmt.Errorf("exponential distribution requires a positive mean, got %d", spec.Mean)
		}
		return &ExponentialSampler{mean: float64(spec.Mean)}, nil
	case DistUniform:
		if spec.Mean <= 0 {
			return nil, fmt.Errorf("uniform distribution requires a positive mean, got %d", spec.Mean)
		}
		return &UniformSampler{mean: spec.Mean}, nil
	case DistConstant:
		if spec.Value <= 0 {
			return nil, fmt.Errorf("constant distribution requires a positive value, got %d", spec.Value)
		}
		return &ConstantSampler{value: spec.Value}, nil
	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
