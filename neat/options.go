package neat

import (
	"github.com/pkg/errors"

	neatmath "github.com/kestrelevo/neatcore/neat/math"
)

// EpochExecutorType selects how an epoch's reproduction/evaluation work is
// distributed across workers.
type EpochExecutorType string

const (
	// SequentialExecutorType runs every generation step single-threaded.
	SequentialExecutorType EpochExecutorType = "sequential"
	// ParallelExecutorType data-parallelizes fitness evaluation across
	// Options.DegreeOfParallelism partitions.
	ParallelExecutorType EpochExecutorType = "parallel"
)

// ComplexityRegulationMode is the tag of the complexity-regulation
// strategy's closed set of variants.
type ComplexityRegulationMode string

const (
	// AbsoluteComplexityRegulation switches to simplify mode once mean
	// population complexity exceeds ComplexityCeiling, and back to
	// complexify mode only after MinSimplificationGenerations have passed.
	AbsoluteComplexityRegulation ComplexityRegulationMode = "absolute"
	// RelativeComplexityRegulation tracks a moving ComplexityCeiling
	// relative to the highest mean complexity seen so far.
	RelativeComplexityRegulation ComplexityRegulationMode = "relative"
)

// ComplexityRegulationStrategy is the tagged variant named by the
// experiment-factory contract.
type ComplexityRegulationStrategy struct {
	Mode                         ComplexityRegulationMode `json:"mode" yaml:"mode"`
	ComplexityCeiling            float64                  `json:"complexity_ceiling" yaml:"complexity_ceiling"`
	MinSimplificationGenerations int                      `json:"min_simplification_generations" yaml:"min_simplification_generations"`
}

// AsexualReproductionSettings holds the four mutation-operator
// probabilities, which must sum to 1.
type AsexualReproductionSettings struct {
	MutateWeightProb           float64 `json:"mutate_weight_prob" yaml:"mutate_weight_prob"`
	MutateAddNodeProb          float64 `json:"mutate_add_node_prob" yaml:"mutate_add_node_prob"`
	MutateAddConnectionProb    float64 `json:"mutate_add_connection_prob" yaml:"mutate_add_connection_prob"`
	MutateDeleteConnectionProb float64 `json:"mutate_delete_connection_prob" yaml:"mutate_delete_connection_prob"`
}

// Sum returns the total of the four probabilities.
func (a AsexualReproductionSettings) Sum() float64 {
	return a.MutateWeightProb + a.MutateAddNodeProb + a.MutateAddConnectionProb + a.MutateDeleteConnectionProb
}

// SexualReproductionSettings configures uniform crossover.
type SexualReproductionSettings struct {
	SecondaryParentGeneProbability float64 `json:"secondary_parent_gene_probability" yaml:"secondary_parent_gene_probability"`
}

// EvolutionAlgorithmSettings configures the generational loop (§4.6).
type EvolutionAlgorithmSettings struct {
	SpeciesCount                  int     `json:"species_count" yaml:"species_count"`
	ElitismProportion             float64 `json:"elitism_proportion" yaml:"elitism_proportion"`
	SelectionProportion           float64 `json:"selection_proportion" yaml:"selection_proportion"`
	OffspringAsexualProportion    float64 `json:"offspring_asexual_proportion" yaml:"offspring_asexual_proportion"`
	OffspringSexualProportion     float64 `json:"offspring_sexual_proportion" yaml:"offspring_sexual_proportion"`
	InterspeciesMatingProportion  float64 `json:"interspecies_mating_proportion" yaml:"interspecies_mating_proportion"`
	StatisticsMovingAverageLength int     `json:"statistics_moving_average_length" yaml:"statistics_moving_average_length"`
}

// Options is the population-wide, run-immutable configuration described by
// the experiment-factory and evaluation-scheme contracts (§6). It is the
// direct analogue of the teacher's neat.Options, re-keyed to this system's
// NEAT-core data model.
type Options struct {
	IsAcyclic               bool   `json:"is_acyclic" yaml:"is_acyclic"`
	CyclesPerActivation     int    `json:"cycles_per_activation" yaml:"cycles_per_activation"`
	ActivationFunctionName  string `json:"activation_fn_name" yaml:"activation_fn_name"`
	PopulationSize          int    `json:"population_size" yaml:"population_size"`
	InitialInterconnections float64 `json:"initial_interconnections_proportion" yaml:"initial_interconnections_proportion"`
	ConnectionWeightScale   float64 `json:"connection_weight_scale" yaml:"connection_weight_scale"`

	EvolutionAlgorithm EvolutionAlgorithmSettings `json:"evolution_algorithm_settings" yaml:"evolution_algorithm_settings"`
	ReproductionAsexual AsexualReproductionSettings `json:"reproduction_asexual_settings" yaml:"reproduction_asexual_settings"`
	ReproductionSexual  SexualReproductionSettings  `json:"reproduction_sexual_settings" yaml:"reproduction_sexual_settings"`
	ComplexityRegulation ComplexityRegulationStrategy `json:"complexity_regulation_strategy" yaml:"complexity_regulation_strategy"`

	EnableHardwareAcceleratedNeuralNets           bool `json:"enable_hardware_accelerated_neural_nets" yaml:"enable_hardware_accelerated_neural_nets"`
	EnableHardwareAcceleratedActivationFunctions  bool `json:"enable_hardware_accelerated_activation_functions" yaml:"enable_hardware_accelerated_activation_functions"`

	DegreeOfParallelism int    `json:"degree_of_parallelism" yaml:"degree_of_parallelism"`
	EpochExecutorType   EpochExecutorType `json:"epoch_executor" yaml:"epoch_executor"`

	// NewConnectionTries bounds add-connection's retry loop when a
	// candidate pair is already present or (under an acyclic model) would
	// close a cycle.
	NewConnectionTries int `json:"new_connection_tries" yaml:"new_connection_tries"`

	LogLevel string `json:"log_level" yaml:"log_level"`

	activationType neatmath.NodeActivationType
}

// ActivationType returns the resolved activation function type; valid only
// after Validate has succeeded.
func (o *Options) ActivationType() neatmath.NodeActivationType {
	return o.activationType
}

// NeatDegreeOfParallelism resolves DegreeOfParallelism, turning -1 into the
// logical CPU count as described by the experiment-factory contract.
func (o *Options) NeatDegreeOfParallelism(numCPU int) int {
	if o.DegreeOfParallelism == -1 {
		return numCPU
	}
	return o.DegreeOfParallelism
}

const probabilitySumEpsilon = 1e-6

// Validate performs the configuration-error checks from §7: proportions
// must lie in [0,1] and the relevant groups must sum to 1, counts must be
// positive, the degree of parallelism must be -1 or >= 1, and the
// activation function name must resolve in the registry.
func (o *Options) Validate() error {
	if o.PopulationSize <= 0 {
		return errors.Errorf("population_size must be positive, got %d", o.PopulationSize)
	}
	if o.EvolutionAlgorithm.SpeciesCount <= 0 {
		return errors.Errorf("species_count must be positive, got %d", o.EvolutionAlgorithm.SpeciesCount)
	}
	if o.ConnectionWeightScale <= 0 {
		return errors.Errorf("connection_weight_scale must be positive, got %f", o.ConnectionWeightScale)
	}
	if o.IsAcyclic {
		o.CyclesPerActivation = 1
	} else if o.CyclesPerActivation <= 0 {
		return errors.Errorf("cycles_per_activation must be positive for a cyclic model, got %d", o.CyclesPerActivation)
	}
	if o.DegreeOfParallelism != -1 && o.DegreeOfParallelism < 1 {
		return errors.Errorf("degree_of_parallelism must be -1 or >= 1, got %d", o.DegreeOfParallelism)
	}
	if o.NewConnectionTries <= 0 {
		o.NewConnectionTries = 20
	}

	if err := validateSumTo1("reproduction_asexual_settings",
		o.ReproductionAsexual.MutateWeightProb,
		o.ReproductionAsexual.MutateAddNodeProb,
		o.ReproductionAsexual.MutateAddConnectionProb,
		o.ReproductionAsexual.MutateDeleteConnectionProb); err != nil {
		return err
	}
	if err := validateSumTo1("offspring proportions",
		o.EvolutionAlgorithm.OffspringAsexualProportion,
		o.EvolutionAlgorithm.OffspringSexualProportion); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"elitism_proportion":              o.EvolutionAlgorithm.ElitismProportion,
		"selection_proportion":            o.EvolutionAlgorithm.SelectionProportion,
		"interspecies_mating_proportion":  o.EvolutionAlgorithm.InterspeciesMatingProportion,
		"secondary_parent_gene_probability": o.ReproductionSexual.SecondaryParentGeneProbability,
	} {
		if v < 0 || v > 1 {
			return errors.Errorf("%s must be within [0,1], got %f", name, v)
		}
	}

	switch o.ComplexityRegulation.Mode {
	case AbsoluteComplexityRegulation, RelativeComplexityRegulation:
	case "":
		o.ComplexityRegulation.Mode = AbsoluteComplexityRegulation
	default:
		return errors.Errorf("unknown complexity_regulation_strategy mode: %s", o.ComplexityRegulation.Mode)
	}

	if o.EpochExecutorType == "" {
		o.EpochExecutorType = ParallelExecutorType
	}

	if o.ActivationFunctionName == "" {
		o.ActivationFunctionName = "SigmoidSteepened"
	}
	activationType, err := neatmath.NodeActivators.ActivationTypeFromName(o.ActivationFunctionName)
	if err != nil {
		return errors.Wrap(err, "invalid activation_fn_name")
	}
	o.activationType = activationType

	if o.LogLevel == "" {
		o.LogLevel = string(LogLevelInfo)
	}
	if err := InitLogger(o.LogLevel); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	return nil
}

func validateSumTo1(name string, values ...float64) error {
	total := 0.0
	for _, v := range values {
		if v < 0 || v > 1 {
			return errors.Errorf("%s: every proportion must be within [0,1], got %f", name, v)
		}
		total += v
	}
	if total < 1-probabilitySumEpsilon || total > 1+probabilitySumEpsilon {
		return errors.Errorf("%s: proportions must sum to 1, got %f", name, total)
	}
	return nil
}
