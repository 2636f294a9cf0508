package neat

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// defaultOptions seeds an Options value with the defaults that apply when a
// field is missing from the configuration document, per §6's "missing
// fields take defaults" rule.
func defaultOptions() Options {
	return Options{
		CyclesPerActivation: 1,
		ConnectionWeightScale: 5.0,
		DegreeOfParallelism: -1,
		NewConnectionTries:  20,
		EvolutionAlgorithm: EvolutionAlgorithmSettings{
			StatisticsMovingAverageLength: 10,
		},
	}
}

// LoadJSONOptions loads Options from a JSON document, the format named by
// the external-interfaces contract: field names are matched
// case-insensitively by encoding/json, unrecognized fields are ignored, and
// missing fields keep their default.
func LoadJSONOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read JSON options")
	}
	opts := defaultOptions()
	if err = json.Unmarshal(content, &opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from JSON")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return &opts, nil
}

// LoadYAMLOptions loads Options from a YAML document, a secondary
// configuration format carried over from the teacher's own loader.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read YAML options")
	}
	opts := defaultOptions()
	if err = yaml.Unmarshal(content, &opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return &opts, nil
}

// ReadOptionsFromFile reads Options from configFilePath, choosing the
// decoder by file extension: .yml/.yaml selects YAML, anything else JSON.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFilePath, ".yml") || strings.HasSuffix(configFilePath, ".yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadJSONOptions(configFile)
}

// OverrideStatisticsMovingAverageLength applies a command-line override that
// may arrive as a loosely-typed value (e.g. an interface{} sourced from a
// flag library or a secondary config layer), grounded on the teacher's use
// of github.com/spf13/cast in its own options readers for exactly this kind
// of post-load numeric override.
func (o *Options) OverrideStatisticsMovingAverageLength(v interface{}) error {
	n, err := cast.ToIntE(v)
	if err != nil {
		return errors.Wrapf(err, "failed to cast %v to int", v)
	}
	o.EvolutionAlgorithm.StatisticsMovingAverageLength = n
	return nil
}
