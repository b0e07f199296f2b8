package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim"
)

// ProcgenSpec is the YAML form of a process generation file.
//
//	types:
//	  - name: interactive
//	    cpu: 40
//	    burst: 8
//	    interarrival: 30
//	    io: 20
//	    cpu_dist: {type: constant, value: 40}
type ProcgenSpec struct {
	Types []TypeSpec `yaml:"types"`
}

// TypeSpec is one process type of a ProcgenSpec. The four means are in ticks.
// The *_dist fields optionally replace the default distribution of a draw.
type TypeSpec struct {
	Name         string `yaml:"name"`
	CPU          int64  `yaml:"cpu"`
	Burst        int64  `yaml:"burst"`
	Interarrival int64  `yaml:"interarrival"`
	IO           int64  `yaml:"io"`

	CPUDist     *sim.DistSpec `yaml:"cpu_dist,omitempty"`
	BurstDist   *sim.DistSpec `yaml:"burst_dist,omitempty"`
	ArrivalDist *sim.DistSpec `yaml:"interarrival_dist,omitempty"`
	IODist      *sim.DistSpec `yaml:"io_dist,omitempty"`
}

// LoadProcgenFile reads process types from path. Files ending in .yaml or
// .yml are parsed as a ProcgenSpec; anything else as the legacy text format.
func LoadProcgenFile(path string) ([]sim.ProcessType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading procgen file: %w", err)
	}
	var types []sim.ProcessType
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		types, err = ParseProcgenYAML(data)
	default:
		types, err = ParseLegacy(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing procgen file %s: %w", path, err)
	}
	logrus.Debugf("Loaded %d process types from %s", len(types), path)
	return types, nil
}

// ParseLegacy reads the whitespace-separated text format: the number of
// process types N, followed by N records of
// "name cpu burst interarrival io". Line breaks carry no meaning.
func ParseLegacy(r io.Reader) ([]sim.ProcessType, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of input, expected %s", what)
		}
		return sc.Text(), nil
	}
	nextInt := func(what string) (int64, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not an integer", what, tok)
		}
		if v < 0 {
			return 0, fmt.Errorf("%s must be non-negative, got %d", what, v)
		}
		return v, nil
	}

	n, err := nextInt("process type count")
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("process type count must be at least 1")
	}
	types := make([]sim.ProcessType, 0, min(n, 64))
	for i := 0; i < int(n); i++ {
		var ts TypeSpec
		if ts.Name, err = next(fmt.Sprintf("name of type %d", i)); err != nil {
			return nil, err
		}
		fields := []struct {
			what string
			dst  *int64
		}{
			{"cpu", &ts.CPU},
			{"burst", &ts.Burst},
			{"interarrival", &ts.Interarrival},
			{"io", &ts.IO},
		}
		for _, f := range fields {
			if *f.dst, err = nextInt(fmt.Sprintf("%s %s time", ts.Name, f.what)); err != nil {
				return nil, err
			}
		}
		types = append(types, ts.processType(i))
	}
	return types, nil
}

// ParseProcgenYAML decodes a ProcgenSpec strictly: unknown keys are rejected.
func ParseProcgenYAML(data []byte) ([]sim.ProcessType, error) {
	var spec ProcgenSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec.ProcessTypes(), nil
}

// Validate checks the fields the simulator cannot: names and signs.
// Distribution parameters are checked by sim.Config.Validate.
func (s *ProcgenSpec) Validate() error {
	if len(s.Types) == 0 {
		return fmt.Errorf("at least one process type is required")
	}
	for i, t := range s.Types {
		if t.Name == "" {
			return fmt.Errorf("types[%d]: name is required", i)
		}
		if t.CPU < 0 || t.Burst < 0 || t.Interarrival < 0 || t.IO < 0 {
			return fmt.Errorf("types[%d] %q: mean times must be non-negative", i, t.Name)
		}
	}
	return nil
}

// ProcessTypes converts the spec into simulator process types, indexed by
// their position in the file.
func (s *ProcgenSpec) ProcessTypes() []sim.ProcessType {
	out := make([]sim.ProcessType, len(s.Types))
	for i, t := range s.Types {
		out[i] = t.processType(i)
	}
	return out
}

func (t TypeSpec) processType(idx int) sim.ProcessType {
	return sim.ProcessType{
		Name:             t.Name,
		Index:            idx,
		MeanCPU:          t.CPU,
		MeanBurst:        t.Burst,
		MeanInterarrival: t.Interarrival,
		MeanIO:           t.IO,
		CPUDist:          t.CPUDist,
		BurstDist:        t.BurstDist,
		ArrivalDist:      t.ArrivalDist,
		IODist:           t.IODist,
	}
}
