package searchlight

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/PuddleJumper2018/rsatoolbox/pkg/config"
	"github.com/PuddleJumper2018/rsatoolbox/pkg/rdm"
	"github.com/PuddleJumper2018/rsatoolbox/pkg/volume"
)

// Pipeline runs the config-driven searchlight analysis: enumerating
// searchlight centers over a mask, then computing one RDM per center
// from an observation matrix. Model evaluation stays a separate step
// (EvaluateModels) since its evaluation function and models are supplied
// by the caller.
type Pipeline struct {
	cfg  *config.Config
	mask *volume.Volume

	// centers and neighbors cache the enumeration result between steps.
	centers   []int
	neighbors [][]int
}

// NewPipeline creates a pipeline for the given mask. A nil cfg uses the
// default configuration.
func NewPipeline(cfg *config.Config, mask *volume.Volume) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{cfg: cfg, mask: mask}
}

// Centers returns the flat center indices after Run has enumerated them.
func (p *Pipeline) Centers() []int {
	return p.centers
}

// NumWorkers returns the configured parallelism degree for model
// evaluation.
func (p *Pipeline) NumWorkers() int {
	return p.cfg.Searchlight.NumWorkers
}

// Run executes the searchlight pipeline on the observation matrix.
//
// data2D has shape n_observations x n_channels, where channel i is the
// voxel at flat mask index i; events assigns each observation to a
// condition. The returned collection holds one condensed RDM per
// accepted searchlight center.
func (p *Pipeline) Run(data2D *mat.Dense, events []int) (*rdm.RDMs, error) {
	if p.cfg.Output.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	method, err := rdm.ParseMethod(p.cfg.RDM.Method)
	if err != nil {
		return nil, err
	}

	// Step 1: Enumerate searchlight centers over the mask
	logrus.Infof("step 1: enumerating searchlight centers...")
	p.centers, p.neighbors, err = Enumerate(p.mask, p.cfg.Searchlight.Radius, p.cfg.Searchlight.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate searchlights: %w", err)
	}
	if len(p.centers) == 0 {
		return nil, fmt.Errorf("no searchlight center satisfied the fill threshold %g",
			p.cfg.Searchlight.Threshold)
	}

	// Step 2: Compute one RDM per center
	logrus.Infof("step 2: calculating searchlight RDMs...")
	slRDMs, err := ComputeRDMs(data2D, p.centers, p.neighbors, events, method,
		WithChunkThreshold(p.cfg.Searchlight.ChunkThreshold),
		WithChunkCount(p.cfg.Searchlight.ChunkCount))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate searchlight RDMs: %w", err)
	}
	return slRDMs, nil
}
