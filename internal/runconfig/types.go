package runconfig

import "github.com/DjordjeVuckovic/ir-explorer/internal/domain"

type File struct {
	MaxDocCharLength int         `yaml:"max-doc-char-length"`
	Runs             []RunConfig `yaml:"runs"`

	// Dir is the directory relative source paths are resolved against.
	Dir string `yaml:"-"`
}

type RunConfig struct {
	Info            domain.RunInfo `yaml:"run-info"`
	Qrels           string         `yaml:"qrels"`
	ClusterStats    string         `yaml:"cluster-stats"`
	Queries         string         `yaml:"queries"`
	Collection      string         `yaml:"collection"`
	SecondaryOutput string         `yaml:"secondary-output"`

	Kind domain.ScoreType `yaml:"-"`
}
