package entities

// ImportStrategy names the build strategy a CI/CD import flow should pick
// for a repository, based on the artifacts found in it.
type ImportStrategy string

const (
	StrategyDevfile    ImportStrategy = "devfile"
	StrategyDockerfile ImportStrategy = "dockerfile"
	StrategyGeneric    ImportStrategy = "generic"
)

// InspectionReport aggregates the results of a full repository probe.
type InspectionReport struct {
	Provider           string         `yaml:"provider"`
	Repository         string         `yaml:"repository"`
	Status             RepoStatus     `yaml:"status"`
	Branches           []string       `yaml:"branches,omitempty"`
	Languages          []string       `yaml:"languages,omitempty"`
	Tags               []string       `yaml:"tags,omitempty"`
	HasDockerfile      bool           `yaml:"hasDockerfile"`
	HasDevfile         bool           `yaml:"hasDevfile"`
	HasTektonFolder    bool           `yaml:"hasTektonFolder"`
	HasPackageManifest bool           `yaml:"hasPackageManifest"`
	Strategy           ImportStrategy `yaml:"strategy,omitempty"`
}
