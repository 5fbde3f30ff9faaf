package landmark

import (
	"os"

	"gopkg.in/yaml.v3"
)

// BuildOptions is the YAML-loadable tuning surface for CreateLandmarks,
// grounded on ttpr0-go-routing/config.go's tagged-struct-plus-yaml.v3 idiom.
// Zero values are not valid on their own; DefaultBuildOptions supplies the
// defaults §4.6/§4.9 name and callers override individual fields.
type BuildOptions struct {
	K                     int32   `yaml:"k"`
	MinimumNodes          int     `yaml:"minimum_nodes"`
	MaxWeight             float64 `yaml:"max_weight"`
	ActiveCount           int     `yaml:"active_count"`
	RequireBothDirections bool    `yaml:"require_both_directions"`
}

// DefaultBuildOptions returns §4.6's default minimumNodes
// (min(coreNodes/2, 10_000)) alongside the other defaults named across
// §4.1/§4.7/§4.9: K=16, MaxWeight=0 (estimate from the graph bbox),
// ActiveCount=2, RequireBothDirections=false.
func DefaultBuildOptions(coreNodeCount int32) BuildOptions {
	minimumNodes := int(coreNodeCount / 2)
	if minimumNodes > 10_000 {
		minimumNodes = 10_000
	}
	return BuildOptions{
		K:                     16,
		MinimumNodes:          minimumNodes,
		MaxWeight:             0,
		ActiveCount:           2,
		RequireBothDirections: false,
	}
}

// LoadBuildOptions reads a YAML file into a BuildOptions, following
// ttpr0-go-routing/config.go's ReadConfig style: read the whole file, then
// yaml.Unmarshal into the tagged struct.
func LoadBuildOptions(path string) (BuildOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildOptions{}, err
	}
	var opts BuildOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return BuildOptions{}, err
	}
	return opts, nil
}
