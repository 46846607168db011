package config

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// PyprojectFile is the Python packaging file that may carry a [tool.pyhl] table.
const PyprojectFile = "pyproject.toml"

// ErrNoToolTable is returned by FromPyproject when the file has no [tool.pyhl] table.
var ErrNoToolTable = errors.New("no [tool.pyhl] table")

// FromPyproject parses the [tool.pyhl] table of a pyproject.toml. Keys are the same
// as in .pyhl.yml.
func FromPyproject(data []byte) (*Config, error) {
	var doc struct {
		Tool struct {
			Pyhl map[string]any `toml:"pyhl"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if doc.Tool.Pyhl == nil {
		return nil, ErrNoToolTable
	}

	// Round-trip through YAML so both formats share one decoder and its
	// unknown-key checks.
	body, err := yaml.Marshal(doc.Tool.Pyhl)
	if err != nil {
		return nil, fmt.Errorf("convert [tool.pyhl]: %w", err)
	}
	return FromYAML(body)
}
