package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseFile reads a settings file and returns the keys it sets. Keys absent
// from the file are absent from the map so lower-precedence layers still apply.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, melodramaerrors.NewParseError(path, 0, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, melodramaerrors.NewParseError(path, extractLine(err), err)
	}

	for key := range values {
		if _, ok := knownKeys[key]; !ok {
			return nil, melodramaerrors.NewValidationError(key, "unknown setting", nil)
		}
	}

	return values, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
