package bootstrap

import "github.com/melodrama/melodrama/internal/bundler"

// baseDependencies are always installed. The bundler runtime imports them.
var baseDependencies = append([]string(nil), bundler.RuntimePackages...)

const syntaxDependency = "prismjs"

// PrepareDependencies lists the packages to install for the given choices.
// The result has no duplicates and keeps insertion order.
func PrepareDependencies(choices Choices, themePrefix string) []string {
	if themePrefix == "" {
		themePrefix = DefaultThemePrefix
	}

	deps := make([]string, 0, len(baseDependencies)+2)
	seen := make(map[string]struct{}, cap(deps))
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		deps = append(deps, name)
	}

	for _, name := range baseDependencies {
		add(name)
	}
	if choices.Syntax {
		add(syntaxDependency)
	}
	if choices.Theme != "" && choices.Theme != NoTheme {
		add(themePrefix + choices.Theme)
	}

	return deps
}
