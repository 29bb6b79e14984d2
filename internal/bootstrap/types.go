package bootstrap

// NoTheme is the sentinel theme meaning "no theme selected". It is always the
// first entry of a ThemeList.
const NoTheme = "none"

// DefaultThemePrefix is the npm naming convention for Spectacle themes.
const DefaultThemePrefix = "spectacle-theme-"

// Request describes one bootstrap run.
type Request struct {
	TargetDir string
	Verbose   bool
}

// ThemeList is an ordered list of theme names with NoTheme first.
type ThemeList []string

// Choices are the user's answers to the init questions.
type Choices struct {
	Theme  string
	Syntax bool
}

// InstallTool describes the package manager selected by the Prober.
type InstallTool struct {
	Command string
	AddArgs []string
}

// InstallPlan is the full package manager invocation for a run.
// Toolchain holds the bundler packages the start and build commands need;
// they are installed after Dependencies in the same invocation.
type InstallPlan struct {
	Command      string
	BaseArgs     []string
	Dependencies []string
	Toolchain    []string
}

// NewInstallPlan combines the probed tool with the dependency list.
func NewInstallPlan(tool InstallTool, dependencies []string) InstallPlan {
	return InstallPlan{
		Command:      tool.Command,
		BaseArgs:     append([]string(nil), tool.AddArgs...),
		Dependencies: append([]string(nil), dependencies...),
	}
}

// WithToolchain returns a copy of p that also installs pkgs.
func (p InstallPlan) WithToolchain(pkgs []string) InstallPlan {
	p.Toolchain = append([]string(nil), pkgs...)
	return p
}

// Packages returns Dependencies followed by the Toolchain entries not already
// listed.
func (p InstallPlan) Packages() []string {
	pkgs := make([]string, 0, len(p.Dependencies)+len(p.Toolchain))
	seen := make(map[string]struct{}, cap(pkgs))
	for _, list := range [][]string{p.Dependencies, p.Toolchain} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			pkgs = append(pkgs, name)
		}
	}
	return pkgs
}

// Args returns the arguments passed to Command.
func (p InstallPlan) Args() []string {
	return append(append([]string(nil), p.BaseArgs...), p.Packages()...)
}
