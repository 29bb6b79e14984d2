package bootstrap

import "os/exec"

// LookPathFunc resolves an executable on PATH.
type LookPathFunc func(file string) (string, error)

// Prober picks the package manager used to install dependencies. yarn is
// preferred when it is on PATH, npm is the fallback.
type Prober struct {
	LookPath LookPathFunc
}

// NewProber returns a Prober that searches the real PATH.
func NewProber() *Prober {
	return &Prober{LookPath: exec.LookPath}
}

// Probe never fails: a missing or unresolvable yarn selects npm.
func (p *Prober) Probe(verbose bool) InstallTool {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	if _, err := lookPath("yarn"); err == nil {
		return InstallTool{Command: "yarn", AddArgs: []string{"add", "--exact"}}
	}

	args := []string{"install", "--save-exact"}
	if verbose {
		args = append(args, "--verbose")
	}
	return InstallTool{Command: "npm", AddArgs: args}
}
