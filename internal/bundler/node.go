package bundler

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/melodrama/melodrama/internal/internalexec"
)

// NodeConstraint is the Node.js range the generated configuration supports.
const NodeConstraint = ">= 14.0.0"

// NodeVersion runs `node --version` and returns its output.
func NodeVersion(ctx context.Context) (string, error) {
	res, err := internalexec.RunQuiet(exec.CommandContext(ctx, "node", "--version"))
	if err != nil {
		return "", fmt.Errorf("node is required but could not be run: %w", err)
	}
	return res.Stdout, nil
}

// CheckNodeVersion reports an error when raw (as printed by `node --version`)
// does not satisfy NodeConstraint.
func CheckNodeVersion(raw string) error {
	constraint, err := semver.NewConstraint(NodeConstraint)
	if err != nil {
		return err
	}

	version, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("unrecognized node version %q: %w", raw, err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf("node %s is not supported, need %s", version, NodeConstraint)
	}
	return nil
}

// RequireNode checks the installed Node.js version.
func RequireNode(ctx context.Context) error {
	raw, err := NodeVersion(ctx)
	if err != nil {
		return err
	}
	return CheckNodeVersion(raw)
}
