// AngelaMos | 2026
// deployer.go

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/inventory-api/internal/config"
)

type Deployer interface {
	Deploy(ctx context.Context) error
}

// CommandDeployer runs each configured command in the repository
// directory, stopping at the first failure.
type CommandDeployer struct {
	dir      string
	commands []string
	timeout  time.Duration
}

func NewCommandDeployer(cfg config.WebhookConfig) *CommandDeployer {
	return &CommandDeployer{
		dir:      cfg.RepoDir,
		commands: cfg.DeployCommands(),
		timeout:  cfg.Timeout,
	}
}

func (d *CommandDeployer) Deploy(ctx context.Context) error {
	// the deploy outlives a disconnected webhook caller
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	for _, line := range d.commands {
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		start := time.Now()

		//nolint:gosec // commands come from operator configuration
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = d.dir

		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		if err := cmd.Run(); err != nil {
			return fmt.Errorf(
				"run %q: %w: %s",
				line,
				err,
				strings.TrimSpace(out.String()),
			)
		}

		slog.InfoContext(ctx, "deploy step finished",
			"command", line,
			"duration", time.Since(start),
		)
	}

	return nil
}
