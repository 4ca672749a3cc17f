package forge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"

	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// command runs a build tool in a pseudo terminal so it keeps its colors
type command struct {
	name  string
	args  []string
	dir   string
	debug bool
	log   *slog.Logger
}

func (c *command) run(ctx context.Context) error {
	start := time.Now()
	c.log.Debug("running build", "cmd", c.name, "args", c.args, "dir", c.dir)

	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Dir = c.dir
	cmd.Env = os.Environ()

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", c.name, err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if c.debug {
		sink = io.MultiWriter(&output, os.Stdout)
	}
	// the pty returns EIO once the process exits
	_, _ = io.Copy(sink, ptyFile)

	err = cmd.Wait()
	duration := time.Since(start)
	if err != nil {
		c.log.Error("build failed", "cmd", c.name, "error", err, "duration", duration)
		return fmt.Errorf("%s failed: %w\nOutput: %s", c.name, err, output.String())
	}
	c.log.Debug("build completed", "cmd", c.name, "duration", duration)
	return nil
}

// ForgeBuilder compiles the contracts with forge build
type ForgeBuilder struct {
	cmd command
}

// NewForgeBuilder creates a builder running in the project root
func NewForgeBuilder(cfg *config.RuntimeConfig, log *slog.Logger) *ForgeBuilder {
	return &ForgeBuilder{cmd: command{
		name:  "forge",
		args:  []string{"build"},
		dir:   cfg.ProjectRoot,
		debug: cfg.Debug,
		log:   log.With("component", "ForgeBuilder"),
	}}
}

func (b *ForgeBuilder) Build(ctx context.Context) error {
	return b.cmd.run(ctx)
}

// SDKBuilder rebuilds the SDK package after its addresses change
type SDKBuilder struct {
	cmd command
}

// NewSDKBuilder creates a builder running yarn build in the SDK directory
func NewSDKBuilder(cfg *config.RuntimeConfig, log *slog.Logger) *SDKBuilder {
	return &SDKBuilder{cmd: command{
		name:  "yarn",
		args:  []string{"build"},
		dir:   cfg.SDKPath,
		debug: cfg.Debug,
		log:   log.With("component", "SDKBuilder"),
	}}
}

func (b *SDKBuilder) Build(ctx context.Context) error {
	return b.cmd.run(ctx)
}

var (
	_ usecase.ContractBuilder = (*ForgeBuilder)(nil)
	_ usecase.SDKBuilder      = (*SDKBuilder)(nil)
)
