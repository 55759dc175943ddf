package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitprobe/internal/domain/commands"
	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

// InspectController handles the "inspect" subcommand.
type InspectController struct {
	command commands.Inspect
}

// NewInspectController creates a new InspectController.
func NewInspectController(command commands.Inspect) *InspectController {
	return &InspectController{command: command}
}

// GetBind returns the Cobra command metadata for the inspect controller.
func (it *InspectController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "inspect <repository-url>",
		Short: "Probe a remote repository for CI/CD bootstrap metadata",
		Long: `Probe a remote Git-hosted repository and print a YAML report:
reachability, branches, languages, tags, and whether the well-known
CI/CD artifacts (Dockerfile, Devfile, .tekton folder, package.json)
are present under the context directory.

Bitbucket, GitHub, and GitLab are supported, including their
self-hosted variants. The provider is detected from the URL for the
hosted services; self-hosted instances need --provider.`,
	}
}

// Execute runs the inspection and prints the report.
func (it *InspectController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("a repository URL is required")
		return
	}
	rawURL := args[0]

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	cfg := loadConfig(cmd)
	source, err := sourceFromFlags(cmd, cfg, rawURL)
	if err != nil {
		logger.Errorf("Invalid repository source: %v", err)
		return
	}

	providerType, _ := cmd.Flags().GetString("provider")
	report, err := it.command.Execute(ctx, commands.InspectOptions{
		Source:   source,
		Secret:   secretFromFlags(cmd, cfg, rawURL),
		Provider: providerType,
	})
	if err != nil {
		logger.Errorf("Inspection failed: %v", err)
		return
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		logger.Errorf("Failed to render report: %v", err)
		return
	}
	_, _ = os.Stdout.Write(out)
}
