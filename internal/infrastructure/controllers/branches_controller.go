package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprobe/internal/domain/commands"
	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

// BranchesController handles the "branches" subcommand.
type BranchesController struct {
	command commands.Branches
}

// NewBranchesController creates a new BranchesController.
func NewBranchesController(command commands.Branches) *BranchesController {
	return &BranchesController{command: command}
}

// GetBind returns the Cobra command metadata for the branches controller.
func (it *BranchesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branches <repository-url>",
		Short: "List the branches of a remote repository",
		Long: `List the branches of a remote Git-hosted repository, one per line.
A repository that cannot be queried yields no output.`,
	}
}

// Execute lists the repository branches.
func (it *BranchesController) Execute(cmd *cobra.Command, args []string) {
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
	branches, err := it.command.Execute(ctx, commands.BranchesOptions{
		Source:   source,
		Secret:   secretFromFlags(cmd, cfg, rawURL),
		Provider: providerType,
	})
	if err != nil {
		logger.Errorf("Branch listing failed: %v", err)
		return
	}

	for _, branch := range branches {
		fmt.Fprintln(os.Stdout, branch)
	}
}
