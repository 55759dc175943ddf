package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitprobe/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "gitprobe",
		Short: "Repository introspection for CI/CD pipeline bootstrapping",
		Long: `Probe remote Git-hosted repositories through their REST APIs and
normalize the answers into a uniform contract: reachability, branches,
files, languages, tags, and the presence of well-known CI/CD artifacts
(Dockerfile, Devfile, .tekton folder, package.json).

Supports Bitbucket Cloud and Bitbucket Server, GitHub and GitHub
Enterprise, and gitlab.com and self-managed GitLab.`,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("provider", "",
		"Provider type: bitbucket, github, or gitlab (default: detect from URL)")
	cmd.PersistentFlags().String("ref", "",
		"Branch, tag, or commit to probe (default: the provider's default branch)")
	cmd.PersistentFlags().String("context-dir", "",
		"Subdirectory treated as the repository root for file lookups")
	cmd.PersistentFlags().String("dockerfile", "",
		"Dockerfile path relative to the context directory (default: Dockerfile)")
	cmd.PersistentFlags().String("devfile", "",
		"Devfile path relative to the context directory (default: devfile.yaml)")
	cmd.PersistentFlags().String("username", "",
		"Username for basic authentication")
	cmd.PersistentFlags().String("password", "",
		"Password or app password for basic authentication")
	cmd.PersistentFlags().String("token", "",
		"Access token (alternative to username/password)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, app *internal.App) {
	for _, controller := range app.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	app := injectApp()
	addSubcommands(cobraRoot, app)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'gitprobe': %s", err)
	}
}
