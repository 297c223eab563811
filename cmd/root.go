package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "obslens",
		Short:         "obslens: inspect LLM-observability scopes and workflow timelines",
		Long:          "obslens works against an LLM-observability backend: it lists the projects and teams visible to you, switches the active scope with consistent cache invalidation, and renders workflow execution timelines.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(rootCmd)
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newScopeCmd(app),
		newTimelineCmd(),
	)

	return rootCmd
}
