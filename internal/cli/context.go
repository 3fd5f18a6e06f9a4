package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/prompt"
)

var contextFileFlag string

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the cached analysis context",
	Long:  "Builds, shows, or clears the analysis context used to prime chat sessions about the codebase.",
}

var contextBuildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Analyze the project and save a fresh context",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContextBuild,
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached context prompt",
	Args:  cobra.NoArgs,
	RunE:  runContextShow,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached context",
	Args:  cobra.NoArgs,
	RunE:  runContextClear,
}

func init() {
	contextCmd.PersistentFlags().StringVar(&contextFileFlag, "file", "", "context file path (default "+prompt.ContextFileName+")")
	contextCmd.AddCommand(contextBuildCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextClearCmd)
	rootCmd.AddCommand(contextCmd)
}

func runContextBuild(cmd *cobra.Command, args []string) error {
	report, err := runAnalysis(cmd.Context(), resolveRoot(args))
	if err != nil {
		return err
	}

	ctx := prompt.Build(report)
	manager := prompt.NewManager(contextFileFlag, newLogger())
	if err := manager.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ctx.Summary)
	return nil
}

func runContextShow(cmd *cobra.Command, args []string) error {
	manager := prompt.NewManager(contextFileFlag, newLogger())
	ctx, err := manager.Load()
	if err != nil {
		return err
	}
	if ctx == nil {
		return fmt.Errorf("no analysis context found; run \"scout context build\" first")
	}

	fmt.Fprintln(cmd.OutOrStdout(), ctx.Prompt)
	return nil
}

func runContextClear(cmd *cobra.Command, args []string) error {
	manager := prompt.NewManager(contextFileFlag, newLogger())
	if err := manager.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Analysis context cleared.")
	return nil
}
