package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Scout analysis server",
	Long:  "Launches an HTTP API for running project analyses as asynchronous jobs.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s := web.NewServer(addrFlag)
	fmt.Fprintf(cmd.OutOrStdout(), "Scout analysis server listening on %s\n", addrFlag)
	return s.Start()
}
