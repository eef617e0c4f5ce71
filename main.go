package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const appName = "fledge-mockserver"

var errTestsFailed = errors.New("self-test suite failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Mock HTTPS peer servers for interest-group auction tests",
		Long: appName + ` runs the mock buyer, seller, and publisher servers that browser-driven
auction tests talk to, and can verify its own behavior with a built-in test suite.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCommand(), newSelfTestCommand())
	return rootCmd
}
