package main

import (
	"fmt"

	"github.com/fledge-tests/fledge-mockserver/framework"
	"github.com/fledge-tests/fledge-mockserver/selftests"

	"github.com/spf13/cobra"
)

func newSelfTestCommand() *cobra.Command {
	var params selfTestParams
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the mock server's behavior against a real TLS client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if (params.certFile == "") != (params.keyFile == "") {
				return fmt.Errorf("--cert and --key must be used together")
			}
			if params.certFile == "" {
				certFile, keyFile, cleanup, err := temporaryCertificate()
				if err != nil {
					return err
				}
				defer cleanup()
				params.certFile, params.keyFile = certFile, keyFile
			}

			fmt.Fprintln(out)
			framework.PrintFilterDescription(out, params.filters)

			fmt.Fprintln(out, "Running test suite")

			testLogger := &ConsoleTestLogger{
				Out:                  out,
				DebugOutputOnFailure: params.debug || params.debugAll,
				DebugOutputOnSuccess: params.debugAll,
			}
			results := selftests.RunTestSuite(selftests.SuiteConfig{
				Host:        params.host,
				BindAddress: params.bindAddress,
				CertFile:    params.certFile,
				KeyFile:     params.keyFile,
			}, params.filters.AsFilter, testLogger)

			fmt.Fprintln(out)
			framework.PrintResults(out, results)
			if !results.OK() {
				return errTestsFailed
			}
			return nil
		},
	}
	params.addFlags(cmd.Flags())
	return cmd
}
