package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Verify connectivity to the Device and Host adapters",
		Long:  `Exercises test_connection() on both the Device and Host adapters without mutating either store.`,
		RunE:  runTest,
	}
}

func runTest(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	deviceAdapter := buildDeviceAdapter(cc.Cfg, cc.Logger)
	hostAdapter := buildHostAdapter(cc.Cfg, cc.Logger)

	deviceOK, deviceErr := deviceAdapter.TestConnection(ctx)
	hostOK, hostErr := hostAdapter.TestConnection(ctx)

	fmt.Println("Device:", connectionStatus(deviceOK, deviceErr))
	fmt.Println("Host:  ", connectionStatus(hostOK, hostErr))

	if !deviceOK || !hostOK {
		return fmt.Errorf("one or more adapters failed connectivity test")
	}

	return nil
}

func connectionStatus(ok bool, err error) string {
	if ok {
		return "OK"
	}

	if err != nil {
		return fmt.Sprintf("FAILED (%v)", err)
	}

	return "FAILED"
}
