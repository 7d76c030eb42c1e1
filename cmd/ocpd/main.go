package main

import (
	"fmt"
	"os"

	"onchainpoker-chain/app"
	appparams "onchainpoker-chain/app/params"
	"onchainpoker-chain/cmd/ocpd/cmd"

	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := svrcmd.Execute(rootCmd, appparams.EnvPrefix, app.DefaultNodeHome); err != nil {
		fmt.Fprintln(rootCmd.OutOrStderr(), err)
		os.Exit(1)
	}
}
