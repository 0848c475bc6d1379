package main

import (
	"os"

	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"

	"github.com/vaultmesh/vaultmesh/app"
	"github.com/vaultmesh/vaultmesh/cmd/vaultmeshd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd(true)

	if err := svrcmd.Execute(rootCmd, "", app.DefaultNodeHome); err != nil {
		os.Exit(1)
	}
}
