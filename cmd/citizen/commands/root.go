package commands

import (
	"github.com/p2pclaw/citizen/src/config"
	"github.com/spf13/cobra"
)

var (
	_config = config.NewDefaultConfig()
)

//RootCmd is the root command for the citizen node
var RootCmd = &cobra.Command{
	Use:              "citizen",
	Short:            "p2pclaw citizen node",
	TraverseChildren: true,
}
