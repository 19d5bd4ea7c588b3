package cmd

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/kv"
	"github.com/ValentinKolb/dStruct/cmd/pubsub"
	"github.com/ValentinKolb/dStruct/cmd/queue"
	"github.com/ValentinKolb/dStruct/cmd/stream"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dstruct",
		Short: "typed data structures on a shared store",
		Long: fmt.Sprintf(`dStruct (v%s)

Typed key-value namespaces, queues, stacks, streams with consumer
groups and publish/subscribe channels on a Redis compatible server.

All flags can be set as environment variables with the prefix
DSTRUCT_ (e.g. DSTRUCT_HOST, DSTRUCT_PASSWORD).`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dStruct",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dStruct v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(queue.QueueCommands)
	RootCmd.AddCommand(stream.StreamCommands)
	RootCmd.AddCommand(pubsub.PubSubCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("codec used for stored values (json, gob)"))
	key = "metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("print the collected operation metrics after the command"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
