package kv

import (
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store/rstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	kvStore  *rstore.KeyValue[any]
	kvConfig common.ClientConfig
	kvCodec  codec.ICodec

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:                "kv",
		Short:              "Perform key-value operations on a namespace",
		PersistentPreRunE:  setupKVClient,
		PersistentPostRunE: closeKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add store connection flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	KeyValueCommands.PersistentFlags().String("name", "default", util.WrapString("Name of the key-value namespace. Keys are stored as <name>:<key>"))

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(hasCmd)
	KeyValueCommands.AddCommand(ttlCmd)
	KeyValueCommands.AddCommand(allCmd)
	KeyValueCommands.AddCommand(clearCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient connects the key-value adapter
func setupKVClient(cmd *cobra.Command, _ []string) error {
	var err error
	kvConfig, kvCodec, err = util.SetupClient(cmd)
	if err != nil {
		return err
	}

	kvStore, err = rstore.NewKeyValue[any](cmd.Context(), viper.GetString("name"), kvConfig, kvCodec)
	return err
}

func closeKVClient(cmd *cobra.Command, _ []string) error {
	util.WriteMetrics(cmd.OutOrStdout())
	if kvStore == nil {
		return nil
	}
	return kvStore.Close()
}
