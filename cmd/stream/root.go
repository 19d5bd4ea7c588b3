package stream

import (
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/ValentinKolb/dStruct/lib/store/rstore"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	streamStore *rstore.Stream[any]

	// StreamCommands represents the stream command group
	StreamCommands = &cobra.Command{
		Use:                "stream",
		Short:              "Perform stream operations through a consumer group",
		Long:               util.WrapString("Append to and read from a stream. The consumer group is created on first use. Entries returned by read are acknowledged immediately."),
		PersistentPreRunE:  setupStreamClient,
		PersistentPostRunE: closeStreamClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupClientFlags(StreamCommands)

	key := "name"
	StreamCommands.PersistentFlags().String(key, "default", util.WrapString("Name of the stream"))
	key = "group"
	StreamCommands.PersistentFlags().String(key, "default", util.WrapString("Name of the consumer group"))
	key = "consumer"
	StreamCommands.PersistentFlags().String(key, rstore.DefaultConsumerName, util.WrapString("Name of the consumer within the group. Use 'auto' for a random name"))

	StreamCommands.AddCommand(appendCmd)
	StreamCommands.AddCommand(readCmd)
	StreamCommands.AddCommand(ackCmd)
	StreamCommands.AddCommand(delCmd)
	StreamCommands.AddCommand(rangeCmd)
	StreamCommands.AddCommand(pendingCmd)
	StreamCommands.AddCommand(lenCmd)
	StreamCommands.AddCommand(clearCmd)
}

// setupStreamClient connects the stream adapter and ensures the consumer group exists
func setupStreamClient(cmd *cobra.Command, _ []string) error {
	config, c, err := util.SetupClient(cmd)
	if err != nil {
		return err
	}

	consumer := viper.GetString("consumer")
	if consumer == "auto" {
		consumer = fmt.Sprintf("consumer-%s", uuid.NewString())
	}

	streamStore, err = rstore.NewStream[any](
		cmd.Context(),
		viper.GetString("name"),
		viper.GetString("group"),
		consumer,
		config,
		c,
	)
	if err != nil {
		return err
	}

	util.Logger.Debugf("Using %s", streamStore)
	return nil
}

func closeStreamClient(cmd *cobra.Command, _ []string) error {
	util.WriteMetrics(cmd.OutOrStdout())
	if streamStore == nil {
		return nil
	}
	return streamStore.Close()
}
