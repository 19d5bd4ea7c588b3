package pubsub

import (
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/ValentinKolb/dStruct/lib/store/rstore"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

var (
	pubSub *rstore.PubSub[any]

	// PubSubCommands represents the pubsub command group
	PubSubCommands = &cobra.Command{
		Use:                "pubsub",
		Short:              "Publish to and subscribe to channels",
		Long:               util.WrapString("Fire-and-forget messaging. Messages published while nobody is subscribed are lost."),
		PersistentPreRunE:  setupPubSubClient,
		PersistentPostRunE: closePubSubClient,
	}

	publishCmd = &cobra.Command{
		Use:   "publish [channel] [value]",
		Short: "Publishes a value to a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pubSub.Publish(cmd.Context(), args[0], util.ParseValue(args[1])); err != nil {
				return err
			}
			fmt.Println("publish successfully")
			return nil
		},
	}
	subscribeCmd = &cobra.Command{
		Use:   "subscribe [channel]",
		Short: "Prints values published to a channel until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sub, err := pubSub.Subscribe(ctx, args[0], func(v any) {
				fmt.Println(util.FormatValue(v))
			})
			if err != nil {
				return err
			}
			fmt.Printf("subscribed to %s (press ctrl+c to stop)\n", sub.Channel())

			<-sub.Done()
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupClientFlags(PubSubCommands)

	PubSubCommands.AddCommand(publishCmd)
	PubSubCommands.AddCommand(subscribeCmd)
}

func setupPubSubClient(cmd *cobra.Command, _ []string) error {
	config, c, err := util.SetupClient(cmd)
	if err != nil {
		return err
	}

	pubSub, err = rstore.NewPubSub[any](cmd.Context(), config, c)
	return err
}

func closePubSubClient(cmd *cobra.Command, _ []string) error {
	util.WriteMetrics(cmd.OutOrStdout())
	if pubSub == nil {
		return nil
	}
	return pubSub.Close()
}
