package queue

import (
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/ValentinKolb/dStruct/lib/store/rstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"strconv"
)

// orderedStore is a queue or a stack, selected by --lifo
type orderedStore interface {
	store.Ordered[any]
	io.Closer
	fmt.Stringer
}

var (
	queueStore orderedStore

	// QueueCommands represents the queue command group
	QueueCommands = &cobra.Command{
		Use:                "queue",
		Short:              "Perform queue and stack operations",
		Long:               util.WrapString("Perform queue (first-in-first-out) operations on a remote list. With --lifo the list is used as a stack (last-in-first-out)."),
		PersistentPreRunE:  setupQueueClient,
		PersistentPostRunE: closeQueueClient,
	}

	pushCmd = &cobra.Command{
		Use:   "push [value...]",
		Short: "Appends values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := queueStore.Set(cmd.Context(), util.ParseValue(arg)); err != nil {
					return err
				}
			}
			fmt.Printf("pushed %d values to %s\n", len(args), queueStore)
			return nil
		},
	}
	popCmd = &cobra.Command{
		Use:   "pop [count]",
		Short: "Removes and prints values (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("count must be a positive number: %s", args[0])
				}
				count = n
			}
			values, err := queueStore.GetMany(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Println(util.FormatValue(v))
			}
			if len(values) == 0 {
				fmt.Println("(empty)")
			}
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Prints all values without removing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := queueStore.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			for i, v := range values {
				fmt.Printf("%d: %s\n", i, util.FormatValue(v))
			}
			fmt.Printf("(%d values)\n", len(values))
			return nil
		},
	}
	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := queueStore.Size(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s, size=%d\n", queueStore, n)
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Removes all values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queueStore.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("clear successfully")
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupClientFlags(QueueCommands)

	QueueCommands.PersistentFlags().String("name", "default", util.WrapString("Name of the remote list"))
	QueueCommands.PersistentFlags().Bool("lifo", false, util.WrapString("Use the list as a stack (pop the most recently pushed value)"))

	QueueCommands.AddCommand(pushCmd)
	QueueCommands.AddCommand(popCmd)
	QueueCommands.AddCommand(listCmd)
	QueueCommands.AddCommand(lenCmd)
	QueueCommands.AddCommand(clearCmd)
}

// setupQueueClient connects a queue or stack adapter
func setupQueueClient(cmd *cobra.Command, _ []string) error {
	config, c, err := util.SetupClient(cmd)
	if err != nil {
		return err
	}

	name := viper.GetString("name")
	if viper.GetBool("lifo") {
		s, err := rstore.NewStack[any](cmd.Context(), name, config, c)
		if err != nil {
			return err
		}
		queueStore = s
		return nil
	}

	q, err := rstore.NewQueue[any](cmd.Context(), name, config, c)
	if err != nil {
		return err
	}
	queueStore = q
	return nil
}

func closeQueueClient(cmd *cobra.Command, _ []string) error {
	util.WriteMetrics(cmd.OutOrStdout())
	if queueStore == nil {
		return nil
	}
	return queueStore.Close()
}
