package stream

import (
	"fmt"
	"github.com/ValentinKolb/dStruct/cmd/util"
	"github.com/spf13/cobra"
)

var (
	appendCmd = &cobra.Command{
		Use:   "append [value...]",
		Short: "Appends values to the stream",
		Long:  util.WrapString("Appends values to the stream. Values are parsed as json if possible, otherwise they are stored as strings."),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				id, err := streamStore.Append(cmd.Context(), util.ParseValue(arg))
				if err != nil {
					return err
				}
				fmt.Printf("id=%s\n", id)
			}
			return nil
		},
	}
	readCmd = &cobra.Command{
		Use:   "read",
		Short: "Reads new entries for the consumer group",
		Long:  util.WrapString("Reads up to --count entries that were not yet delivered to the consumer group, waiting up to --block for at least one. Every returned entry is acknowledged before it is printed."),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := cmd.Flags().GetInt64("count")
			if err != nil {
				return err
			}
			block, err := cmd.Flags().GetDuration("block")
			if err != nil {
				return err
			}

			// undecodable entries are reported in err, the others are still printed
			result, err := streamStore.Read(cmd.Context(), count, block)
			for _, e := range result.Entries {
				fmt.Printf("id=%s, value=%s\n", e.ID, util.FormatValue(e.Value))
			}
			if len(result.Entries) > 0 || err == nil {
				fmt.Printf("(%d entries from %s)\n", len(result.Entries), result.Stream)
			}
			return err
		},
	}
	ackCmd = &cobra.Command{
		Use:   "ack [id...]",
		Short: "Acknowledges entries for the consumer group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := streamStore.Acknowledge(cmd.Context(), args...); err != nil {
				return err
			}
			fmt.Println("ack successfully")
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [id]",
		Short: "Deletes an entry from the stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := streamStore.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	rangeCmd = &cobra.Command{
		Use:   "range",
		Short: "Prints all entries of the stream without consuming them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := streamStore.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("id=%s, value=%s\n", e.ID, util.FormatValue(e.Value))
			}
			fmt.Printf("(%d entries)\n", len(entries))
			return nil
		},
	}
	pendingCmd = &cobra.Command{
		Use:   "pending",
		Short: "Prints the number of delivered but unacknowledged entries of the group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := streamStore.Pending(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("group=%s, pending=%d\n", streamStore.Group(), n)
			return nil
		},
	}
	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of entries in the stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := streamStore.Size(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("stream=%s, size=%d\n", streamStore.Name(), n)
			return nil
		},
	}
	clearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Deletes the stream with all consumer groups",
		Long:  util.WrapString("Deletes the stream together with all consumer groups and pending entries. This cannot be undone."),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := streamStore.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("clear successfully")
			return nil
		},
	}
)

func init() {
	readCmd.Flags().Int64("count", 1, util.WrapString("Maximum number of entries to read (0 for no limit)"))
	readCmd.Flags().Duration("block", 0, util.WrapString("How long to wait for an entry if none is available (e.g. 5s). 0 returns immediately"))
}
