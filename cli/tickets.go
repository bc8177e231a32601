// tickets.go - sell and return commands
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ticketsCmd)
	ticketsCmd.AddCommand(ticketsSellCmd)
	ticketsCmd.AddCommand(ticketsReturnCmd)
}

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Sell and return premiere tickets",
}

var ticketsSellCmd = &cobra.Command{
	Use:   "sell PREMIERE_ID COUNT",
	Short: "Sell tickets and record the income entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid ticket count %q", args[1])
		}

		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		op, err := p.boxOffice.SellTickets(cmd.Context(), args[0], count)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Sold %d tickets for %s. Sold %d, available %d. Record %s.\n",
			op.Count, op.Amount.StringFixed(2), op.Sold, op.Available, op.RecordID)
		return nil
	},
}

var ticketsReturnCmd = &cobra.Command{
	Use:   "return PREMIERE_ID COUNT",
	Short: "Return tickets and record the refund entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid ticket count %q", args[1])
		}

		p, err := openPlatform()
		if err != nil {
			return err
		}
		defer p.close()

		op, err := p.boxOffice.ReturnTickets(cmd.Context(), args[0], count)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Returned %d tickets for %s. Sold %d, available %d. Record %s.\n",
			op.Count, op.Amount.StringFixed(2), op.Sold, op.Available, op.RecordID)
		return nil
	},
}
