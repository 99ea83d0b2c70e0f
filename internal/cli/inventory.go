package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

func (a *App) inventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show current stock levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.sales.Inventory()
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(a.out, "Inventory is empty. Use 'coffeesales inventory adjust <product> <count>' to add stock.")
				return nil
			}

			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"Product", "Stock"})
			for _, item := range items {
				table.Append([]string{item.Product, strconv.Itoa(item.Stock)})
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(a.adjustCommand())
	return cmd
}

func (a *App) adjustCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <product> <delta>",
		Short: "Restock (positive delta) or correct (negative delta) a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := cast.ToIntE(args[1])
			if err != nil {
				return fmt.Errorf("delta %q is not a number: %w", args[1], models.ErrValidation)
			}

			stock, err := a.sales.AdjustStock(args[0], delta)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Stock of %s is now %d.\n", args[0], stock)
			return nil
		},
	}
}

func (a *App) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and seed empty CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.initDataFiles()
		},
	}
}
