package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/javoxirone/coffee-sales-management/internal/repository/csvstore"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
	"github.com/javoxirone/coffee-sales-management/pkg/logger"
)

func (a *App) listCommand() *cobra.Command {
	var (
		product string
		date    string
		card    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sales, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filterDate, err := a.parseDate(date)
			if err != nil {
				return err
			}

			records, err := a.sales.ListSales(sales.SaleFilter{
				Product: product,
				Date:    filterDate,
				Card:    card,
			})
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(a.out, "No matching sales.")
				return nil
			}

			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"Date", "Product", "Qty", "Unit Price", "Total", "Payment", "Card"})
			for _, record := range records {
				table.Append([]string{
					record.Date.Format(a.cfg.CSV.DateLayout),
					record.Product,
					strconv.Itoa(record.Quantity),
					fmt.Sprintf("%.2f", record.UnitPrice),
					fmt.Sprintf("%.2f", record.Revenue()),
					record.CashType,
					record.Card,
				})
			}
			table.Render()
			fmt.Fprintf(a.out, "%d sale(s).\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&product, "product", "", "only sales of this product")
	cmd.Flags().StringVar(&date, "date", "", "only sales on this calendar day")
	cmd.Flags().StringVar(&card, "card", "", "only sales paid with this card identifier")
	return cmd
}

func (a *App) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Bulk-append historical sales from another CSV file",
		Long: "Reads sale rows from the given CSV file (same schema and column " +
			"aliases as the sales file) and appends them to the store. Stock " +
			"levels are not changed; this is a backfill of past transactions.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := csvstore.NewSalesStore(args[0], a.cfg.CSV, logger.Named(a.logger, "store.import"))
			records, err := source.Load()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(a.out, "No records found in %s.\n", args[0])
				return nil
			}

			count, err := a.sales.Import(records)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Imported %d sale(s) from %s.\n", count, args[0])
			return nil
		},
	}
}
