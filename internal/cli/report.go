package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/javoxirone/coffee-sales-management/internal/service/reporting"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
)

func (a *App) reportCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "report [day|week|month]",
		Short: "Summarize quantity and revenue per calendar bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodArg := a.cfg.Reporting.DefaultPeriod
			if len(args) == 1 {
				periodArg = args[0]
			}
			period, err := reporting.ParsePeriod(periodArg)
			if err != nil {
				return err
			}

			records, err := a.sales.ListSales(sales.SaleFilter{})
			if err != nil {
				return err
			}

			summaries, err := a.reports.Summarize(period, records)
			if err != nil {
				return err
			}

			if plain || len(summaries) == 0 {
				fmt.Fprintln(a.out, reporting.FormatSummaries(period, summaries))
				return nil
			}

			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{string(period), "Units", "Revenue"})
			for _, summary := range summaries {
				table.Append([]string{
					summary.Bucket,
					strconv.Itoa(summary.Quantity),
					fmt.Sprintf("%.2f", summary.Revenue),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one line per bucket instead of a table")
	return cmd
}

func (a *App) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-product sale counts and totals, busiest product first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.sales.ListSales(sales.SaleFilter{})
			if err != nil {
				return err
			}

			stats := a.reports.ProductStats(records)
			if len(stats) == 0 {
				fmt.Fprintln(a.out, "No sales recorded yet.")
				return nil
			}

			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"Product", "Sales", "Units", "Revenue"})
			for _, stat := range stats {
				table.Append([]string{
					stat.Product,
					strconv.Itoa(stat.Sales),
					strconv.Itoa(stat.Quantity),
					fmt.Sprintf("%.2f", stat.Revenue),
				})
			}
			table.Render()
			return nil
		},
	}
}
