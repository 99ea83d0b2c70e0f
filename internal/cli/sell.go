package cli

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
)

func (a *App) sellCommand() *cobra.Command {
	var (
		date     string
		cashType string
		card     string
	)

	cmd := &cobra.Command{
		Use:   "sell <product> <quantity> <unit-price>",
		Short: "Record a sale and decrement the product's stock",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := cast.ToIntE(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number: %w", args[1], models.ErrValidation)
			}
			unitPrice, err := cast.ToFloat64E(args[2])
			if err != nil {
				return fmt.Errorf("unit price %q is not a number: %w", args[2], models.ErrValidation)
			}
			saleDate, err := a.parseDate(date)
			if err != nil {
				return err
			}

			record, err := a.sales.RecordSale(sales.SaleInput{
				Product:   args[0],
				Quantity:  quantity,
				UnitPrice: unitPrice,
				Date:      saleDate,
				CashType:  cashType,
				Card:      card,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Recorded %d x %s @ %.2f (%.2f total) on %s.\n",
				record.Quantity, record.Product, record.UnitPrice, record.Revenue(),
				record.Date.Format(a.cfg.CSV.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "sale date (defaults to today)")
	cmd.Flags().StringVar(&cashType, "cash-type", "", "payment type, cash or card (defaults to cash)")
	cmd.Flags().StringVar(&card, "card", "", "anonymized card identifier for card payments")
	return cmd
}
