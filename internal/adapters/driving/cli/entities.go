package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Inspect currencies",
}

var currencyLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List currencies",
	Args:  cobra.NoArgs,
	RunE:  runCurrencyLs,
}

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Inspect tax rates",
}

var taxLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tax rates",
	Args:  cobra.NoArgs,
	RunE:  runTaxLs,
}

var deliveryTimeCmd = &cobra.Command{
	Use:   "delivery-time",
	Short: "Inspect delivery times",
}

var deliveryTimeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List delivery times",
	Args:  cobra.NoArgs,
	RunE:  runDeliveryTimeLs,
}

var unitCmd = &cobra.Command{
	Use:   "unit",
	Short: "Inspect measurement units",
}

var unitLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List measurement units",
	Args:  cobra.NoArgs,
	RunE:  runUnitLs,
}

var deliveryTimeSorted bool

func init() {
	deliveryTimeLsCmd.Flags().BoolVar(&deliveryTimeSorted, "sorted", false, "Order by minimum duration in days")

	currencyCmd.AddCommand(currencyLsCmd)
	taxCmd.AddCommand(taxLsCmd)
	deliveryTimeCmd.AddCommand(deliveryTimeLsCmd)
	unitCmd.AddCommand(unitLsCmd)

	rootCmd.AddCommand(currencyCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(deliveryTimeCmd)
	rootCmd.AddCommand(unitCmd)
}

func runCurrencyLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	currencies, err := adminAPI.Currency.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, currency := range currencies {
		cmd.Printf("%v  %v\n", currency["isoCode"], currency["id"])
	}
	return nil
}

func runTaxLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	taxes, err := adminAPI.Tax.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, tax := range taxes {
		cmd.Printf("%v  %v%%\n", tax["name"], tax["taxRate"])
	}
	return nil
}

func runDeliveryTimeLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	var (
		times []domain.Record
		err   error
	)
	if deliveryTimeSorted {
		times, err = adminAPI.DeliveryTime.SortedByMinDays(cmd.Context())
	} else {
		times, err = adminAPI.DeliveryTime.List(cmd.Context())
	}
	if err != nil {
		return err
	}
	for _, deliveryTime := range times {
		cmd.Printf("%v  %v\n", deliveryTime["id"], deliveryTime["name"])
	}
	return nil
}

func runUnitLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	units, err := adminAPI.Unit.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, unit := range units {
		cmd.Printf("%v  %v\n", unit["shortCode"], unit["name"])
	}
	return nil
}
