package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopctl/internal/adapters/driven/config/file"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
	Long: `Manage products and their picture sets.

'product pictures' reads a TOML manifest describing the full picture set
of one product and replaces whatever the shop currently holds:

  product_number = "456789"

  [[picture]]
  position = 1
  url = "https://cdn.example.com/456789_front.jpg"
  alt = "Front view"

  [[picture]]
  position = 2
  url = "https://cdn.example.com/456789_back.jpg"

Examples:
  shopctl product pictures ./456789.toml
  shopctl product ls`,
}

var productPicturesCmd = &cobra.Command{
	Use:   "pictures <manifest.toml>",
	Short: "Replace a product's picture set from a manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductPictures,
}

var productLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE:  runProductLs,
}

func init() {
	productCmd.AddCommand(productPicturesCmd)
	productCmd.AddCommand(productLsCmd)
	rootCmd.AddCommand(productCmd)
}

func runProductPictures(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	manifest, err := file.LoadManifest(args[0])
	if err != nil {
		return err
	}

	if err := adminAPI.Product.UpsertPictures(cmd.Context(), manifest.ProductNumber, manifest.Pictures); err != nil {
		return err
	}
	cmd.Printf("Product %s now has %d picture(s)\n", manifest.ProductNumber, len(manifest.Pictures))
	return nil
}

func runProductLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	products, err := adminAPI.Product.Products(cmd.Context())
	if err != nil {
		return err
	}
	for _, product := range products {
		cmd.Printf("%v  %v\n", product["productNumber"], product["name"])
	}
	cmd.Printf("%d product(s)\n", len(products))
	return nil
}
