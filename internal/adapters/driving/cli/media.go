package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage media records",
	Long: `Insert, update and delete media in the shop.

Media inserted through 'media upsert' is keyed by the product number and
picture position. Running the same upsert twice converges on the same
record instead of duplicating it.

Examples:
  shopctl media upsert --product 456789 --position 1 \
    --url https://cdn.example.com/456789_front.jpg --alt "Front view"
  shopctl media ls 456789
  shopctl media rm e35cf7b66449df565f93c607d5a81d09`,
}

var mediaUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Insert or update a product picture's media record",
	RunE:  runMediaUpsert,
}

var mediaRmCmd = &cobra.Command{
	Use:   "rm <media-id>",
	Short: "Delete a media record by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaRm,
}

var mediaLsCmd = &cobra.Command{
	Use:   "ls [term]",
	Short: "List media records, optionally narrowed by a search term",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMediaLs,
}

// Flags for media upsert.
var (
	mediaProduct  string
	mediaPosition int
	mediaURL      string
	mediaAlt      string
	mediaTitle    string
	mediaUpload   bool
)

func init() {
	mediaUpsertCmd.Flags().StringVar(&mediaProduct, "product", "", "Product number the picture belongs to")
	mediaUpsertCmd.Flags().IntVar(&mediaPosition, "position", 1, "Picture position within the product")
	mediaUpsertCmd.Flags().StringVar(&mediaURL, "url", "", "Source URL of the picture content")
	mediaUpsertCmd.Flags().StringVar(&mediaAlt, "alt", "", "Alt text")
	mediaUpsertCmd.Flags().StringVar(&mediaTitle, "title", "", "Title")
	mediaUpsertCmd.Flags().BoolVar(&mediaUpload, "upload", true, "Upload the binary content after registering the record")
	mediaUpsertCmd.MarkFlagRequired("product") //nolint:errcheck
	mediaUpsertCmd.MarkFlagRequired("url")     //nolint:errcheck

	mediaCmd.AddCommand(mediaUpsertCmd)
	mediaCmd.AddCommand(mediaRmCmd)
	mediaCmd.AddCommand(mediaLsCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaUpsert(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	id, err := adminAPI.Media.Upsert(cmd.Context(), driving.MediaUpsert{
		ProductNumber: mediaProduct,
		Position:      mediaPosition,
		URL:           mediaURL,
		Alt:           mediaAlt,
		Title:         mediaTitle,
		Upload:        mediaUpload,
	})
	if err != nil {
		return err
	}
	cmd.Println(id)
	return nil
}

func runMediaRm(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	if err := adminAPI.Media.Remove(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runMediaLs(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	term := ""
	if len(args) > 0 {
		term = args[0]
	}
	medias, err := adminAPI.Media.Medias(cmd.Context(), term)
	if err != nil {
		return err
	}
	for _, media := range medias {
		cmd.Printf("%v  %v\n", media["id"], media["fileName"])
	}
	cmd.Printf("%d media record(s)\n", len(medias))
	return nil
}
