package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage media folders",
	Long: `Resolve, create and delete media folders by path.

Paths are absolute and slash-separated, like /Product Media/api_imported.
The empty path "/" is the folder root.

Examples:
  shopctl folder resolve "/Product Media/api_imported"
  shopctl folder ensure "/Product Media/api_imported/2026"
  shopctl folder rm "/Product Media/api_imported/2026" --force
  shopctl folder ls`,
}

var folderResolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Print the id of the folder at a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderResolve,
}

var folderEnsureCmd = &cobra.Command{
	Use:   "ensure <path>",
	Short: "Create the folder chain at a path",
	Long: `Create every missing folder along the path and print the id of the
deepest one. Created folders inherit the configuration of the nearest
existing ancestor unless --configuration is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderEnsure,
}

var folderRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete the folder at a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderRm,
}

var folderLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all media folders",
	Args:  cobra.NoArgs,
	RunE:  runFolderLs,
}

var (
	folderConfigurationID string
	folderForce           bool
)

func init() {
	folderEnsureCmd.Flags().StringVar(&folderConfigurationID, "configuration", "", "Configuration id for created folders")
	folderRmCmd.Flags().BoolVar(&folderForce, "force", false, "Delete even when the folder is not empty")

	folderCmd.AddCommand(folderResolveCmd)
	folderCmd.AddCommand(folderEnsureCmd)
	folderCmd.AddCommand(folderRmCmd)
	folderCmd.AddCommand(folderLsCmd)
	rootCmd.AddCommand(folderCmd)
}

func runFolderResolve(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}
	path, err := domain.ParseFolderPath(args[0])
	if err != nil {
		return err
	}

	id, err := adminAPI.Folders.Resolve(cmd.Context(), path)
	if err != nil {
		return err
	}
	cmd.Println(id)
	return nil
}

func runFolderEnsure(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}
	path, err := domain.ParseFolderPath(args[0])
	if err != nil {
		return err
	}

	id, err := adminAPI.Folders.Ensure(cmd.Context(), path, folderConfigurationID)
	if err != nil {
		return err
	}
	cmd.Println(id)
	return nil
}

func runFolderRm(cmd *cobra.Command, args []string) error {
	if err := requireAPI(); err != nil {
		return err
	}
	path, err := domain.ParseFolderPath(args[0])
	if err != nil {
		return err
	}

	if err := adminAPI.Folders.Remove(cmd.Context(), path, folderForce); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", path)
	return nil
}

func runFolderLs(cmd *cobra.Command, _ []string) error {
	if err := requireAPI(); err != nil {
		return err
	}

	folders, err := adminAPI.Folders.Folders(cmd.Context())
	if err != nil {
		return err
	}
	for _, folder := range folders {
		cmd.Printf("%v  %v\n", folder["id"], folder["name"])
	}
	cmd.Printf("%d folder(s)\n", len(folders))
	return nil
}
