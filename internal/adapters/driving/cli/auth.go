package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/shopctl/internal/adapters/driven/shopware"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the shop connection",
	Long: `Store and inspect the credentials of the connected shop.

Credentials belong to an integration created in the shop administration
under Settings > System > Integrations. They are stored in
~/.shopctl/config.toml with restricted file permissions.

Examples:
  # Interactive login (prompts for the secret)
  shopctl auth login --api-url https://shop.example.com --client-id SWIA...

  # Non-interactive
  shopctl auth login --api-url https://shop.example.com \
    --client-id SWIA... --client-secret "yyy"

  # Show the stored connection
  shopctl auth status`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials and verify the connection",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored connection",
	RunE:  runAuthStatus,
}

// Flags for auth login.
var (
	authAPIURL       string
	authClientID     string
	authClientSecret string
)

func init() {
	authLoginCmd.Flags().StringVar(&authAPIURL, "api-url", "", "Shop base URL, like https://shop.example.com")
	authLoginCmd.Flags().StringVar(&authClientID, "client-id", "", "Integration access key id")
	authLoginCmd.Flags().StringVar(&authClientSecret, "client-secret", "", "Integration secret (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	if authAPIURL == "" {
		cmd.Print("Shop URL: ")
		authAPIURL = readLine(reader)
	}
	if authClientID == "" {
		cmd.Print("Client id: ")
		authClientID = readLine(reader)
	}
	if authClientSecret == "" {
		cmd.Print("Client secret: ")
		authClientSecret = readSecret(reader)
		cmd.Println()
	}
	if authAPIURL == "" || authClientID == "" || authClientSecret == "" {
		return errors.New("api-url, client-id and client-secret are required")
	}

	client := shopware.NewClient(context.Background(), shopware.Config{
		APIURL:       authAPIURL,
		ClientID:     authClientID,
		ClientSecret: authClientSecret,
	})
	cmd.Print("Verifying connection... ")
	if err := client.ValidateCredentials(context.Background()); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")

	if err := configStore.Set("shop.api_url", authAPIURL); err != nil {
		return err
	}
	if err := configStore.Set("shop.client_id", authClientID); err != nil {
		return err
	}
	if err := configStore.Set("shop.client_secret", authClientSecret); err != nil {
		return err
	}

	cmd.Printf("Credentials stored in %s\n", configStore.Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	apiURL := configStore.GetString("shop.api_url")
	if apiURL == "" {
		cmd.Println("No shop configured. Run 'shopctl auth login'.")
		return nil
	}

	cmd.Printf("Shop:      %s\n", apiURL)
	cmd.Printf("Client id: %s\n", maskSecret(configStore.GetString("shop.client_id")))
	if root := configStore.GetString("media.folder_root"); root != "" {
		cmd.Printf("Media root: %s\n", root)
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readSecret reads without echo when stdin is a terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readSecret(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	return readLine(reader)
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
