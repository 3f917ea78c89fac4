package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

var (
	addName     string
	addURL      string
	addUsername string
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage Basecamp sources",
}

var sourceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a Basecamp source",
	Long: `Adds a Basecamp source. The password is read from the terminal with
echo disabled and the credentials are checked against the account before
the source is accepted.`,
	RunE: runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove <source-id>",
	Short: "Remove a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

func init() {
	sourceAddCmd.Flags().StringVar(&addName, "name", "", "display name for the source")
	sourceAddCmd.Flags().StringVar(&addURL, "url", "", "Basecamp account URL")
	sourceAddCmd.Flags().StringVar(&addUsername, "username", "", "Basecamp username")
	//nolint:errcheck // flags exist, declared above
	_ = sourceAddCmd.MarkFlagRequired("url")
	_ = sourceAddCmd.MarkFlagRequired("username")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAdd(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Sources == nil {
		return errors.New("source service not configured")
	}

	cmd.Print("Password: ")
	password := readPassword()
	cmd.Println()
	if password == "" {
		return errors.New("password must not be empty")
	}

	name := addName
	if name == "" {
		name = addURL
	}

	source := domain.Source{
		ID:   uuid.New().String(),
		Type: "basecamp",
		Name: name,
		Config: map[string]string{
			"url":      addURL,
			"username": addUsername,
			"password": password,
		},
	}

	cmd.Println("Validating credentials...")
	if err := services.Sources.Add(context.Background(), source); err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			return fmt.Errorf("configuration rejected: %w", err)
		}
		return fmt.Errorf("add source: %w", err)
	}

	cmd.Printf("Source %s added (%s).\n", source.ID, source.Name)
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Sources == nil {
		return errors.New("source service not configured")
	}

	sources, err := services.Sources.List(context.Background())
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	for _, source := range sources {
		cmd.Printf("%s  %-10s %s (%s)\n", source.ID, source.Type, source.Name, source.Config["url"])
	}
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if services == nil || services.Sources == nil {
		return errors.New("source service not configured")
	}

	if err := services.Sources.Remove(context.Background(), args[0]); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}
	cmd.Printf("Source %s removed.\n", args[0])
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
