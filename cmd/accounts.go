package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlarsen/workspace-mcp/internal/auth"
)

func newAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List authorized accounts and their credential state",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.NewFileStore(auth.DefaultCredentialsDir())
			manager := auth.NewManager(store)

			accounts, err := manager.Accounts()
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}
			if len(accounts) == 0 {
				fmt.Println("No accounts authorized. Run 'workspace-mcp auth' to authorize one.")
				return nil
			}

			for _, account := range accounts {
				st := manager.Status(account)
				state := "expired"
				switch {
				case st.Valid:
					state = "valid"
				case st.Refreshable:
					state = "refreshable"
				}
				if st.Expiry.IsZero() {
					fmt.Printf("%s\t%s\n", account, state)
				} else {
					fmt.Printf("%s\t%s\texpires %s\n", account, state, st.Expiry.Format("2006-01-02 15:04:05"))
				}
			}
			return nil
		},
	}
	return cmd
}
