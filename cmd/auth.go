package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rlarsen/workspace-mcp/internal/auth"
	"github.com/rlarsen/workspace-mcp/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var (
		account      string
		clientSecret string
		port         int
		timeout      time.Duration
		noBrowser    bool
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Google account",
		Long: `Run the interactive OAuth2 consent flow for one account.

The command opens the Google consent page in a browser, waits for the
redirect on a local loopback listener, exchanges the authorization code,
and stores the credential. Without --account, the credential is named
after the authorized email address.

Requires the OAuth client configuration (client_secret.json) downloaded
from the Google Cloud console. Its location is taken from --client-secret,
the GOOGLE_CLIENT_SECRET_FILE env var, or the default path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(account, clientSecret, port, timeout, noBrowser)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Name to store the credential under (default: the authorized email address)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Path to the OAuth client configuration JSON. Can also use GOOGLE_CLIENT_SECRET_FILE env var.")
	cmd.Flags().IntVar(&port, "port", 0, "Loopback listener port for the OAuth redirect (default: ephemeral)")
	cmd.Flags().DurationVar(&timeout, "timeout", auth.DefaultConsentTimeout, "How long to wait for the browser callback")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Print the consent URL instead of opening a browser")

	return cmd
}

func runAuth(account, clientSecret string, port int, timeout time.Duration, noBrowser bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.Setup(os.Stderr, "info")

	if clientSecret == "" {
		clientSecret = auth.DefaultClientSecretPath()
	}
	conf, err := auth.LoadClientSecret(clientSecret, auth.DefaultScopes)
	if err != nil {
		return err
	}

	store := auth.NewFileStore(auth.DefaultCredentialsDir())
	manager := auth.NewManager(store, auth.WithLogger(logger))

	opts := auth.ConsentOptions{
		Config:  conf,
		Account: account,
		Timeout: timeout,
		Port:    port,
	}
	if !noBrowser {
		opts.OpenBrowser = openBrowser
	}

	authorized, err := manager.Authorize(ctx, opts)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Printf("Authorized account %q\n", authorized)
	fmt.Printf("Credential stored at %s\n", store.Path(authorized))
	return nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
