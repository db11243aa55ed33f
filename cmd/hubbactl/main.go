// Command hubbactl signs in to a SkateHubba API from the terminal.
//
// Usage:
//
//	hubbactl [-api URL] [-key FIREBASE_API_KEY] login|signup EMAIL
//	hubbactl [-api URL] [-key FIREBASE_API_KEY] google GOOGLE_ID_TOKEN
//	hubbactl [-api URL] [-key FIREBASE_API_KEY] whoami EMAIL
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"skatehubba/internal/client"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const requestTimeout = 15 * time.Second

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

type options struct {
	apiURL      string
	apiKey      string
	identityURL string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hubbactl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts := options{
		apiURL:      envOr("HUBBA_API_URL", "http://localhost:5000"),
		apiKey:      envOr("FIREBASE_API_KEY", os.Getenv("VITE_FIREBASE_API_KEY")),
		identityURL: os.Getenv("FIREBASE_IDENTITY_URL"),
	}

	fs := flag.NewFlagSet("hubbactl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.apiURL, "api", opts.apiURL, "SkateHubba API base URL")
	fs.StringVar(&opts.apiKey, "key", opts.apiKey, "Firebase web API key")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		fs.Usage()

		return errors.New("expected a command and one argument")
	}
	if opts.apiKey == "" {
		return errors.New("a Firebase API key is required (-key or FIREBASE_API_KEY)")
	}

	store, err := newStore(opts)
	if err != nil {
		return err
	}

	command, arg := rest[0], rest[1]

	var profile *client.Profile
	switch command {
	case "login", "whoami":
		password, err := promptPassword(out)
		if err != nil {
			return err
		}
		profile, err = store.SignInEmail(ctx, arg, password)
		if err != nil {
			return err
		}
	case "signup":
		password, err := promptPassword(out)
		if err != nil {
			return err
		}
		profile, err = store.SignUpEmail(ctx, arg, password)
		if err != nil {
			return err
		}
	case "google":
		profile, err = store.SignInGoogle(ctx, arg)
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown command %q", command)
	}

	if command == "whoami" {
		return printJSON(out, struct {
			Profile      *client.Profile `json:"profile"`
			FirebaseUser string          `json:"firebaseUid"`
			Provider     string          `json:"firebaseProvider"`
		}{
			Profile:      profile,
			FirebaseUser: store.Snapshot().FirebaseUser.UID,
			Provider:     store.Snapshot().FirebaseUser.ProviderID,
		})
	}

	_, err = fmt.Fprintf(out, "Signed in as %s (%s)\n", profile.Email, profile.UID)

	return err
}

func newStore(opts options) (*client.Store, error) {
	api, err := client.NewAPIClient(opts.apiURL, requestTimeout)
	if err != nil {
		return nil, err
	}
	identity := client.NewIdentityToolkit(opts.identityURL, opts.apiKey, requestTimeout)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	return client.NewStore(identity, api, logger), nil
}

func promptPassword(out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return string(pw), nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
