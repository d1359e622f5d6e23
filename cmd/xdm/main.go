package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/RyuaNerin/xclient/twitter"
)

type app struct {
	configPath string
	screenName string
	baseURL    string
	verbose    bool

	config  *Config
	account Account
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "xdm",
		Short:         "Read and answer direct messages, read the home timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path of the json config file")
	flags.StringVar(&a.screenName, "account", "", "screen name of the account to use")
	flags.BoolVar(&a.verbose, "verbose", false, "log requests")
	flags.StringVar(&a.baseURL, "base-url", "", "")
	_ = flags.MarkHidden("base-url")

	cmd.AddCommand(
		newInboxCommand(a),
		newSendCommand(a),
		newReplyCommand(a),
		newHomeCommand(a),
	)

	return cmd
}

func (a *app) init(stderr io.Writer) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	config, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = config

	if err := initSentry(config.SentryDsn); err != nil {
		a.logger.Warn("sentry disabled", "error", err)
	}

	a.account, err = config.Account(a.screenName)
	if err != nil {
		return err
	}
	if a.account.ScreenName == "" {
		return fmt.Errorf("account has no screen name")
	}

	return nil
}

func (a *app) client() (*twitter.Client, error) {
	return twitter.NewClient(twitter.ClientConfig{
		Cookie:  a.account.Cookie,
		BaseURL: a.baseURL,
		Proxy:   a.config.Proxy,
		Logger:  a.logger,
	})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := jsoniter.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "xdm: %s\n", strings.TrimPrefix(err.Error(), "twitter: "))
		reportError(err)
		os.Exit(1)
	}
}
