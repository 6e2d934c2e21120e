package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuimole/internal/config"
	"github.com/verte-zerg/tuimole/internal/secrets"
)

// keyStore is the part of the keyring the key commands use.
type keyStore interface {
	APIKey() (string, error)
	SetAPIKey(value string) error
	DeleteAPIKey() error
}

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the advisor API key",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set [key]",
		Short: "Store the advisor API key in the system keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 1 {
				value = args[0]
			} else {
				v, err := readKey(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				value = v
			}
			return setKey(defaultKeyStore(), value)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored advisor API key",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return clearKey(defaultKeyStore())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether an advisor API key is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := config.LoadEnv(".env")
			if err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "%s\n", keyStatus(env, defaultKeyStore()))
		},
	})
	return cmd
}

func defaultKeyStore() keyStore {
	return secrets.NewKeyring("", config.DefaultSecretsPath())
}

// readKey reads a key without echo when stdin is a terminal, or the first
// line of stdin otherwise.
func readKey(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if err := printf(prompt, "API key: "); err != nil {
			return "", err
		}
		raw, err := term.ReadPassword(fd)
		if err := printf(prompt, "\n"); err != nil {
			return "", err
		}
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return line, nil
}

func setKey(keys keyStore, value string) error {
	if err := keys.SetAPIKey(strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	logErrln("Key stored")
	return nil
}

func clearKey(keys keyStore) error {
	if err := keys.DeleteAPIKey(); err != nil {
		return fmt.Errorf("failed to clear key: %w", err)
	}
	logErrln("Key cleared")
	return nil
}

func keyStatus(env config.Env, keys keyStore) string {
	_, source := resolveAPIKey(env, keys)
	if source == "" {
		return "no key"
	}
	return "key set (" + source + ")"
}
