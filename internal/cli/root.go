package cli

import (
	"errors"
	"os"

	"github.com/faanross/simulacra_png/internal/config"
	"github.com/faanross/simulacra_png/internal/logging"
	"github.com/faanross/simulacra_png/internal/oops"
	"github.com/faanross/simulacra_png/internal/scrypto"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logLevel string

var errPasswordMismatch = errors.New("passwords do not match")

var RootCommand = &cobra.Command{
	Use:   "simulapng",
	Short: "Hide a file inside a PNG tEXt chunk and recover it",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel == "" {
			return nil
		}
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		config.Config.LogLevel = level
		logging.SetLevel(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := RootCommand.Execute(); err != nil {
		ev := logging.Error().Err(err)
		if kind := oops.KindOf(err); kind != "" {
			ev = ev.Str("kind", string(kind))
		}
		ev.Msg("simulapng failed")
		os.Exit(1)
	}
}

type passwordFlags struct {
	password string
	prompt   bool
}

func (pf *passwordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.password, "password", "", "Seal/unseal the payload with this password")
	cmd.Flags().BoolVar(&pf.prompt, "password-prompt", false, "Prompt for the password without echo")
}

// resolve returns nil when no password was requested.
func (pf *passwordFlags) resolve(confirm bool) ([]byte, error) {
	if pf.password != "" {
		pass := []byte(pf.password)
		if err := scrypto.CheckPassword(pass); err != nil {
			return nil, err
		}
		return pass, nil
	}
	if !pf.prompt {
		return nil, nil
	}

	pass, err := scrypto.GetSecurePassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	if confirm {
		again, err := scrypto.GetSecurePassword("Confirm password: ")
		if err != nil {
			return nil, err
		}
		if string(pass) != string(again) {
			return nil, errPasswordMismatch
		}
	}
	return pass, nil
}
