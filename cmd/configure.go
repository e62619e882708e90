package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/config"
	"github.com/pmarket/pm/internal/output"
	"github.com/pmarket/pm/internal/prompt"
)

// configureOptions holds dependencies for the configure command.
// This allows for dependency injection in tests.
type configureOptions struct {
	configPath string
	jsonMode   bool
	prompt     prompt.Prompter
}

// configureFlags holds values given on the command line.
type configureFlags struct {
	server  string
	timeout int
	show    bool
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts *configureOptions) *cobra.Command {
	var flags configureFlags

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the market server and timeouts",
		Long: `Write the CLI configuration file.

Without flags you are asked for each setting; an empty answer keeps the
current value.

Examples:
  pm configure
  pm configure --server https://market.example.com --timeout 5
  pm configure --show`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.server, "server", "", "Market server URL")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 0, "Per-request timeout in seconds")
	cmd.Flags().BoolVar(&flags.show, "show", false, "Print the current configuration")

	// Don't show usage info on validation errors - just show the error
	cmd.SilenceUsage = true

	return cmd
}

func runConfigure(cmd *cobra.Command, opts *configureOptions, flags configureFlags) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if flags.show {
		return showConfiguration(cmd, opts, cfg)
	}

	if flags.server == "" && flags.timeout == 0 {
		if err := promptConfiguration(cmd, opts, cfg); err != nil {
			return err
		}
	} else {
		if flags.server != "" {
			if err := validateServerURL(flags.server); err != nil {
				return clierror.Userf("invalid --server: %w", err)
			}
			cfg.APIBaseURL = strings.TrimSuffix(flags.server, "/")
		}
		if flags.timeout != 0 {
			if flags.timeout < 0 {
				return clierror.User("--timeout must be positive")
			}
			cfg.TimeoutSeconds = flags.timeout
		}
	}

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved to "+opts.configPath)
	return nil
}

// promptConfiguration asks for each setting, keeping the current value on an
// empty answer.
func promptConfiguration(cmd *cobra.Command, opts *configureOptions, cfg *config.Config) error {
	ctx := context.Background()

	server, err := opts.prompt.Input(ctx,
		fmt.Sprintf("Market server URL [%s]", cfg.APIBaseURL),
		optional(validateServerURL))
	if err != nil {
		return err
	}
	if server = strings.TrimSpace(server); server != "" {
		cfg.APIBaseURL = strings.TrimSuffix(server, "/")
	}

	timeout, err := opts.prompt.Input(ctx,
		fmt.Sprintf("Request timeout in seconds [%d]", cfg.TimeoutSeconds),
		optional(validateTimeout))
	if err != nil {
		return err
	}
	if timeout = strings.TrimSpace(timeout); timeout != "" {
		cfg.TimeoutSeconds, _ = strconv.Atoi(timeout)
	}

	return nil
}

// showConfiguration prints the current configuration.
func showConfiguration(cmd *cobra.Command, opts *configureOptions, cfg *config.Config) error {
	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(map[string]any{
			"config_file":     opts.configPath,
			"api_base_url":    cfg.APIBaseURL,
			"token_file":      cfg.TokenFile,
			"timeout_seconds": cfg.TimeoutSeconds,
		})
	}

	return formatter.Table([]string{"Setting", "Value"}, [][]string{
		{"Config file", opts.configPath},
		{"API base URL", cfg.APIBaseURL},
		{"Token file", cfg.TokenFile},
		{"Timeout", strconv.Itoa(cfg.TimeoutSeconds) + "s"},
	})
}

// optional accepts an empty answer and otherwise defers to validate.
func optional(validate func(string) error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return validate(strings.TrimSpace(s))
	}
}

func validateServerURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}

func validateTimeout(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a whole number of seconds greater than 0")
	}
	return nil
}

func init() {
	opts := &configureOptions{}
	configureCmd := newConfigureCmd(opts)
	configureCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		opts.configPath = configPath
		if opts.configPath == "" {
			opts.configPath = config.ConfigPath()
		}
		opts.jsonMode = GetJSONMode()
		opts.prompt = prompt.New(os.Stdin, os.Stderr)
		return nil
	}

	rootCmd.AddCommand(configureCmd)
}
