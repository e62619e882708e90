package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmarket/pm/internal/api"
	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/prompt"
	"github.com/pmarket/pm/internal/render"
	"github.com/pmarket/pm/pkg/pmarket"
)

// tokenStore persists the session token between invocations.
type tokenStore interface {
	Save(token string) error
	Clear() error
}

// sessionOptions holds dependencies for signup, signin and signout.
type sessionOptions struct {
	market         *marketOptions
	store          tokenStore
	passwordReader prompt.PasswordReader
}

// newSignupCmd creates the signup command with the given options.
func newSignupCmd(opts *sessionOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Create an account on the market server.

The password is read from the terminal without echo when --password is
not given.

Example:
  pm signup --username alice`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, opts, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.SilenceUsage = true

	return cmd
}

func runSignup(cmd *cobra.Command, opts *sessionOptions, username, password string) error {
	creds, err := credentials(cmd, opts, username, password)
	if err != nil {
		return err
	}

	if err := opts.market.client().Signup(context.Background(), creds); err != nil {
		return err
	}

	return render.Success(opts.market.formatter(cmd), "signed_up",
		fmt.Sprintf("Created account %s. Sign in with: pm signin --username %s", creds.Username, creds.Username))
}

// newSigninCmd creates the signin command with the given options.
func newSigninCmd(opts *sessionOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session token",
		Long: `Sign in to the market server.

The session token is written to the token file and, when available, the
system keyring. The password is read from the terminal without echo when
--password is not given.

Example:
  pm signin --username alice`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignin(cmd, opts, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	cmd.SilenceUsage = true

	return cmd
}

func runSignin(cmd *cobra.Command, opts *sessionOptions, username, password string) error {
	creds, err := credentials(cmd, opts, username, password)
	if err != nil {
		return err
	}

	token, err := opts.market.client().Signin(context.Background(), creds)
	if errors.Is(err, pmarket.ErrUnauthorized) {
		return clierror.User("invalid username or password")
	}
	if err != nil {
		return err
	}

	if err := opts.store.Save(token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	return render.Success(opts.market.formatter(cmd), "signed_in", "Signed in as "+creds.Username)
}

// newSignoutCmd creates the signout command with the given options.
func newSignoutCmd(opts *sessionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signout",
		Short: "Remove the stored session token",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.store.Clear(); err != nil {
				return err
			}
			return render.Success(opts.market.formatter(cmd), "signed_out", "Signed out")
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

// credentials validates the username and reads the password if needed.
func credentials(cmd *cobra.Command, opts *sessionOptions, username, password string) (api.Credentials, error) {
	if username == "" {
		return api.Credentials{}, clierror.User("--username is required")
	}

	if password == "" {
		if !opts.passwordReader.IsTerminal() {
			return api.Credentials{}, clierror.User("--password is required when not running in a terminal")
		}

		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		p, err := opts.passwordReader.ReadPassword()
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return api.Credentials{}, fmt.Errorf("failed to read password: %w", err)
		}
		if p == "" {
			return api.Credentials{}, clierror.User("password cannot be empty")
		}
		password = p
	}

	return api.Credentials{Username: username, Password: password}, nil
}

func init() {
	opts := &sessionOptions{
		market:         &marketOptions{},
		passwordReader: prompt.NewTerminalReader(int(os.Stdin.Fd())),
	}
	preRun := func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		opts.store = env.resolver
		return env.fill(opts.market)
	}

	for _, c := range []*cobra.Command{newSignupCmd(opts), newSigninCmd(opts), newSignoutCmd(opts)} {
		c.PersistentPreRunE = preRun
		rootCmd.AddCommand(c)
	}
}
