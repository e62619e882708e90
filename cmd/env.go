package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmarket/pm/internal/api"
	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/config"
	"github.com/pmarket/pm/internal/keyring"
	"github.com/pmarket/pm/internal/logging"
	"github.com/pmarket/pm/internal/output"
	"github.com/pmarket/pm/internal/session"
)

// marketOptions holds dependencies shared by commands that talk to the
// market server.
type marketOptions struct {
	baseURL   string
	authToken string
	jsonMode  bool
	timeout   time.Duration
	logger    *zap.Logger
}

func (o *marketOptions) client() *api.Client {
	return api.NewClient(o.baseURL, o.authToken,
		api.WithTimeout(o.timeout),
		api.WithLogger(o.logger))
}

func (o *marketOptions) formatter(cmd *cobra.Command) *output.Formatter {
	return output.New(cmd.OutOrStdout(), o.jsonMode)
}

// environment is the configuration resolved from flags, env and the config
// file for a single invocation.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	resolver *session.Resolver
}

// loadEnvironment applies precedence flag > env > file > default.
func loadEnvironment() (*environment, error) {
	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if tokenFile != "" {
		cfg.TokenFile = tokenFile
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &environment{
		cfg:    cfg,
		logger: logger,
		resolver: &session.Resolver{
			Store:        keyring.NewEnvStore(keyring.NewSystemStore()),
			Key:          keyring.SessionKey(cfg.APIBaseURL),
			TokenFile:    cfg.TokenFile,
			ExplicitFile: tokenFile != "",
			Logger:       logger,
		},
	}, nil
}

// fill populates opts, reading the session token once.
func (e *environment) fill(opts *marketOptions) error {
	token, err := e.resolver.Token()
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}

	opts.baseURL = e.cfg.APIBaseURL
	opts.authToken = token
	opts.jsonMode = GetJSONMode()
	opts.timeout = e.cfg.Timeout()
	opts.logger = e.logger
	return nil
}

// withMarket returns a PersistentPreRunE that fills opts from the environment.
func withMarket(opts *marketOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		return env.fill(opts)
	}
}

// exactArgs is cobra.ExactArgs reported as a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return clierror.User(err.Error())
		}
		return nil
	}
}

// parseID parses a positional event or stock ID.
func parseID(kind, arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, clierror.Userf("invalid %s ID %q", kind, arg)
	}
	return uint32(id), nil
}
