package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eclipse-ibc/eclipse-ibc-go/simapp"
)

const (
	configName = "config"
	configType = "toml"
	dataDir    = "data"
	dbName     = "application"
)

// Config is the per-home configuration, read from <home>/config.toml and
// overridden by ECLIPSE_IBC_* environment variables and flags.
type Config struct {
	Home     string `mapstructure:"home"`
	ChainID  string `mapstructure:"chain-id"`
	LogLevel string `mapstructure:"log-level"`
	Output   string `mapstructure:"output"`
	Metrics  bool   `mapstructure:"metrics"`
}

// Context is shared by all commands. It is populated by Load before a
// command runs.
type Context struct {
	Viper  *viper.Viper
	Config Config
	Logger log.Logger

	sink *metrics.InmemSink
}

// Load resolves the configuration of cmd, then builds the logger and the
// telemetry sink from it.
func (ctx *Context) Load(cmd *cobra.Command) error {
	v := ctx.Viper
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	home := v.GetString(flagHome)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config in %s: %w", home, err)
		}
	}

	if err := v.Unmarshal(&ctx.Config); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	level, err := zerolog.ParseLevel(ctx.Config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", ctx.Config.LogLevel, err)
	}
	ctx.Logger = log.NewLogger(cmd.ErrOrStderr(), log.LevelOption(level))

	if ctx.Config.Metrics {
		ctx.sink = metrics.NewInmemSink(time.Minute, time.Minute)

		cfg := metrics.DefaultConfig("eclipse-ibc")
		cfg.EnableHostname = false
		cfg.EnableRuntimeMetrics = false
		if _, err := metrics.NewGlobal(cfg, ctx.sink); err != nil {
			return fmt.Errorf("failed to install metrics sink: %w", err)
		}
	}

	return nil
}

// ReportMetrics writes the counters collected during the command, if
// telemetry is enabled.
func (ctx *Context) ReportMetrics(w io.Writer) error {
	if ctx.sink == nil {
		return nil
	}

	counters := make(map[string]int)
	for _, interval := range ctx.sink.Data() {
		for name, value := range interval.Counters {
			counters[name] += value.Count
		}
	}

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s %d\n", name, counters[name]); err != nil {
			return err
		}
	}
	return nil
}

// OpenApp opens the chain stored in the configured home.
func (ctx *Context) OpenApp() (*simapp.SimApp, error) {
	if ctx.Config.ChainID == "" {
		return nil, fmt.Errorf("no chain-id configured in %s; run admin init-storage-account first", ctx.Config.Home)
	}

	db, err := dbm.NewDB(dbName, dbm.GoLevelDBBackend, filepath.Join(ctx.Config.Home, dataDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app, err := simapp.NewSimApp(ctx.Logger, db, ctx.Config.ChainID)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// WithApp opens the configured chain, runs fn against it and closes it.
func (ctx *Context) WithApp(fn func(app *simapp.SimApp) error) (err error) {
	app, err := ctx.OpenApp()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); err == nil {
			err = closeErr
		}
	}()

	return fn(app)
}

// WriteConfig stores the chain-scoped settings in <home>/config.toml.
func (ctx *Context) WriteConfig() error {
	if err := os.MkdirAll(ctx.Config.Home, 0o755); err != nil {
		return err
	}

	w := viper.New()
	w.Set(flagChainID, ctx.Config.ChainID)
	w.Set(flagLogLevel, ctx.Config.LogLevel)
	return w.WriteConfigAs(filepath.Join(ctx.Config.Home, configName+"."+configType))
}
