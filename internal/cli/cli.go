// Package cli carries the flag surface and wiring shared by the two probe
// commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/dm/escheck-go/internal/check"
	"github.com/dm/escheck-go/internal/client"
	"github.com/dm/escheck-go/internal/config"
	"github.com/dm/escheck-go/internal/threshold"
)

// Options holds the flag values common to both probes.
type Options struct {
	URL        string
	ConfigPath string
	Username   string
	Password   string
	Timeout    int
	Insecure   bool
	Verbose    bool
	Color      bool
	Warning    string
	Critical   string
}

// RegisterCommon registers the flags shared by both probes.
func RegisterCommon(cmd *cobra.Command, o *Options) {
	f := cmd.Flags()
	f.StringVarP(&o.URL, "url", "u", "", "Elasticsearch base URL (http[s]://[user:pass@]host:port)")
	f.StringVar(&o.ConfigPath, "config", "escheck.yaml", "optional YAML config file")
	f.StringVar(&o.Username, "username", "", "HTTP Basic Auth username")
	f.StringVar(&o.Password, "password", "", "HTTP Basic Auth password")
	f.IntVarP(&o.Timeout, "timeout", "t", config.DefaultTimeoutSeconds, "overall probe budget in seconds")
	f.BoolVarP(&o.Insecure, "insecure", "k", false, "skip TLS certificate verification")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "debug logging on stderr")
	f.BoolVar(&o.Color, "color", false, "colorize the status token")
	f.StringVarP(&o.Warning, "warning", "w", "", "warning threshold expression")
	f.StringVarP(&o.Critical, "critical", "c", "", "critical threshold expression")
}

// Resolve layers defaults, the config file, the environment and flags into
// one immutable Config. Flags win; the environment wins over the file.
func (o *Options) Resolve(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(o.ConfigPath, explicit)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("url") {
		cfg.URL = o.URL
	}
	if cmd.Flags().Changed("username") {
		cfg.Username = o.Username
	}
	if cmd.Flags().Changed("password") {
		cfg.Password = o.Password
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = o.Timeout
	}
	if cmd.Flags().Changed("insecure") {
		cfg.Insecure = o.Insecure
	}
	if cmd.Flags().Changed("warning") {
		cfg.Warning = o.Warning
	}
	if cmd.Flags().Changed("critical") {
		cfg.Critical = o.Critical
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("an Elasticsearch URL is required (--url, ES_URL, or config file)")
	}

	baseURL, user, pass, err := config.ParseESURI(cfg.URL)
	if err != nil {
		return nil, err
	}
	cfg.URL = baseURL
	if user != "" {
		cfg.Username = user
	}
	if pass != "" {
		cfg.Password = pass
	}
	return cfg, nil
}

// NewLogger builds a tinted slog logger on stderr. Stdout is reserved for
// the plugin line.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// NewClient builds the Elasticsearch client from a resolved config.
func NewClient(cfg *config.Config) (client.ESClient, error) {
	return client.NewDefaultClient(client.ClientConfig{
		BaseURL:            cfg.URL,
		Username:           cfg.Username,
		Password:           cfg.Password,
		InsecureSkipVerify: cfg.Insecure,
		RequestTimeout:     cfg.HTTPTimeout(),
	})
}

// Exit prints the plugin line on stdout and terminates with the worst
// severity's exit code.
func Exit(r *check.Report, okText string, color bool) {
	fmt.Println(check.RenderLine(r, okText, color))
	os.Exit(r.Worst().ExitCode())
}

// ExitUnknown reports a usage or setup failure as UNKNOWN.
func ExitUnknown(err error) {
	fmt.Printf("%s - %v\n", threshold.SeverityUnknown, err)
	os.Exit(threshold.SeverityUnknown.ExitCode())
}
