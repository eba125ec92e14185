// Command grayscaler converts base64 images, bare or as data URIs, to
// grayscale and prints the result as JSON or as an HTML <img> element.
//
//	grayscaler convert photo.b64 --output html
//	grayscaler batch a.b64 b.b64 c.b64
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Skryldev/grayscaler"
	"github.com/Skryldev/grayscaler/config"
	"github.com/Skryldev/grayscaler/display"
	"github.com/Skryldev/grayscaler/hooks"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	root, a := newRootCmd()
	err := execute(ctx, root, a)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and always releases what setup acquired.
// Cobra skips post-run hooks when RunE fails, so cleanup lives here.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

// attach wires the decode backend chosen at build time.
var attach = attachBackend

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	configPath   string
	output       string
	preserveMime bool
	alt          string

	cfg      config.Config
	log      *zap.Logger
	conv     *grayscaler.Converter
	shutdown func()
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:               "grayscaler",
		Short:             "Convert base64 images to grayscale data URIs",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	f.StringVarP(&a.output, "output", "o", "json", "output surface: json or html")
	f.BoolVar(&a.preserveMime, "preserve-mime", false, "keep the input container instead of always writing PNG")
	f.StringVar(&a.alt, "alt", "", "alt text for the output image (default from config)")

	root.AddCommand(newConvertCmd(a), newBatchCmd(a))
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("preserve-mime") {
		cfg.PreserveInputMime = a.preserveMime
	}
	if a.alt != "" {
		cfg.AltText = a.alt
	}
	if a.output != "json" && a.output != "html" {
		return fmt.Errorf("unknown output %q: want json or html", a.output)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	conv := grayscaler.New(cfg)
	zl := hooks.NewZapLogger(log)
	conv.SetLogger(zl)
	conv.AddHook(hooks.NewLoggingHook(zl))

	a.cfg, a.log, a.conv = cfg, log, conv
	a.shutdown = attach(conv, cfg, log)
	return nil
}

func (a *app) close() {
	if a.shutdown != nil {
		a.shutdown()
		a.shutdown = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) surface(cmd *cobra.Command) display.Surface {
	if a.output == "html" {
		return display.NewHTML(cmd.OutOrStdout())
	}
	return display.NewJSON(cmd.OutOrStdout())
}

// newLogger builds a production zap logger writing to stderr so stdout only
// carries conversion output.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
