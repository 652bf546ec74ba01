package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tsutoringo/viron-go"
	"github.com/tsutoringo/viron-go/internal/config"
	"github.com/tsutoringo/viron-go/internal/sample"
	"github.com/tsutoringo/viron-go/page"
)

type CLI struct {
	Globals

	Version VersionCmd `cmd:"" help:"Print version information."`
	Serve   ServeCmd   `cmd:"" help:"Serve the sample API with the Viron routes."`
	OAS     OASCmd     `cmd:"" name:"oas" help:"Print the augmented OpenAPI document."`
	Check   CheckCmd   `cmd:"" help:"Build and validate the augmented document without serving it."`
}

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"YAML config file." short:"c" type:"existingfile"`
	Pages    string `help:"Page tree file (YAML or JSON). Overrides viron.pages." type:"existingfile"`
	LogLevel string `help:"Log level (debug, info, warn, error). Overrides log_level." name:"log-level"`

	stdout io.Writer
	stderr io.Writer
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintln(g.stdout, Version())
	return nil
}

// setup loads the configuration and builds the logger, the sample API and
// the page tree every command works on.
func (g *Globals) setup() (*config.Config, *slog.Logger, *viron.API, page.Page, error) {
	cfg := config.Default()
	if g.Config != "" {
		loaded, err := config.Load(g.Config)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		cfg = loaded
	}
	if g.Pages != "" {
		cfg.Viron.Pages = g.Pages
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(g.stderr, &slog.HandlerOptions{Level: level}))

	root := sample.Pages()
	if cfg.Viron.Pages != "" {
		root, err = page.Load(cfg.Viron.Pages)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	api := sample.NewAPI(sample.NewStore(), logger)
	return cfg, logger, api, root, nil
}

func main() {
	cli := &CLI{}
	cli.stdout = os.Stdout
	cli.stderr = os.Stderr

	ctx := kong.Parse(cli,
		kong.Name("viron"),
		kong.Description("Serve and inspect the Viron dashboard metadata of the sample API."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
