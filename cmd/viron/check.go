package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsutoringo/viron-go/oas"
)

type CheckCmd struct {
	WarnOnly bool `help:"Report OpenAPI validation failures without failing." name:"warn-only"`
}

func (c *CheckCmd) Run(g *Globals) error {
	cfg, logger, api, root, err := g.setup()
	if err != nil {
		return err
	}

	pages, err := oas.BuildPages(api, root)
	if err != nil {
		return fmt.Errorf("pages: %w", err)
	}
	var bindings int
	for _, p := range pages {
		bindings += len(p.Contents)
	}
	fmt.Fprintf(g.stdout, "✓ %d pages, %d bindings\n", len(pages), bindings)

	doc, err := oas.Augment(api, root,
		oas.WithOASPath(cfg.Viron.OASPath),
		oas.WithAuthPath(cfg.Viron.AuthPath),
		oas.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout, "✓ %d paths, %d tags\n", doc.Paths.Len(), len(doc.Tags))

	if err := doc.Validate(context.Background()); err != nil {
		if !c.WarnOnly {
			return fmt.Errorf("openapi: %w", err)
		}
		logger.Warn("openapi validation failed", slog.Any("error", err))
		return nil
	}
	fmt.Fprintln(g.stdout, "✓ OpenAPI document valid")
	return nil
}
