package main

import (
	"encoding/json"
	"fmt"

	"github.com/tsutoringo/viron-go/oas"
)

type OASCmd struct {
	Indent bool `help:"Indent the JSON output." short:"i"`
}

func (c *OASCmd) Run(g *Globals) error {
	cfg, logger, api, root, err := g.setup()
	if err != nil {
		return err
	}

	srv, err := oas.New(api, root,
		oas.WithOASPath(cfg.Viron.OASPath),
		oas.WithAuthPath(cfg.Viron.AuthPath),
		oas.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	if !c.Indent {
		_, err = fmt.Fprintf(g.stdout, "%s\n", srv.DocumentJSON())
		return err
	}
	out, err := json.MarshalIndent(srv.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	_, err = fmt.Fprintf(g.stdout, "%s\n", out)
	return err
}
