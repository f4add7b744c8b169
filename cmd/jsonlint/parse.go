package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamjson "github.com/cvjson/streamjson"
)

// newParseCmd mirrors do_parse in jsonlint.c: the default mode when
// neither verify nor format is requested. On failure it prints
// "FILE: line L, col C: message" to stderr for the first error and stops.
func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Validate each file, reporting the first error's line:col",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := buildConfig()
			for _, name := range args {
				if err := parseFile(name, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func parseFile(name string, cfg streamjson.Config) error {
	f, err := os.Open(name)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("cannot open file")
		return err
	}
	defer f.Close()

	p := streamjson.New(cfg, func(streamjson.Event, []byte) error { return nil })
	defer p.Close()

	loc := newLocation()
	if err := readChunked(f, p, loc); err != nil {
		msg := fmt.Sprintf("%s: line %d, col %d: %s", name, loc.line, loc.col, describeError(err))
		fmt.Fprintln(os.Stderr, msg)
		return fmt.Errorf("%s", msg)
	}
	if !p.IsDone() {
		msg := fmt.Sprintf("%s: line %d, col %d: syntax error", name, loc.line, loc.col)
		fmt.Fprintln(os.Stderr, msg)
		return fmt.Errorf("%s", msg)
	}
	return nil
}
