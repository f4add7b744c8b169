package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamjson "github.com/cvjson/streamjson"
)

// newFormatCmd mirrors do_format in jsonlint.c: pretty-print each file to
// stdout (or -o for a single output file), using Printer in pretty mode
// with --indent-string as the per-level indent.
func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format FILE...",
		Short: "Pretty-print each file's JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output != "-" && len(args) > 1 {
				return fmt.Errorf("-o/--output can only be used with a single input file")
			}
			cfg := buildConfig()
			for _, name := range args {
				if err := formatFile(name, cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func formatFile(name string, cfg streamjson.Config) error {
	in, err := os.Open(name)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("cannot open file")
		return err
	}
	defer in.Close()

	out := os.Stdout
	if flags.output != "-" {
		f, err := os.Create(flags.output)
		if err != nil {
			log.Error().Err(err).Str("file", flags.output).Msg("cannot open output file")
			return err
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	printer := streamjson.NewPrinter(w)
	printer.SetIndent(flags.indentString)

	p := streamjson.New(cfg, func(kind streamjson.Event, payload []byte) error {
		return printer.Emit(kind, payload)
	})
	defer p.Close()

	loc := newLocation()
	if err := readChunked(in, p, loc); err != nil {
		msg := fmt.Sprintf("%s: line %d, col %d: %s", name, loc.line, loc.col, describeError(err))
		fmt.Fprintln(os.Stderr, msg)
		return fmt.Errorf("%s", msg)
	}
	if !p.IsDone() {
		msg := fmt.Sprintf("%s: line %d, col %d: syntax error", name, loc.line, loc.col)
		fmt.Fprintln(os.Stderr, msg)
		return fmt.Errorf("%s", msg)
	}
	w.WriteString("\n")
	return nil
}
