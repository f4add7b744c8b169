// Command jsonlint is the CLI front-end spec.md §1 treats as an external
// collaborator of the core parser ("verify/format/parse modes, argument
// parsing, file I/O, line/column tracking for diagnostics"). Recovered
// from original_source/jsonlint.c's three modes and flag set, rebuilt on
// github.com/spf13/cobra the way opal-lang-opal/cli/main.go structures a
// Cobra root command with persistent flags shared across subcommands.
package main

import (
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamjson "github.com/cvjson/streamjson"
)

// flags holds the persistent, subcommand-shared options, grounded on
// jsonlint.c's json_config plus its --indent-string/-o output option.
var flags struct {
	noComments      bool
	noCComments     bool
	noYAMLComments  bool
	maxNesting      uint32
	maxData         uint32
	indentString    string
	output          string
}

func main() {
	setupLogging()

	root := &cobra.Command{
		Use:           "jsonlint",
		Short:         "Verify, format, and parse JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flags.noComments, "no-comments", false, "disallow both C and YAML comments (default: both allowed)")
	root.PersistentFlags().BoolVar(&flags.noCComments, "no-c-comments", false, "disallow /* C-style */ comments")
	root.PersistentFlags().BoolVar(&flags.noYAMLComments, "no-yaml-comments", false, "disallow # YAML-style comments")
	root.PersistentFlags().Uint32Var(&flags.maxNesting, "max-nesting", 0, "limit nesting depth of structures (0 = unlimited)")
	root.PersistentFlags().Uint32Var(&flags.maxData, "max-data", 0, "limit byte length of a single string/int/float (0 = unlimited)")
	root.PersistentFlags().StringVar(&flags.indentString, "indent-string", "\t", "indent string used by format (one level)")
	root.PersistentFlags().StringVarP(&flags.output, "output", "o", "-", "output file for format (default: stdout)")

	root.AddCommand(newVerifyCmd(), newFormatCmd(), newParseCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}

// buildConfig turns the shared flags into a streamjson.Config, mirroring
// jsonlint.c's json_config setup in main() (allow_c_comments/
// allow_yaml_comments default to on, --no-comments clears both).
func buildConfig() streamjson.Config {
	cComments := !flags.noComments && !flags.noCComments
	yamlComments := !flags.noComments && !flags.noYAMLComments
	return streamjson.Config{
		MaxNesting:        flags.maxNesting,
		MaxData:           flags.maxData,
		AllowCComments:    cComments,
		AllowYAMLComments: yamlComments,
	}
}

// errorCodeNames mirrors jsonlint.c's string_of_errors table, keyed by
// the sentinel error rather than by an integer code.
var errorCodeNames = []struct {
	err  error
	name string
}{
	{streamjson.ErrNoMemory, "out of memory"},
	{streamjson.ErrBadChar, "bad character"},
	{streamjson.ErrPopEmpty, "stack empty"},
	{streamjson.ErrPopUnexpectedMode, "pop unexpected mode"},
	{streamjson.ErrNestingLimit, "nesting limit"},
	{streamjson.ErrDataLimit, "data limit"},
	{streamjson.ErrCommentNotAllowed, "comment not allowed by config"},
	{streamjson.ErrUnexpectedChar, "unexpected char"},
	{streamjson.ErrUnicodeMissingLowSurrogate, "missing unicode low surrogate"},
	{streamjson.ErrUnicodeUnexpectedLowSurrogate, "unexpected unicode low surrogate"},
	{streamjson.ErrCommaOutOfStructure, "comma out of structure"},
	{streamjson.ErrCallback, "callback aborted parsing"},
}

func describeError(err error) string {
	for _, e := range errorCodeNames {
		if errors.Is(err, e.err) {
			return e.name
		}
	}
	return err.Error()
}

// readChunked feeds file's contents to p in 4096-byte chunks (the same
// buffer size process_file uses in jsonlint.c), advancing loc by the
// bytes the parser actually accepted. It returns the first parse error
// encountered, if any.
func readChunked(f *os.File, p *streamjson.Parser, loc *location) error {
	buf := make([]byte, 4096)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			processed, err := p.Feed(buf[:n])
			loc.advance(buf[:n], processed)
			if err != nil {
				return err
			}
		}
		if readErr != nil {
			break
		}
	}
	return nil
}
