package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamjson "github.com/cvjson/streamjson"
)

// newVerifyCmd mirrors do_verify in jsonlint.c: no output on success,
// exit 1 with no message on a malformed file (verify is meant to be
// quiet and scriptable).
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Exit 0 if every file is a complete, well-formed JSON document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := buildConfig()
			failed := false
			for _, name := range args {
				if err := verifyFile(name, cfg); err != nil {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("one or more files failed verification")
			}
			return nil
		},
	}
}

func verifyFile(name string, cfg streamjson.Config) error {
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
		return err
	}
	if !p.IsDone() {
		return fmt.Errorf("incomplete document")
	}
	return nil
}
