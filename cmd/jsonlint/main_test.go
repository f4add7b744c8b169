package main

import (
	"errors"
	"testing"

	streamjson "github.com/cvjson/streamjson"
)

func TestDescribeErrorKnownSentinel(t *testing.T) {
	t.Parallel()
	wrapped := &streamjson.ParseError{Offset: 12, Err: streamjson.ErrNestingLimit}
	if got := describeError(wrapped); got != "nesting limit" {
		t.Fatalf("describeError(ErrNestingLimit) = %q, want %q", got, "nesting limit")
	}
}

func TestDescribeErrorUnknown(t *testing.T) {
	t.Parallel()
	custom := errors.New("some other failure")
	if got := describeError(custom); got != custom.Error() {
		t.Fatalf("describeError(unknown) = %q, want %q", got, custom.Error())
	}
}

func TestBuildConfigNoCommentsClearsBoth(t *testing.T) {
	t.Parallel()
	old := flags
	defer func() { flags = old }()

	flags.noComments = true
	flags.noCComments = false
	flags.noYAMLComments = false
	cfg := buildConfig()
	if cfg.AllowCComments || cfg.AllowYAMLComments {
		t.Fatalf("buildConfig() with noComments = %+v, want both comment kinds disallowed", cfg)
	}
}

func TestBuildConfigIndividualCommentFlags(t *testing.T) {
	t.Parallel()
	old := flags
	defer func() { flags = old }()

	flags.noComments = false
	flags.noCComments = true
	flags.noYAMLComments = false
	cfg := buildConfig()
	if cfg.AllowCComments {
		t.Fatal("buildConfig() with noCComments should disallow C comments")
	}
	if !cfg.AllowYAMLComments {
		t.Fatal("buildConfig() with noCComments should still allow YAML comments")
	}
}

func TestBuildConfigLimitsPassThrough(t *testing.T) {
	t.Parallel()
	old := flags
	defer func() { flags = old }()

	flags.maxNesting = 5
	flags.maxData = 1024
	cfg := buildConfig()
	if cfg.MaxNesting != 5 || cfg.MaxData != 1024 {
		t.Fatalf("buildConfig() limits = %+v, want MaxNesting=5 MaxData=1024", cfg)
	}
}
