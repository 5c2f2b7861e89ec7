package main

import "github.com/spf13/pflag"

// config holds the resolved CLI flags for a single webhookdiff invocation.
type config struct {
	BaseSchema  string
	BasePayload string

	NextSchema  string
	NextPayload string
	NextPatch   string

	RawDiff   bool
	Validate  string
	Locale    string
	LogLevel  string
	LogFormat string
}

func newConfig() *config {
	return &config{
		Locale:    "en",
		LogLevel:  "info",
		LogFormat: "logfmt",
	}
}

func (c *config) registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.BaseSchema, "base", "", "path to the baseline JSON Schema (- for stdin)")
	flags.StringVar(&c.BasePayload, "base-payload", "", "path to a baseline payload sample (not read: the baseline always comes from --base)")

	flags.StringVar(&c.NextSchema, "next", "", "path to the candidate JSON Schema")
	flags.StringVar(&c.NextPayload, "next-payload", "", "path to a candidate payload sample, inferred into a schema")
	flags.StringVar(&c.NextPatch, "next-patch", "", "path to an RFC 6902 JSON Patch applied to --base to produce the candidate schema")

	flags.BoolVar(&c.RawDiff, "raw-diff", false, "also print a raw structural JSON diff between the baseline and candidate schema documents")
	flags.StringVar(&c.Validate, "validate", "", "path to a payload to validate against the candidate schema before diffing")
	flags.StringVar(&c.Locale, "locale", "en", "locale for CLI messages (en, es)")
	flags.StringVar(&c.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&c.LogFormat, "log-format", "logfmt", "log format: logfmt, json")
}
