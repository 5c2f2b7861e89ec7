package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/kaptinlin/go-i18n"

	"github.com/holo-oc/webhookdiff"
	"github.com/holo-oc/webhookdiff/internal/clilog"
)

// errBreakingChangesFound signals that the diff completed successfully
// but found at least one breaking change; main maps it to exit code 1
// without printing it as an error (the report itself was already written
// to stdout).
var errBreakingChangesFound = errors.New("breaking changes found")

func run(cfg *config, stdout, stderr io.Writer) error {
	logger, err := clilog.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	messages, err := webhookdiff.Messages()
	if err != nil {
		return err
	}
	localizer := messages.NewLocalizer(cfg.Locale)

	if cfg.BaseSchema == "" {
		return fmt.Errorf("%w: --base is required", webhookdiff.ErrMissingBaseInput)
	}

	baseSchema, baseJSON, err := loadSchemaSource(cfg.BaseSchema)
	if err != nil {
		return err
	}

	nextSchema, nextJSON, err := resolveNextSchema(cfg, baseJSON)
	if err != nil {
		return err
	}

	if cfg.Validate != "" {
		if err := validateAgainstNext(cfg, nextJSON, logger); err != nil {
			return err
		}
	}

	report := webhookdiff.Diff(baseSchema, nextSchema)

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(encoded))

	if cfg.RawDiff {
		raw, err := rawStructuralDiff(baseJSON, nextJSON)
		if err != nil {
			logger.Warn("raw diff failed", "error", err)
		} else {
			fmt.Fprintln(stdout, string(raw))
		}
	}

	logSummary(logger, localizer, cfg, report)

	if report.BreakingCount > 0 {
		return errBreakingChangesFound
	}
	return nil
}

// loadSchemaSource reads a schema from a file path (already-normalized
// JSON or YAML), parsing it both into a *webhookdiff.Schema and into the
// raw normalized JSON bytes used by --raw-diff and --validate.
func loadSchemaSource(path string) (*webhookdiff.Schema, []byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	normalized, err := toJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrParseInput, path, err)
	}

	var schema webhookdiff.Schema
	if err := json.Unmarshal(normalized, &schema); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrParseInput, path, err)
	}
	return webhookdiff.Normalize(&schema), normalized, nil
}

// resolveNextSchema produces the candidate schema from whichever of
// --next, --next-payload, or --next-patch was supplied.
func resolveNextSchema(cfg *config, baseJSON []byte) (*webhookdiff.Schema, []byte, error) {
	switch {
	case cfg.NextSchema != "":
		return loadSchemaSource(cfg.NextSchema)

	case cfg.NextPayload != "":
		payload, err := readPayload(cfg.NextPayload)
		if err != nil {
			return nil, nil, err
		}
		schema := webhookdiff.Normalize(webhookdiff.Infer(payload))
		data, err := json.Marshal(schema)
		if err != nil {
			return nil, nil, err
		}
		return schema, data, nil

	case cfg.NextPatch != "":
		patched, err := applyPatch(baseJSON, cfg.NextPatch)
		if err != nil {
			return nil, nil, err
		}
		var schema webhookdiff.Schema
		if err := json.Unmarshal(patched, &schema); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", webhookdiff.ErrParseInput, cfg.NextPatch, err)
		}
		return webhookdiff.Normalize(&schema), patched, nil

	default:
		return nil, nil, webhookdiff.ErrMissingNextInput
	}
}

func validateAgainstNext(cfg *config, nextJSON []byte, logger *slog.Logger) error {
	payload, err := readPayload(cfg.Validate)
	if err != nil {
		return err
	}
	if err := validatePayload(nextJSON, payload); err != nil {
		logger.Error("payload validation failed", "error", err)
		return err
	}
	return nil
}

func logSummary(logger *slog.Logger, localizer *i18n.Localizer, cfg *config, report *webhookdiff.DiffReport) {
	if report.BreakingCount > 0 {
		logger.Warn(localizer.Get("cli.breaking_summary", i18n.Vars(map[string]any{
			"count": report.BreakingCount,
			"base":  cfg.BaseSchema,
			"next":  nextLabel(cfg),
		})))
		return
	}
	logger.Info(localizer.Get("cli.clean_summary", i18n.Vars(map[string]any{
		"base": cfg.BaseSchema,
		"next": nextLabel(cfg),
	})))
}

func nextLabel(cfg *config) string {
	switch {
	case cfg.NextSchema != "":
		return cfg.NextSchema
	case cfg.NextPayload != "":
		return cfg.NextPayload
	case cfg.NextPatch != "":
		return cfg.NextPatch
	default:
		return "<none>"
	}
}

// exitCodeFor maps a run() error to the CLI's exit-code contract: 0 is
// handled by main before this is ever called, 1 is breaking changes
// found, 2 is everything else (usage or input error).
func exitCodeFor(err error) int {
	if errors.Is(err, errBreakingChangesFound) {
		return 1
	}
	return 2
}
