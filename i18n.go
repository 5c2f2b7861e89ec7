package webhookdiff

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// Messages returns an initialized i18n bundle for the CLI-facing message
// catalog (cmd/webhookdiff). The core diff engine's own output strings
// (enum widened, minimum loosened, …) are a stable wire format, not
// localized text, so this bundle only backs CLI-facing text. The CLI looks
// up only the breaking/clean summary lines; the catalog's read, parse,
// patch, missing-input and validate entries are not looked up, and CLI
// errors are printed from their Go error text.
func Messages() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "es"),
	)

	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return bundle, nil
}
