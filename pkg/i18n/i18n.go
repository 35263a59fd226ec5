// Package i18n resolves localized UI messages and country display names.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

// Message IDs used by the handlers.
const (
	MsgVouchRequired   = "You must be vouched to do this."
	MsgVouchSuccess    = "Thanks for vouching for a fellow member! This user is now vouched!"
	MsgUsernameChanged = "You changed your username; please note your profile URL has also changed."
)

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
}

var matcher = language.NewMatcher(supported)

func init() {
	for _, str := range []string{MsgVouchRequired, MsgVouchSuccess, MsgUsernameChanged} {
		message.SetString(language.English, str, str)
	}

	message.SetString(language.Spanish, MsgVouchRequired,
		"Debes estar avalado para hacer esto.")
	message.SetString(language.French, MsgVouchRequired,
		"Vous devez être parrainé pour faire cela.")
	message.SetString(language.German, MsgVouchRequired,
		"Du musst vertrauenswürdig sein, um dies zu tun.")
}

// Translator localizes messages for a single request, picked from the
// Accept-Language header.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

func ForAcceptLanguage(acceptLanguage string) *Translator {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)
	return &Translator{tag: tag, printer: message.NewPrinter(tag)}
}

func (t *Translator) Translate(msg string) string {
	return t.printer.Sprintf(msg)
}

// CountryName resolves a two-letter country code to its display name in the
// request's language. Unknown or empty codes yield "".
func (t *Translator) CountryName(code string) string {
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(strings.ToUpper(code))
	if err != nil {
		return ""
	}
	return display.Regions(t.tag).Name(region)
}
