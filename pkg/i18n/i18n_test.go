package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate_DefaultsToEnglish(t *testing.T) {
	tr := ForAcceptLanguage("")
	assert.Equal(t, MsgVouchRequired, tr.Translate(MsgVouchRequired))
}

func TestTranslate_MatchesAcceptLanguage(t *testing.T) {
	tr := ForAcceptLanguage("es-MX,es;q=0.9,en;q=0.8")
	assert.Equal(t, "Debes estar avalado para hacer esto.", tr.Translate(MsgVouchRequired))
}

func TestCountryName(t *testing.T) {
	tr := ForAcceptLanguage("en")

	assert.Equal(t, "United States", tr.CountryName("us"))
	assert.Equal(t, "United States", tr.CountryName("US"))
	assert.Equal(t, "", tr.CountryName(""))
	assert.Equal(t, "", tr.CountryName("zz-bogus"))
}
