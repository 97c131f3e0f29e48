package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

func TestCatalog_TodasLasClavesEnTodosLosIdiomas(t *testing.T) {
	keys := []string{
		domain.MsgRequired, domain.MsgInvalidFormat, domain.MsgOutOfRange, domain.MsgSelfLease,
		domain.MsgEndBeforeStart, domain.MsgLesseeChanged, domain.MsgNotOwner, domain.MsgNotHolder,
		domain.MsgBlocked, domain.MsgInstalled, domain.MsgNotInstalled, domain.MsgLeased,
		domain.MsgInvalidLocation, domain.MsgInvalidDestination, domain.MsgNotAtOrigin,
		domain.MsgSlotEmpty, domain.MsgNoDefaultDeposit, domain.MsgNotFound, domain.MsgForbidden,
		domain.MsgUnauthorized, domain.MsgConflict, domain.MsgAlreadyInUse, domain.MsgInvalidTransition,
		domain.MsgValidation, domain.MsgDatabaseError, domain.MsgInternalError, domain.MsgSaved,
		domain.MsgDeleted, domain.MsgMoved, domain.MsgInvalidCreds,
	}
	for _, tag := range supported {
		for _, k := range keys {
			_, ok := catalog[tag][k]
			assert.True(t, ok, "%s sin traducción para %q", tag, k)
		}
		assert.Len(t, catalog[tag], len(catalog[language.BrazilianPortuguese]), tag.String())
	}
}

func TestT_TraduceSegunIdioma(t *testing.T) {
	assert.Equal(t, "Campo obrigatório", T(language.BrazilianPortuguese, domain.MsgRequired))
	assert.Equal(t, "Campo obligatorio", T(language.Spanish, domain.MsgRequired))
	assert.Equal(t, "Required field", T(language.English, domain.MsgRequired))
	assert.Equal(t, "3 record(s)", T(language.English, "report.footer", 3))
}

func TestT_ClaveDesconocidaSeDevuelveTalCual(t *testing.T) {
	assert.Equal(t, "no_such_key", T(language.English, "no_such_key"))
}

func TestMatch(t *testing.T) {
	assert.Equal(t, language.Spanish, Match("es-CO,es;q=0.9", Default))
	assert.Equal(t, language.English, Match("en-US", Default))
	assert.Equal(t, language.BrazilianPortuguese, Match("pt-BR", language.English))
	assert.Equal(t, language.English, Match("", language.English))
	assert.Equal(t, Default, Match("ja", Default))
}

func TestParse(t *testing.T) {
	assert.Equal(t, language.Spanish, Parse("es", Default))
	assert.Equal(t, Default, Parse("xx-invalid-!", Default))
}

func TestFields(t *testing.T) {
	got := Fields(language.English, map[string]string{"target_id": domain.MsgBlocked})
	assert.Equal(t, map[string]string{"target_id": "Record is blocked"}, got)
	assert.Nil(t, Fields(language.English, nil))
}
