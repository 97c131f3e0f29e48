package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testOrder = map[string]string{"serial_number": "e.serial_number", "model": "m.name"}

func TestSelectBuilder_SinFiltros(t *testing.T) {
	sql, args := newSelect("e.id", "equipments e").SQL()
	assert.Equal(t, "SELECT e.id FROM equipments e", sql)
	assert.Empty(t, args)
}

func TestSelectBuilder_NumeraParametros(t *testing.T) {
	b := newSelect("e.id", "equipments e").
		Where("e.contractor_id = ?", "A").
		WhereIf(false, "e.blocked = ?", true).
		Where("e.serial_number ILIKE ? OR e.imei ILIKE ?", "%1%", "%1%").
		OrderBy("model", true, testOrder, "e.serial_number").
		Page(25, 50)

	sql, args := b.SQL()
	assert.Equal(t,
		"SELECT e.id FROM equipments e WHERE (e.contractor_id = $1) AND (e.serial_number ILIKE $2 OR e.imei ILIKE $3) ORDER BY m.name DESC LIMIT $4 OFFSET $5",
		sql)
	assert.Equal(t, []any{"A", "%1%", "%1%", 25, 50}, args)

	count, cargs := b.CountSQL()
	assert.Equal(t,
		"SELECT COUNT(*) FROM equipments e WHERE (e.contractor_id = $1) AND (e.serial_number ILIKE $2 OR e.imei ILIKE $3)",
		count)
	assert.Equal(t, []any{"A", "%1%", "%1%"}, cargs)
}

func TestSelectBuilder_OrdenFueraDeListaBlanca(t *testing.T) {
	sql, _ := newSelect("e.id", "equipments e").
		OrderBy("1; DROP TABLE equipments", false, testOrder, "e.serial_number").
		SQL()
	assert.Equal(t, "SELECT e.id FROM equipments e ORDER BY e.serial_number ASC", sql)
}

func TestSelectBuilder_CloneNoAfectaAlOriginal(t *testing.T) {
	base := newSelect("e.id", "equipments e").Where("e.contractor_id = ?", "A")
	filtered := base.Clone().Where("e.blocked = ?", true)

	sql, args := base.CountSQL()
	assert.Equal(t, "SELECT COUNT(*) FROM equipments e WHERE (e.contractor_id = $1)", sql)
	assert.Equal(t, []any{"A"}, args)

	sql, args = filtered.CountSQL()
	assert.Equal(t, "SELECT COUNT(*) FROM equipments e WHERE (e.contractor_id = $1) AND (e.blocked = $2)", sql)
	assert.Equal(t, []any{"A", true}, args)
}

func TestSelectBuilder_MarcadoresDesbalanceados(t *testing.T) {
	assert.Panics(t, func() { newSelect("x", "t").Where("a = ? AND b = ?", 1) })
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%89\%55\_%`, likePattern("89%55_"))
}
