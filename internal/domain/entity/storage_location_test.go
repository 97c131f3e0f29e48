package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func TestColumns_SoloUnaClaveRellena(t *testing.T) {
	cases := []entity.StorageLocation{
		entity.OnDeposit("d1"),
		entity.WithTechnician("t1"),
		entity.WithServiceProvider("p1"),
		entity.InstalledOn("v1"),
		entity.InSlot("e1", 2),
		entity.UnderMaintenance(),
		entity.ReturnedToSupplier(),
	}
	for _, loc := range cases {
		c := loc.Columns()
		filled := 0
		for _, p := range []*string{c.DepositID, c.TechnicianID, c.ServiceProviderID, c.HolderID} {
			if p != nil {
				filled++
			}
		}
		if loc.TargetID() == "" {
			assert.Equal(t, 0, filled, loc.String())
		} else {
			assert.Equal(t, 1, filled, loc.String())
		}

		back, err := entity.LocationFromColumns(c)
		require.NoError(t, err, loc.String())
		assert.True(t, back.Equal(loc), "ida y vuelta debe conservar %s", loc)
	}
}

func TestLocationFromColumns_RechazaClavesHermanas(t *testing.T) {
	_, err := entity.LocationFromColumns(entity.LocationColumns{
		Kind:      entity.LocationInstalled,
		HolderID:  ptr("v1"),
		DepositID: ptr("d1"),
	})
	assert.Error(t, err, "un equipo instalado no puede tener depósito")

	_, err = entity.LocationFromColumns(entity.LocationColumns{
		Kind:         entity.LocationDeposit,
		TechnicianID: ptr("t1"),
	})
	assert.Error(t, err, "depósito sin deposit_id es inconsistente")

	_, err = entity.LocationFromColumns(entity.LocationColumns{
		Kind:      entity.LocationReturned,
		DepositID: ptr("d1"),
	})
	assert.Error(t, err)
}

func TestInSlot_SinSlotEsNull(t *testing.T) {
	c := entity.InstalledOn("v1").Columns()
	assert.Nil(t, c.SlotNumber, "slot 0 se persiste como NULL")

	c = entity.InSlot("e1", 3).Columns()
	require.NotNil(t, c.SlotNumber)
	assert.Equal(t, 3, *c.SlotNumber)
}

func TestParseLocation(t *testing.T) {
	loc, err := entity.ParseLocation(entity.LocationTechnician, "7")
	require.NoError(t, err)
	assert.Equal(t, entity.LocationTechnician, loc.Kind())
	assert.Equal(t, "7", loc.TargetID())

	_, err = entity.ParseLocation(entity.LocationDeposit, "")
	assert.Error(t, err)

	_, err = entity.ParseLocation(entity.LocationInstalled, "v1")
	assert.Error(t, err, "instalar no es un destino de formulario")
}

func TestStorageLocation_JSON(t *testing.T) {
	b, err := json.Marshal(entity.InSlot("e1", 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"Installed","target_id":"e1","slot":2}`, string(b))

	var loc entity.StorageLocation
	require.NoError(t, json.Unmarshal(b, &loc))
	assert.True(t, loc.Equal(entity.InSlot("e1", 2)))

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"Somewhere"}`), &loc))
}

func TestHolder(t *testing.T) {
	e := &entity.Equipment{ContractorID: "A"}
	assert.Equal(t, "A", e.Holder())

	e.AssignedToID = ptr("B")
	assert.Equal(t, "A", e.Holder(), "sin comodato en curso el tenedor es el dueño")

	e.LeasingInProgress = true
	assert.Equal(t, "B", e.Holder())
}
