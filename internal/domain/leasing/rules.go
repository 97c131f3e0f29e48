// Package leasing contiene las reglas puras del comodato: qué transición aplica al editar un
// dispositivo y qué hacer con cada SIM card de los slots de un equipo arrendado.
package leasing

import (
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// Transition resultado de comparar el estado anterior y el solicitado.
type Transition int

const (
	TransitionNone     Transition = iota // false -> false
	TransitionBegin                      // false -> true
	TransitionEnd                        // true -> false
	TransitionContinue                   // true -> true
)

func (t Transition) String() string {
	switch t {
	case TransitionBegin:
		return "begin"
	case TransitionEnd:
		return "end"
	case TransitionContinue:
		return "continue"
	}
	return "none"
}

// Classify decide la transición a partir de leasingInProgress anterior y el enviado.
func Classify(wasLeased, willBeLeased bool) Transition {
	switch {
	case !wasLeased && willBeLeased:
		return TransitionBegin
	case wasLeased && !willBeLeased:
		return TransitionEnd
	case wasLeased && willBeLeased:
		return TransitionContinue
	}
	return TransitionNone
}

// SlotAction qué hacer con una SIM card instalada en un equipo cuyo comodato cambia.
type SlotAction int

const (
	SlotKeep   SlotAction = iota // ya está con quien corresponde
	SlotFollow                   // acompaña al equipo: entra o sale del comodato
	SlotUnlink                   // se retira del equipo
)

func (a SlotAction) String() string {
	switch a {
	case SlotFollow:
		return "follow"
	case SlotUnlink:
		return "unlink"
	}
	return "keep"
}

// CardHolding resume a quién pertenece y quién tiene una SIM card.
type CardHolding struct {
	OwnerID  string
	HolderID string
}

// ClassifySlot compara la SIM card con el tenedor anterior y el nuevo del equipo.
//   - si ya la tiene el nuevo tenedor, se mantiene;
//   - si es del mismo dueño que el equipo y la tenía el tenedor anterior, acompaña al equipo;
//   - en cualquier otro caso (p. ej. de un tercero) se desvincula.
func ClassifySlot(card CardHolding, equipmentOwner, oldHolder, newHolder string) SlotAction {
	if card.HolderID == newHolder {
		return SlotKeep
	}
	if card.OwnerID == equipmentOwner && card.HolderID == oldHolder {
		return SlotFollow
	}
	return SlotUnlink
}

// Terms condiciones de un comodato enviadas en el formulario.
type Terms struct {
	AssignedToID string
	StartDate    time.Time
	GracePeriod  int
	EndDate      *time.Time
}

// ValidateTerms valida las condiciones de inicio o continuación de un comodato.
func ValidateTerms(ownerID string, t Terms) error {
	v := domain.NewValidationError()
	if t.AssignedToID == "" {
		v.Add("assigned_to_id", domain.MsgRequired)
	} else if t.AssignedToID == ownerID {
		v.Add("assigned_to_id", domain.MsgSelfLease)
	}
	if t.StartDate.IsZero() {
		v.Add("start_date", domain.MsgRequired)
	}
	if t.GracePeriod < 0 {
		v.Add("grace_period", domain.MsgOutOfRange)
	}
	if t.EndDate != nil && !t.StartDate.IsZero() && t.EndDate.Before(t.StartDate) {
		v.Add("end_date", domain.MsgEndBeforeStart)
	}
	return v.OrNil()
}

// EndDateOrNow fecha de cierre: la enviada o ahora.
func EndDateOrNow(submitted *time.Time, now time.Time) time.Time {
	if submitted != nil && !submitted.IsZero() {
		return *submitted
	}
	return now
}
