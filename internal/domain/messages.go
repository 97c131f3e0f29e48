package domain

// Claves de mensaje usadas en ValidationError y en las respuestas HTTP.
// La traducción vive en pkg/i18n.
const (
	MsgRequired           = "required"
	MsgInvalidFormat      = "invalid_format"
	MsgOutOfRange         = "out_of_range"
	MsgSelfLease          = "self_lease"
	MsgEndBeforeStart     = "end_before_start"
	MsgLesseeChanged      = "lessee_changed"
	MsgNotOwner           = "not_owner"
	MsgNotHolder          = "not_holder"
	MsgBlocked            = "blocked"
	MsgInstalled          = "installed"
	MsgNotInstalled       = "not_installed"
	MsgLeased             = "leased"
	MsgInvalidLocation    = "invalid_location"
	MsgInvalidDestination = "invalid_destination"
	MsgNotAtOrigin        = "not_at_origin"
	MsgSlotEmpty          = "slot_empty"
	MsgNoDefaultDeposit   = "no_default_deposit"

	MsgNotFound          = "not_found"
	MsgForbidden         = "forbidden"
	MsgUnauthorized      = "unauthorized"
	MsgConflict          = "conflict"
	MsgAlreadyInUse      = "already_in_use"
	MsgInvalidTransition = "invalid_transition"
	MsgValidation        = "validation"
	MsgDatabaseError     = "database_error"
	MsgInternalError     = "internal_error"
	MsgSaved             = "saved"
	MsgDeleted           = "deleted"
	MsgMoved             = "moved"
	MsgInvalidCreds      = "invalid_credentials"
)
