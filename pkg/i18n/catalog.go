package i18n

import "golang.org/x/text/language"

var catalog = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		"required":            "Campo obrigatório",
		"invalid_format":      "Formato inválido",
		"out_of_range":        "Valor fora do intervalo permitido",
		"self_lease":          "Não é possível ceder em comodato para o próprio contratante",
		"end_before_start":    "A data de término é anterior ao início",
		"lessee_changed":      "Encerre o comodato antes de trocar o comodatário",
		"not_owner":           "Somente o proprietário pode fazer esta alteração",
		"not_holder":          "O dispositivo não está com este contratante",
		"blocked":             "Registro bloqueado",
		"installed":           "O dispositivo está instalado",
		"not_installed":       "O equipamento não está instalado",
		"leased":              "O dispositivo está em comodato",
		"invalid_location":    "Local inválido",
		"invalid_destination": "Destino inválido",
		"not_at_origin":       "O dispositivo não está mais na origem selecionada",
		"slot_empty":          "O slot está vazio",
		"no_default_deposit":  "O contratante não possui depósito",

		"not_found":           "Registro não encontrado",
		"forbidden":           "Acesso negado",
		"unauthorized":        "Não autenticado",
		"conflict":            "O registro foi alterado por outra operação",
		"already_in_use":      "Já está em uso",
		"invalid_transition":  "Etapa inválida do assistente",
		"validation":          "Verifique os campos informados",
		"database_error":      "Erro ao acessar o banco de dados",
		"internal_error":      "Erro interno",
		"saved":               "Registro gravado",
		"deleted":             "Registro removido",
		"moved":               "Dispositivos movimentados",
		"invalid_credentials": "E-mail ou senha inválidos",

		"StoredOnDeposit":           "Depósito",
		"Installed":                 "Instalado",
		"StoredWithTechnician":      "Técnico",
		"StoredWithServiceProvider": "Prestador de serviços",
		"UnderMaintenance":          "Em manutenção",
		"ReturnedToSupplier":        "Devolvido ao fornecedor",

		"report.equipments": "Equipamentos",
		"report.simcards":   "SIM cards",
		"report.footer":     "%d registro(s)",
		"col.serial":        "Nº de série",
		"col.imei":          "IMEI",
		"col.model":         "Modelo",
		"col.supplier":      "Fornecedor",
		"col.location":      "Local",
		"col.leased_to":     "Comodatário",
		"col.iccid":         "ICCID",
		"col.phone":         "Telefone",
		"col.carrier":       "Operadora",
	},
	language.Spanish: {
		"required":            "Campo obligatorio",
		"invalid_format":      "Formato inválido",
		"out_of_range":        "Valor fuera del rango permitido",
		"self_lease":          "No se puede dar en comodato al propio contratante",
		"end_before_start":    "La fecha de fin es anterior al inicio",
		"lessee_changed":      "Finalice el comodato antes de cambiar el arrendatario",
		"not_owner":           "Solo el propietario puede hacer este cambio",
		"not_holder":          "El dispositivo no está en poder de este contratante",
		"blocked":             "Registro bloqueado",
		"installed":           "El dispositivo está instalado",
		"not_installed":       "El equipo no está instalado",
		"leased":              "El dispositivo está en comodato",
		"invalid_location":    "Ubicación inválida",
		"invalid_destination": "Destino inválido",
		"not_at_origin":       "El dispositivo ya no está en el origen seleccionado",
		"slot_empty":          "El slot está vacío",
		"no_default_deposit":  "El contratante no tiene depósito",

		"not_found":           "Registro no encontrado",
		"forbidden":           "Acceso denegado",
		"unauthorized":        "No autenticado",
		"conflict":            "El registro fue modificado por otra operación",
		"already_in_use":      "Ya está en uso",
		"invalid_transition":  "Paso inválido del asistente",
		"validation":          "Revise los campos enviados",
		"database_error":      "Error al acceder a la base de datos",
		"internal_error":      "Error interno",
		"saved":               "Registro guardado",
		"deleted":             "Registro eliminado",
		"moved":               "Dispositivos movidos",
		"invalid_credentials": "Email o contraseña inválidos",

		"StoredOnDeposit":           "Depósito",
		"Installed":                 "Instalado",
		"StoredWithTechnician":      "Técnico",
		"StoredWithServiceProvider": "Prestador de servicios",
		"UnderMaintenance":          "En mantenimiento",
		"ReturnedToSupplier":        "Devuelto al proveedor",

		"report.equipments": "Equipos",
		"report.simcards":   "SIM cards",
		"report.footer":     "%d registro(s)",
		"col.serial":        "N° de serie",
		"col.imei":          "IMEI",
		"col.model":         "Modelo",
		"col.supplier":      "Proveedor",
		"col.location":      "Ubicación",
		"col.leased_to":     "Arrendatario",
		"col.iccid":         "ICCID",
		"col.phone":         "Teléfono",
		"col.carrier":       "Operadora",
	},
	language.English: {
		"required":            "Required field",
		"invalid_format":      "Invalid format",
		"out_of_range":        "Value out of range",
		"self_lease":          "A device cannot be leased to its own owner",
		"end_before_start":    "End date is before start date",
		"lessee_changed":      "End the lease before changing the lessee",
		"not_owner":           "Only the owner can make this change",
		"not_holder":          "The device is not held by this contractor",
		"blocked":             "Record is blocked",
		"installed":           "The device is installed",
		"not_installed":       "The equipment is not installed",
		"leased":              "The device is leased",
		"invalid_location":    "Invalid location",
		"invalid_destination": "Invalid destination",
		"not_at_origin":       "The device is no longer at the selected origin",
		"slot_empty":          "The slot is empty",
		"no_default_deposit":  "The contractor has no deposit",

		"not_found":           "Record not found",
		"forbidden":           "Access denied",
		"unauthorized":        "Not authenticated",
		"conflict":            "The record was changed by another operation",
		"already_in_use":      "Already in use",
		"invalid_transition":  "Invalid wizard step",
		"validation":          "Check the submitted fields",
		"database_error":      "Database error",
		"internal_error":      "Internal error",
		"saved":               "Record saved",
		"deleted":             "Record deleted",
		"moved":               "Devices moved",
		"invalid_credentials": "Invalid email or password",

		"StoredOnDeposit":           "Deposit",
		"Installed":                 "Installed",
		"StoredWithTechnician":      "Technician",
		"StoredWithServiceProvider": "Service provider",
		"UnderMaintenance":          "Under maintenance",
		"ReturnedToSupplier":        "Returned to supplier",

		"report.equipments": "Equipment",
		"report.simcards":   "SIM cards",
		"report.footer":     "%d record(s)",
		"col.serial":        "Serial number",
		"col.imei":          "IMEI",
		"col.model":         "Model",
		"col.supplier":      "Supplier",
		"col.location":      "Location",
		"col.leased_to":     "Lessee",
		"col.iccid":         "ICCID",
		"col.phone":         "Phone",
		"col.carrier":       "Carrier",
	},
}
