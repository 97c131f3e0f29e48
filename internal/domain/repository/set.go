package repository

import "github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"

// Set agrupa los repositorios de inventario. El TxRunner entrega uno atado a la transacción.
type Set struct {
	Equipments       EquipmentRepository
	SimCards         SimCardRepository
	EquipmentLeases  LeaseRepository
	SimCardLeases    LeaseRepository
	Installations    InstallationRepository
	Deposits         DepositRepository
	Technicians      TechnicianRepository
	ServiceProviders ServiceProviderRepository
	Vehicles         VehicleRepository
	Suppliers        SupplierRepository
	Models           EquipmentModelRepository
	History          HistoryRepository
}

// Leases devuelve el repositorio de comodatos del tipo de dispositivo.
func (s Set) Leases(kind entity.DeviceKind) LeaseRepository {
	if kind == entity.DeviceSimCard {
		return s.SimCardLeases
	}
	return s.EquipmentLeases
}
