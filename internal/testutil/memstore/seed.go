package memstore

import (
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// Seeded fecha fija usada en los datos de prueba.
var Seeded = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

// AddContractor registra un contratante con su depósito master "<id>-dep".
func (s *Store) AddContractor(id, name string) {
	s.Contractors[id] = entity.Contractor{ID: id, Name: name, CreatedAt: Seeded, UpdatedAt: Seeded}
	s.Deposits[id+"-dep"] = entity.Deposit{
		ID: id + "-dep", ContractorID: id, Name: "Depósito " + name, Master: true,
		CreatedAt: Seeded, UpdatedAt: Seeded,
	}
}

// AddEquipment registra un equipo del contratante guardado en su depósito master.
func (s *Store) AddEquipment(id, contractorID, serial string) *entity.Equipment {
	if _, ok := s.Models["m2"]; !ok {
		s.Models["m2"] = entity.EquipmentModel{ID: "m2", Name: "TK-2", MaxSimCards: 2}
	}
	if _, ok := s.Suppliers["sup"]; !ok {
		s.Suppliers["sup"] = entity.Supplier{ID: "sup", Name: "Proveedor"}
	}
	e := entity.Equipment{
		ID: id, ContractorID: contractorID, SerialNumber: serial, ModelID: "m2", SupplierID: "sup",
		Location: entity.OnDeposit(contractorID + "-dep"), CreatedAt: Seeded, UpdatedAt: Seeded,
	}
	s.Equipments[id] = e
	return &e
}

// AddSimCard registra una SIM card del contratante guardada en su depósito master.
func (s *Store) AddSimCard(id, contractorID, iccid string) *entity.SimCard {
	if _, ok := s.Suppliers["op"]; !ok {
		s.Suppliers["op"] = entity.Supplier{ID: "op", Name: "Operadora"}
	}
	c := entity.SimCard{
		ID: id, ContractorID: contractorID, ICCID: iccid, SupplierID: "op",
		Location: entity.OnDeposit(contractorID + "-dep"), CreatedAt: Seeded, UpdatedAt: Seeded,
	}
	s.SimCards[id] = c
	return &c
}

// Install marca el equipo como instalado en el vehículo, con su instalación abierta.
func (s *Store) Install(equipmentID, vehicleID string) {
	e := s.Equipments[equipmentID]
	if _, ok := s.Vehicles[vehicleID]; !ok {
		s.Vehicles[vehicleID] = entity.Vehicle{ID: vehicleID, ContractorID: e.Holder(), Plate: "ABC" + vehicleID}
	}
	e.Location = entity.InstalledOn(vehicleID)
	s.Equipments[equipmentID] = e
	s.Installations["inst-"+equipmentID] = entity.Installation{
		ID: "inst-" + equipmentID, EquipmentID: equipmentID, VehicleID: vehicleID, InstalledAt: Seeded,
	}
	s.SideRecords[equipmentID] = 1
}

// PutInSlot instala la SIM card en el slot del equipo.
func (s *Store) PutInSlot(simCardID, equipmentID string, slot int) {
	c := s.SimCards[simCardID]
	c.Location = entity.InSlot(equipmentID, slot)
	s.SimCards[simCardID] = c
}

// Lease deja el dispositivo en comodato con un registro abierto.
func (s *Store) Lease(kind entity.DeviceKind, itemID, lesseeID string, start time.Time, grace int) {
	lessee := lesseeID
	l := entity.Lease{
		ID: "lease-" + itemID + "-" + lesseeID, Kind: kind, ItemID: itemID, AssignedToID: lesseeID,
		StartDate: start, GracePeriod: grace, CreatedAt: Seeded, UpdatedAt: Seeded,
	}
	if kind == entity.DeviceSimCard {
		c := s.SimCards[itemID]
		c.AssignedToID, c.LeasingInProgress = &lessee, true
		l.ContractorID = c.ContractorID
		s.SimCards[itemID] = c
		s.SimCardLeases[l.ID] = l
		return
	}
	e := s.Equipments[itemID]
	e.AssignedToID, e.LeasingInProgress = &lessee, true
	l.ContractorID = e.ContractorID
	s.Equipments[itemID] = e
	s.EquipmentLeases[l.ID] = l
}
