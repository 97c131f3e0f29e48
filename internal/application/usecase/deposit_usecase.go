package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// CustodyUseCase casos de uso de los custodios del contratante: depósitos, técnicos y prestadores.
type CustodyUseCase struct {
	deposits    repository.DepositRepository
	technicians repository.TechnicianRepository
	providers   repository.ServiceProviderRepository
}

// NewCustodyUseCase construye el caso de uso.
func NewCustodyUseCase(deposits repository.DepositRepository, technicians repository.TechnicianRepository, providers repository.ServiceProviderRepository) *CustodyUseCase {
	return &CustodyUseCase{deposits: deposits, technicians: technicians, providers: providers}
}

// CreateDeposit crea un depósito del contratante del actor.
func (uc *CustodyUseCase) CreateDeposit(ctx context.Context, actor dto.Actor, in dto.CreateDepositRequest) (*dto.DepositResponse, error) {
	if actor.ContractorID == "" {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	deposit := &entity.Deposit{
		ID:           uuid.New().String(),
		ContractorID: actor.ContractorID,
		Name:         in.Name,
		Address:      in.Address,
		Master:       in.Master,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.deposits.Create(ctx, deposit); err != nil {
		return nil, err
	}
	out := dto.FromDeposit(deposit)
	return &out, nil
}

// ListDeposits lista depósitos del contratante con paginación.
func (uc *CustodyUseCase) ListDeposits(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.DepositListResponse, error) {
	page.DefaultPage()
	list, err := uc.deposits.ListByContractor(ctx, actor.ContractorID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepositResponse, 0, len(list))
	for _, d := range list {
		items = append(items, dto.FromDeposit(d))
	}
	return &dto.DepositListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListTechnicians técnicos del contratante (combos del formulario de movimiento).
func (uc *CustodyUseCase) ListTechnicians(ctx context.Context, actor dto.Actor) ([]dto.NamedResponse, error) {
	list, err := uc.technicians.ListByContractor(ctx, actor.ContractorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.NamedResponse{ID: t.ID, Name: t.Name, Blocked: t.Blocked})
	}
	return out, nil
}

// ListServiceProviders prestadores de servicio del contratante.
func (uc *CustodyUseCase) ListServiceProviders(ctx context.Context, actor dto.Actor) ([]dto.NamedResponse, error) {
	list, err := uc.providers.ListByContractor(ctx, actor.ContractorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NamedResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NamedResponse{ID: p.ID, Name: p.Name, Blocked: p.Blocked})
	}
	return out, nil
}
