package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/auth"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/inventory"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/movimentation"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/reports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/slots"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/usecase"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	ContractorSvc   *usecase.ContractorService
	CustodyUC       *usecase.CustodyUseCase
	EquipmentUC     *inventory.EquipmentUseCase
	SimCardUC       *inventory.SimCardUseCase
	LocationUC      *inventory.LocationUseCase
	SlotUC          *slots.SlotUseCase
	MovimentationUC *movimentation.UseCase
	ReportUC        *reports.ReportUseCase
	GraceEndingUC   *leasing.GraceEndingUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + contratante activo)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		RequireActiveContractor(deps.ContractorSvc),
	)
	// Escrituras: admin y operator. viewer solo consulta.
	write := RequireRole(entity.RoleAdmin, entity.RoleOperator)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Custodios
	custodyHandler := NewCustodyHandler(deps.CustodyUC)
	protected.Get("/deposits", custodyHandler.ListDeposits)
	protected.Post("/deposits", adminOnly, custodyHandler.CreateDeposit)
	protected.Get("/technicians", custodyHandler.ListTechnicians)
	protected.Get("/service-providers", custodyHandler.ListServiceProviders)

	// Equipos
	equipments := protected.Group("/equipments")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, deps.LocationUC, deps.ReportUC)
	equipments.Get("/", equipmentHandler.List)
	equipments.Get("/pdf", equipmentHandler.PDF)
	equipments.Post("/", write, equipmentHandler.Create)
	equipments.Get("/:id", equipmentHandler.GetByID)
	equipments.Put("/:id", write, equipmentHandler.Update)
	equipments.Delete("/:id", write, equipmentHandler.Delete)
	equipments.Put("/:id/block", write, equipmentHandler.ToggleBlock)
	equipments.Post("/:id/install", write, equipmentHandler.Install)
	equipments.Post("/:id/uninstall", write, equipmentHandler.Uninstall)
	equipments.Post("/:id/relocate", write, equipmentHandler.Relocate)
	equipments.Get("/:id/storage-location", equipmentHandler.StorageLocation)
	equipments.Get("/:id/history", equipmentHandler.History)

	// Slots
	slotHandler := NewSlotHandler(deps.SlotUC)
	equipments.Get("/:id/slots", slotHandler.List)
	equipments.Post("/:id/slots/:slot", write, slotHandler.Attach)
	equipments.Delete("/:id/slots/:slot", write, slotHandler.Detach)

	// SIM cards
	simcards := protected.Group("/simcards")
	simCardHandler := NewSimCardHandler(deps.SimCardUC, deps.LocationUC, deps.ReportUC)
	simcards.Get("/", simCardHandler.List)
	simcards.Get("/pdf", simCardHandler.PDF)
	simcards.Post("/", write, simCardHandler.Create)
	simcards.Get("/:id", simCardHandler.GetByID)
	simcards.Put("/:id", write, simCardHandler.Update)
	simcards.Delete("/:id", write, simCardHandler.Delete)
	simcards.Put("/:id/block", write, simCardHandler.ToggleBlock)
	simcards.Post("/:id/relocate", write, simCardHandler.Relocate)
	simcards.Get("/:id/storage-location", simCardHandler.StorageLocation)
	simcards.Get("/:id/history", simCardHandler.History)

	// Asistente de movimiento
	movs := protected.Group("/movimentations", write)
	movHandler := NewMovimentationHandler(deps.MovimentationUC)
	movs.Post("/", movHandler.Start)
	movs.Get("/:id", movHandler.Get)
	movs.Delete("/:id", movHandler.Cancel)
	movs.Put("/:id/origin", movHandler.SelectOrigin)
	movs.Get("/:id/candidates", movHandler.Candidates)
	movs.Put("/:id/devices", movHandler.SelectDevices)
	movs.Put("/:id/destination", movHandler.SelectDestination)
	movs.Post("/:id/confirm", movHandler.Confirm)

	// Comodatos
	leaseHandler := NewLeaseHandler(deps.GraceEndingUC)
	protected.Get("/leases/grace-ending", leaseHandler.GraceEnding)
}
