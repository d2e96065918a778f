package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/click"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/paymentlogrepo"
	"dispatch/internal/adapters/out/weightscfg"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot constructs every use case handler from shared
// infrastructure: one gorm connection, one unit-of-work factory, one
// weights provider.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	weights    ports.WeightsProvider
	logger     *slog.Logger
}

// NewCompositionRoot builds the root from config and an open DB connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		weights:    weightscfg.NewFileProvider(config.WeightsPath, config.WeightsRefresh, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.CreateDispatchUoWFactory(), c.weights)
}

// CreateDispatchUoWFactory exposes the dispatch-shaped unit of work for the
// retry job's read path.
func (c *CompositionRoot) CreateDispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	var f commands.ReleaseUoWFactory = FuncReleaseUoWFactory(func() commands.ReleaseUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.createSettlementUoWFactory(), c.config.FallbackDeliveryFee)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierStatusCommandHandler() commands.SetCourierStatusCommandHandler {
	return commands.NewSetCourierStatusCommandHandler(c.createCourierUoWFactory())
}

func (c *CompositionRoot) CreateCreateMerchantCommandHandler() commands.CreateMerchantCommandHandler {
	var f commands.MerchantUoWFactory = FuncMerchantUoWFactory(func() commands.MerchantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMerchantCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	return commands.NewProcessPaymentCommandHandler(
		c.createSettlementUoWFactory(),
		paymentlogrepo.NewGormPaymentLogRepository(c.gormDB),
		commands.ClickConfig{
			ServiceID: c.config.ClickServiceID,
			SecretKey: c.config.ClickSecretKey,
		},
		c.config.FallbackDeliveryFee,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

// CreatePaymentLinkBuilder returns the Click checkout link builder, or nil
// when the merchant cabinet is not configured.
func (c *CompositionRoot) CreatePaymentLinkBuilder() *click.LinkBuilder {
	if c.config.ClickServiceID == "" || c.config.ClickMerchantID == "" {
		return nil
	}

	return click.NewLinkBuilder(
		c.config.ClickServiceID, c.config.ClickMerchantID, c.config.ClickReturnURL)
}

func (c *CompositionRoot) createCourierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createSettlementUoWFactory() commands.SettlementUoWFactory {
	return FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncMerchantUoWFactory func() commands.MerchantUoW

func (f FuncMerchantUoWFactory) Create() commands.MerchantUoW {
	return f()
}

type FuncReleaseUoWFactory func() commands.ReleaseUoW

func (f FuncReleaseUoWFactory) Create() commands.ReleaseUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
