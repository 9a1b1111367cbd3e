package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/realtime"
	"dispatch/internal/adapters/out/auth"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	redisadapter "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/ledger"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Notifier covers both outbound collaborators: push and SMS.
type Notifier interface {
	ports.PushNotifier
	ports.CodeSender
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	issuer   *auth.JWTIssuer
	hasher   auth.BcryptHasher
	ledger   *ledger.Ledger
	splitter services.FeeSplitter

	cache    *redisadapter.PositionCache
	presence *redisadapter.PresenceRegistry
	codes    *redisadapter.CodeStore
	limiter  *redisadapter.RateLimiter

	hub       *realtime.Hub
	bridge    *realtime.RedisBridge
	publisher ports.Publisher
	notifier  Notifier
}

func NewCompositionRoot(
	ctx context.Context,
	configs Config,
	gormDB *gorm.DB,
	redisClient goredis.UniversalClient,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	issuer, err := auth.NewJWTIssuer(configs.JWTSecret, configs.JWTTokenTTL)
	if err != nil {
		return nil, err
	}
	splitter, err := services.NewFeeSplitter(configs.PlatformFeeRate)
	if err != nil {
		return nil, err
	}
	notifier, err := newNotifier(ctx, configs, logger)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		issuer:     issuer,
		hasher:     auth.NewBcryptHasher(bcrypt.DefaultCost),
		ledger:     ledger.New(),
		splitter:   splitter,
		cache:      redisadapter.NewPositionCache(redisClient),
		presence:   redisadapter.NewPresenceRegistry(redisClient),
		codes:      redisadapter.NewCodeStore(redisClient),
		limiter:    redisadapter.NewRateLimiter(redisClient),
		hub:        realtime.NewHub(logger),
		notifier:   notifier,
	}

	c.publisher = c.hub
	if configs.RealtimeRedisBridge {
		c.bridge = realtime.NewRedisBridge(redisClient, c.hub, logger)
		c.publisher = c.bridge
	}
	return c, nil
}

func newNotifier(ctx context.Context, configs Config, logger *slog.Logger) (Notifier, error) {
	if configs.SQSPushQueueURL == "" || configs.SQSSmsQueueURL == "" {
		logger.Warn("SQS queues not configured, push and SMS are logged only")
		return notify.NewLogNotifier(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), configs.SQSPushQueueURL, configs.SQSSmsQueueURL), nil
}

// Bridge is nil unless the Redis real-time bridge is enabled.
func (c *CompositionRoot) Bridge() *realtime.RedisBridge {
	return c.bridge
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) courierUoW() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) adminUoW() commands.AdminUoWFactory {
	return FuncAdminUoWFactory(func() commands.AdminUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) locationUoW() commands.LocationUoWFactory {
	return FuncLocationUoWFactory(func() commands.LocationUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) walletUoW() commands.WalletUoWFactory {
	return FuncWalletUoWFactory(func() commands.WalletUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateRequestCodeCommandHandler() commands.RequestCodeCommandHandler {
	policy := commands.CodePolicy{
		TTL:         c.configs.OTPTTL,
		MaxRequests: c.configs.OTPMaxRequests,
		Window:      c.configs.OTPWindow,
	}
	return commands.NewRequestCodeCommandHandler(c.codes, c.limiter, c.notifier, policy)
}

func (c *CompositionRoot) CreateVerifyCodeCommandHandler() commands.VerifyCodeCommandHandler {
	return commands.NewVerifyCodeCommandHandler(c.uow(), c.codes, c.issuer, c.ledger, c.configs.CustomerSignupCredits)
}

func (c *CompositionRoot) CreateAdminLoginCommandHandler() commands.AdminLoginCommandHandler {
	return commands.NewAdminLoginCommandHandler(c.adminUoW(), c.hasher, c.issuer)
}

func (c *CompositionRoot) CreateUpsertAdminCommandHandler() commands.UpsertAdminCommandHandler {
	return commands.NewUpsertAdminCommandHandler(c.adminUoW(), c.hasher)
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	return commands.NewRegisterCustomerCommandHandler(c.uow(), c.ledger, c.configs.CustomerSignupCredits)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.locationUoW(), c.cache, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRegisterDeviceCommandHandler() commands.RegisterDeviceCommandHandler {
	return commands.NewRegisterDeviceCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreateSetCourierActiveCommandHandler() commands.SetCourierActiveCommandHandler {
	return commands.NewSetCourierActiveCommandHandler(c.courierUoW())
}

func (c *CompositionRoot) CreatePingCourierCommandHandler() commands.PingCourierCommandHandler {
	return commands.NewPingCourierCommandHandler(c.courierUoW(), c.presence, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAssignTaskCommandHandler() commands.AssignTaskCommandHandler {
	return commands.NewAssignTaskCommandHandler(c.uow(), c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateTaskCommandHandler() commands.CreateTaskCommandHandler {
	return commands.NewCreateTaskCommandHandler(
		c.uow(), c.CreateFindNearestCourierQueryHandler(), c.CreateAssignTaskCommandHandler(), c.configs.TaskPriceMinor, c.logger)
}

func (c *CompositionRoot) CreateDispatchPendingTasksCommandHandler() commands.DispatchPendingTasksCommandHandler {
	return commands.NewDispatchPendingTasksCommandHandler(
		c.uow(), c.CreateFindNearestCourierQueryHandler(), c.CreateAssignTaskCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateAcceptTaskCommandHandler() commands.AcceptTaskCommandHandler {
	return commands.NewAcceptTaskCommandHandler(c.uow(), c.ledger, c.splitter, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateTaskStatusCommandHandler() commands.UpdateTaskStatusCommandHandler {
	return commands.NewUpdateTaskStatusCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreditWalletCommandHandler() commands.CreditWalletCommandHandler {
	return commands.NewCreditWalletCommandHandler(c.walletUoW(), c.ledger)
}

func (c *CompositionRoot) CreateCaptureWalletCommandHandler() commands.CaptureWalletCommandHandler {
	return commands.NewCaptureWalletCommandHandler(c.walletUoW(), c.ledger)
}

func (c *CompositionRoot) CreateFindNearestCourierQueryHandler() queries.FindNearestCourierQueryHandler {
	return queries.NewFindNearestCourierQueryHandler(c.gormDB, services.NewCourierMatcher(), c.configs.MatcherMaxReportAge)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetLastKnownPositionQueryHandler() queries.GetLastKnownPositionQueryHandler {
	return queries.NewGetLastKnownPositionQueryHandler(locationrepo.NewGormLocationRepository(c.gormDB), c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetTaskQueryHandler() queries.GetTaskQueryHandler {
	return queries.NewGetTaskQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTasksQueryHandler() queries.ListTasksQueryHandler {
	return queries.NewListTasksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletQueryHandler() queries.GetWalletQueryHandler {
	return queries.NewGetWalletQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateReconcileWalletsQueryHandler() queries.ReconcileWalletsQueryHandler {
	return queries.NewReconcileWalletsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		RequestCode:      c.CreateRequestCodeCommandHandler(),
		VerifyCode:       c.CreateVerifyCodeCommandHandler(),
		AdminLogin:       c.CreateAdminLoginCommandHandler(),
		RegisterCustomer: c.CreateRegisterCustomerCommandHandler(),
		ReportLocation:   c.CreateReportLocationCommandHandler(),
		RegisterDevice:   c.CreateRegisterDeviceCommandHandler(),
		SetCourierActive: c.CreateSetCourierActiveCommandHandler(),
		PingCourier:      c.CreatePingCourierCommandHandler(),
		CreateTask:       c.CreateCreateTaskCommandHandler(),
		AssignTask:       c.CreateAssignTaskCommandHandler(),
		AcceptTask:       c.CreateAcceptTaskCommandHandler(),
		UpdateTaskStatus: c.CreateUpdateTaskStatusCommandHandler(),
		CreditWallet:     c.CreateCreditWalletCommandHandler(),
		CaptureWallet:    c.CreateCaptureWalletCommandHandler(),

		GetAllCouriers:       c.CreateGetAllCouriersQueryHandler(),
		GetAvailableCouriers: c.CreateGetAvailableCouriersQueryHandler(),
		GetLastKnownPosition: c.CreateGetLastKnownPositionQueryHandler(),
		GetTask:              c.CreateGetTaskQueryHandler(),
		ListTasks:            c.CreateListTasksQueryHandler(),
		GetWallet:            c.CreateGetWalletQueryHandler(),
		ReconcileWallets:     c.CreateReconcileWalletsQueryHandler(),
	}
	return httpin.NewServer(handlers, c.issuer, c.CreateWebSocketHandler())
}

func (c *CompositionRoot) CreateWebSocketHandler() echo.HandlerFunc {
	inbound := realtime.NewInbound(
		c.CreateReportLocationCommandHandler(),
		c.CreateAcceptTaskCommandHandler(),
		c.CreatePingCourierCommandHandler(),
		c.logger,
	)
	return realtime.NewHandler(c.hub, c.issuer, c.presence, inbound, c.configs.WSAllowedOrigins, c.logger).Serve
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateDispatchPendingTasksCommandHandler(),
		c.CreateReconcileWalletsQueryHandler(),
		jobs.Schedules{
			PendingDispatch: c.configs.PendingDispatchSchedule,
			Reconciliation:  c.configs.ReconciliationSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncAdminUoWFactory func() commands.AdminUoW

func (f FuncAdminUoWFactory) Create() commands.AdminUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}
