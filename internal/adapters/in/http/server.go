package http

import (
	"context"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handler is any use case that returns a result.
type Handler[Q any, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// VoidHandler is a use case without a result.
type VoidHandler[C any] interface {
	Handle(ctx context.Context, c C) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Q any, R any] func(ctx context.Context, q Q) (R, error)

func (f HandlerFunc[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	return f(ctx, q)
}

// VoidHandlerFunc adapts a function to VoidHandler.
type VoidHandlerFunc[C any] func(ctx context.Context, c C) error

func (f VoidHandlerFunc[C]) Handle(ctx context.Context, c C) error {
	return f(ctx, c)
}

// Handlers are the use cases the HTTP API exposes.
type Handlers struct {
	// Command handlers
	RequestCode      VoidHandler[commands.RequestCodeCommand]
	VerifyCode       Handler[commands.VerifyCodeCommand, commands.VerifyCodeResult]
	AdminLogin       Handler[commands.AdminLoginCommand, string]
	RegisterCustomer Handler[commands.RegisterCustomerCommand, *customer.Customer]
	ReportLocation   Handler[commands.ReportLocationCommand, position.Report]
	RegisterDevice   VoidHandler[commands.RegisterDeviceCommand]
	SetCourierActive VoidHandler[commands.SetCourierActiveCommand]
	PingCourier      VoidHandler[commands.PingCourierCommand]
	CreateTask       Handler[commands.CreateTaskCommand, commands.CreateTaskResult]
	AssignTask       Handler[commands.AssignTaskCommand, commands.AssignTaskResult]
	AcceptTask       Handler[commands.AcceptTaskCommand, *task.Task]
	UpdateTaskStatus Handler[commands.UpdateTaskStatusCommand, *task.Task]
	CreditWallet     Handler[commands.CreditWalletCommand, commands.WalletMovement]
	CaptureWallet    Handler[commands.CaptureWalletCommand, commands.WalletMovement]

	// Query handlers
	GetAllCouriers       Handler[queries.GetAllCouriersQuery, []queries.CourierView]
	GetAvailableCouriers Handler[queries.GetAvailableCouriersQuery, []queries.CourierView]
	GetLastKnownPosition Handler[queries.GetLastKnownPositionQuery, *position.LastKnown]
	GetTask              Handler[queries.GetTaskQuery, queries.TaskView]
	ListTasks            Handler[queries.ListTasksQuery, []queries.TaskView]
	GetWallet            Handler[queries.GetWalletQuery, queries.WalletView]
	ReconcileWallets     Handler[queries.ReconcileWalletsQuery, queries.ReconcileReport]
}

// Server maps HTTP requests onto the application use cases.
type Server struct {
	handlers  Handlers
	issuer    ports.TokenIssuer
	websocket echo.HandlerFunc
}

// NewServer creates the HTTP server. websocket may be nil when real-time is disabled.
func NewServer(handlers Handlers, issuer ports.TokenIssuer, websocket echo.HandlerFunc) *Server {
	return &Server{
		handlers:  handlers,
		issuer:    issuer,
		websocket: websocket,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if s.websocket != nil {
		e.GET("/ws", s.websocket)
	}

	api := e.Group("/api")
	api.GET("/openapi.json", s.OpenAPI)

	api.POST("/auth/otp", s.RequestCode)
	api.POST("/auth/verify", s.VerifyCode)
	api.POST("/admin/login", s.AdminLogin)
	api.POST("/customers/register", s.RegisterCustomer)

	authenticated := Authenticate(s.issuer)
	couriersOnly := RequireRole(kernel.RoleCourier)

	riders := api.Group("/riders", authenticated)
	riders.POST("/location", s.ReportLocation, couriersOnly)
	riders.POST("/register-device", s.RegisterDevice, couriersOnly)
	riders.GET("/available", s.GetAvailableCouriers)
	riders.GET("/:id/location", s.GetCourierLocation)

	tasks := api.Group("/tasks", authenticated)
	tasks.POST("", s.CreateTask, RequireRole(kernel.RoleCustomer, kernel.RoleAdmin))
	tasks.GET("/:id", s.GetTask)
	tasks.POST("/:id/accept", s.AcceptTask, couriersOnly)
	tasks.POST("/:id/status", s.UpdateTaskStatus, RequireRole(kernel.RoleCourier, kernel.RoleAdmin))

	api.GET("/wallets/me", s.GetMyWallet, authenticated, RequireRole(kernel.RoleCourier, kernel.RoleCustomer))

	admin := api.Group("/admin", authenticated, RequireRole(kernel.RoleAdmin))
	admin.GET("/riders", s.ListCouriers)
	admin.POST("/riders/:id/deactivate", s.DeactivateCourier)
	admin.POST("/riders/:id/activate", s.ActivateCourier)
	admin.POST("/ping", s.PingCourier)
	admin.POST("/assign-task", s.AssignTask)
	admin.GET("/tasks", s.ListTasks)
	admin.POST("/wallets/credit", s.CreditWallet)
	admin.POST("/wallets/capture", s.CaptureWallet)
	admin.GET("/wallets/reconcile", s.ReconcileWallets)
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Success	200	{string}	string	"Healthy"
//	@Router		/health [get]
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
