package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const presenceCleanupTimeout = 5 * time.Second

// Handler upgrades authenticated requests to WebSocket connections and ties
// each connection to its channels and presence entry for its lifetime.
type Handler struct {
	hub      *Hub
	issuer   ports.TokenIssuer
	presence ports.PresenceRegistry
	inbound  Inbound
	upgrader websocket.Upgrader
	buffer   int
	logger   *slog.Logger
}

func NewHandler(
	hub *Hub,
	issuer ports.TokenIssuer,
	presence ports.PresenceRegistry,
	inbound Inbound,
	allowedOrigins []string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:      hub,
		issuer:   issuer,
		presence: presence,
		inbound:  inbound,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		buffer: DefaultSendBuffer,
		logger: logger.With("component", "RealtimeHandler"),
	}
}

// Serve handles GET /ws?token=<jwt>&role=<courier|admin>.
// The token may also be sent as a bearer Authorization header. role=admin
// without a token joins the dispatch channel as a listen-only connection.
func (h *Handler) Serve(c echo.Context) error {
	client, err := h.newClient(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Debug("upgrade failed", "error", err)
		return nil
	}

	client.conn = conn
	ctx := c.Request().Context()

	h.attach(ctx, client)
	go client.writePump(h.logger)

	client.readPump(ctx, h.logger, func(ctx context.Context, raw []byte) {
		h.inbound.Handle(ctx, client, raw)
	})

	h.detach(client)
	return nil
}

func (h *Handler) newClient(c echo.Context) (*Client, error) {
	token := bearerToken(c)
	if token == "" && c.QueryParam("role") == string(kernel.RoleAdmin) {
		return NewListener(h.buffer), nil
	}

	principal, err := h.authenticate(c, token)
	if err != nil {
		return nil, err
	}
	return NewClient(principal, h.buffer), nil
}

func bearerToken(c echo.Context) string {
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
}

func (h *Handler) authenticate(c echo.Context, token string) (ports.Principal, error) {
	if token == "" {
		return ports.Principal{}, errs.NewUnauthorizedError("missing token")
	}

	principal, err := h.issuer.Verify(token)
	if err != nil {
		return ports.Principal{}, err
	}

	if raw := c.QueryParam("role"); raw != "" {
		role, err := kernel.ParseRole(raw)
		if err != nil {
			return ports.Principal{}, err
		}
		if role != principal.Role {
			return ports.Principal{}, errs.NewForbiddenError("role does not match token")
		}
	}

	if principal.Role != kernel.RoleCourier && principal.Role != kernel.RoleAdmin {
		return ports.Principal{}, errs.NewForbiddenError("real-time channels are for couriers and admins")
	}
	return principal, nil
}

func (h *Handler) attach(ctx context.Context, client *Client) {
	p := client.Principal()
	if p.Role == kernel.RoleAdmin {
		h.hub.Join(ports.AdminChannel, client)
		h.logger.Info("admin connected", "connId", client.ID(), "listenOnly", client.ListenOnly())
		return
	}

	h.hub.Join(ports.CourierChannel(p.Subject), client)
	if err := h.presence.Register(ctx, p.Subject, client.ID()); err != nil {
		h.logger.Warn("failed to register presence", "courierId", p.Subject.String(), "error", err)
	}
	h.logger.Info("courier connected", "courierId", p.Subject.String(), "connId", client.ID())
}

func (h *Handler) detach(client *Client) {
	h.hub.Leave(client)

	p := client.Principal()
	if p.Role != kernel.RoleCourier {
		return
	}

	// the request context is already done once the peer disconnects
	ctx, cancel := context.WithTimeout(context.Background(), presenceCleanupTimeout)
	defer cancel()
	if _, err := h.presence.Remove(ctx, p.Subject, client.ID()); err != nil {
		h.logger.Warn("failed to remove presence", "courierId", p.Subject.String(), "error", err)
	}
	h.logger.Info("courier disconnected", "courierId", p.Subject.String(), "connId", client.ID())
}

// originChecker allows every origin when none are configured; native apps send no Origin header.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
