package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/domain/model/wallet"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Role  string `json:"role,omitempty"`
}

type Session struct {
	Token    string    `json:"token"`
	Role     string    `json:"role"`
	Courier  *Courier  `json:"courier,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type Location struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Courier struct {
	Id           openapi_types.UUID `json:"id"`
	Phone        string             `json:"phone"`
	Name         string             `json:"name"`
	IsActive     bool               `json:"isActive"`
	CreatedAt    time.Time          `json:"createdAt"`
	LastLocation *Location          `json:"lastLocation,omitempty"`
}

type Customer struct {
	Id          openapi_types.UUID `json:"id"`
	Phone       string             `json:"phone"`
	Name        string             `json:"name"`
	FreeCredits int                `json:"freeCredits"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type ReportLocationRequest struct {
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	Accuracy   float64    `json:"accuracy"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

type RegisterDeviceRequest struct {
	PushToken string `json:"pushToken"`
	Platform  string `json:"platform"`
}

type Place struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type CreateTaskRequest struct {
	Pickup        Place               `json:"pickup"`
	Dropoff       Place               `json:"dropoff"`
	CreatedByType string              `json:"created_by_type"`
	CustomerId    *openapi_types.UUID `json:"customer_id,omitempty"`
}

type Task struct {
	Id            openapi_types.UUID  `json:"id"`
	Status        string              `json:"status"`
	Pickup        Place               `json:"pickup"`
	Dropoff       Place               `json:"dropoff"`
	CreatedByType string              `json:"created_by_type"`
	CustomerId    *openapi_types.UUID `json:"customer_id,omitempty"`
	RiderId       *openapi_types.UUID `json:"riderId,omitempty"`
	IsChargeable  bool                `json:"isChargeable"`
	Price         int64               `json:"price"`
	PaymentStatus string              `json:"paymentStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type CreateTaskResponse struct {
	Task     Task `json:"task"`
	Assigned bool `json:"assigned"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type RegisterCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PingRequest struct {
	RiderId openapi_types.UUID `json:"riderId"`
	Message string             `json:"message"`
}

type AssignTaskRequest struct {
	TaskId  openapi_types.UUID `json:"taskId"`
	RiderId openapi_types.UUID `json:"riderId"`
}

type AssignTaskResponse struct {
	Task    Task `json:"task"`
	Changed bool `json:"changed"`
}

type Transaction struct {
	Id        openapi_types.UUID `json:"id"`
	Amount    int64              `json:"amount"`
	Type      string             `json:"type"`
	Meta      map[string]any     `json:"meta"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Wallet struct {
	Id           openapi_types.UUID `json:"id"`
	OwnerId      openapi_types.UUID `json:"ownerId"`
	OwnerKind    string             `json:"ownerKind"`
	Balance      int64              `json:"balance"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Transactions []Transaction      `json:"transactions,omitempty"`
}

type WalletMovementRequest struct {
	OwnerId   openapi_types.UUID `json:"ownerId"`
	OwnerKind string             `json:"ownerKind"`
	Amount    int64              `json:"amount"`
	Type      string             `json:"type,omitempty"`
	Note      string             `json:"note,omitempty"`
}

type WalletMovement struct {
	Wallet      Wallet      `json:"wallet"`
	Transaction Transaction `json:"transaction"`
}

type WalletMismatch struct {
	WalletId  openapi_types.UUID `json:"walletId"`
	OwnerId   openapi_types.UUID `json:"ownerId"`
	OwnerKind string             `json:"ownerKind"`
	Balance   int64              `json:"balance"`
	Ledger    int64              `json:"ledger"`
}

type ReconcileReport struct {
	Checked    int              `json:"checked"`
	Mismatches []WalletMismatch `json:"mismatches"`
}

func toOpenAPIUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func toOptionalOpenAPIUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	v := toOpenAPIUUID(*id)
	return &v
}

func toLocation(p *position.LastKnown) *Location {
	if p == nil {
		return nil
	}
	return &Location{Lat: p.Lat, Lng: p.Lng, Accuracy: p.Accuracy, RecordedAt: p.RecordedAt}
}

func toCourier(c *courier.Courier) *Courier {
	if c == nil {
		return nil
	}
	return &Courier{
		Id:        toOpenAPIUUID(c.ID()),
		Phone:     c.Phone().String(),
		Name:      c.Name(),
		IsActive:  c.IsActive(),
		CreatedAt: c.CreatedAt(),
	}
}

func toCourierFromView(v queries.CourierView) Courier {
	return Courier{
		Id:           toOpenAPIUUID(v.ID),
		Phone:        v.Phone,
		Name:         v.Name,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
		LastLocation: toLocation(v.LastLocation),
	}
}

func toCustomer(c *customer.Customer) *Customer {
	if c == nil {
		return nil
	}
	return &Customer{
		Id:          toOpenAPIUUID(c.ID()),
		Phone:       c.Phone().String(),
		Name:        c.Name(),
		FreeCredits: c.FreeCredits(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toPlace(p kernel.Place) Place {
	return Place{Address: p.Address(), Lat: p.Point().Lat(), Lng: p.Point().Lng()}
}

func toTask(t *task.Task) Task {
	out := Task{
		Id:            toOpenAPIUUID(t.ID()),
		Status:        t.Status().String(),
		Pickup:        toPlace(t.Pickup()),
		Dropoff:       toPlace(t.Dropoff()),
		CreatedByType: string(t.Creator().Kind),
		RiderId:       toOptionalOpenAPIUUID(t.CourierID()),
		IsChargeable:  t.IsChargeable(),
		Price:         t.Price(),
		PaymentStatus: string(t.PaymentStatus()),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
	out.CustomerId = toOptionalOpenAPIUUID(t.Creator().CustomerID)
	return out
}

func toTaskFromView(v queries.TaskView) Task {
	return Task{
		Id:            toOpenAPIUUID(v.ID),
		Status:        v.Status,
		Pickup:        Place(v.Pickup),
		Dropoff:       Place(v.Dropoff),
		CreatedByType: v.CreatedByType,
		CustomerId:    toOptionalOpenAPIUUID(v.CustomerID),
		RiderId:       toOptionalOpenAPIUUID(v.CourierID),
		IsChargeable:  v.IsChargeable,
		Price:         v.Price,
		PaymentStatus: v.PaymentStatus,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toTransaction(tx wallet.Transaction) Transaction {
	return Transaction{
		Id:        toOpenAPIUUID(tx.ID),
		Amount:    tx.Amount,
		Type:      string(tx.Type),
		Meta:      tx.Meta,
		CreatedAt: tx.CreatedAt,
	}
}

func toWallet(w *wallet.Wallet) Wallet {
	return Wallet{
		Id:        toOpenAPIUUID(w.ID()),
		OwnerId:   toOpenAPIUUID(w.OwnerID()),
		OwnerKind: string(w.OwnerKind()),
		Balance:   w.Balance(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func toWalletFromView(v queries.WalletView) Wallet {
	out := Wallet{
		Id:           toOpenAPIUUID(v.ID),
		OwnerId:      toOpenAPIUUID(v.OwnerID),
		OwnerKind:    v.OwnerKind,
		Balance:      v.Balance,
		UpdatedAt:    v.UpdatedAt,
		Transactions: make([]Transaction, 0, len(v.Transactions)),
	}
	for _, tx := range v.Transactions {
		out.Transactions = append(out.Transactions, Transaction{
			Id:        toOpenAPIUUID(tx.ID),
			Amount:    tx.Amount,
			Type:      tx.Type,
			Meta:      tx.Meta,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out
}
