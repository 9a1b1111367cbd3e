package realtime_test

import (
	"context"
	"encoding/json"
	"testing"

	"dispatch/internal/adapters/in/realtime"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLocationReporter struct {
	mock.Mock
}

func (m *MockLocationReporter) Handle(ctx context.Context, command commands.ReportLocationCommand) (position.Report, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(position.Report), args.Error(1)
}

type MockTaskAccepter struct {
	mock.Mock
}

func (m *MockTaskAccepter) Handle(ctx context.Context, command commands.AcceptTaskCommand) (*task.Task, error) {
	args := m.Called(ctx, command)
	if t := args.Get(0); t != nil {
		return t.(*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierPinger struct {
	mock.Mock
}

func (m *MockCourierPinger) Handle(ctx context.Context, command commands.PingCourierCommand) error {
	return m.Called(ctx, command).Error(0)
}

type inboundFixture struct {
	reporter *MockLocationReporter
	accepter *MockTaskAccepter
	pinger   *MockCourierPinger
	inbound  realtime.Inbound
}

func newInboundFixture() inboundFixture {
	f := inboundFixture{
		reporter: &MockLocationReporter{},
		accepter: &MockTaskAccepter{},
		pinger:   &MockCourierPinger{},
	}
	f.inbound = realtime.NewInbound(f.reporter, f.accepter, f.pinger, discardLogger())
	return f
}

func errorReply(t *testing.T, c *realtime.Client) realtime.ErrorPayload {
	t.Helper()
	require.Len(t, c.Messages(), 1)

	var env realtime.Envelope
	require.NoError(t, json.Unmarshal(<-c.Messages(), &env))
	require.Equal(t, realtime.EventError, env.Event)

	var payload realtime.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	return payload
}

func TestInbound_CourierLocationUpdate(t *testing.T) {
	ctx := t.Context()
	f := newInboundFixture()
	principal := courierPrincipal()
	c := realtime.NewClient(principal, 4)

	f.reporter.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ReportLocationCommand) bool {
		return cmd.CourierID().IsEqual(principal.Subject) && cmd.Point().Lat() == 41.3 && cmd.Point().Lng() == 69.2
	})).Return(position.Report{}, nil).Once()

	f.inbound.Handle(ctx, c, []byte(`{"event":"location:update","data":{"lat":41.3,"lng":69.2,"accuracy":5}}`))

	f.reporter.AssertExpectations(t)
	assert.Empty(t, c.Messages())
}

func TestInbound_AdminCannotReportLocation(t *testing.T) {
	f := newInboundFixture()
	c := realtime.NewClient(ports.Principal{Subject: kernel.NewUUID(), Role: kernel.RoleAdmin}, 4)

	f.inbound.Handle(t.Context(), c, []byte(`{"event":"location:update","data":{"lat":1,"lng":1}}`))

	reply := errorReply(t, c)
	assert.Equal(t, errs.KindForbidden, reply.Kind)
	assert.Equal(t, ports.EventLocationUpdate, reply.Event)
	f.reporter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestInbound_TaskAcceptFailureIsReported(t *testing.T) {
	ctx := t.Context()
	f := newInboundFixture()
	principal := courierPrincipal()
	c := realtime.NewClient(principal, 4)
	taskID := kernel.NewUUID()

	f.accepter.On("Handle", ctx, mock.MatchedBy(func(cmd commands.AcceptTaskCommand) bool {
		return cmd.TaskID().IsEqual(taskID) && cmd.CourierID().IsEqual(principal.Subject)
	})).Return(nil, errs.NewConflictError("task already accepted")).Once()

	f.inbound.Handle(ctx, c, []byte(`{"event":"task:accept","data":{"taskId":"`+taskID.String()+`"}}`))

	f.accepter.AssertExpectations(t)
	assert.Equal(t, errs.KindConflict, errorReply(t, c).Kind)
}

func TestInbound_AdminPing(t *testing.T) {
	ctx := t.Context()
	f := newInboundFixture()
	c := realtime.NewClient(ports.Principal{Subject: kernel.NewUUID(), Role: kernel.RoleAdmin}, 4)
	riderID := kernel.NewUUID()

	f.pinger.On("Handle", ctx, mock.MatchedBy(func(cmd commands.PingCourierCommand) bool {
		return cmd.CourierID().IsEqual(riderID) && cmd.Message() == "where are you?"
	})).Return(nil).Once()

	f.inbound.Handle(ctx, c, []byte(`{"event":"ping","data":{"riderId":"`+riderID.String()+`","message":"where are you?"}}`))

	f.pinger.AssertExpectations(t)
	assert.Empty(t, c.Messages())
}

func TestInbound_ListenerCannotPing(t *testing.T) {
	f := newInboundFixture()
	c := realtime.NewListener(4)

	f.inbound.Handle(t.Context(), c, []byte(`{"event":"ping","data":{"riderId":"`+kernel.NewUUID().String()+`","message":"hi"}}`))

	reply := errorReply(t, c)
	assert.Equal(t, errs.KindUnauthorized, reply.Kind)
	assert.Equal(t, ports.EventPing, reply.Event)
	f.pinger.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestInbound_RejectsMalformedMessages(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":      `hello`,
		"no event":      `{"data":{}}`,
		"unknown event": `{"event":"call:start","data":{}}`,
		"missing data":  `{"event":"task:accept"}`,
		"bad task id":   `{"event":"task:accept","data":{"taskId":"nope"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newInboundFixture()
			c := realtime.NewClient(courierPrincipal(), 4)

			f.inbound.Handle(t.Context(), c, []byte(raw))

			assert.Equal(t, errs.KindInvalidInput, errorReply(t, c).Kind)
		})
	}
}
