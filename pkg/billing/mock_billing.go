// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package billing -destination ./mock_billing.go -source=./interfaces.go
//

// Package billing is a generated GoMock package.
package billing

import (
	context "context"
	reflect "reflect"

	stripe "github.com/hellogrowth/platform/internal/stripe"
	stripe0 "github.com/stripe/stripe-go/v82"
	gomock "go.uber.org/mock/gomock"
)

// MockServiceInterface is a mock of ServiceInterface interface.
type MockServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockServiceInterfaceMockRecorder is the mock recorder for MockServiceInterface.
type MockServiceInterfaceMockRecorder struct {
	mock *MockServiceInterface
}

// NewMockServiceInterface creates a new mock instance.
func NewMockServiceInterface(ctrl *gomock.Controller) *MockServiceInterface {
	mock := &MockServiceInterface{ctrl: ctrl}
	mock.recorder = &MockServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServiceInterface) EXPECT() *MockServiceInterfaceMockRecorder {
	return m.recorder
}

// CreateCheckoutSession mocks base method.
func (m *MockServiceInterface) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCheckoutSession", ctx, req)
	ret0, _ := ret[0].(*CheckoutResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateCheckoutSession indicates an expected call of CreateCheckoutSession.
func (mr *MockServiceInterfaceMockRecorder) CreateCheckoutSession(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCheckoutSession", reflect.TypeOf((*MockServiceInterface)(nil).CreateCheckoutSession), ctx, req)
}

// GetCheckoutSession mocks base method.
func (m *MockServiceInterface) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCheckoutSession", ctx, sessionID)
	ret0, _ := ret[0].(*stripe.CheckoutSession)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCheckoutSession indicates an expected call of GetCheckoutSession.
func (mr *MockServiceInterfaceMockRecorder) GetCheckoutSession(ctx, sessionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCheckoutSession", reflect.TypeOf((*MockServiceInterface)(nil).GetCheckoutSession), ctx, sessionID)
}

// HandleWebhookEvent mocks base method.
func (m *MockServiceInterface) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleWebhookEvent", ctx, payload, signature)
	ret0, _ := ret[0].(error)
	return ret0
}

// HandleWebhookEvent indicates an expected call of HandleWebhookEvent.
func (mr *MockServiceInterfaceMockRecorder) HandleWebhookEvent(ctx, payload, signature any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleWebhookEvent", reflect.TypeOf((*MockServiceInterface)(nil).HandleWebhookEvent), ctx, payload, signature)
}

// VerifySession mocks base method.
func (m *MockServiceInterface) VerifySession(ctx context.Context, sessionID string) (*SessionStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifySession", ctx, sessionID)
	ret0, _ := ret[0].(*SessionStatus)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// VerifySession indicates an expected call of VerifySession.
func (mr *MockServiceInterfaceMockRecorder) VerifySession(ctx, sessionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifySession", reflect.TypeOf((*MockServiceInterface)(nil).VerifySession), ctx, sessionID)
}

// MockStripeInterface is a mock of StripeInterface interface.
type MockStripeInterface struct {
	ctrl     *gomock.Controller
	recorder *MockStripeInterfaceMockRecorder
	isgomock struct{}
}

// MockStripeInterfaceMockRecorder is the mock recorder for MockStripeInterface.
type MockStripeInterfaceMockRecorder struct {
	mock *MockStripeInterface
}

// NewMockStripeInterface creates a new mock instance.
func NewMockStripeInterface(ctrl *gomock.Controller) *MockStripeInterface {
	mock := &MockStripeInterface{ctrl: ctrl}
	mock.recorder = &MockStripeInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStripeInterface) EXPECT() *MockStripeInterfaceMockRecorder {
	return m.recorder
}

// ConstructEvent mocks base method.
func (m *MockStripeInterface) ConstructEvent(payload []byte, signature string) (stripe0.Event, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConstructEvent", payload, signature)
	ret0, _ := ret[0].(stripe0.Event)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConstructEvent indicates an expected call of ConstructEvent.
func (mr *MockStripeInterfaceMockRecorder) ConstructEvent(payload, signature any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConstructEvent", reflect.TypeOf((*MockStripeInterface)(nil).ConstructEvent), payload, signature)
}

// CreateCheckoutSession mocks base method.
func (m *MockStripeInterface) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutParams) (*stripe.CheckoutSession, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCheckoutSession", ctx, params)
	ret0, _ := ret[0].(*stripe.CheckoutSession)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateCheckoutSession indicates an expected call of CreateCheckoutSession.
func (mr *MockStripeInterfaceMockRecorder) CreateCheckoutSession(ctx, params any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCheckoutSession", reflect.TypeOf((*MockStripeInterface)(nil).CreateCheckoutSession), ctx, params)
}

// GetCheckoutSession mocks base method.
func (m *MockStripeInterface) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCheckoutSession", ctx, sessionID)
	ret0, _ := ret[0].(*stripe.CheckoutSession)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCheckoutSession indicates an expected call of GetCheckoutSession.
func (mr *MockStripeInterfaceMockRecorder) GetCheckoutSession(ctx, sessionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCheckoutSession", reflect.TypeOf((*MockStripeInterface)(nil).GetCheckoutSession), ctx, sessionID)
}

// MockStorageInterface is a mock of StorageInterface interface.
type MockStorageInterface struct {
	ctrl     *gomock.Controller
	recorder *MockStorageInterfaceMockRecorder
	isgomock struct{}
}

// MockStorageInterfaceMockRecorder is the mock recorder for MockStorageInterface.
type MockStorageInterfaceMockRecorder struct {
	mock *MockStorageInterface
}

// NewMockStorageInterface creates a new mock instance.
func NewMockStorageInterface(ctrl *gomock.Controller) *MockStorageInterface {
	mock := &MockStorageInterface{ctrl: ctrl}
	mock.recorder = &MockStorageInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageInterface) EXPECT() *MockStorageInterfaceMockRecorder {
	return m.recorder
}

// UpdateSubscriptionStatus mocks base method.
func (m *MockStorageInterface) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateSubscriptionStatus", ctx, subscriptionID, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateSubscriptionStatus indicates an expected call of UpdateSubscriptionStatus.
func (mr *MockStorageInterfaceMockRecorder) UpdateSubscriptionStatus(ctx, subscriptionID, status any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateSubscriptionStatus", reflect.TypeOf((*MockStorageInterface)(nil).UpdateSubscriptionStatus), ctx, subscriptionID, status)
}
