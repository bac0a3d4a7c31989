// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_onboarding.go -source=./interfaces.go
//

// Package onboarding is a generated GoMock package.
package onboarding

import (
	context "context"
	reflect "reflect"

	stripe "github.com/hellogrowth/platform/internal/stripe"
	types "github.com/hellogrowth/platform/internal/types"
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

// SetupTenants mocks base method.
func (m *MockServiceInterface) SetupTenants(ctx context.Context, req *SetupTenantsRequest) (*Result, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetupTenants", ctx, req)
	ret0, _ := ret[0].(*Result)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SetupTenants indicates an expected call of SetupTenants.
func (mr *MockServiceInterfaceMockRecorder) SetupTenants(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetupTenants", reflect.TypeOf((*MockServiceInterface)(nil).SetupTenants), ctx, req)
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

// AddMember mocks base method.
func (m_2 *MockStorageInterface) AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	m_2.ctrl.T.Helper()
	ret := m_2.ctrl.Call(m_2, "AddMember", ctx, m)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddMember indicates an expected call of AddMember.
func (mr *MockStorageInterfaceMockRecorder) AddMember(ctx, m any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddMember", reflect.TypeOf((*MockStorageInterface)(nil).AddMember), ctx, m)
}

// CreateCompany mocks base method.
func (m *MockStorageInterface) CreateCompany(ctx context.Context, company *types.Company) (*types.Company, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCompany", ctx, company)
	ret0, _ := ret[0].(*types.Company)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateCompany indicates an expected call of CreateCompany.
func (mr *MockStorageInterfaceMockRecorder) CreateCompany(ctx, company any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCompany", reflect.TypeOf((*MockStorageInterface)(nil).CreateCompany), ctx, company)
}

// CreateUser mocks base method.
func (m *MockStorageInterface) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateUser", ctx, user)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateUser indicates an expected call of CreateUser.
func (mr *MockStorageInterfaceMockRecorder) CreateUser(ctx, user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateUser", reflect.TypeOf((*MockStorageInterface)(nil).CreateUser), ctx, user)
}

// GetUserByEmail mocks base method.
func (m *MockStorageInterface) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByEmail", ctx, email)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByEmail indicates an expected call of GetUserByEmail.
func (mr *MockStorageInterfaceMockRecorder) GetUserByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByEmail", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByEmail), ctx, email)
}

// UpdateUserTenant mocks base method.
func (m *MockStorageInterface) UpdateUserTenant(ctx context.Context, userID, tenantID, companyName string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateUserTenant", ctx, userID, tenantID, companyName)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateUserTenant indicates an expected call of UpdateUserTenant.
func (mr *MockStorageInterfaceMockRecorder) UpdateUserTenant(ctx, userID, tenantID, companyName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateUserTenant", reflect.TypeOf((*MockStorageInterface)(nil).UpdateUserTenant), ctx, userID, tenantID, companyName)
}

// MockBillingInterface is a mock of BillingInterface interface.
type MockBillingInterface struct {
	ctrl     *gomock.Controller
	recorder *MockBillingInterfaceMockRecorder
	isgomock struct{}
}

// MockBillingInterfaceMockRecorder is the mock recorder for MockBillingInterface.
type MockBillingInterfaceMockRecorder struct {
	mock *MockBillingInterface
}

// NewMockBillingInterface creates a new mock instance.
func NewMockBillingInterface(ctrl *gomock.Controller) *MockBillingInterface {
	mock := &MockBillingInterface{ctrl: ctrl}
	mock.recorder = &MockBillingInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBillingInterface) EXPECT() *MockBillingInterfaceMockRecorder {
	return m.recorder
}

// GetCheckoutSession mocks base method.
func (m *MockBillingInterface) GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCheckoutSession", ctx, sessionID)
	ret0, _ := ret[0].(*stripe.CheckoutSession)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCheckoutSession indicates an expected call of GetCheckoutSession.
func (mr *MockBillingInterfaceMockRecorder) GetCheckoutSession(ctx, sessionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCheckoutSession", reflect.TypeOf((*MockBillingInterface)(nil).GetCheckoutSession), ctx, sessionID)
}
