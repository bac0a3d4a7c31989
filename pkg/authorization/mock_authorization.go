// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package authorization -destination ./mock_authorization.go -source=./interfaces.go
//

// Package authorization is a generated GoMock package.
package authorization

import (
	context "context"
	reflect "reflect"

	types "github.com/hellogrowth/platform/internal/types"
	gomock "go.uber.org/mock/gomock"
)

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

// GetActiveTeamMembershipByEmail mocks base method.
func (m *MockStorageInterface) GetActiveTeamMembershipByEmail(ctx context.Context, email string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveTeamMembershipByEmail", ctx, email)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveTeamMembershipByEmail indicates an expected call of GetActiveTeamMembershipByEmail.
func (mr *MockStorageInterfaceMockRecorder) GetActiveTeamMembershipByEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveTeamMembershipByEmail", reflect.TypeOf((*MockStorageInterface)(nil).GetActiveTeamMembershipByEmail), ctx, email)
}

// ListPermissionsByRole mocks base method.
func (m *MockStorageInterface) ListPermissionsByRole(ctx context.Context, role string) ([]string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPermissionsByRole", ctx, role)
	ret0, _ := ret[0].([]string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListPermissionsByRole indicates an expected call of ListPermissionsByRole.
func (mr *MockStorageInterfaceMockRecorder) ListPermissionsByRole(ctx, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPermissionsByRole", reflect.TypeOf((*MockStorageInterface)(nil).ListPermissionsByRole), ctx, role)
}

// MockResolverInterface is a mock of ResolverInterface interface.
type MockResolverInterface struct {
	ctrl     *gomock.Controller
	recorder *MockResolverInterfaceMockRecorder
	isgomock struct{}
}

// MockResolverInterfaceMockRecorder is the mock recorder for MockResolverInterface.
type MockResolverInterfaceMockRecorder struct {
	mock *MockResolverInterface
}

// NewMockResolverInterface creates a new mock instance.
func NewMockResolverInterface(ctrl *gomock.Controller) *MockResolverInterface {
	mock := &MockResolverInterface{ctrl: ctrl}
	mock.recorder = &MockResolverInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockResolverInterface) EXPECT() *MockResolverInterfaceMockRecorder {
	return m.recorder
}

// Resolve mocks base method.
func (m *MockResolverInterface) Resolve(ctx context.Context, userID, email string) (*Access, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", ctx, userID, email)
	ret0, _ := ret[0].(*Access)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Resolve indicates an expected call of Resolve.
func (mr *MockResolverInterfaceMockRecorder) Resolve(ctx, userID, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockResolverInterface)(nil).Resolve), ctx, userID, email)
}
