// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package authentication -destination ./mock_verifier.go -source=./interfaces.go
//

// Package authentication is a generated GoMock package.
package authentication

import (
	context "context"
	reflect "reflect"

	oidc "github.com/coreos/go-oidc/v3/oidc"
	gomock "go.uber.org/mock/gomock"
)

// MockProviderInterface is a mock of ProviderInterface interface.
type MockProviderInterface struct {
	ctrl     *gomock.Controller
	recorder *MockProviderInterfaceMockRecorder
	isgomock struct{}
}

// MockProviderInterfaceMockRecorder is the mock recorder for MockProviderInterface.
type MockProviderInterfaceMockRecorder struct {
	mock *MockProviderInterface
}

// NewMockProviderInterface creates a new mock instance.
func NewMockProviderInterface(ctrl *gomock.Controller) *MockProviderInterface {
	mock := &MockProviderInterface{ctrl: ctrl}
	mock.recorder = &MockProviderInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProviderInterface) EXPECT() *MockProviderInterfaceMockRecorder {
	return m.recorder
}

// Verifier mocks base method.
func (m *MockProviderInterface) Verifier(arg0 *oidc.Config) *oidc.IDTokenVerifier {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verifier", arg0)
	ret0, _ := ret[0].(*oidc.IDTokenVerifier)
	return ret0
}

// Verifier indicates an expected call of Verifier.
func (mr *MockProviderInterfaceMockRecorder) Verifier(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verifier", reflect.TypeOf((*MockProviderInterface)(nil).Verifier), arg0)
}

// MockTokenVerifierInterface is a mock of TokenVerifierInterface interface.
type MockTokenVerifierInterface struct {
	ctrl     *gomock.Controller
	recorder *MockTokenVerifierInterfaceMockRecorder
	isgomock struct{}
}

// MockTokenVerifierInterfaceMockRecorder is the mock recorder for MockTokenVerifierInterface.
type MockTokenVerifierInterfaceMockRecorder struct {
	mock *MockTokenVerifierInterface
}

// NewMockTokenVerifierInterface creates a new mock instance.
func NewMockTokenVerifierInterface(ctrl *gomock.Controller) *MockTokenVerifierInterface {
	mock := &MockTokenVerifierInterface{ctrl: ctrl}
	mock.recorder = &MockTokenVerifierInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTokenVerifierInterface) EXPECT() *MockTokenVerifierInterfaceMockRecorder {
	return m.recorder
}

// VerifyToken mocks base method.
func (m *MockTokenVerifierInterface) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifyToken", ctx, rawToken)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// VerifyToken indicates an expected call of VerifyToken.
func (mr *MockTokenVerifierInterfaceMockRecorder) VerifyToken(ctx, rawToken any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifyToken", reflect.TypeOf((*MockTokenVerifierInterface)(nil).VerifyToken), ctx, rawToken)
}
