// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package mailbox -destination ./mock_mailbox.go -source=./interfaces.go
//

// Package mailbox is a generated GoMock package.
package mailbox

import (
	context "context"
	reflect "reflect"
	time "time"

	google "github.com/hellogrowth/platform/internal/google"
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

// AuthURL mocks base method.
func (m *MockServiceInterface) AuthURL(ctx context.Context, userID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AuthURL", ctx, userID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AuthURL indicates an expected call of AuthURL.
func (mr *MockServiceInterfaceMockRecorder) AuthURL(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AuthURL", reflect.TypeOf((*MockServiceInterface)(nil).AuthURL), ctx, userID)
}

// CompleteAuth mocks base method.
func (m *MockServiceInterface) CompleteAuth(ctx context.Context, code, userID string) (*types.GmailConnection, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteAuth", ctx, code, userID)
	ret0, _ := ret[0].(*types.GmailConnection)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CompleteAuth indicates an expected call of CompleteAuth.
func (mr *MockServiceInterfaceMockRecorder) CompleteAuth(ctx, code, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteAuth", reflect.TypeOf((*MockServiceInterface)(nil).CompleteAuth), ctx, code, userID)
}

// Disconnect mocks base method.
func (m *MockServiceInterface) Disconnect(ctx context.Context, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Disconnect", ctx, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Disconnect indicates an expected call of Disconnect.
func (mr *MockServiceInterfaceMockRecorder) Disconnect(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Disconnect", reflect.TypeOf((*MockServiceInterface)(nil).Disconnect), ctx, userID)
}

// Send mocks base method.
func (m *MockServiceInterface) Send(ctx context.Context, userID string, email *google.Email) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, userID, email)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Send indicates an expected call of Send.
func (mr *MockServiceInterfaceMockRecorder) Send(ctx, userID, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockServiceInterface)(nil).Send), ctx, userID, email)
}

// Status mocks base method.
func (m *MockServiceInterface) Status(ctx context.Context, userID string) (*ConnectionStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Status", ctx, userID)
	ret0, _ := ret[0].(*ConnectionStatus)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Status indicates an expected call of Status.
func (mr *MockServiceInterfaceMockRecorder) Status(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Status", reflect.TypeOf((*MockServiceInterface)(nil).Status), ctx, userID)
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

// DeleteGmailConnection mocks base method.
func (m *MockStorageInterface) DeleteGmailConnection(ctx context.Context, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteGmailConnection", ctx, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteGmailConnection indicates an expected call of DeleteGmailConnection.
func (mr *MockStorageInterfaceMockRecorder) DeleteGmailConnection(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteGmailConnection", reflect.TypeOf((*MockStorageInterface)(nil).DeleteGmailConnection), ctx, userID)
}

// GetGmailConnection mocks base method.
func (m *MockStorageInterface) GetGmailConnection(ctx context.Context, userID string) (*types.GmailConnection, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetGmailConnection", ctx, userID)
	ret0, _ := ret[0].(*types.GmailConnection)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetGmailConnection indicates an expected call of GetGmailConnection.
func (mr *MockStorageInterfaceMockRecorder) GetGmailConnection(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetGmailConnection", reflect.TypeOf((*MockStorageInterface)(nil).GetGmailConnection), ctx, userID)
}

// UpdateGmailTokens mocks base method.
func (m *MockStorageInterface) UpdateGmailTokens(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateGmailTokens", ctx, userID, accessToken, expiresAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateGmailTokens indicates an expected call of UpdateGmailTokens.
func (mr *MockStorageInterfaceMockRecorder) UpdateGmailTokens(ctx, userID, accessToken, expiresAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateGmailTokens", reflect.TypeOf((*MockStorageInterface)(nil).UpdateGmailTokens), ctx, userID, accessToken, expiresAt)
}

// UpsertGmailConnection mocks base method.
func (m *MockStorageInterface) UpsertGmailConnection(ctx context.Context, conn *types.GmailConnection) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertGmailConnection", ctx, conn)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertGmailConnection indicates an expected call of UpsertGmailConnection.
func (mr *MockStorageInterfaceMockRecorder) UpsertGmailConnection(ctx, conn any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertGmailConnection", reflect.TypeOf((*MockStorageInterface)(nil).UpsertGmailConnection), ctx, conn)
}

// MockGoogleInterface is a mock of GoogleInterface interface.
type MockGoogleInterface struct {
	ctrl     *gomock.Controller
	recorder *MockGoogleInterfaceMockRecorder
	isgomock struct{}
}

// MockGoogleInterfaceMockRecorder is the mock recorder for MockGoogleInterface.
type MockGoogleInterfaceMockRecorder struct {
	mock *MockGoogleInterface
}

// NewMockGoogleInterface creates a new mock instance.
func NewMockGoogleInterface(ctrl *gomock.Controller) *MockGoogleInterface {
	mock := &MockGoogleInterface{ctrl: ctrl}
	mock.recorder = &MockGoogleInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockGoogleInterface) EXPECT() *MockGoogleInterfaceMockRecorder {
	return m.recorder
}

// AuthURL mocks base method.
func (m *MockGoogleInterface) AuthURL(state string) string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AuthURL", state)
	ret0, _ := ret[0].(string)
	return ret0
}

// AuthURL indicates an expected call of AuthURL.
func (mr *MockGoogleInterfaceMockRecorder) AuthURL(state any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AuthURL", reflect.TypeOf((*MockGoogleInterface)(nil).AuthURL), state)
}

// Exchange mocks base method.
func (m *MockGoogleInterface) Exchange(ctx context.Context, code string) (*google.Tokens, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exchange", ctx, code)
	ret0, _ := ret[0].(*google.Tokens)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exchange indicates an expected call of Exchange.
func (mr *MockGoogleInterfaceMockRecorder) Exchange(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exchange", reflect.TypeOf((*MockGoogleInterface)(nil).Exchange), ctx, code)
}

// Refresh mocks base method.
func (m *MockGoogleInterface) Refresh(ctx context.Context, refreshToken string) (*google.Tokens, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Refresh", ctx, refreshToken)
	ret0, _ := ret[0].(*google.Tokens)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Refresh indicates an expected call of Refresh.
func (mr *MockGoogleInterfaceMockRecorder) Refresh(ctx, refreshToken any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Refresh", reflect.TypeOf((*MockGoogleInterface)(nil).Refresh), ctx, refreshToken)
}

// Send mocks base method.
func (m *MockGoogleInterface) Send(ctx context.Context, accessToken string, email *google.Email) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", ctx, accessToken, email)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Send indicates an expected call of Send.
func (mr *MockGoogleInterfaceMockRecorder) Send(ctx, accessToken, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockGoogleInterface)(nil).Send), ctx, accessToken, email)
}

// UserEmail mocks base method.
func (m *MockGoogleInterface) UserEmail(ctx context.Context, accessToken string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UserEmail", ctx, accessToken)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UserEmail indicates an expected call of UserEmail.
func (mr *MockGoogleInterfaceMockRecorder) UserEmail(ctx, accessToken any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UserEmail", reflect.TypeOf((*MockGoogleInterface)(nil).UserEmail), ctx, accessToken)
}
