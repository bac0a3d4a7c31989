// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package team -destination ./mock_team.go -source=./interfaces.go
//

// Package team is a generated GoMock package.
package team

import (
	context "context"
	reflect "reflect"

	mail "github.com/hellogrowth/platform/internal/mail"
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

// AcceptInvite mocks base method.
func (m *MockServiceInterface) AcceptInvite(ctx context.Context, token, password string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AcceptInvite", ctx, token, password)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AcceptInvite indicates an expected call of AcceptInvite.
func (mr *MockServiceInterfaceMockRecorder) AcceptInvite(ctx, token, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AcceptInvite", reflect.TypeOf((*MockServiceInterface)(nil).AcceptInvite), ctx, token, password)
}

// Invite mocks base method.
func (m *MockServiceInterface) Invite(ctx context.Context, ownerID, name, email, role string) (*types.Invite, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Invite", ctx, ownerID, name, email, role)
	ret0, _ := ret[0].(*types.Invite)
	ret1, _ := ret[1].(string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// Invite indicates an expected call of Invite.
func (mr *MockServiceInterfaceMockRecorder) Invite(ctx, ownerID, name, email, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Invite", reflect.TypeOf((*MockServiceInterface)(nil).Invite), ctx, ownerID, name, email, role)
}

// ListForEmail mocks base method.
func (m *MockServiceInterface) ListForEmail(ctx context.Context, email string) (*Team, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForEmail", ctx, email)
	ret0, _ := ret[0].(*Team)
	ret1, _ := ret[1].(string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ListForEmail indicates an expected call of ListForEmail.
func (mr *MockServiceInterfaceMockRecorder) ListForEmail(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForEmail", reflect.TypeOf((*MockServiceInterface)(nil).ListForEmail), ctx, email)
}

// ListForOwner mocks base method.
func (m *MockServiceInterface) ListForOwner(ctx context.Context, ownerID string) (*Team, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListForOwner", ctx, ownerID)
	ret0, _ := ret[0].(*Team)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListForOwner indicates an expected call of ListForOwner.
func (mr *MockServiceInterfaceMockRecorder) ListForOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListForOwner", reflect.TypeOf((*MockServiceInterface)(nil).ListForOwner), ctx, ownerID)
}

// LookupInvite mocks base method.
func (m *MockServiceInterface) LookupInvite(ctx context.Context, token string) (*InvitePreview, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LookupInvite", ctx, token)
	ret0, _ := ret[0].(*InvitePreview)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LookupInvite indicates an expected call of LookupInvite.
func (mr *MockServiceInterfaceMockRecorder) LookupInvite(ctx, token any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LookupInvite", reflect.TypeOf((*MockServiceInterface)(nil).LookupInvite), ctx, token)
}

// RemoveMember mocks base method.
func (m *MockServiceInterface) RemoveMember(ctx context.Context, memberID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveMember", ctx, memberID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveMember indicates an expected call of RemoveMember.
func (mr *MockServiceInterfaceMockRecorder) RemoveMember(ctx, memberID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveMember", reflect.TypeOf((*MockServiceInterface)(nil).RemoveMember), ctx, memberID)
}

// UpdateRole mocks base method.
func (m *MockServiceInterface) UpdateRole(ctx context.Context, memberID, newRole, requestingUserID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateRole", ctx, memberID, newRole, requestingUserID)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateRole indicates an expected call of UpdateRole.
func (mr *MockServiceInterfaceMockRecorder) UpdateRole(ctx, memberID, newRole, requestingUserID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateRole", reflect.TypeOf((*MockServiceInterface)(nil).UpdateRole), ctx, memberID, newRole, requestingUserID)
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

// CreateInvite mocks base method.
func (m *MockStorageInterface) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateInvite", ctx, invite)
	ret0, _ := ret[0].(*types.Invite)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateInvite indicates an expected call of CreateInvite.
func (mr *MockStorageInterfaceMockRecorder) CreateInvite(ctx, invite any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateInvite", reflect.TypeOf((*MockStorageInterface)(nil).CreateInvite), ctx, invite)
}

// GetInviteByToken mocks base method.
func (m *MockStorageInterface) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetInviteByToken", ctx, token)
	ret0, _ := ret[0].(*types.Invite)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetInviteByToken indicates an expected call of GetInviteByToken.
func (mr *MockStorageInterfaceMockRecorder) GetInviteByToken(ctx, token any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetInviteByToken", reflect.TypeOf((*MockStorageInterface)(nil).GetInviteByToken), ctx, token)
}

// GetMembershipByID mocks base method.
func (m *MockStorageInterface) GetMembershipByID(ctx context.Context, id string) (*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMembershipByID", ctx, id)
	ret0, _ := ret[0].(*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetMembershipByID indicates an expected call of GetMembershipByID.
func (mr *MockStorageInterfaceMockRecorder) GetMembershipByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMembershipByID", reflect.TypeOf((*MockStorageInterface)(nil).GetMembershipByID), ctx, id)
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

// GetUserByID mocks base method.
func (m *MockStorageInterface) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByID", ctx, id)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByID indicates an expected call of GetUserByID.
func (mr *MockStorageInterfaceMockRecorder) GetUserByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByID", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByID), ctx, id)
}

// ListMembersByOwner mocks base method.
func (m *MockStorageInterface) ListMembersByOwner(ctx context.Context, ownerID string) ([]*types.Membership, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListMembersByOwner", ctx, ownerID)
	ret0, _ := ret[0].([]*types.Membership)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListMembersByOwner indicates an expected call of ListMembersByOwner.
func (mr *MockStorageInterfaceMockRecorder) ListMembersByOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListMembersByOwner", reflect.TypeOf((*MockStorageInterface)(nil).ListMembersByOwner), ctx, ownerID)
}

// ListPendingInvitesByOwner mocks base method.
func (m *MockStorageInterface) ListPendingInvitesByOwner(ctx context.Context, ownerID string) ([]*types.Invite, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListPendingInvitesByOwner", ctx, ownerID)
	ret0, _ := ret[0].([]*types.Invite)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListPendingInvitesByOwner indicates an expected call of ListPendingInvitesByOwner.
func (mr *MockStorageInterfaceMockRecorder) ListPendingInvitesByOwner(ctx, ownerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListPendingInvitesByOwner", reflect.TypeOf((*MockStorageInterface)(nil).ListPendingInvitesByOwner), ctx, ownerID)
}

// RemoveMember mocks base method.
func (m *MockStorageInterface) RemoveMember(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemoveMember", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// RemoveMember indicates an expected call of RemoveMember.
func (mr *MockStorageInterfaceMockRecorder) RemoveMember(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemoveMember", reflect.TypeOf((*MockStorageInterface)(nil).RemoveMember), ctx, id)
}

// UpdateInviteRoleByEmail mocks base method.
func (m *MockStorageInterface) UpdateInviteRoleByEmail(ctx context.Context, email, role string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateInviteRoleByEmail", ctx, email, role)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateInviteRoleByEmail indicates an expected call of UpdateInviteRoleByEmail.
func (mr *MockStorageInterfaceMockRecorder) UpdateInviteRoleByEmail(ctx, email, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateInviteRoleByEmail", reflect.TypeOf((*MockStorageInterface)(nil).UpdateInviteRoleByEmail), ctx, email, role)
}

// UpdateInviteStatus mocks base method.
func (m *MockStorageInterface) UpdateInviteStatus(ctx context.Context, id, status string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateInviteStatus", ctx, id, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateInviteStatus indicates an expected call of UpdateInviteStatus.
func (mr *MockStorageInterfaceMockRecorder) UpdateInviteStatus(ctx, id, status any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateInviteStatus", reflect.TypeOf((*MockStorageInterface)(nil).UpdateInviteStatus), ctx, id, status)
}

// UpdateMemberRole mocks base method.
func (m *MockStorageInterface) UpdateMemberRole(ctx context.Context, id, role string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateMemberRole", ctx, id, role)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateMemberRole indicates an expected call of UpdateMemberRole.
func (mr *MockStorageInterfaceMockRecorder) UpdateMemberRole(ctx, id, role any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateMemberRole", reflect.TypeOf((*MockStorageInterface)(nil).UpdateMemberRole), ctx, id, role)
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

// UpsertUser mocks base method.
func (m *MockStorageInterface) UpsertUser(ctx context.Context, user *types.User) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpsertUser", ctx, user)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpsertUser indicates an expected call of UpsertUser.
func (mr *MockStorageInterfaceMockRecorder) UpsertUser(ctx, user any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpsertUser", reflect.TypeOf((*MockStorageInterface)(nil).UpsertUser), ctx, user)
}

// MockMailerInterface is a mock of MailerInterface interface.
type MockMailerInterface struct {
	ctrl     *gomock.Controller
	recorder *MockMailerInterfaceMockRecorder
	isgomock struct{}
}

// MockMailerInterfaceMockRecorder is the mock recorder for MockMailerInterface.
type MockMailerInterfaceMockRecorder struct {
	mock *MockMailerInterface
}

// NewMockMailerInterface creates a new mock instance.
func NewMockMailerInterface(ctrl *gomock.Controller) *MockMailerInterface {
	mock := &MockMailerInterface{ctrl: ctrl}
	mock.recorder = &MockMailerInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMailerInterface) EXPECT() *MockMailerInterfaceMockRecorder {
	return m.recorder
}

// SendInvite mocks base method.
func (m *MockMailerInterface) SendInvite(ctx context.Context, email *mail.InviteEmail) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendInvite", ctx, email)
	ret0, _ := ret[0].(error)
	return ret0
}

// SendInvite indicates an expected call of SendInvite.
func (mr *MockMailerInterfaceMockRecorder) SendInvite(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendInvite", reflect.TypeOf((*MockMailerInterface)(nil).SendInvite), ctx, email)
}
