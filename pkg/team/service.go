// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

// Package team manages invitations and memberships inside an owner's team.
package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/mail"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/types"
)

const defaultMemberPassword = "12345"

var (
	ErrInviteNotFound = errors.New("invite not found")
	ErrInviteExpired  = errors.New("invite expired")
	ErrInviteUsed     = errors.New("invite already used")
	ErrInvalidRole    = errors.New("invalid role")
	ErrForbidden      = errors.New("requester is not allowed to manage roles")
	ErrAlreadyMember  = errors.New("user is already a team member")
)

var assignableRoles = map[string]bool{
	types.RoleAdmin:   true,
	types.RoleManager: true,
	types.RoleMember:  true,
	types.RoleViewer:  true,
}

// Team is the owner-facing view of current members and outstanding invites.
type Team struct {
	Members []*types.Membership `json:"members"`
	Invites []*types.Invite     `json:"invites"`
}

// InvitePreview is what the accept page shows before the invitee commits.
type InvitePreview struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	InviterName string `json:"inviterName"`
	CompanyName string `json:"companyName"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	mailer  MailerInterface

	baseURL        string
	inviteLifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, mailer MailerInterface, baseURL string, inviteLifetime time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage:        storage,
		mailer:         mailer,
		baseURL:        baseURL,
		inviteLifetime: inviteLifetime,
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}

// newInviteToken is random bytes plus a time component. The unique index on
// team_invites.token is the collision backstop.
func newInviteToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	return hex.EncodeToString(buf) + strconv.FormatInt(time.Now().UnixNano(), 36), nil
}

// Invite records a pending invitation and emails the accept link. A failed
// email does not void the invite, the link can still be shared manually.
func (s *Service) Invite(ctx context.Context, ownerID, name, email, role string) (*types.Invite, string, error) {
	ctx, span := s.tracer.Start(ctx, "team.Service.Invite")
	defer span.End()

	if !assignableRoles[role] {
		return nil, "", ErrInvalidRole
	}

	owner, err := s.storage.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load inviting owner: %w", err)
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, "", err
	}

	invite, err := s.storage.CreateInvite(ctx, &types.Invite{
		OwnerID:   owner.ID,
		Email:     email,
		Name:      name,
		Role:      role,
		Token:     token,
		Status:    types.InvitePending,
		ExpiresAt: time.Now().UTC().Add(s.inviteLifetime),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create invite: %w", err)
	}

	link := fmt.Sprintf("%s/accept-invite?token=%s", s.baseURL, invite.Token)

	if err := s.mailer.SendInvite(ctx, &mail.InviteEmail{
		To:          email,
		Name:        name,
		InviterName: owner.Name,
		Role:        role,
		InviteLink:  link,
	}); err != nil {
		s.logger.Errorf("failed to send invite email to %s: %v", email, err)
	}

	return invite, link, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID string) (*Team, error) {
	ctx, span := s.tracer.Start(ctx, "team.Service.ListForOwner")
	defer span.End()

	members, err := s.storage.ListMembersByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	invites, err := s.storage.ListPendingInvitesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	// Expiry is presentational here; rows stay pending until acceptance is
	// attempted.
	now := time.Now().UTC()
	for _, invite := range invites {
		if invite.ExpiresAt.Before(now) {
			invite.Status = types.InviteExpired
		}
	}

	return &Team{Members: members, Invites: invites}, nil
}

// ListForEmail resolves the account behind email and returns its team along
// with the resolved user id. Unknown emails surface storage.ErrNotFound.
func (s *Service) ListForEmail(ctx context.Context, email string) (*Team, string, error) {
	ctx, span := s.tracer.Start(ctx, "team.Service.ListForEmail")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to look up user by email: %w", err)
	}

	team, err := s.ListForOwner(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return team, user.ID, nil
}

func (s *Service) LookupInvite(ctx context.Context, token string) (*InvitePreview, error) {
	ctx, span := s.tracer.Start(ctx, "team.Service.LookupInvite")
	defer span.End()

	invite, err := s.lookupPendingInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	preview := &InvitePreview{
		Email: invite.Email,
		Name:  invite.Name,
		Role:  invite.Role,
	}

	if owner, err := s.storage.GetUserByID(ctx, invite.OwnerID); err == nil {
		preview.InviterName = owner.Name
		preview.CompanyName = owner.CompanyName
	}

	return preview, nil
}

func (s *Service) lookupPendingInvite(ctx context.Context, token string) (*types.Invite, error) {
	invite, err := s.storage.GetInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}

	switch invite.Status {
	case types.InvitePending:
	case types.InviteExpired:
		return nil, ErrInviteExpired
	default:
		return nil, ErrInviteUsed
	}

	if invite.ExpiresAt.Before(time.Now().UTC()) {
		if err := s.storage.UpdateInviteStatus(ctx, invite.ID, types.InviteExpired); err != nil {
			s.logger.Errorf("failed to mark invite %s expired: %v", invite.ID, err)
		}
		return nil, ErrInviteExpired
	}

	return invite, nil
}

// AcceptInvite turns a pending, unexpired invite into an active membership.
// The invitee's user row is created on first acceptance and reused afterwards.
func (s *Service) AcceptInvite(ctx context.Context, token, password string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "team.Service.AcceptInvite")
	defer span.End()

	invite, err := s.lookupPendingInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	owner, err := s.storage.GetUserByID(ctx, invite.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inviting owner: %w", err)
	}

	if password == "" {
		password = defaultMemberPassword
	}

	if err := s.storage.UpsertUser(ctx, &types.User{
		Name:     invite.Name,
		Email:    invite.Email,
		Password: password,
		Role:     invite.Role,
		Plan:     owner.Plan,
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert invited user: %w", err)
	}

	user, err := s.storage.GetUserByEmail(ctx, invite.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load invited user: %w", err)
	}

	now := time.Now().UTC()
	membership, err := s.storage.AddMember(ctx, &types.Membership{
		UserID:     user.ID,
		CompanyID:  owner.TenantID,
		OwnerID:    owner.ID,
		Email:      invite.Email,
		Name:       invite.Name,
		Role:       invite.Role,
		IsDefault:  user.TenantID == "",
		Status:     types.MembershipActive,
		AcceptedAt: &now,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	if user.TenantID == "" {
		if err := s.storage.UpdateUserTenant(ctx, user.ID, owner.TenantID, owner.CompanyName); err != nil {
			s.logger.Errorf("failed to set tenant for user %s: %v", user.ID, err)
		}
	}

	if err := s.storage.UpdateInviteStatus(ctx, invite.ID, types.InviteAccepted); err != nil {
		s.logger.Errorf("failed to mark invite %s accepted: %v", invite.ID, err)
	}

	return membership, nil
}

// RemoveMember deletes the membership row only. The member's user account is
// kept, they may belong to other teams.
func (s *Service) RemoveMember(ctx context.Context, memberID string) error {
	ctx, span := s.tracer.Start(ctx, "team.Service.RemoveMember")
	defer span.End()

	if err := s.storage.RemoveMember(ctx, memberID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// UpdateRole changes a member's role. When a requesting user is identified it
// must be an admin. The matching pending invite, if any, is synced afterwards
// on a best-effort basis.
func (s *Service) UpdateRole(ctx context.Context, memberID, newRole, requestingUserID string) error {
	ctx, span := s.tracer.Start(ctx, "team.Service.UpdateRole")
	defer span.End()

	if !assignableRoles[newRole] {
		return ErrInvalidRole
	}

	if requestingUserID != "" {
		requester, err := s.storage.GetUserByID(ctx, requestingUserID)
		if err != nil {
			return fmt.Errorf("failed to load requesting user: %w", err)
		}
		if requester.Role != types.RoleAdmin {
			s.logger.Security().AuthzFailure(requestingUserID, "team.UpdateRole")
			return ErrForbidden
		}
	}

	membership, err := s.storage.GetMembershipByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to load membership: %w", err)
	}

	if err := s.storage.UpdateMemberRole(ctx, memberID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	if err := s.storage.UpdateInviteRoleByEmail(ctx, membership.Email, newRole); err != nil {
		s.logger.Errorf("failed to sync invite role for %s: %v", membership.Email, err)
	}

	return nil
}
