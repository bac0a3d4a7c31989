// Copyright 2026 HelloGrowth Ltda.
// SPDX-License-Identifier: AGPL-3.0

package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hellogrowth/platform/internal/logging"
	"github.com/hellogrowth/platform/internal/monitoring"
	"github.com/hellogrowth/platform/internal/storage"
	"github.com/hellogrowth/platform/internal/tracing"
	"github.com/hellogrowth/platform/internal/types"
	"github.com/hellogrowth/platform/internal/web"
	"github.com/hellogrowth/platform/pkg/authentication"
)

type InviteRequest struct {
	// OwnerID is only honored when no authenticated subject is on the
	// request, which happens with auth disabled in development.
	OwnerID string `json:"ownerId"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required"`
}

type InviteResponse struct {
	Invite     *types.Invite `json:"invite"`
	InviteLink string        `json:"inviteLink"`
}

type MembersResponse struct {
	Members []*types.Membership `json:"members"`
	Invites []*types.Invite     `json:"invites"`
	UserID  string              `json:"userId"`
}

type AcceptRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password"`
}

type RemoveRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

type UpdateRoleRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	Role     string `json:"newRole" validate:"required"`
	UserID   string `json:"userId"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// RegisterEndpoints mounts the routes an invitee or a read-only client may
// hit without a bearer token.
func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/team/members", a.listMembers)
	mux.Get("/api/team/accept", a.lookupInvite)
	mux.Post("/api/team/accept", a.acceptInvite)
}

// RegisterProtectedEndpoints mounts the mutating owner-side routes behind the
// given middlewares.
func (a *API) RegisterProtectedEndpoints(mux *chi.Mux, middlewares ...func(http.Handler) http.Handler) {
	r := mux.With(middlewares...)
	r.Post("/api/team/invite", a.invite)
	r.Delete("/api/team/remove", a.removeMember)
	r.Patch("/api/team/update-role", a.updateRole)
}

func (a *API) invite(w http.ResponseWriter, r *http.Request) {
	req := new(InviteRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	ownerID, ok := authentication.GetUserID(r.Context())
	if !ok {
		ownerID = req.OwnerID
	}
	if ownerID == "" {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	invite, link, err := a.service.Invite(r.Context(), ownerID, req.Name, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			web.WriteError(w, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, storage.ErrNotFound):
			web.WriteError(w, http.StatusNotFound, "Owner not found")
		case errors.Is(err, storage.ErrDuplicateKey):
			web.WriteError(w, http.StatusConflict, "Invite token collision, retry")
		default:
			a.logger.Errorf("invite failed: %v", err)
			web.WriteError(w, http.StatusInternalServerError, "Failed to create invite")
		}
		return
	}

	web.WriteJSON(w, http.StatusCreated, &InviteResponse{Invite: invite, InviteLink: link})
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = r.URL.Query().Get("ownerId")
	}
	email := r.URL.Query().Get("email")

	var team *Team
	var err error

	switch {
	case userID != "":
		team, err = a.service.ListForOwner(r.Context(), userID)
	case email != "":
		team, userID, err = a.service.ListForEmail(r.Context(), email)
	default:
		web.WriteError(w, http.StatusBadRequest, "userId or email is required")
		return
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			web.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		a.logger.Errorf("list members failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to list team")
		return
	}

	web.WriteJSON(w, http.StatusOK, &MembersResponse{
		Members: team.Members,
		Invites: team.Invites,
		UserID:  userID,
	})
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	req := new(RemoveRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := a.service.RemoveMember(r.Context(), req.MemberID); err != nil {
		a.logger.Errorf("remove member failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to remove member")
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) updateRole(w http.ResponseWriter, r *http.Request) {
	req := new(UpdateRoleRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := a.service.UpdateRole(r.Context(), req.MemberID, req.Role, req.UserID); err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			web.WriteError(w, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, ErrForbidden):
			web.WriteError(w, http.StatusForbidden, "Only admins can change roles")
		case errors.Is(err, storage.ErrNotFound):
			web.WriteError(w, http.StatusNotFound, "Member not found")
		default:
			a.logger.Errorf("update role failed: %v", err)
			web.WriteError(w, http.StatusInternalServerError, "Failed to update role")
		}
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) lookupInvite(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		web.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	preview, err := a.service.LookupInvite(r.Context(), token)
	if err != nil {
		a.writeInviteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, preview)
}

func (a *API) acceptInvite(w http.ResponseWriter, r *http.Request) {
	req := new(AcceptRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	membership, err := a.service.AcceptInvite(r.Context(), req.Token, req.Password)
	if err != nil {
		a.writeInviteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, membership)
}

func (a *API) writeInviteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInviteNotFound):
		web.WriteError(w, http.StatusNotFound, "Invite not found")
	case errors.Is(err, ErrInviteExpired):
		web.WriteError(w, http.StatusGone, "Invite expired")
	case errors.Is(err, ErrInviteUsed):
		web.WriteError(w, http.StatusConflict, "Invite already used")
	case errors.Is(err, ErrAlreadyMember):
		web.WriteError(w, http.StatusConflict, "Already a team member")
	default:
		a.logger.Errorf("invite operation failed: %v", err)
		web.WriteError(w, http.StatusInternalServerError, "Failed to process invite")
	}
}
