package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	userdomain "github.com/parishlabs/tdrms/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	Clock         clock.Clock
	Repo          authdomain.Repository
	Notifications notificationdomain.Service
}

type Service struct {
	log           *zap.Logger
	clock         clock.Clock
	repo          authdomain.Repository
	notifications notificationdomain.Service
}

func New(p Params) userdomain.Service {
	return &Service{
		log:           p.Log.Named("user.service"),
		clock:         p.Clock,
		repo:          p.Repo,
		notifications: p.Notifications,
	}
}

func (s *Service) List(ctx context.Context) ([]userdomain.Response, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	out := make([]userdomain.Response, 0, len(users))
	for i := range users {
		out = append(out, *toResponse(&users[i]))
	}
	return out, nil
}

func (s *Service) UpdateRole(ctx context.Context, req userdomain.UpdateRoleRequest) (*userdomain.Response, error) {
	role, ok := authdomain.ParseRole(req.Role)
	if !ok {
		return nil, authdomain.ErrInvalidRole
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil {
		return nil, authdomain.ErrUserNotFound
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldRole := user.Role
	if err := s.repo.UpdateRole(ctx, id, role, s.clock.Now()); err != nil {
		s.log.Error("failed to update role", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, err
	}
	user.Role = role

	if s.notifications != nil && oldRole != role {
		_, err := s.notifications.Record(ctx, notificationdomain.RecordRequest{
			Type:    notificationdomain.TypeInfo,
			Message: fmt.Sprintf("Role for %s changed from %s to %s", user.Username, oldRole, role),
		})
		if err != nil {
			s.log.Warn("failed to record role change notification", zap.Error(err))
		}
	}

	s.log.Info("role updated",
		zap.String("username", user.Username),
		zap.String("old_role", oldRole.String()),
		zap.String("new_role", role.String()),
	)

	return toResponse(user), nil
}

func toResponse(u *authdomain.User) *userdomain.Response {
	return &userdomain.Response{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}
