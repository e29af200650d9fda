package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/parishlabs/tdrms/internal/clock"
	notificationdomain "github.com/parishlabs/tdrms/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  notificationdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  notificationdomain.Repository
}

func New(p Params) notificationdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, req notificationdomain.RecordRequest) (*notificationdomain.Response, error) {
	kind := strings.TrimSpace(req.Type)
	if !notificationdomain.ValidType(kind) {
		return nil, notificationdomain.ErrInvalidType
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, notificationdomain.ErrInvalidMessage
	}

	n := &notificationdomain.Notification{
		ID:        s.genID.Generate(),
		Type:      kind,
		Message:   message,
		Read:      false,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, n); err != nil {
		s.log.Error("failed to insert notification", zap.Error(err))
		return nil, err
	}

	return toResponse(n), nil
}

func (s *Service) List(ctx context.Context) ([]notificationdomain.Response, error) {
	notifications, err := s.repo.List(ctx, s.db)
	if err != nil {
		s.log.Error("failed to list notifications", zap.Error(err))
		return nil, err
	}

	out := make([]notificationdomain.Response, 0, len(notifications))
	for i := range notifications {
		out = append(out, *toResponse(&notifications[i]))
	}
	return out, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return notificationdomain.ErrNotificationNotFound
	}

	affected, err := s.repo.MarkRead(ctx, s.db, snowflake.ID(parsed))
	if err != nil {
		s.log.Error("failed to mark notification read", zap.Error(err), zap.String("notification_id", id))
		return err
	}
	if affected == 0 {
		return notificationdomain.ErrNotificationNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	if err := s.repo.MarkAllRead(ctx, s.db); err != nil {
		s.log.Error("failed to mark notifications read", zap.Error(err))
		return err
	}
	return nil
}

func toResponse(n *notificationdomain.Notification) *notificationdomain.Response {
	return &notificationdomain.Response{
		ID:        n.ID.String(),
		Type:      n.Type,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
