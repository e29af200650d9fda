package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/parishlabs/tdrms/internal/clock"
	templatedomain "github.com/parishlabs/tdrms/internal/template/domain"
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
	Repo  templatedomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  templatedomain.Repository
}

func New(p Params) templatedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("template.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req templatedomain.CreateRequest) (*templatedomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, templatedomain.ErrInvalidName
	}

	organization := strings.TrimSpace(req.Organization)
	if organization == "" {
		return nil, templatedomain.ErrInvalidOrganization
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, templatedomain.ErrInvalidPurpose
	}

	signatories, err := normalizeSignatories(req.Signatories)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	t := &templatedomain.Template{
		ID:           s.genID.Generate(),
		Name:         name,
		Organization: organization,
		Address:      strings.TrimSpace(req.Address),
		Purpose:      purpose,
		Signatories:  signatories,
		Branding:     normalizeBranding(req.Branding),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, t); err != nil {
		s.log.Error("failed to insert template", zap.Error(err))
		return nil, err
	}

	s.log.Info("template created", zap.String("template_id", t.ID.String()), zap.String("name", t.Name))
	return templatedomain.ToResponse(t), nil
}

func (s *Service) List(ctx context.Context) ([]templatedomain.Response, error) {
	templates, err := s.repo.List(ctx, s.db)
	if err != nil {
		s.log.Error("failed to list templates", zap.Error(err))
		return nil, err
	}

	out := make([]templatedomain.Response, 0, len(templates))
	for i := range templates {
		out = append(out, *templatedomain.ToResponse(&templates[i]))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*templatedomain.Response, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return templatedomain.ToResponse(t), nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*templatedomain.Response, error) {
	t, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		s.log.Error("failed to find template", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	if t == nil {
		return nil, templatedomain.ErrTemplateNotFound
	}
	return templatedomain.ToResponse(t), nil
}

func (s *Service) Update(ctx context.Context, req templatedomain.UpdateRequest) (*templatedomain.Response, error) {
	t, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, templatedomain.ErrInvalidName
	}

	organization := strings.TrimSpace(req.Organization)
	if organization == "" {
		return nil, templatedomain.ErrInvalidOrganization
	}

	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, templatedomain.ErrInvalidPurpose
	}

	signatories, err := normalizeSignatories(req.Signatories)
	if err != nil {
		return nil, err
	}

	t.Name = name
	t.Organization = organization
	t.Address = strings.TrimSpace(req.Address)
	t.Purpose = purpose
	t.Signatories = signatories
	t.Branding = normalizeBranding(req.Branding)
	if req.Active != nil {
		t.Active = *req.Active
	}
	t.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, t); err != nil {
		s.log.Error("failed to update template", zap.Error(err), zap.String("template_id", t.ID.String()))
		return nil, err
	}

	s.log.Info("template updated", zap.String("template_id", t.ID.String()))
	return templatedomain.ToResponse(t), nil
}

// Delete removes a template unconditionally. Issued receipts keep the template
// name they were rendered with, so deletion never invalidates history.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, s.db, t.ID); err != nil {
		s.log.Error("failed to delete template", zap.Error(err), zap.String("template_id", t.ID.String()))
		return err
	}

	s.log.Info("template deleted", zap.String("template_id", t.ID.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*templatedomain.Template, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return nil, templatedomain.ErrTemplateNotFound
	}

	t, err := s.repo.FindByID(ctx, s.db, snowflake.ID(parsed))
	if err != nil {
		s.log.Error("failed to find template", zap.Error(err), zap.String("template_id", id))
		return nil, err
	}
	if t == nil {
		return nil, templatedomain.ErrTemplateNotFound
	}
	return t, nil
}

func normalizeSignatories(signatories []templatedomain.Signatory) ([]templatedomain.Signatory, error) {
	if len(signatories) == 0 {
		return nil, templatedomain.ErrInvalidSignatories
	}

	out := make([]templatedomain.Signatory, 0, len(signatories))
	for _, sig := range signatories {
		name := strings.TrimSpace(sig.Name)
		title := strings.TrimSpace(sig.Title)
		if name == "" {
			return nil, templatedomain.ErrInvalidSignatories
		}
		out = append(out, templatedomain.Signatory{Name: name, Title: title})
	}
	return out, nil
}

func normalizeBranding(b templatedomain.Branding) templatedomain.Branding {
	primary := strings.TrimSpace(b.PrimaryColor)
	if primary == "" {
		primary = templatedomain.DefaultPrimaryColor
	}
	secondary := strings.TrimSpace(b.SecondaryColor)
	if secondary == "" {
		secondary = templatedomain.DefaultSecondaryColor
	}
	return templatedomain.Branding{PrimaryColor: primary, SecondaryColor: secondary}
}
