package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	authdomain "github.com/parishlabs/tdrms/internal/auth/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectReceipt      = "receipt"
	ObjectVerification = "verification"
	ObjectReport       = "report"
	ObjectTemplate     = "template"
	ObjectUser         = "user"
	ObjectNotification = "notification"
)

const (
	ActionReceiptView   = "receipt.view"
	ActionReceiptCreate = "receipt.create"

	ActionVerificationVerify = "verification.verify"

	ActionReportGenerate = "report.generate"

	ActionTemplateView   = "template.view"
	ActionTemplateCreate = "template.create"
	ActionTemplateUpdate = "template.update"
	ActionTemplateDelete = "template.delete"

	ActionUserView       = "user.view"
	ActionUserUpdateRole = "user.update_role"

	ActionNotificationView   = "notification.view"
	ActionNotificationManage = "notification.manage"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds the enforcer backed by the application database and seeds
// the role lattice.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role string, object string, action string) error {
	parsed, ok := authdomain.ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce("role:"+parsed.String(), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", parsed.String()),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Viewer permissions (read-only)
		{"role:viewer", ObjectReceipt, ActionReceiptView},
		{"role:viewer", ObjectVerification, ActionVerificationVerify},
		{"role:viewer", ObjectReport, ActionReportGenerate},
		{"role:viewer", ObjectTemplate, ActionTemplateView},

		// Encoder permissions
		{"role:encoder", ObjectReceipt, ActionReceiptCreate},
		{"role:encoder", ObjectNotification, ActionNotificationView},

		// Admin permissions
		{"role:admin", ObjectTemplate, ActionTemplateCreate},
		{"role:admin", ObjectTemplate, ActionTemplateUpdate},
		{"role:admin", ObjectTemplate, ActionTemplateDelete},
		{"role:admin", ObjectUser, ActionUserView},
		{"role:admin", ObjectUser, ActionUserUpdateRole},
		{"role:admin", ObjectNotification, ActionNotificationManage},
	}

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return err
		}
	}

	// each role inherits everything below it
	groupings := [][]string{
		{"role:encoder", "role:viewer"},
		{"role:admin", "role:encoder"},
	}
	for _, grouping := range groupings {
		if _, err := enforcer.AddGroupingPolicy(grouping[0], grouping[1]); err != nil {
			return err
		}
	}

	return nil
}
