// Package policy decides whether an actor may perform an action on a complaint.
//
// Role capabilities live in an embedded casbin table (policy.csv); ownership is
// checked here against the complaint's owner id. Every call is evaluated fresh.
package policy

import (
	"complaintbox/backend/internal/models"
	_ "embed"
	"fmt"
	"log"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed model.conf
var casbinModelContent string

//go:embed policy.csv
var casbinPolicyContent string

// Action is an operation gated by the policy.
type Action string

const (
	ActionCreateComplaint Action = "createComplaint"
	ActionListComplaints  Action = "listComplaints"
	ActionReadComplaint   Action = "readComplaint"
	ActionUpdateStatus    Action = "updateStatus"
	ActionAddResponse     Action = "addResponse"
	ActionAddFeedback     Action = "addFeedback"
)

// Capabilities granted to roles in policy.csv.
const (
	capCreate       = "complaint:create"
	capListOwn      = "complaint:list-own"
	capListAny      = "complaint:list-any"
	capReadOwn      = "complaint:read-own"
	capReadAny      = "complaint:read-any"
	capUpdateStatus = "complaint:update-status"
	capAddResponse  = "complaint:add-response"
	capFeedbackOwn  = "complaint:feedback-own"
)

// Policy holds the role capability table.
type Policy struct {
	enforcer casbin.IEnforcer
}

// New builds a Policy from the embedded casbin model and policy lines.
func New() (*Policy, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	adapter := stringadapter.NewAdapter(casbinPolicyContent)
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policies: %w", err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// MustNew is New for process startup and tests; it panics on a broken embedded table.
func MustNew() *Policy {
	p, err := New()
	if err != nil {
		panic(err)
	}
	return p
}

// Can reports whether actor may perform action on resource. resource may be
// nil for actions that do not target a single complaint.
func (p *Policy) Can(actor models.Identity, action Action, resource *models.Complaint) bool {
	switch actor.Role {
	case models.RoleStudent, models.RoleAdmin:
	default:
		return false
	}

	owns := resource != nil && actor.ID != "" && resource.OwnerID == actor.ID

	switch action {
	case ActionCreateComplaint:
		return p.has(actor.Role, capCreate)
	case ActionListComplaints:
		return p.has(actor.Role, capListAny) || p.has(actor.Role, capListOwn)
	case ActionReadComplaint:
		if resource == nil {
			return false
		}
		return p.has(actor.Role, capReadAny) || (owns && p.has(actor.Role, capReadOwn))
	case ActionUpdateStatus:
		return p.has(actor.Role, capUpdateStatus)
	case ActionAddResponse:
		return p.has(actor.Role, capAddResponse)
	case ActionAddFeedback:
		return owns && p.has(actor.Role, capFeedbackOwn)
	default:
		return false
	}
}

// ListScope returns the owner filter to apply when actor lists complaints:
// "" for roles that see every complaint, the actor's own id otherwise.
// ok is false when the actor may not list at all.
func (p *Policy) ListScope(actor models.Identity) (ownerID string, ok bool) {
	if !p.Can(actor, ActionListComplaints, nil) {
		return "", false
	}
	if p.has(actor.Role, capListAny) {
		return "", true
	}
	if actor.ID == "" {
		return "", false
	}
	return actor.ID, true
}

func (p *Policy) has(role models.Role, capability string) bool {
	ok, err := p.enforcer.Enforce(string(role), capability)
	if err != nil {
		log.Printf("ERROR: policy check %s/%s failed: %v", role, capability, err)
		return false
	}
	return ok
}
