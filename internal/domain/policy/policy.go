// Package policy holds the authorization rules as one pure decision
// function. The user's role field is the single source of truth for admin
// capability; there is no parallel identity-based administrative path.
package policy

import "soko/internal/domain/entity"

// Action enumerates the operations the policy can gate.
type Action string

const (
	// ActionRead covers listing detail and search access.
	ActionRead Action = "read"
	// ActionCreate covers listing creation.
	ActionCreate Action = "create"
	// ActionMarkSold covers the active -> sold transition.
	ActionMarkSold Action = "mark-sold"
	// ActionDelete covers hard deletion of a listing.
	ActionDelete Action = "delete"
	// ActionUpdate covers the administrative full edit.
	ActionUpdate Action = "update"
	// ActionViewSellerAnalytics covers a single seller's dashboard.
	ActionViewSellerAnalytics Action = "view-seller-analytics"
	// ActionViewPlatformAnalytics covers the platform-wide dashboard.
	ActionViewPlatformAnalytics Action = "view-platform-analytics"
)

// Actor is the caller identity attached to a request. A zero ID means the
// request is anonymous.
type Actor struct {
	ID   string
	Role entity.Role
}

// Anonymous reports whether the actor carries no verified identity.
func (a Actor) Anonymous() bool {
	return a.ID == ""
}

// Can decides whether actor may perform action against a resource owned by
// owner. For analytics actions, owner is the seller whose report is
// requested; for platform-wide actions it is ignored. Can has no side
// effects and performs no I/O.
func Can(actor Actor, action Action, owner string) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return !actor.Anonymous()
	case ActionMarkSold:
		return !actor.Anonymous() && actor.ID == owner
	case ActionDelete:
		return !actor.Anonymous() && (actor.ID == owner || actor.Role == entity.RoleAdmin)
	case ActionUpdate:
		return actor.Role == entity.RoleAdmin
	case ActionViewSellerAnalytics:
		return !actor.Anonymous() && actor.ID == owner
	case ActionViewPlatformAnalytics:
		return actor.Role == entity.RoleAdmin
	default:
		return false
	}
}
