package policy

import (
	"testing"

	"soko/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestCan_PermissionMatrix(t *testing.T) {
	anonymous := Actor{}
	owner := Actor{ID: "seller-1", Role: entity.RoleSeller}
	stranger := Actor{ID: "user-2", Role: entity.RoleUser}
	admin := Actor{ID: "admin-1", Role: entity.RoleAdmin}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		owner  string
		want   bool
	}{
		{"read is public", anonymous, ActionRead, "seller-1", true},
		{"create requires authentication", anonymous, ActionCreate, "", false},
		{"create for any authenticated caller", stranger, ActionCreate, "", true},

		{"mark-sold by owner", owner, ActionMarkSold, "seller-1", true},
		{"mark-sold by stranger", stranger, ActionMarkSold, "seller-1", false},
		{"mark-sold has no admin override", admin, ActionMarkSold, "seller-1", false},
		{"mark-sold by anonymous", anonymous, ActionMarkSold, "seller-1", false},

		{"delete by owner", owner, ActionDelete, "seller-1", true},
		{"delete by stranger", stranger, ActionDelete, "seller-1", false},
		{"delete by admin", admin, ActionDelete, "seller-1", true},

		{"update only by admin", owner, ActionUpdate, "seller-1", false},
		{"update by admin", admin, ActionUpdate, "seller-1", true},

		{"seller analytics for self", owner, ActionViewSellerAnalytics, "seller-1", true},
		{"seller analytics for other seller", stranger, ActionViewSellerAnalytics, "seller-1", false},
		{"seller analytics anonymous", anonymous, ActionViewSellerAnalytics, "seller-1", false},

		{"platform analytics for admin", admin, ActionViewPlatformAnalytics, "", true},
		{"platform analytics for seller", owner, ActionViewPlatformAnalytics, "", false},
		{"platform analytics anonymous", anonymous, ActionViewPlatformAnalytics, "", false},

		{"unknown action denied", admin, Action("reindex"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action, tt.owner))
		})
	}
}

func TestActor_Anonymous(t *testing.T) {
	assert.True(t, Actor{}.Anonymous())
	assert.False(t, Actor{ID: "u-1"}.Anonymous())
}
