package permissions_test

import (
	"net/http"
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous *models.User
	regular   = &models.User{ID: 1, Role: models.RoleUser}
	moderator = &models.User{ID: 2, Role: models.RoleModerator}
	admin     = &models.User{ID: 3, Role: models.RoleAdmin}
	superuser = &models.User{ID: 4, Role: models.RoleUser, IsSuperuser: true}
)

func TestAdminWriteElseReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		actor  *models.User
		method string
		want   bool
	}{
		{"anonymous read", anonymous, http.MethodGet, true},
		{"anonymous head", anonymous, http.MethodHead, true},
		{"anonymous write", anonymous, http.MethodPost, false},
		{"user write", regular, http.MethodPost, false},
		{"moderator write", moderator, http.MethodDelete, false},
		{"admin write", admin, http.MethodPost, true},
		{"superuser write", superuser, http.MethodDelete, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.AdminWriteElseReadOnly(tt.actor, tt.method))
		})
	}
}

func TestAuthorModeratorAdminElseReadOnly(t *testing.T) {
	const authorID = 1 // regular's ID

	tests := []struct {
		name     string
		actor    *models.User
		method   string
		authorID uint
		want     bool
	}{
		{"anonymous read", anonymous, http.MethodGet, authorID, true},
		{"anonymous write", anonymous, http.MethodPost, 0, false},
		{"authenticated create", regular, http.MethodPost, 0, true},
		{"author patches own", regular, http.MethodPatch, authorID, true},
		{"stranger patches other's", &models.User{ID: 9, Role: models.RoleUser}, http.MethodPatch, authorID, false},
		{"moderator patches other's", moderator, http.MethodPatch, authorID, true},
		{"admin deletes other's", admin, http.MethodDelete, authorID, true},
		{"superuser deletes other's", superuser, http.MethodDelete, authorID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.AuthorModeratorAdminElseReadOnly(tt.actor, tt.method, tt.authorID))
		})
	}
}

func TestSuperuserOrAdmin(t *testing.T) {
	assert.False(t, permissions.SuperuserOrAdmin(anonymous))
	assert.False(t, permissions.SuperuserOrAdmin(regular))
	assert.False(t, permissions.SuperuserOrAdmin(moderator))
	assert.True(t, permissions.SuperuserOrAdmin(admin))
	assert.True(t, permissions.SuperuserOrAdmin(superuser))
}
