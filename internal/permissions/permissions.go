// Package permissions holds the authorization predicates gating each resource
// family. They are deliberately kept as three separate checks rather than one
// parameterized policy: reference data, user-generated content and account
// administration have distinct trust boundaries, and a rule change in one must
// not leak into another.
package permissions

import (
	"net/http"

	"reviewhub/internal/models"
)

// safe methods never mutate state and are always readable.
func safe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminWriteElseReadOnly permits reads to anyone and mutations only to
// admins. actor is nil for anonymous requests. Gates categories, genres
// and titles.
func AdminWriteElseReadOnly(actor *models.User, method string) bool {
	if safe(method) {
		return true
	}
	return actor != nil && actor.IsAdmin()
}

// AuthorModeratorAdminElseReadOnly permits reads to anyone; mutations require
// an authenticated actor who authored the object or holds the moderator or
// admin role. authorID is the object's author; pass zero when there is no
// object yet (creation), where authentication alone suffices. Gates reviews
// and comments.
func AuthorModeratorAdminElseReadOnly(actor *models.User, method string, authorID uint) bool {
	if safe(method) {
		return true
	}
	if actor == nil {
		return false
	}
	if authorID == 0 {
		return true
	}
	return actor.ID == authorID || actor.IsModerator() || actor.IsAdmin()
}

// SuperuserOrAdmin permits access only to superusers and admins regardless of
// method. Gates the account-management resource.
func SuperuserOrAdmin(actor *models.User) bool {
	return actor != nil && (actor.IsSuperuser || actor.Role == models.RoleAdmin)
}
