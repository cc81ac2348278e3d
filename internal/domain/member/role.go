package member

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleMember         Role = "member"
	RoleVicar          Role = "vicar"
	RoleSister         Role = "sister"
	RoleMother         Role = "mother"
	RoleTeacher        Role = "teacher"
	RoleCoordinator    Role = "coordinator"
	RoleGroupLeader    Role = "group-leader"
	RoleGroupSecretary Role = "group-secretary"
)

var roles = []Role{
	RoleMember,
	RoleVicar,
	RoleSister,
	RoleMother,
	RoleTeacher,
	RoleCoordinator,
	RoleGroupLeader,
	RoleGroupSecretary,
}

// PublicRoles are shown on the public leadership page.
var PublicRoles = []Role{RoleVicar, RoleCoordinator, RoleTeacher, RoleSister}

func ParseRole(value string) (Role, error) {
	candidate := Role(strings.ToLower(strings.TrimSpace(value)))
	for _, r := range roles {
		if r == candidate {
			return r, nil
		}
	}
	return "", fmt.Errorf("role must be one of %s", joinRoles(roles))
}

func joinRoles(list []Role) string {
	parts := make([]string, len(list))
	for i, r := range list {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
