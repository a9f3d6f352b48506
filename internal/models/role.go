package models

import (
	"fmt"
	"strings"
)

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleStudent   RoleName = "STUDENT"
	RoleAuthor    RoleName = "AUTHOR"
	RoleCommittee RoleName = "COMMITTEE"
)

// ParseRoleName resolves a case-insensitive role string to a RoleName.
func ParseRoleName(name string) (RoleName, error) {
	switch RoleName(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleAuthor:
		return RoleAuthor, nil
	case RoleCommittee:
		return RoleCommittee, nil
	default:
		return "", fmt.Errorf("unknown role %q", name)
	}
}

// Role is a persisted lookup row so users can reference roles by id.
// Rows are created lazily the first time a role is assigned.
type Role struct {
	ID   uint64   `gorm:"primarykey" json:"id"`
	Name RoleName `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
}
