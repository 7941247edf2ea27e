// Package rbac holds the static role-to-permission table driving
// authorization decisions. The table is built once at process start and
// never mutated afterwards.
package rbac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Recognized roles.
const (
	RoleAdmin      = "admin"
	RoleHR         = "hr"
	RoleSuperAdmin = "super-admin"
)

// Capabilities derived from roles.
const (
	PermManageUsers    = "manage_users"
	PermManageContent  = "manage_content"
	PermManageJobs     = "manage_jobs"
	PermManageSettings = "manage_settings"
	PermViewContacts   = "view_contacts"
	PermViewLogs       = "view_logs"
)

// ValidRole reports whether role is a member of the closed role enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleSuperAdmin:
		return true
	}
	return false
}

// Table maps role names to capability sets. It is immutable once built.
type Table struct {
	perms map[string][]string
}

// Default returns the compiled-in role-to-permission table.
func Default() *Table {
	return newTable(map[string][]string{
		RoleSuperAdmin: {
			PermManageUsers,
			PermManageContent,
			PermManageJobs,
			PermManageSettings,
			PermViewContacts,
			PermViewLogs,
		},
		RoleAdmin: {
			PermManageContent,
			PermManageJobs,
			PermManageSettings,
			PermViewContacts,
			PermViewLogs,
		},
		RoleHR: {
			PermManageJobs,
			PermViewContacts,
		},
	})
}

// Load reads a role-to-permission mapping from a YAML file. The file is a
// plain map of role name to a list of capability names.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions file %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse permissions file %s: %w", path, err)
	}

	return newTable(raw), nil
}

func newTable(raw map[string][]string) *Table {
	perms := make(map[string][]string, len(raw))
	for role, caps := range raw {
		perms[role] = append([]string(nil), caps...)
	}
	return &Table{perms: perms}
}

// Permissions returns the capability set for role. A role with no table
// entry yields the empty set, not an error.
func (t *Table) Permissions(role string) []string {
	caps, ok := t.perms[role]
	if !ok {
		return []string{}
	}
	// Copy so callers cannot mutate the table.
	return append([]string(nil), caps...)
}

// Allows reports whether role grants the named capability.
func (t *Table) Allows(role, capability string) bool {
	for _, c := range t.perms[role] {
		if c == capability {
			return true
		}
	}
	return false
}
