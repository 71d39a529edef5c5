// Package access implements role-based permissioning and the global pause
// gate. A Registry maps each role to its member set; every privileged ledger
// operation asks the registry before mutating anything. The Gate is the
// process-wide switch that blocks balance mutation while engaged.
package access

import (
	"errors"

	"github.com/pflow-xyz/go-ledger/account"
)

// Role is a named permission bucket.
type Role string

const (
	// RoleAdmin governs grant and revoke of all roles, including itself,
	// plus relayer, community and logic-upgrade changes.
	RoleAdmin Role = "admin"
	// RoleMinter may create new supply up to the cap.
	RoleMinter Role = "minter"
	// RolePauser may engage and release the pause gate.
	RolePauser Role = "pauser"
)

var (
	ErrMissingRole  = errors.New("access: caller lacks required role")
	ErrSelfRenounce = errors.New("access: roles may only be renounced for the caller's own identity")
)

// Registry maps roles to member sets.
type Registry struct {
	Members map[Role]map[account.Address]bool `json:"members"`
}

// NewRegistry creates a registry with admin holding the admin, minter and
// pauser roles.
func NewRegistry(admin account.Address) *Registry {
	r := &Registry{Members: make(map[Role]map[account.Address]bool)}
	for _, role := range []Role{RoleAdmin, RoleMinter, RolePauser} {
		r.add(role, admin)
	}
	return r
}

func (r *Registry) add(role Role, id account.Address) {
	set, ok := r.Members[role]
	if !ok {
		set = make(map[account.Address]bool)
		r.Members[role] = set
	}
	set[id] = true
}

// Has reports whether id holds role.
func (r *Registry) Has(role Role, id account.Address) bool {
	return r.Members[role][id]
}

// Require returns ErrMissingRole unless id holds role.
func (r *Registry) Require(role Role, id account.Address) error {
	if !r.Has(role, id) {
		return ErrMissingRole
	}
	return nil
}

// Grant adds id to role. The caller must hold the admin role.
func (r *Registry) Grant(caller account.Address, role Role, id account.Address) error {
	if err := r.Require(RoleAdmin, caller); err != nil {
		return err
	}
	r.add(role, id)
	return nil
}

// Revoke removes id from role. The caller must hold the admin role.
func (r *Registry) Revoke(caller account.Address, role Role, id account.Address) error {
	if err := r.Require(RoleAdmin, caller); err != nil {
		return err
	}
	delete(r.Members[role], id)
	return nil
}

// Renounce removes a role from the caller itself. Target must equal the
// caller exactly; nobody may renounce on another identity's behalf,
// administrators included.
func (r *Registry) Renounce(caller account.Address, role Role, target account.Address) error {
	if caller != target {
		return ErrSelfRenounce
	}
	delete(r.Members[role], caller)
	return nil
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	clone := &Registry{Members: make(map[Role]map[account.Address]bool, len(r.Members))}
	for role, set := range r.Members {
		dst := make(map[account.Address]bool, len(set))
		for id, ok := range set {
			dst[id] = ok
		}
		clone.Members[role] = dst
	}
	return clone
}
