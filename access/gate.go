package access

import (
	"errors"

	"github.com/pflow-xyz/go-ledger/account"
)

// ErrPaused reports an operation blocked by the pause gate. It maps to the
// availability error kind: the operation may succeed later without any
// change to the request.
var ErrPaused = errors.New("access: transfers paused")

// Gate is the global pause switch. The zero value is an open gate.
type Gate struct {
	Paused bool `json:"paused"`
}

// Check returns ErrPaused while the gate is engaged.
func (g *Gate) Check() error {
	if g.Paused {
		return ErrPaused
	}
	return nil
}

// Pause engages the gate. The caller must hold the pauser role. Pausing an
// already paused gate is a no-op success. Returns whether the state changed.
func (g *Gate) Pause(reg *Registry, caller account.Address) (bool, error) {
	if err := reg.Require(RolePauser, caller); err != nil {
		return false, err
	}
	if g.Paused {
		return false, nil
	}
	g.Paused = true
	return true, nil
}

// Unpause releases the gate under the same rules as Pause.
func (g *Gate) Unpause(reg *Registry, caller account.Address) (bool, error) {
	if err := reg.Require(RolePauser, caller); err != nil {
		return false, err
	}
	if !g.Paused {
		return false, nil
	}
	g.Paused = false
	return true, nil
}
