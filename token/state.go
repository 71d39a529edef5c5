package token

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/access"
	"github.com/pflow-xyz/go-ledger/account"
)

// State is the single persistent store every logic version interprets.
// Logic swaps must leave existing fields laid out exactly as they are;
// later versions may only add keys to Ext, never reshape what is already
// here. The JSON encoding is the durable layout.
type State struct {
	// Identity and display.
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`

	// Domain binding for offline signatures.
	ChainID uint64          `json:"chainId"`
	Self    account.Address `json:"self"`

	// Ledger.
	Cap         *uint256.Int                     `json:"cap"`
	TotalSupply *uint256.Int                     `json:"totalSupply"`
	Balances    map[account.Address]*uint256.Int `json:"balances"`

	// Allowance table: owner -> spender -> remaining amount.
	Allowances map[account.Address]map[account.Address]*uint256.Int `json:"allowances"`

	// Permissions and availability.
	Roles *access.Registry `json:"roles"`
	Gate  *access.Gate     `json:"gate"`

	// Signature replay protection, shared by permit and relayed calls.
	Nonces map[account.Address]uint64 `json:"nonces"`

	// Configured collaborators.
	Community        account.Address `json:"community"`
	TrustedForwarder account.Address `json:"trustedForwarder"`

	// Logic version pointer and one-shot init guard.
	Version     string `json:"version"`
	Initialized bool   `json:"initialized"`

	// Ext holds fields appended by later logic versions. Existing keys are
	// never reinterpreted.
	Ext map[string]string `json:"ext,omitempty"`
}

// Config describes the creation-time parameters of a ledger.
type Config struct {
	Name     string
	Symbol   string
	Decimals uint8
	ChainID  uint64
	Self     account.Address

	// Cap is the immutable supply ceiling. Required, non-zero.
	Cap *uint256.Int

	// Admin is the initial administrator; it also receives the minter and
	// pauser roles.
	Admin account.Address

	// InitialSupply, if non-nil, is minted to Admin at creation.
	InitialSupply *uint256.Int
}

// NewState creates the persistent store for a fresh ledger.
func NewState(cfg Config) (*State, error) {
	if cfg.Cap == nil || cfg.Cap.IsZero() {
		return nil, ErrInvalidCap
	}
	if cfg.Admin.IsZero() {
		return nil, ErrZeroAddress
	}

	st := &State{
		Name:        cfg.Name,
		Symbol:      cfg.Symbol,
		Decimals:    cfg.Decimals,
		ChainID:     cfg.ChainID,
		Self:        cfg.Self,
		Cap:         new(uint256.Int).Set(cfg.Cap),
		TotalSupply: new(uint256.Int),
		Balances:    make(map[account.Address]*uint256.Int),
		Allowances:  make(map[account.Address]map[account.Address]*uint256.Int),
		Roles:       access.NewRegistry(cfg.Admin),
		Gate:        &access.Gate{},
		Nonces:      make(map[account.Address]uint64),
		Ext:         make(map[string]string),
	}

	if cfg.InitialSupply != nil && !cfg.InitialSupply.IsZero() {
		if cfg.InitialSupply.Gt(st.Cap) {
			return nil, ErrSupplyOverflow
		}
		st.TotalSupply.Set(cfg.InitialSupply)
		st.Balances[cfg.Admin] = new(uint256.Int).Set(cfg.InitialSupply)
	}

	return st, nil
}

// balance returns the stored balance of id, zero if absent. The returned
// value is shared; callers must not mutate it.
func (st *State) balance(id account.Address) *uint256.Int {
	if b, ok := st.Balances[id]; ok {
		return b
	}
	return new(uint256.Int)
}

// allowance returns the remaining allowance for (owner, spender), zero if
// absent. Shared value; callers must not mutate it.
func (st *State) allowance(owner, spender account.Address) *uint256.Int {
	if row, ok := st.Allowances[owner]; ok {
		if a, ok := row[spender]; ok {
			return a
		}
	}
	return new(uint256.Int)
}

func (st *State) setAllowance(owner, spender account.Address, amount *uint256.Int) {
	row, ok := st.Allowances[owner]
	if !ok {
		row = make(map[account.Address]*uint256.Int)
		st.Allowances[owner] = row
	}
	row[spender] = new(uint256.Int).Set(amount)
}

func (st *State) nonce(id account.Address) uint64 {
	return st.Nonces[id]
}

// Clone returns a deep copy of the state. Batch operations run against a
// clone and swap it in on success, so a mid-batch failure leaves nothing
// applied.
func (st *State) Clone() *State {
	clone := &State{
		Name:             st.Name,
		Symbol:           st.Symbol,
		Decimals:         st.Decimals,
		ChainID:          st.ChainID,
		Self:             st.Self,
		Cap:              new(uint256.Int).Set(st.Cap),
		TotalSupply:      new(uint256.Int).Set(st.TotalSupply),
		Balances:         make(map[account.Address]*uint256.Int, len(st.Balances)),
		Allowances:       make(map[account.Address]map[account.Address]*uint256.Int, len(st.Allowances)),
		Roles:            st.Roles.Clone(),
		Gate:             &access.Gate{Paused: st.Gate.Paused},
		Nonces:           make(map[account.Address]uint64, len(st.Nonces)),
		Community:        st.Community,
		TrustedForwarder: st.TrustedForwarder,
		Version:          st.Version,
		Initialized:      st.Initialized,
		Ext:              make(map[string]string, len(st.Ext)),
	}
	for id, b := range st.Balances {
		clone.Balances[id] = new(uint256.Int).Set(b)
	}
	for owner, row := range st.Allowances {
		dst := make(map[account.Address]*uint256.Int, len(row))
		for spender, a := range row {
			dst[spender] = new(uint256.Int).Set(a)
		}
		clone.Allowances[owner] = dst
	}
	for id, n := range st.Nonces {
		clone.Nonces[id] = n
	}
	for k, v := range st.Ext {
		clone.Ext[k] = v
	}
	return clone
}
