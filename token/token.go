// Package token implements the value ledger: balances under a fixed supply
// cap, the allowance table, role-gated minting, the pause gate, offline
// signature approvals and the administrative surface. Every mutating method
// takes the caller address explicitly as its first argument; effective
// caller resolution for relayed calls happens in the relay package.
package token

import (
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/access"
	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/sigauth"
)

// LogicVersion identifies this implementation of the ledger logic.
const LogicVersion = "1.0.0"

// SigningVersion is the version string bound into signature domains. It is
// independent of LogicVersion: upgrading logic must not invalidate
// outstanding signatures.
const SigningVersion = "1"

// Unlimited is the allowance sentinel exempt from decrement on delegated
// spends.
var Unlimited = new(uint256.Int).SetAllOne()

// Token is the v1 logic bound to a State.
type Token struct {
	st  *State
	log *journal.Log
	now func() time.Time
}

// Option configures a Token.
type Option func(*Token)

// WithJournal attaches a notification journal.
func WithJournal(l *journal.Log) Option {
	return func(t *Token) { t.log = l }
}

// WithClock overrides the deadline clock.
func WithClock(now func() time.Time) Option {
	return func(t *Token) { t.now = now }
}

// New binds logic to a state.
func New(st *State, opts ...Option) *Token {
	t := &Token{st: st, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Version returns the logic version of this implementation.
func (t *Token) Version() string { return LogicVersion }

// Init runs the one-shot initialization for this logic version. Guarded by
// the persistent initialized flag so an upgrade can never replay it.
func (t *Token) Init() error {
	if t.st.Initialized {
		return ErrAlreadyInitialized
	}
	t.st.Initialized = true
	t.st.Version = LogicVersion
	return nil
}

// State returns the persistent store.
func (t *Token) State() *State { return t.st }

// Domain returns the signature domain for offline approvals.
func (t *Token) Domain() sigauth.Domain {
	return sigauth.Domain{
		Name:              t.st.Name,
		Version:           SigningVersion,
		ChainID:           t.st.ChainID,
		VerifyingContract: t.st.Self,
	}
}

// Read surface.

func (t *Token) Name() string               { return t.st.Name }
func (t *Token) Symbol() string             { return t.st.Symbol }
func (t *Token) Decimals() uint8            { return t.st.Decimals }
func (t *Token) Paused() bool               { return t.st.Gate.Paused }
func (t *Token) Community() account.Address { return t.st.Community }

func (t *Token) Cap() *uint256.Int         { return new(uint256.Int).Set(t.st.Cap) }
func (t *Token) TotalSupply() *uint256.Int { return new(uint256.Int).Set(t.st.TotalSupply) }

func (t *Token) BalanceOf(id account.Address) *uint256.Int {
	return new(uint256.Int).Set(t.st.balance(id))
}

func (t *Token) Allowance(owner, spender account.Address) *uint256.Int {
	return new(uint256.Int).Set(t.st.allowance(owner, spender))
}

func (t *Token) Nonce(id account.Address) uint64 {
	return t.st.nonce(id)
}

func (t *Token) HasRole(role access.Role, id account.Address) bool {
	return t.st.Roles.Has(role, id)
}

// apply is the single choke point for balance mutation. The check order is
// fixed: pause gate, then supply cap, then balance. A zero from mints, a
// zero to burns; no mutation happens until every check has passed.
func (t *Token) apply(from, to account.Address, amount *uint256.Int) error {
	st := t.st
	if err := st.Gate.Check(); err != nil {
		return err
	}

	if from.IsZero() {
		supply, overflow := new(uint256.Int).AddOverflow(st.TotalSupply, amount)
		if overflow || supply.Gt(st.Cap) {
			return ErrSupplyOverflow
		}
		st.TotalSupply = supply
	} else {
		bal := st.balance(from)
		if bal.Lt(amount) {
			return ErrInsufficientBalance
		}
		st.Balances[from] = new(uint256.Int).Sub(bal, amount)
	}

	if to.IsZero() {
		st.TotalSupply = new(uint256.Int).Sub(st.TotalSupply, amount)
	} else {
		st.Balances[to] = new(uint256.Int).Add(st.balance(to), amount)
	}
	return nil
}

// spendAllowance checks (without mutating) that spender may take amount
// from owner, and returns a commit function that performs the decrement.
// The unlimited sentinel passes the check and commits nothing.
func (t *Token) spendAllowance(owner, spender account.Address, amount *uint256.Int) (func(), error) {
	cur := t.st.allowance(owner, spender)
	if cur.Eq(Unlimited) {
		return func() {}, nil
	}
	if cur.Lt(amount) {
		return nil, ErrInsufficientAllowance
	}
	remaining := new(uint256.Int).Sub(cur, amount)
	return func() { t.st.setAllowance(owner, spender, remaining) }, nil
}

// Transfer moves amount from the caller to to.
func (t *Token) Transfer(caller, to account.Address, amount *uint256.Int) error {
	return t.transferAs(caller, to, amount, journal.KindTransfer)
}

func (t *Token) transferAs(from, to account.Address, amount *uint256.Int, kind journal.Kind) error {
	if to.IsZero() {
		return ErrZeroAddressRecipient
	}
	if err := t.apply(from, to, amount); err != nil {
		return err
	}
	t.emit(kind, from, to, amount, nil)
	return nil
}

// TransferFrom moves amount from owner to to, spending the caller's
// allowance. The allowance is checked before any mutation and decremented
// only after the balance move succeeds.
func (t *Token) TransferFrom(caller, owner, to account.Address, amount *uint256.Int) error {
	if to.IsZero() {
		return ErrZeroAddressRecipient
	}
	commit, err := t.spendAllowance(owner, caller, amount)
	if err != nil {
		return err
	}
	if err := t.apply(owner, to, amount); err != nil {
		return err
	}
	commit()
	t.emit(journal.KindTransfer, owner, to, amount, nil)
	return nil
}

// Mint credits to and grows the supply. Requires the minter role.
func (t *Token) Mint(caller, to account.Address, amount *uint256.Int) error {
	if err := t.st.Roles.Require(access.RoleMinter, caller); err != nil {
		return err
	}
	return t.mintAs(to, amount, journal.KindTransfer)
}

func (t *Token) mintAs(to account.Address, amount *uint256.Int, kind journal.Kind) error {
	if to.IsZero() {
		return ErrZeroAddressRecipient
	}
	if err := t.apply(account.Zero, to, amount); err != nil {
		return err
	}
	t.emit(kind, account.Zero, to, amount, nil)
	return nil
}

// Burn destroys amount of the caller's balance.
func (t *Token) Burn(caller account.Address, amount *uint256.Int) error {
	if err := t.apply(caller, account.Zero, amount); err != nil {
		return err
	}
	t.emit(journal.KindTransfer, caller, account.Zero, amount, nil)
	return nil
}

// BurnFrom destroys amount of owner's balance, spending the caller's
// allowance.
func (t *Token) BurnFrom(caller, owner account.Address, amount *uint256.Int) error {
	commit, err := t.spendAllowance(owner, caller, amount)
	if err != nil {
		return err
	}
	if err := t.apply(owner, account.Zero, amount); err != nil {
		return err
	}
	commit()
	t.emit(journal.KindTransfer, owner, account.Zero, amount, nil)
	return nil
}

// Approve overwrites the caller's allowance for spender.
func (t *Token) Approve(caller, spender account.Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	t.st.setAllowance(caller, spender, amount)
	t.emit(journal.KindApproval, caller, spender, amount, nil)
	return nil
}

// BatchApprove applies the same allowance to every spender.
func (t *Token) BatchApprove(caller account.Address, spenders []account.Address, amount *uint256.Int) error {
	for _, s := range spenders {
		if s.IsZero() {
			return ErrZeroAddress
		}
	}
	for _, s := range spenders {
		t.st.setAllowance(caller, s, amount)
		t.emit(journal.KindApproval, caller, s, amount, nil)
	}
	return nil
}

// Permit consumes an offline approval signed by owner over
// (owner, spender, amount, nonce, deadline). The digest is computed against
// the owner's current nonce, so a consumed signature can never recover to
// the owner again.
func (t *Token) Permit(owner, spender account.Address, amount *uint256.Int, deadline uint64, sig []byte) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	if uint64(t.now().Unix()) > deadline {
		return ErrExpiredDeadline
	}

	structHash := sigauth.PermitHash(owner, spender, amount, t.st.nonce(owner), deadline)
	signer, err := sigauth.Recover(sigauth.Digest(t.Domain(), structHash), sig)
	if err != nil {
		return err
	}
	if signer != owner {
		return sigauth.ErrInvalidSignature
	}

	t.st.Nonces[owner]++
	t.st.setAllowance(owner, spender, amount)
	t.emit(journal.KindApproval, owner, spender, amount, nil)
	return nil
}

// Pause engages the pause gate. Requires the pauser role; pausing a paused
// ledger is a no-op success.
func (t *Token) Pause(caller account.Address) error {
	changed, err := t.st.Gate.Pause(t.st.Roles, caller)
	if err != nil {
		return err
	}
	if changed {
		t.emit(journal.KindPaused, caller, account.Zero, nil, nil)
	}
	return nil
}

// Unpause releases the pause gate under the same rules as Pause.
func (t *Token) Unpause(caller account.Address) error {
	changed, err := t.st.Gate.Unpause(t.st.Roles, caller)
	if err != nil {
		return err
	}
	if changed {
		t.emit(journal.KindUnpaused, caller, account.Zero, nil, nil)
	}
	return nil
}

// GrantRole adds id to role. Admin only.
func (t *Token) GrantRole(caller account.Address, role access.Role, id account.Address) error {
	if err := t.st.Roles.Grant(caller, role, id); err != nil {
		return err
	}
	t.emit(journal.KindRoleGranted, caller, id, nil, map[string]string{"role": string(role)})
	return nil
}

// RevokeRole removes id from role. Admin only.
func (t *Token) RevokeRole(caller account.Address, role access.Role, id account.Address) error {
	if err := t.st.Roles.Revoke(caller, role, id); err != nil {
		return err
	}
	t.emit(journal.KindRoleRevoked, caller, id, nil, map[string]string{"role": string(role)})
	return nil
}

// RenounceRole removes a role from the caller itself; target must equal the
// caller exactly.
func (t *Token) RenounceRole(caller account.Address, role access.Role, target account.Address) error {
	if err := t.st.Roles.Renounce(caller, role, target); err != nil {
		return err
	}
	t.emit(journal.KindRoleRenounced, caller, target, nil, map[string]string{"role": string(role)})
	return nil
}

// SetTrustedForwarder rotates the trusted relayer. Admin only. A zero
// address clears it. The change notification always records the previous
// value, including when it was unset.
func (t *Token) SetTrustedForwarder(caller, addr account.Address) error {
	if err := t.st.Roles.Require(access.RoleAdmin, caller); err != nil {
		return err
	}
	previous := t.st.TrustedForwarder
	t.st.TrustedForwarder = addr
	t.emit(journal.KindRelayerChanged, caller, addr, nil, map[string]string{
		"previous": previous.Hex(),
		"next":     addr.Hex(),
	})
	return nil
}

// ResolveCaller resolves the effective caller of an inbound call. When the
// direct caller is the trusted forwarder and an originator identity was
// appended, the originator is the effective caller; every other call is
// taken at face value, so an untrusted relayer can only ever act as itself.
func (t *Token) ResolveCaller(direct, appended account.Address) account.Address {
	if !t.st.TrustedForwarder.IsZero() && direct == t.st.TrustedForwarder && !appended.IsZero() {
		return appended
	}
	return direct
}

func (t *Token) emit(kind journal.Kind, from, to account.Address, amount *uint256.Int, detail map[string]string) {
	if t.log == nil {
		return
	}
	var amt *uint256.Int
	if amount != nil {
		amt = new(uint256.Int).Set(amount)
	}
	t.log.Record(journal.Event{Kind: kind, From: from, To: to, Amount: amt, Detail: detail})
}
