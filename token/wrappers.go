package token

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/access"
	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
)

// Convenience operations. These are pure call-throughs to the transfer and
// mint primitives; they add a distinct notification kind and nothing else.

// Reward mints amount to to. Requires the minter role.
func (t *Token) Reward(caller, to account.Address, amount *uint256.Int) error {
	if err := t.st.Roles.Require(access.RoleMinter, caller); err != nil {
		return err
	}
	return t.mintAs(to, amount, journal.KindReward)
}

// Tip transfers amount from the caller to to.
func (t *Token) Tip(caller, to account.Address, amount *uint256.Int) error {
	return t.transferAs(caller, to, amount, journal.KindTip)
}

// Donate transfers amount from the caller to the community account.
func (t *Token) Donate(caller account.Address, amount *uint256.Int) error {
	if t.st.Community.IsZero() {
		return ErrCommunityNotSet
	}
	return t.transferAs(caller, t.st.Community, amount, journal.KindDonation)
}

// SetCommunityAccount configures the donation recipient. Admin only.
func (t *Token) SetCommunityAccount(caller, addr account.Address) error {
	if err := t.st.Roles.Require(access.RoleAdmin, caller); err != nil {
		return err
	}
	if addr.IsZero() {
		return ErrZeroAddress
	}
	previous := t.st.Community
	t.st.Community = addr
	t.emit(journal.KindCommunityChanged, caller, addr, nil, map[string]string{
		"previous": previous.Hex(),
		"next":     addr.Hex(),
	})
	return nil
}

// AirdropMint mints amounts[i] to to[i] for every i. Requires the minter
// role. The length check runs before any element; a failure on any element
// leaves no balance changed.
func (t *Token) AirdropMint(caller account.Address, to []account.Address, amounts []*uint256.Int) error {
	if len(to) != len(amounts) {
		return ErrLengthMismatch
	}
	if err := t.st.Roles.Require(access.RoleMinter, caller); err != nil {
		return err
	}

	work := New(t.st.Clone(), WithClock(t.now))
	for i := range to {
		if err := work.mintAs(to[i], amounts[i], journal.KindTransfer); err != nil {
			return err
		}
	}
	*t.st = *work.st

	for i := range to {
		t.emit(journal.KindTransfer, account.Zero, to[i], amounts[i], nil)
	}
	return nil
}

// BatchTip transfers amounts[i] from the caller to to[i] for every i, under
// the same atomicity rules as AirdropMint.
func (t *Token) BatchTip(caller account.Address, to []account.Address, amounts []*uint256.Int) error {
	if len(to) != len(amounts) {
		return ErrLengthMismatch
	}

	work := New(t.st.Clone(), WithClock(t.now))
	for i := range to {
		if err := work.transferAs(caller, to[i], amounts[i], journal.KindTip); err != nil {
			return err
		}
	}
	*t.st = *work.st

	for i := range to {
		t.emit(journal.KindTip, caller, to[i], amounts[i], nil)
	}
	return nil
}

// ForeignAsset is a non-native asset held by this ledger that an
// administrator can move out.
type ForeignAsset interface {
	// Address identifies the asset.
	Address() account.Address

	// Transfer moves amount of the asset from this ledger's holdings to to.
	Transfer(to account.Address, amount *uint256.Int) error
}

// Rescue moves a foreign asset held by this ledger to to. Admin only. The
// ledger refuses to rescue its own asset.
func (t *Token) Rescue(caller account.Address, asset ForeignAsset, to account.Address, amount *uint256.Int) error {
	if err := t.st.Roles.Require(access.RoleAdmin, caller); err != nil {
		return err
	}
	if asset.Address() == t.st.Self {
		return ErrRescueSelf
	}
	if to.IsZero() {
		return ErrRescueZeroRecipient
	}
	if err := asset.Transfer(to, amount); err != nil {
		return err
	}
	t.emit(journal.KindRescue, caller, to, amount, map[string]string{"asset": asset.Address().Hex()})
	return nil
}
