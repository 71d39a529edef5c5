package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/access"
	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/sigauth"
)

var (
	admin = account.BytesToAddress([]byte{0x01})
	alice = account.BytesToAddress([]byte{0x02})
	bob   = account.BytesToAddress([]byte{0x03})
	carol = account.BytesToAddress([]byte{0x04})
	self  = account.BytesToAddress([]byte{0xff})
)

func amt(n uint64) *uint256.Int { return uint256.NewInt(n) }

func newTestToken(t *testing.T, opts ...Option) *Token {
	t.Helper()
	st, err := NewState(Config{
		Name:          "Ledger Test Token",
		Symbol:        "LTT",
		Decimals:      18,
		ChainID:       1337,
		Self:          self,
		Cap:           amt(1_000_000),
		Admin:         admin,
		InitialSupply: amt(100_000),
	})
	if err != nil {
		t.Fatalf("state creation failed: %v", err)
	}
	tok := New(st, opts...)
	if err := tok.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return tok
}

// checkConservation asserts total supply equals the sum of all balances and
// never exceeds the cap.
func checkConservation(t *testing.T, tok *Token) {
	t.Helper()
	sum := new(uint256.Int)
	for _, b := range tok.st.Balances {
		sum.Add(sum, b)
	}
	if !sum.Eq(tok.st.TotalSupply) {
		t.Fatalf("conservation violated: supply %s, balance sum %s", tok.st.TotalSupply, sum)
	}
	if tok.st.TotalSupply.Gt(tok.st.Cap) {
		t.Fatalf("supply %s exceeds cap %s", tok.st.TotalSupply, tok.st.Cap)
	}
}

func TestNewStateValidation(t *testing.T) {
	if _, err := NewState(Config{Admin: admin}); !errors.Is(err, ErrInvalidCap) {
		t.Errorf("expected ErrInvalidCap, got %v", err)
	}
	if _, err := NewState(Config{Cap: amt(10)}); !errors.Is(err, ErrZeroAddress) {
		t.Errorf("expected ErrZeroAddress, got %v", err)
	}
	if _, err := NewState(Config{Cap: amt(10), Admin: admin, InitialSupply: amt(11)}); !errors.Is(err, ErrSupplyOverflow) {
		t.Errorf("expected ErrSupplyOverflow, got %v", err)
	}
}

func TestInitRunsOnce(t *testing.T) {
	tok := newTestToken(t)
	if err := tok.Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestTransfer(t *testing.T) {
	tok := newTestToken(t)

	t.Run("Moves", func(t *testing.T) {
		if err := tok.Transfer(admin, alice, amt(500)); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		if !tok.BalanceOf(alice).Eq(amt(500)) {
			t.Errorf("alice balance = %s, want 500", tok.BalanceOf(alice))
		}
		if !tok.BalanceOf(admin).Eq(amt(99_500)) {
			t.Errorf("admin balance = %s, want 99500", tok.BalanceOf(admin))
		}
		checkConservation(t, tok)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		if err := tok.Transfer(bob, alice, amt(1)); !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("expected ErrInsufficientBalance, got %v", err)
		}
		checkConservation(t, tok)
	})

	t.Run("ZeroRecipient", func(t *testing.T) {
		if err := tok.Transfer(admin, account.Zero, amt(1)); !errors.Is(err, ErrZeroAddressRecipient) {
			t.Errorf("expected ErrZeroAddressRecipient, got %v", err)
		}
	})

	t.Run("ZeroBalanceIsTerminalNotDeleted", func(t *testing.T) {
		if err := tok.Transfer(alice, bob, amt(500)); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		if !tok.BalanceOf(alice).IsZero() {
			t.Errorf("alice balance = %s, want 0", tok.BalanceOf(alice))
		}
		checkConservation(t, tok)
	})
}

func TestMintCapBoundary(t *testing.T) {
	tok := newTestToken(t)

	t.Run("MinterRoleRequired", func(t *testing.T) {
		if err := tok.Mint(alice, alice, amt(1)); !errors.Is(err, access.ErrMissingRole) {
			t.Errorf("expected ErrMissingRole, got %v", err)
		}
	})

	t.Run("MintToExactlyCap", func(t *testing.T) {
		if err := tok.Mint(admin, bob, amt(900_000)); err != nil {
			t.Fatalf("mint to cap failed: %v", err)
		}
		if !tok.TotalSupply().Eq(tok.Cap()) {
			t.Errorf("supply = %s, want cap %s", tok.TotalSupply(), tok.Cap())
		}
		checkConservation(t, tok)
	})

	t.Run("OneUnitOverCapFails", func(t *testing.T) {
		if err := tok.Mint(admin, bob, amt(1)); !errors.Is(err, ErrSupplyOverflow) {
			t.Errorf("expected ErrSupplyOverflow, got %v", err)
		}
		checkConservation(t, tok)
	})

	t.Run("BurnFreesHeadroom", func(t *testing.T) {
		if err := tok.Burn(bob, amt(10)); err != nil {
			t.Fatalf("burn failed: %v", err)
		}
		if err := tok.Mint(admin, bob, amt(10)); err != nil {
			t.Fatalf("mint after burn failed: %v", err)
		}
		checkConservation(t, tok)
	})
}

func TestPauseBlocksMutation(t *testing.T) {
	tok := newTestToken(t)
	if err := tok.Pause(admin); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	before := tok.BalanceOf(admin)
	if err := tok.Transfer(admin, alice, amt(1)); !errors.Is(err, access.ErrPaused) {
		t.Errorf("transfer: expected ErrPaused, got %v", err)
	}
	if err := tok.Mint(admin, alice, amt(1)); !errors.Is(err, access.ErrPaused) {
		t.Errorf("mint: expected ErrPaused, got %v", err)
	}
	if err := tok.Burn(admin, amt(1)); !errors.Is(err, access.ErrPaused) {
		t.Errorf("burn: expected ErrPaused, got %v", err)
	}
	if err := tok.Tip(admin, alice, amt(1)); !errors.Is(err, access.ErrPaused) {
		t.Errorf("tip: expected ErrPaused, got %v", err)
	}
	if !tok.BalanceOf(admin).Eq(before) {
		t.Error("paused operation changed a balance")
	}

	// Second pause is a no-op success, not a toggle.
	if err := tok.Pause(admin); err != nil {
		t.Fatalf("second pause errored: %v", err)
	}
	if !tok.Paused() {
		t.Fatal("second pause toggled the gate open")
	}

	if err := tok.Unpause(admin); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}
	if err := tok.Transfer(admin, alice, amt(1)); err != nil {
		t.Errorf("transfer after unpause failed: %v", err)
	}
	checkConservation(t, tok)
}

func TestApproveSpendRoundTrip(t *testing.T) {
	tok := newTestToken(t)

	if err := tok.Approve(admin, alice, amt(300)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !tok.Allowance(admin, alice).Eq(amt(300)) {
		t.Fatalf("allowance = %s, want 300", tok.Allowance(admin, alice))
	}

	if err := tok.TransferFrom(alice, admin, alice, amt(300)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}
	if !tok.Allowance(admin, alice).IsZero() {
		t.Errorf("allowance = %s, want 0", tok.Allowance(admin, alice))
	}
	if !tok.BalanceOf(alice).Eq(amt(300)) {
		t.Errorf("alice balance = %s, want 300", tok.BalanceOf(alice))
	}
	checkConservation(t, tok)

	t.Run("ExhaustedAllowanceRefused", func(t *testing.T) {
		if err := tok.TransferFrom(alice, admin, alice, amt(1)); !errors.Is(err, ErrInsufficientAllowance) {
			t.Errorf("expected ErrInsufficientAllowance, got %v", err)
		}
	})

	t.Run("ApproveOverwritesNotAdds", func(t *testing.T) {
		if err := tok.Approve(admin, alice, amt(10)); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
		if err := tok.Approve(admin, alice, amt(7)); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
		if !tok.Allowance(admin, alice).Eq(amt(7)) {
			t.Errorf("allowance = %s, want 7", tok.Allowance(admin, alice))
		}
	})

	t.Run("FailedTransferKeepsAllowance", func(t *testing.T) {
		if err := tok.Approve(bob, alice, amt(50)); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
		// bob has no balance; the spend must fail without touching the
		// allowance.
		if err := tok.TransferFrom(alice, bob, carol, amt(50)); !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if !tok.Allowance(bob, alice).Eq(amt(50)) {
			t.Errorf("allowance = %s, want 50 after failed spend", tok.Allowance(bob, alice))
		}
	})
}

func TestUnlimitedAllowance(t *testing.T) {
	tok := newTestToken(t)
	if err := tok.Approve(admin, alice, Unlimited); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := tok.TransferFrom(alice, admin, bob, amt(1_000)); err != nil {
		t.Fatalf("transferFrom failed: %v", err)
	}
	if !tok.Allowance(admin, alice).Eq(Unlimited) {
		t.Error("unlimited allowance must not be decremented")
	}
	checkConservation(t, tok)
}

func TestBurnFrom(t *testing.T) {
	tok := newTestToken(t)
	if err := tok.Approve(admin, alice, amt(40)); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := tok.BurnFrom(alice, admin, amt(40)); err != nil {
		t.Fatalf("burnFrom failed: %v", err)
	}
	if !tok.TotalSupply().Eq(amt(99_960)) {
		t.Errorf("supply = %s, want 99960", tok.TotalSupply())
	}
	if err := tok.BurnFrom(alice, admin, amt(1)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Errorf("expected ErrInsufficientAllowance, got %v", err)
	}
	checkConservation(t, tok)
}

func TestBatchAtomicity(t *testing.T) {
	t.Run("AirdropLengthMismatchBeforeAnyElement", func(t *testing.T) {
		tok := newTestToken(t)
		err := tok.AirdropMint(admin, []account.Address{alice, bob}, []*uint256.Int{amt(1)})
		if !errors.Is(err, ErrLengthMismatch) {
			t.Fatalf("expected ErrLengthMismatch, got %v", err)
		}
		if !tok.BalanceOf(alice).IsZero() {
			t.Error("length mismatch must reject before processing any element")
		}
	})

	t.Run("AirdropMidBatchFailureAppliesNothing", func(t *testing.T) {
		tok := newTestToken(t)
		// Second element breaches the cap; the first must not survive.
		err := tok.AirdropMint(admin,
			[]account.Address{alice, bob},
			[]*uint256.Int{amt(1), amt(1_000_000)})
		if !errors.Is(err, ErrSupplyOverflow) {
			t.Fatalf("expected ErrSupplyOverflow, got %v", err)
		}
		if !tok.BalanceOf(alice).IsZero() {
			t.Error("partial airdrop survived a mid-batch failure")
		}
		if !tok.TotalSupply().Eq(amt(100_000)) {
			t.Errorf("supply = %s, want 100000", tok.TotalSupply())
		}
		checkConservation(t, tok)
	})

	t.Run("AirdropSuccess", func(t *testing.T) {
		tok := newTestToken(t)
		err := tok.AirdropMint(admin,
			[]account.Address{alice, bob, carol},
			[]*uint256.Int{amt(10), amt(20), amt(30)})
		if err != nil {
			t.Fatalf("airdrop failed: %v", err)
		}
		if !tok.BalanceOf(carol).Eq(amt(30)) {
			t.Errorf("carol balance = %s, want 30", tok.BalanceOf(carol))
		}
		checkConservation(t, tok)
	})

	t.Run("BatchTipMidBatchFailureAppliesNothing", func(t *testing.T) {
		tok := newTestToken(t)
		if err := tok.Transfer(admin, alice, amt(15)); err != nil {
			t.Fatalf("fund alice: %v", err)
		}
		// Cumulative amount exceeds alice's balance on the second element.
		err := tok.BatchTip(alice, []account.Address{bob, carol}, []*uint256.Int{amt(10), amt(10)})
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if !tok.BalanceOf(bob).IsZero() {
			t.Error("partial batch tip survived a mid-batch failure")
		}
		if !tok.BalanceOf(alice).Eq(amt(15)) {
			t.Errorf("alice balance = %s, want 15", tok.BalanceOf(alice))
		}
		checkConservation(t, tok)
	})
}

func TestConvenienceWrappers(t *testing.T) {
	store := journal.NewMemoryStore()
	log := journal.NewLog(store)
	tok := newTestToken(t, WithJournal(log))

	if err := tok.Reward(admin, alice, amt(5)); err != nil {
		t.Fatalf("reward failed: %v", err)
	}
	if err := tok.Tip(alice, bob, amt(2)); err != nil {
		t.Fatalf("tip failed: %v", err)
	}

	t.Run("DonateRequiresCommunity", func(t *testing.T) {
		if err := tok.Donate(alice, amt(1)); !errors.Is(err, ErrCommunityNotSet) {
			t.Errorf("expected ErrCommunityNotSet, got %v", err)
		}
	})

	t.Run("SetCommunityAccount", func(t *testing.T) {
		if err := tok.SetCommunityAccount(alice, carol); !errors.Is(err, access.ErrMissingRole) {
			t.Errorf("expected ErrMissingRole, got %v", err)
		}
		if err := tok.SetCommunityAccount(admin, account.Zero); !errors.Is(err, ErrZeroAddress) {
			t.Errorf("expected ErrZeroAddress, got %v", err)
		}
		if err := tok.SetCommunityAccount(admin, carol); err != nil {
			t.Fatalf("set community failed: %v", err)
		}
	})

	t.Run("Donate", func(t *testing.T) {
		if err := tok.Donate(alice, amt(3)); err != nil {
			t.Fatalf("donate failed: %v", err)
		}
		if !tok.BalanceOf(carol).Eq(amt(3)) {
			t.Errorf("community balance = %s, want 3", tok.BalanceOf(carol))
		}
	})

	checkConservation(t, tok)

	events, err := store.Read(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("journal read failed: %v", err)
	}
	kinds := make(map[journal.Kind]int)
	for _, ev := range events {
		kinds[ev.Kind]++
	}
	for _, want := range []journal.Kind{journal.KindReward, journal.KindTip, journal.KindDonation, journal.KindCommunityChanged} {
		if kinds[want] == 0 {
			t.Errorf("missing %s notification", want)
		}
	}
}

type fakeAsset struct {
	addr      account.Address
	transfers int
	fail      error
}

func (f *fakeAsset) Address() account.Address { return f.addr }

func (f *fakeAsset) Transfer(to account.Address, amount *uint256.Int) error {
	if f.fail != nil {
		return f.fail
	}
	f.transfers++
	return nil
}

func TestRescue(t *testing.T) {
	tok := newTestToken(t)
	foreign := &fakeAsset{addr: account.BytesToAddress([]byte{0xaa})}

	if err := tok.Rescue(alice, foreign, bob, amt(1)); !errors.Is(err, access.ErrMissingRole) {
		t.Errorf("expected ErrMissingRole, got %v", err)
	}
	if err := tok.Rescue(admin, &fakeAsset{addr: self}, bob, amt(1)); !errors.Is(err, ErrRescueSelf) {
		t.Errorf("expected ErrRescueSelf, got %v", err)
	}
	if err := tok.Rescue(admin, foreign, account.Zero, amt(1)); !errors.Is(err, ErrRescueZeroRecipient) {
		t.Errorf("expected ErrRescueZeroRecipient, got %v", err)
	}
	if err := tok.Rescue(admin, foreign, bob, amt(1)); err != nil {
		t.Fatalf("rescue failed: %v", err)
	}
	if foreign.transfers != 1 {
		t.Errorf("asset transfers = %d, want 1", foreign.transfers)
	}

	failing := &fakeAsset{addr: foreign.addr, fail: errors.New("asset refused")}
	if err := tok.Rescue(admin, failing, bob, amt(1)); err == nil {
		t.Error("asset failure must surface")
	}
}

func TestPermit(t *testing.T) {
	clock := time.Unix(1_000, 0)
	tok := newTestToken(t, WithClock(func() time.Time { return clock }))

	priv, err := sigauth.GenerateKey()
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	owner := sigauth.AddressOf(&priv.PublicKey)

	signPermit := func(spender account.Address, amount *uint256.Int, nonce, deadline uint64) []byte {
		t.Helper()
		digest := sigauth.Digest(tok.Domain(), sigauth.PermitHash(owner, spender, amount, nonce, deadline))
		sig, err := sigauth.Sign(digest, priv)
		if err != nil {
			t.Fatalf("sign failed: %v", err)
		}
		return sig
	}

	t.Run("Consumes", func(t *testing.T) {
		sig := signPermit(alice, amt(77), 0, 2_000)
		if err := tok.Permit(owner, alice, amt(77), 2_000, sig); err != nil {
			t.Fatalf("permit failed: %v", err)
		}
		if !tok.Allowance(owner, alice).Eq(amt(77)) {
			t.Errorf("allowance = %s, want 77", tok.Allowance(owner, alice))
		}
		if tok.Nonce(owner) != 1 {
			t.Errorf("nonce = %d, want 1", tok.Nonce(owner))
		}
	})

	t.Run("ReplayRejected", func(t *testing.T) {
		sig := signPermit(alice, amt(77), 0, 2_000)
		err := tok.Permit(owner, alice, amt(77), 2_000, sig)
		if !errors.Is(err, sigauth.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature on replay, got %v", err)
		}
		if tok.Nonce(owner) != 1 {
			t.Errorf("failed replay must not consume a nonce, nonce = %d", tok.Nonce(owner))
		}
	})

	t.Run("ExpiredDeadline", func(t *testing.T) {
		sig := signPermit(alice, amt(5), 1, 999)
		if err := tok.Permit(owner, alice, amt(5), 999, sig); !errors.Is(err, ErrExpiredDeadline) {
			t.Errorf("expected ErrExpiredDeadline, got %v", err)
		}
	})

	t.Run("WrongSigner", func(t *testing.T) {
		other, err := sigauth.GenerateKey()
		if err != nil {
			t.Fatalf("keygen failed: %v", err)
		}
		digest := sigauth.Digest(tok.Domain(), sigauth.PermitHash(owner, alice, amt(5), 1, 2_000))
		sig, err := sigauth.Sign(digest, other)
		if err != nil {
			t.Fatalf("sign failed: %v", err)
		}
		err = tok.Permit(owner, alice, amt(5), 2_000, sig)
		if !errors.Is(err, sigauth.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("TamperedAmount", func(t *testing.T) {
		sig := signPermit(alice, amt(5), 1, 2_000)
		err := tok.Permit(owner, alice, amt(6), 2_000, sig)
		if !errors.Is(err, sigauth.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})
}

func TestRoleLifecycleEvents(t *testing.T) {
	store := journal.NewMemoryStore()
	tok := newTestToken(t, WithJournal(journal.NewLog(store)))

	if err := tok.GrantRole(admin, access.RoleMinter, alice); err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if err := tok.Mint(alice, bob, amt(1)); err != nil {
		t.Fatalf("mint by new minter failed: %v", err)
	}
	if err := tok.RevokeRole(admin, access.RoleMinter, alice); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if err := tok.Mint(alice, bob, amt(1)); !errors.Is(err, access.ErrMissingRole) {
		t.Errorf("expected ErrMissingRole after revoke, got %v", err)
	}
	if err := tok.RenounceRole(admin, access.RolePauser, admin); err != nil {
		t.Fatalf("renounce failed: %v", err)
	}
	if err := tok.Pause(admin); !errors.Is(err, access.ErrMissingRole) {
		t.Errorf("expected ErrMissingRole after renounce, got %v", err)
	}

	events, err := store.Read(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("journal read failed: %v", err)
	}
	var granted, revoked, renounced bool
	for _, ev := range events {
		switch ev.Kind {
		case journal.KindRoleGranted:
			granted = true
			if ev.Detail["role"] != string(access.RoleMinter) {
				t.Errorf("grant event role = %q", ev.Detail["role"])
			}
		case journal.KindRoleRevoked:
			revoked = true
		case journal.KindRoleRenounced:
			renounced = true
		}
	}
	if !granted || !revoked || !renounced {
		t.Errorf("missing role events: granted=%v revoked=%v renounced=%v", granted, revoked, renounced)
	}
}

func TestSetTrustedForwarderEmitsPreviousValue(t *testing.T) {
	store := journal.NewMemoryStore()
	tok := newTestToken(t, WithJournal(journal.NewLog(store)))
	fwd := account.BytesToAddress([]byte{0xf0})

	if err := tok.SetTrustedForwarder(alice, fwd); !errors.Is(err, access.ErrMissingRole) {
		t.Errorf("expected ErrMissingRole, got %v", err)
	}
	if err := tok.SetTrustedForwarder(admin, fwd); err != nil {
		t.Fatalf("set forwarder failed: %v", err)
	}

	events, err := store.Read(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("journal read failed: %v", err)
	}
	if len(events) != 1 || events[0].Kind != journal.KindRelayerChanged {
		t.Fatalf("expected one relayer_changed event, got %v", events)
	}
	if events[0].Detail["previous"] != account.Zero.Hex() {
		t.Errorf("previous = %q, want zero address", events[0].Detail["previous"])
	}
	if events[0].Detail["next"] != fwd.Hex() {
		t.Errorf("next = %q, want %s", events[0].Detail["next"], fwd.Hex())
	}
}

func TestResolveCaller(t *testing.T) {
	tok := newTestToken(t)
	fwd := account.BytesToAddress([]byte{0xf0})
	other := account.BytesToAddress([]byte{0xf1})

	// No trusted forwarder configured: every call is taken at face value.
	if got := tok.ResolveCaller(fwd, alice); got != fwd {
		t.Errorf("resolved %s, want %s", got, fwd)
	}

	if err := tok.SetTrustedForwarder(admin, fwd); err != nil {
		t.Fatalf("set forwarder failed: %v", err)
	}
	if got := tok.ResolveCaller(fwd, alice); got != alice {
		t.Errorf("resolved %s, want appended identity %s", got, alice)
	}
	if got := tok.ResolveCaller(other, alice); got != other {
		t.Errorf("untrusted relayer resolved to %s, want itself", got)
	}
	if got := tok.ResolveCaller(fwd, account.Zero); got != fwd {
		t.Errorf("missing suffix resolved to %s, want the relayer", got)
	}
}

// The end-to-end scenario: cap one million, initial hundred thousand to the
// founder, mint the rest to a second account, hit the cap, pause, unpause,
// transfer.
func TestCapPauseScenario(t *testing.T) {
	tok := newTestToken(t)

	if err := tok.Mint(admin, bob, amt(900_000)); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if !tok.TotalSupply().Eq(amt(1_000_000)) {
		t.Fatalf("supply = %s, want 1000000", tok.TotalSupply())
	}
	if err := tok.Mint(admin, bob, amt(1)); !errors.Is(err, ErrSupplyOverflow) {
		t.Fatalf("expected ErrSupplyOverflow, got %v", err)
	}

	if err := tok.Pause(admin); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if err := tok.Transfer(bob, alice, amt(123)); !errors.Is(err, access.ErrPaused) {
		t.Fatalf("expected ErrPaused, got %v", err)
	}
	if err := tok.Unpause(admin); err != nil {
		t.Fatalf("unpause failed: %v", err)
	}

	before := tok.BalanceOf(bob)
	if err := tok.Transfer(bob, alice, amt(123)); err != nil {
		t.Fatalf("transfer after unpause failed: %v", err)
	}
	wantBob := new(uint256.Int).Sub(before, amt(123))
	if !tok.BalanceOf(bob).Eq(wantBob) {
		t.Errorf("bob balance = %s, want %s", tok.BalanceOf(bob), wantBob)
	}
	if !tok.BalanceOf(alice).Eq(amt(123)) {
		t.Errorf("alice balance = %s, want 123", tok.BalanceOf(alice))
	}
	checkConservation(t, tok)
}
