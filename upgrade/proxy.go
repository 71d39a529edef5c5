// Package upgrade implements the logic-swap indirection. Persistent state
// lives in one token.State; behavior lives in a versioned Logic module; an
// upgrade is a single pointer swap guarded by the admin role. The state
// layout contract is upheld by discipline, not types: a new Logic may only
// add keys to State.Ext and must leave every existing field's meaning
// untouched.
package upgrade

import (
	"errors"
	"fmt"

	"github.com/pflow-xyz/go-ledger/access"
	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/token"
)

var (
	// ErrUnauthorizedUpgrade reports an upgrade attempt by a non-admin.
	ErrUnauthorizedUpgrade = errors.New("upgrade: caller lacks the admin role")

	// ErrNilLogic reports a nil logic module.
	ErrNilLogic = errors.New("upgrade: logic must not be nil")
)

// Logic is one version of the ledger's behavior, bound to a shared
// token.State. Init must be guarded by the state's initialized flag so it
// can never run twice, upgrades included.
type Logic interface {
	Version() string
	Init() error
}

// Proxy holds the current logic pointer over a persistent state.
type Proxy struct {
	st    *token.State
	logic Logic
	log   *journal.Log
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithJournal attaches a notification journal.
func WithJournal(l *journal.Log) Option {
	return func(p *Proxy) { p.log = l }
}

// NewProxy binds the initial logic to st, running its one-shot
// initialization if the state has never been initialized.
func NewProxy(st *token.State, logic Logic, opts ...Option) (*Proxy, error) {
	if logic == nil {
		return nil, ErrNilLogic
	}
	p := &Proxy{st: st, logic: logic}
	for _, opt := range opts {
		opt(p)
	}
	if !st.Initialized {
		if err := logic.Init(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Logic returns the current logic module.
func (p *Proxy) Logic() Logic { return p.logic }

// Version returns the persistent logic version pointer.
func (p *Proxy) Version() string { return p.st.Version }

// Upgrade repoints the proxy at next. Admin only. The optional post call
// runs against the new logic with the existing state; if it fails, the
// swap and any state it touched are rolled back and the error surfaces.
func (p *Proxy) Upgrade(caller account.Address, next Logic, post func(Logic) error) error {
	if next == nil {
		return ErrNilLogic
	}
	if !p.st.Roles.Has(access.RoleAdmin, caller) {
		return ErrUnauthorizedUpgrade
	}

	previous := p.logic
	previousVersion := p.st.Version
	p.logic = next
	p.st.Version = next.Version()

	if post != nil {
		snapshot := p.st.Clone()
		if err := post(next); err != nil {
			*p.st = *snapshot
			p.logic = previous
			p.st.Version = previousVersion
			return fmt.Errorf("upgrade: post-upgrade call: %w", err)
		}
	}

	if p.log != nil {
		p.log.Record(journal.Event{
			Kind: journal.KindUpgraded,
			From: caller,
			Detail: map[string]string{
				"previous": previousVersion,
				"next":     p.st.Version,
			},
		})
	}
	return nil
}
