// Package relay implements the meta-transaction trust boundary. A Forwarder
// accepts requests signed offline by an originator, verifies them against
// its own signature domain, and dispatches them so the ledger sees the
// originator as the effective caller. The forwarder's address is part of
// the domain: deploying a replacement forwarder invalidates every request
// signed against the old one.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/account"
	"github.com/pflow-xyz/go-ledger/journal"
	"github.com/pflow-xyz/go-ledger/sigauth"
	"github.com/pflow-xyz/go-ledger/token"
)

var (
	// ErrExpiredDeadline reports a request past its validity window.
	ErrExpiredDeadline = errors.New("relay: request deadline has passed")

	// ErrNonceReuse reports a request whose nonce does not equal the
	// signer's current counter. A consumed request always trips this.
	ErrNonceReuse = errors.New("relay: request nonce does not match the signer's counter")

	// ErrUnknownMethod reports call data naming an unregistered method.
	ErrUnknownMethod = errors.New("relay: no handler registered for method")
)

// ForwardRequest is a relayed call authorization signed by From.
type ForwardRequest struct {
	From      account.Address `json:"from"`
	To        account.Address `json:"to"`
	Value     *uint256.Int    `json:"value"`
	Gas       uint64          `json:"gas"`
	Nonce     uint64          `json:"nonce"`
	Deadline  uint64          `json:"deadline"`
	Data      []byte          `json:"data"`
	Signature []byte          `json:"signature"`
}

// Call is the decoded shape of ForwardRequest.Data.
type Call struct {
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args,omitempty"`
}

// Handler executes one dispatched method on behalf of from. The gas budget
// is forwarded verbatim; this runtime does no metering.
type Handler func(from account.Address, value *uint256.Int, gas uint64, args json.RawMessage) error

// Forwarder verifies and dispatches forward requests. Signer nonces live in
// the shared ledger state, so permits and relayed calls consume the same
// counter.
type Forwarder struct {
	addr     account.Address
	st       *token.State
	handlers map[string]Handler
	log      *journal.Log
	now      func() time.Time
}

// Option configures a Forwarder.
type Option func(*Forwarder)

// WithJournal attaches a notification journal.
func WithJournal(l *journal.Log) Option {
	return func(f *Forwarder) { f.log = l }
}

// WithClock overrides the deadline clock.
func WithClock(now func() time.Time) Option {
	return func(f *Forwarder) { f.now = now }
}

// New creates a forwarder at addr over the ledger state st.
func New(addr account.Address, st *token.State, opts ...Option) *Forwarder {
	f := &Forwarder{
		addr:     addr,
		st:       st,
		handlers: make(map[string]Handler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Address returns the forwarder's own identity.
func (f *Forwarder) Address() account.Address { return f.addr }

// Domain returns the signature domain requests must be signed against.
func (f *Forwarder) Domain() sigauth.Domain {
	return sigauth.Domain{
		Name:              f.st.Name,
		Version:           token.SigningVersion,
		ChainID:           f.st.ChainID,
		VerifyingContract: f.addr,
	}
}

// Register installs the handler for a method name.
func (f *Forwarder) Register(method string, h Handler) {
	f.handlers[method] = h
}

// Digest returns the signable digest of req under this forwarder's domain.
func (f *Forwarder) Digest(req *ForwardRequest) [32]byte {
	value := req.Value
	if value == nil {
		value = new(uint256.Int)
	}
	structHash := sigauth.ForwardHash(req.From, req.To, value, req.Gas, req.Nonce, req.Deadline, req.Data)
	return sigauth.Digest(f.Domain(), structHash)
}

// Verify checks deadline, nonce and signature without consuming anything.
func (f *Forwarder) Verify(req *ForwardRequest) error {
	if uint64(f.now().Unix()) > req.Deadline {
		return ErrExpiredDeadline
	}
	if req.Nonce != f.st.Nonces[req.From] {
		return ErrNonceReuse
	}
	signer, err := sigauth.Recover(f.Digest(req), req.Signature)
	if err != nil {
		return err
	}
	if signer != req.From {
		return sigauth.ErrInvalidSignature
	}
	return nil
}

// Execute verifies req, consumes the signer's nonce and dispatches the call
// data. A dispatch failure surfaces to the relay caller, but the nonce
// increment is not rolled back: a request that failed for reasons unrelated
// to authorization must not become replayable.
func (f *Forwarder) Execute(req *ForwardRequest) error {
	if err := f.Verify(req); err != nil {
		return err
	}
	f.st.Nonces[req.From]++

	var call Call
	if err := json.Unmarshal(req.Data, &call); err != nil {
		return fmt.Errorf("relay: decode call data: %w", err)
	}
	handler, ok := f.handlers[call.Method]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMethod, call.Method)
	}

	f.emit(req, call.Method)
	if err := handler(req.From, req.Value, req.Gas, call.Args); err != nil {
		return fmt.Errorf("relay: dispatch %s: %w", call.Method, err)
	}
	return nil
}

func (f *Forwarder) emit(req *ForwardRequest, method string) {
	if f.log == nil {
		return
	}
	var value *uint256.Int
	if req.Value != nil {
		value = new(uint256.Int).Set(req.Value)
	}
	f.log.Record(journal.Event{
		Kind:   journal.KindForwarded,
		From:   req.From,
		To:     req.To,
		Amount: value,
		Detail: map[string]string{
			"method": method,
			"gas":    fmt.Sprintf("%d", req.Gas),
		},
	})
}
