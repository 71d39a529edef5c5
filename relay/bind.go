package relay

import (
	"encoding/json"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-ledger/account"
)

// Ledger is the operation surface the forwarder dispatches into. Satisfied
// by *token.Token.
type Ledger interface {
	ResolveCaller(direct, appended account.Address) account.Address
	Transfer(caller, to account.Address, amount *uint256.Int) error
	Approve(caller, spender account.Address, amount *uint256.Int) error
	Tip(caller, to account.Address, amount *uint256.Int) error
	Donate(caller account.Address, amount *uint256.Int) error
	Burn(caller account.Address, amount *uint256.Int) error
}

type transferArgs struct {
	To     account.Address `json:"to"`
	Amount *uint256.Int    `json:"amount"`
}

type approveArgs struct {
	Spender account.Address `json:"spender"`
	Amount  *uint256.Int    `json:"amount"`
}

type amountArgs struct {
	Amount *uint256.Int `json:"amount"`
}

// BindLedger registers the standard ledger methods on a forwarder. Every
// handler resolves the effective caller through the ledger's trust check:
// if this forwarder is not the ledger's trusted relayer, the call executes
// as the forwarder itself rather than as the claimed originator.
func BindLedger(f *Forwarder, l Ledger) {
	f.Register("transfer", func(from account.Address, _ *uint256.Int, _ uint64, raw json.RawMessage) error {
		var args transferArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return err
		}
		return l.Transfer(l.ResolveCaller(f.addr, from), args.To, args.Amount)
	})

	f.Register("approve", func(from account.Address, _ *uint256.Int, _ uint64, raw json.RawMessage) error {
		var args approveArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return err
		}
		return l.Approve(l.ResolveCaller(f.addr, from), args.Spender, args.Amount)
	})

	f.Register("tip", func(from account.Address, _ *uint256.Int, _ uint64, raw json.RawMessage) error {
		var args transferArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return err
		}
		return l.Tip(l.ResolveCaller(f.addr, from), args.To, args.Amount)
	})

	f.Register("donate", func(from account.Address, _ *uint256.Int, _ uint64, raw json.RawMessage) error {
		var args amountArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return err
		}
		return l.Donate(l.ResolveCaller(f.addr, from), args.Amount)
	})

	f.Register("burn", func(from account.Address, _ *uint256.Int, _ uint64, raw json.RawMessage) error {
		var args amountArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return err
		}
		return l.Burn(l.ResolveCaller(f.addr, from), args.Amount)
	})
}

// EncodeCall builds ForwardRequest.Data for a method and its arguments.
func EncodeCall(method string, args any) ([]byte, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Call{Method: method, Args: raw})
}

// TransferArgs builds the argument payload for the transfer and tip
// methods.
func TransferArgs(to account.Address, amount *uint256.Int) any {
	return transferArgs{To: to, Amount: amount}
}

// ApproveArgs builds the argument payload for the approve method.
func ApproveArgs(spender account.Address, amount *uint256.Int) any {
	return approveArgs{Spender: spender, Amount: amount}
}

// AmountArgs builds the argument payload for the donate and burn methods.
func AmountArgs(amount *uint256.Int) any {
	return amountArgs{Amount: amount}
}
