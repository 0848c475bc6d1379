package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// WorkerNonceRecord pairs a worker identity key with its replay nonce for
// genesis import and export.
type WorkerNonceRecord struct {
	WorkerKey string `protobuf:"bytes,1,opt,name=worker_key,json=workerKey,proto3" json:"worker_key,omitempty"`
	Nonce     uint64 `protobuf:"varint,2,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

// GenesisState is the full rental module state. A nil Oracle means the
// registry has not been bootstrapped yet.
type GenesisState struct {
	Params         Params              `protobuf:"bytes,1,opt,name=params,proto3" json:"params"`
	Oracle         *Oracle             `protobuf:"bytes,2,opt,name=oracle,proto3" json:"oracle,omitempty"`
	AppCount       uint64              `protobuf:"varint,3,opt,name=app_count,json=appCount,proto3" json:"app_count,omitempty"`
	Apps           []App               `protobuf:"bytes,4,rep,name=apps,proto3" json:"apps"`
	EscrowAccounts []EscrowAccount     `protobuf:"bytes,5,rep,name=escrow_accounts,json=escrowAccounts,proto3" json:"escrow_accounts"`
	Subscriptions  []Subscription      `protobuf:"bytes,6,rep,name=subscriptions,proto3" json:"subscriptions"`
	WorkerNonces   []WorkerNonceRecord `protobuf:"bytes,7,rep,name=worker_nonces,json=workerNonces,proto3" json:"worker_nonces"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:         DefaultParams(),
		Oracle:         nil,
		AppCount:       0,
		Apps:           []App{},
		EscrowAccounts: []EscrowAccount{},
		Subscriptions:  []Subscription{},
		WorkerNonces:   []WorkerNonceRecord{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	if gs.Oracle != nil {
		if _, err := ParseWorkerKey(gs.Oracle.ConsensusKey); err != nil {
			return fmt.Errorf("invalid oracle consensus key: %w", err)
		}
	} else {
		// Nothing downstream of bootstrap may exist before bootstrap.
		if gs.AppCount != 0 {
			return fmt.Errorf("app count %d without an oracle record", gs.AppCount)
		}
		if len(gs.Apps) != 0 {
			return fmt.Errorf("%d apps without an oracle record", len(gs.Apps))
		}
	}

	seenAppIds := make(map[uint64]bool)
	maxAppId := uint64(0)

	for i, app := range gs.Apps {
		if seenAppIds[app.ID] {
			return fmt.Errorf("app %d: duplicate app id %d", i, app.ID)
		}
		seenAppIds[app.ID] = true

		if app.ID > maxAppId {
			maxAppId = app.ID
		}

		if app.ManifestHash == "" {
			return fmt.Errorf("app %d (id=%d): manifest hash cannot be empty", i, app.ID)
		}

		if _, err := sdk.AccAddressFromBech32(app.Creator); err != nil {
			return fmt.Errorf("app %d (id=%d): invalid creator address %s: %w", i, app.ID, app.Creator, err)
		}

		if _, err := sdk.AccAddressFromBech32(app.PayoutAddress); err != nil {
			return fmt.Errorf("app %d (id=%d): invalid payout address %s: %w", i, app.ID, app.PayoutAddress, err)
		}

		if app.BasePrice.IsNil() || app.BasePrice.IsNegative() {
			return fmt.Errorf("app %d (id=%d): base price must be non-negative", i, app.ID)
		}
	}

	// App ids are allocated from the counter, so the counter must sit past
	// every recorded id.
	if len(gs.Apps) > 0 && gs.AppCount <= maxAppId {
		return fmt.Errorf("app count (%d) must be greater than the highest app id (%d)", gs.AppCount, maxAppId)
	}

	escrowByOwner := make(map[string]EscrowAccount, len(gs.EscrowAccounts))

	for i, acct := range gs.EscrowAccounts {
		if _, err := sdk.AccAddressFromBech32(acct.Owner); err != nil {
			return fmt.Errorf("escrow account %d: invalid owner address %s: %w", i, acct.Owner, err)
		}

		if _, seen := escrowByOwner[acct.Owner]; seen {
			return fmt.Errorf("escrow account %d: duplicate owner %s", i, acct.Owner)
		}
		escrowByOwner[acct.Owner] = acct

		if acct.Balance.IsNil() || acct.Balance.IsNegative() {
			return fmt.Errorf("escrow account %d (owner=%s): balance must be non-negative", i, acct.Owner)
		}
	}

	seenSubs := make(map[string]bool)

	for i, sub := range gs.Subscriptions {
		if _, err := sdk.AccAddressFromBech32(sub.Subscriber); err != nil {
			return fmt.Errorf("subscription %d: invalid subscriber address %s: %w", i, sub.Subscriber, err)
		}

		subKey := fmt.Sprintf("%s/%d", sub.Subscriber, sub.ID)
		if seenSubs[subKey] {
			return fmt.Errorf("subscription %d: duplicate subscription %s", i, subKey)
		}
		seenSubs[subKey] = true

		acct, ok := escrowByOwner[sub.Subscriber]
		if !ok {
			return fmt.Errorf("subscription %d (%s): subscriber has no escrow account", i, subKey)
		}
		if sub.ID >= acct.SubscriptionCount {
			return fmt.Errorf("subscription %d (%s): id outside subscriber's sequence range %d", i, subKey, acct.SubscriptionCount)
		}

		if !seenAppIds[sub.AppID] {
			return fmt.Errorf("subscription %d (%s): unknown app id %d", i, subKey, sub.AppID)
		}

		if sub.MaxPrice.IsNil() || sub.MaxPrice.IsNegative() {
			return fmt.Errorf("subscription %d (%s): max price must be non-negative", i, subKey)
		}
		if sub.CurrentPrice.IsNil() || sub.CurrentPrice.IsNegative() {
			return fmt.Errorf("subscription %d (%s): current price must be non-negative", i, subKey)
		}
		if sub.CurrentPrice.GT(sub.MaxPrice) {
			return fmt.Errorf("subscription %d (%s): current price exceeds max price", i, subKey)
		}

		if sub.ExecutorKey != "" {
			if _, err := ParseWorkerKey(sub.ExecutorKey); err != nil {
				return fmt.Errorf("subscription %d (%s): invalid executor key: %w", i, subKey, err)
			}
			if _, err := sdk.AccAddressFromBech32(sub.Executor); err != nil {
				return fmt.Errorf("subscription %d (%s): invalid executor address %s: %w", i, subKey, sub.Executor, err)
			}
		} else if sub.Assigned {
			return fmt.Errorf("subscription %d (%s): assigned without an executor", i, subKey)
		}
	}

	seenNonces := make(map[string]bool)

	for i, rec := range gs.WorkerNonces {
		if _, err := ParseWorkerKey(rec.WorkerKey); err != nil {
			return fmt.Errorf("worker nonce %d: invalid worker key: %w", i, err)
		}

		if seenNonces[rec.WorkerKey] {
			return fmt.Errorf("worker nonce %d: duplicate worker key %s", i, rec.WorkerKey)
		}
		seenNonces[rec.WorkerKey] = true
	}

	return nil
}

func (m *WorkerNonceRecord) Reset()         { *m = WorkerNonceRecord{} }
func (m *WorkerNonceRecord) String() string { return fmt.Sprintf("%+v", *m) }
func (*WorkerNonceRecord) ProtoMessage()    {}
func (*WorkerNonceRecord) XXX_MessageName() string {
	return "vaultmesh.rental.v1.WorkerNonceRecord"
}

func (m *GenesisState) Reset()         { *m = GenesisState{} }
func (m *GenesisState) String() string { return fmt.Sprintf("%+v", *m) }
func (*GenesisState) ProtoMessage()    {}
func (*GenesisState) XXX_MessageName() string {
	return "vaultmesh.rental.v1.GenesisState"
}
