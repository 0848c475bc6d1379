package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Oracle is the registry metadata record created once at bootstrap. The
// consensus key is the Ed25519 public key every worker attestation must be
// signed with; it never changes after initialization.
type Oracle struct {
	ConsensusKey     string `protobuf:"bytes,1,opt,name=consensus_key,json=consensusKey,proto3" json:"consensus_key,omitempty"`
	AttestationProof string `protobuf:"bytes,2,opt,name=attestation_proof,json=attestationProof,proto3" json:"attestation_proof,omitempty"`
	CreatedAt        int64  `protobuf:"varint,3,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

// App is an immutable marketplace listing. ManifestHash points at the
// runnable content; BasePrice is the per-cycle ceiling suggested by the
// creator. PayoutAddress receives nothing directly, it only proves that the
// creator controls the account named at registration time.
type App struct {
	ID            uint64   `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	ManifestHash  string   `protobuf:"bytes,2,opt,name=manifest_hash,json=manifestHash,proto3" json:"manifest_hash,omitempty"`
	BasePrice     math.Int `protobuf:"bytes,3,opt,name=base_price,json=basePrice,proto3,customtype=cosmossdk.io/math.Int" json:"base_price"`
	Creator       string   `protobuf:"bytes,4,opt,name=creator,proto3" json:"creator,omitempty"`
	PayoutAddress string   `protobuf:"bytes,5,opt,name=payout_address,json=payoutAddress,proto3" json:"payout_address,omitempty"`
	CreatedAt     int64    `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

// EscrowAccount tracks a subscriber's prepaid balance held by the module
// account. Balance never goes negative; SubscriptionCount is the next
// sequence index for this subscriber and only grows.
type EscrowAccount struct {
	Owner             string   `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Balance           math.Int `protobuf:"bytes,2,opt,name=balance,proto3,customtype=cosmossdk.io/math.Int" json:"balance"`
	SubscriptionCount uint64   `protobuf:"varint,3,opt,name=subscription_count,json=subscriptionCount,proto3" json:"subscription_count,omitempty"`
}

// Subscription is a single rental agreement between a subscriber and the
// worker that wins its auction. CurrentPrice starts at MaxPrice and only
// moves down while bids are open. Executor and ExecutorKey are empty until
// a bid wins; Assigned flips once on a successful claim. WorkNonce counts
// accepted liveness reports. Restart marks a fault: payments pause but
// reporting continues. Closed is terminal.
type Subscription struct {
	ID             uint64   `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Subscriber     string   `protobuf:"bytes,2,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	AppID          uint64   `protobuf:"varint,3,opt,name=app_id,json=appId,proto3" json:"app_id,omitempty"`
	ParamsHash     string   `protobuf:"bytes,4,opt,name=params_hash,json=paramsHash,proto3" json:"params_hash,omitempty"`
	MaxPrice       math.Int `protobuf:"bytes,5,opt,name=max_price,json=maxPrice,proto3,customtype=cosmossdk.io/math.Int" json:"max_price"`
	CurrentPrice   math.Int `protobuf:"bytes,6,opt,name=current_price,json=currentPrice,proto3,customtype=cosmossdk.io/math.Int" json:"current_price"`
	Assigned       bool     `protobuf:"varint,7,opt,name=assigned,proto3" json:"assigned,omitempty"`
	Executor       string   `protobuf:"bytes,8,opt,name=executor,proto3" json:"executor,omitempty"`
	ExecutorKey    string   `protobuf:"bytes,9,opt,name=executor_key,json=executorKey,proto3" json:"executor_key,omitempty"`
	BidEndTime     int64    `protobuf:"varint,10,opt,name=bid_end_time,json=bidEndTime,proto3" json:"bid_end_time,omitempty"`
	WorkNonce      uint64   `protobuf:"varint,11,opt,name=work_nonce,json=workNonce,proto3" json:"work_nonce,omitempty"`
	LastReportTime int64    `protobuf:"varint,12,opt,name=last_report_time,json=lastReportTime,proto3" json:"last_report_time,omitempty"`
	Restart        bool     `protobuf:"varint,13,opt,name=restart,proto3" json:"restart,omitempty"`
	Closed         bool     `protobuf:"varint,14,opt,name=closed,proto3" json:"closed,omitempty"`
}

// HasExecutor reports whether any bid has been recorded as the current
// winner. An empty executor key is the unassigned sentinel.
func (s Subscription) HasExecutor() bool {
	return s.ExecutorKey != ""
}

func (m *Oracle) Reset()         { *m = Oracle{} }
func (m *Oracle) String() string { return fmt.Sprintf("%+v", *m) }
func (*Oracle) ProtoMessage()    {}
func (*Oracle) XXX_MessageName() string {
	return "vaultmesh.rental.v1.Oracle"
}

func (m *App) Reset()         { *m = App{} }
func (m *App) String() string { return fmt.Sprintf("%+v", *m) }
func (*App) ProtoMessage()    {}
func (*App) XXX_MessageName() string {
	return "vaultmesh.rental.v1.App"
}

func (m *EscrowAccount) Reset()         { *m = EscrowAccount{} }
func (m *EscrowAccount) String() string { return fmt.Sprintf("%+v", *m) }
func (*EscrowAccount) ProtoMessage()    {}
func (*EscrowAccount) XXX_MessageName() string {
	return "vaultmesh.rental.v1.EscrowAccount"
}

func (m *Subscription) Reset()         { *m = Subscription{} }
func (m *Subscription) String() string { return fmt.Sprintf("%+v", *m) }
func (*Subscription) ProtoMessage()    {}
func (*Subscription) XXX_MessageName() string {
	return "vaultmesh.rental.v1.Subscription"
}
