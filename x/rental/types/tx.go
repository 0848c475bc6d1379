package types

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
)

// MsgInitRegistry bootstraps the marketplace registry: it records the oracle
// consensus key and creates the app counter. Authority-gated, one shot.
type MsgInitRegistry struct {
	Authority        string `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	ConsensusKey     string `protobuf:"bytes,2,opt,name=consensus_key,json=consensusKey,proto3" json:"consensus_key,omitempty"`
	AttestationProof string `protobuf:"bytes,3,opt,name=attestation_proof,json=attestationProof,proto3" json:"attestation_proof,omitempty"`
}

// MsgInitRegistryResponse is the MsgInitRegistry response
type MsgInitRegistryResponse struct{}

// MsgAnnounceWorker publishes a worker's attestation proof, transit key, and
// peer address so subscribers can find it. Stateless: the announce event is
// the whole effect.
type MsgAnnounceWorker struct {
	Worker           string `protobuf:"bytes,1,opt,name=worker,proto3" json:"worker,omitempty"`
	AttestationProof string `protobuf:"bytes,2,opt,name=attestation_proof,json=attestationProof,proto3" json:"attestation_proof,omitempty"`
	TransitKey       string `protobuf:"bytes,3,opt,name=transit_key,json=transitKey,proto3" json:"transit_key,omitempty"`
	PeerAddress      string `protobuf:"bytes,4,opt,name=peer_address,json=peerAddress,proto3" json:"peer_address,omitempty"`
}

// MsgAnnounceWorkerResponse is the MsgAnnounceWorker response
type MsgAnnounceWorkerResponse struct{}

// MsgRegisterApp lists a new app under the next counter value. The payout
// address must be the creator's own account.
type MsgRegisterApp struct {
	Creator       string   `protobuf:"bytes,1,opt,name=creator,proto3" json:"creator,omitempty"`
	ManifestHash  string   `protobuf:"bytes,2,opt,name=manifest_hash,json=manifestHash,proto3" json:"manifest_hash,omitempty"`
	BasePrice     math.Int `protobuf:"bytes,3,opt,name=base_price,json=basePrice,proto3,customtype=cosmossdk.io/math.Int" json:"base_price"`
	PayoutAddress string   `protobuf:"bytes,4,opt,name=payout_address,json=payoutAddress,proto3" json:"payout_address,omitempty"`
}

// MsgRegisterAppResponse returns the allocated app id
type MsgRegisterAppResponse struct {
	AppId uint64 `protobuf:"varint,1,opt,name=app_id,json=appId,proto3" json:"app_id,omitempty"`
}

// MsgDeposit moves coins from the depositor's bank balance into module
// escrow and credits the depositor's escrow account.
type MsgDeposit struct {
	Depositor string   `protobuf:"bytes,1,opt,name=depositor,proto3" json:"depositor,omitempty"`
	Amount    math.Int `protobuf:"bytes,2,opt,name=amount,proto3,customtype=cosmossdk.io/math.Int" json:"amount"`
}

// MsgDepositResponse returns the escrow balance after the deposit
type MsgDepositResponse struct {
	Balance math.Int `protobuf:"bytes,1,opt,name=balance,proto3,customtype=cosmossdk.io/math.Int" json:"balance"`
}

// MsgOpenSubscription opens a rental subscription for an app and starts the
// bidding window at the max price ceiling.
type MsgOpenSubscription struct {
	Subscriber string   `protobuf:"bytes,1,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	AppId      uint64   `protobuf:"varint,2,opt,name=app_id,json=appId,proto3" json:"app_id,omitempty"`
	ParamsHash string   `protobuf:"bytes,3,opt,name=params_hash,json=paramsHash,proto3" json:"params_hash,omitempty"`
	MaxPrice   math.Int `protobuf:"bytes,4,opt,name=max_price,json=maxPrice,proto3,customtype=cosmossdk.io/math.Int" json:"max_price"`
}

// MsgOpenSubscriptionResponse returns the allocated subscription id and the
// bid window deadline
type MsgOpenSubscriptionResponse struct {
	SubscriptionId uint64 `protobuf:"varint,1,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
	BidEndTime     int64  `protobuf:"varint,2,opt,name=bid_end_time,json=bidEndTime,proto3" json:"bid_end_time,omitempty"`
}

// MsgPlaceBid is an authenticated underbid on an open subscription. The
// signature and record must attest the worker identity and its current
// replay nonce under the registry's oracle key.
type MsgPlaceBid struct {
	Worker         string   `protobuf:"bytes,1,opt,name=worker,proto3" json:"worker,omitempty"`
	WorkerKey      string   `protobuf:"bytes,2,opt,name=worker_key,json=workerKey,proto3" json:"worker_key,omitempty"`
	ConsensusKey   string   `protobuf:"bytes,3,opt,name=consensus_key,json=consensusKey,proto3" json:"consensus_key,omitempty"`
	Subscriber     string   `protobuf:"bytes,4,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	SubscriptionId uint64   `protobuf:"varint,5,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
	BidAmount      math.Int `protobuf:"bytes,6,opt,name=bid_amount,json=bidAmount,proto3,customtype=cosmossdk.io/math.Int" json:"bid_amount"`
	Signature      []byte   `protobuf:"bytes,7,opt,name=signature,proto3" json:"signature,omitempty"`
	Record         []byte   `protobuf:"bytes,8,opt,name=record,proto3" json:"record,omitempty"`
}

// MsgPlaceBidResponse reports whether the bid replaced the current winner
type MsgPlaceBidResponse struct {
	Won          bool     `protobuf:"varint,1,opt,name=won,proto3" json:"won,omitempty"`
	CurrentPrice math.Int `protobuf:"bytes,2,opt,name=current_price,json=currentPrice,proto3,customtype=cosmossdk.io/math.Int" json:"current_price"`
}

// MsgClaimBid is the winning worker's authenticated claim after the bid
// window closes. Claiming starts the report cycle.
type MsgClaimBid struct {
	Worker         string `protobuf:"bytes,1,opt,name=worker,proto3" json:"worker,omitempty"`
	WorkerKey      string `protobuf:"bytes,2,opt,name=worker_key,json=workerKey,proto3" json:"worker_key,omitempty"`
	ConsensusKey   string `protobuf:"bytes,3,opt,name=consensus_key,json=consensusKey,proto3" json:"consensus_key,omitempty"`
	Subscriber     string `protobuf:"bytes,4,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	SubscriptionId uint64 `protobuf:"varint,5,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
	Signature      []byte `protobuf:"bytes,6,opt,name=signature,proto3" json:"signature,omitempty"`
	Record         []byte `protobuf:"bytes,7,opt,name=record,proto3" json:"record,omitempty"`
}

// MsgClaimBidResponse is the MsgClaimBid response
type MsgClaimBidResponse struct{}

// MsgReportWork is the assigned worker's authenticated liveness report.
// An in-time report with the expected work nonce pays one cycle out of the
// subscriber's escrow.
type MsgReportWork struct {
	Worker         string `protobuf:"bytes,1,opt,name=worker,proto3" json:"worker,omitempty"`
	WorkerKey      string `protobuf:"bytes,2,opt,name=worker_key,json=workerKey,proto3" json:"worker_key,omitempty"`
	ConsensusKey   string `protobuf:"bytes,3,opt,name=consensus_key,json=consensusKey,proto3" json:"consensus_key,omitempty"`
	Subscriber     string `protobuf:"bytes,4,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	SubscriptionId uint64 `protobuf:"varint,5,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
	WorkNonce      uint64 `protobuf:"varint,6,opt,name=work_nonce,json=workNonce,proto3" json:"work_nonce,omitempty"`
	Signature      []byte `protobuf:"bytes,7,opt,name=signature,proto3" json:"signature,omitempty"`
	Record         []byte `protobuf:"bytes,8,opt,name=record,proto3" json:"record,omitempty"`
}

// MsgReportWorkResponse reports which settlement branch the report took
type MsgReportWorkResponse struct {
	Paid    bool `protobuf:"varint,1,opt,name=paid,proto3" json:"paid,omitempty"`
	Restart bool `protobuf:"varint,2,opt,name=restart,proto3" json:"restart,omitempty"`
	Closed  bool `protobuf:"varint,3,opt,name=closed,proto3" json:"closed,omitempty"`
}

// MsgCloseSubscription closes a subscription for good. Only the subscriber
// may close; remaining escrow stays withdrawable for future subscriptions.
type MsgCloseSubscription struct {
	Subscriber     string `protobuf:"bytes,1,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	SubscriptionId uint64 `protobuf:"varint,2,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
}

// MsgCloseSubscriptionResponse is the MsgCloseSubscription response
type MsgCloseSubscriptionResponse struct{}

// MsgUpdateParams updates the module parameters. Authority-gated.
type MsgUpdateParams struct {
	Authority string `protobuf:"bytes,1,opt,name=authority,proto3" json:"authority,omitempty"`
	Params    Params `protobuf:"bytes,2,opt,name=params,proto3" json:"params"`
}

// MsgUpdateParamsResponse is the MsgUpdateParams response
type MsgUpdateParamsResponse struct{}

// MsgServer is the rental Msg service
type MsgServer interface {
	InitRegistry(context.Context, *MsgInitRegistry) (*MsgInitRegistryResponse, error)
	AnnounceWorker(context.Context, *MsgAnnounceWorker) (*MsgAnnounceWorkerResponse, error)
	RegisterApp(context.Context, *MsgRegisterApp) (*MsgRegisterAppResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	OpenSubscription(context.Context, *MsgOpenSubscription) (*MsgOpenSubscriptionResponse, error)
	PlaceBid(context.Context, *MsgPlaceBid) (*MsgPlaceBidResponse, error)
	ClaimBid(context.Context, *MsgClaimBid) (*MsgClaimBidResponse, error)
	ReportWork(context.Context, *MsgReportWork) (*MsgReportWorkResponse, error)
	CloseSubscription(context.Context, *MsgCloseSubscription) (*MsgCloseSubscriptionResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}

// Proto plumbing so the hand-rolled message types satisfy the codec
// interfaces the SDK registers them under.

func (m *MsgInitRegistry) Reset()        { *m = MsgInitRegistry{} }
func (m *MsgInitRegistry) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgInitRegistry) ProtoMessage()   {}
func (*MsgInitRegistry) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgInitRegistry"
}

func (m *MsgInitRegistryResponse) Reset()        { *m = MsgInitRegistryResponse{} }
func (m *MsgInitRegistryResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgInitRegistryResponse) ProtoMessage()   {}
func (*MsgInitRegistryResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgInitRegistryResponse"
}

func (m *MsgAnnounceWorker) Reset()        { *m = MsgAnnounceWorker{} }
func (m *MsgAnnounceWorker) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgAnnounceWorker) ProtoMessage()   {}
func (*MsgAnnounceWorker) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgAnnounceWorker"
}

func (m *MsgAnnounceWorkerResponse) Reset()        { *m = MsgAnnounceWorkerResponse{} }
func (m *MsgAnnounceWorkerResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgAnnounceWorkerResponse) ProtoMessage()   {}
func (*MsgAnnounceWorkerResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgAnnounceWorkerResponse"
}

func (m *MsgRegisterApp) Reset()        { *m = MsgRegisterApp{} }
func (m *MsgRegisterApp) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgRegisterApp) ProtoMessage()   {}
func (*MsgRegisterApp) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgRegisterApp"
}

func (m *MsgRegisterAppResponse) Reset()        { *m = MsgRegisterAppResponse{} }
func (m *MsgRegisterAppResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgRegisterAppResponse) ProtoMessage()   {}
func (*MsgRegisterAppResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgRegisterAppResponse"
}

func (m *MsgDeposit) Reset()        { *m = MsgDeposit{} }
func (m *MsgDeposit) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgDeposit) ProtoMessage()   {}
func (*MsgDeposit) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgDeposit"
}

func (m *MsgDepositResponse) Reset()        { *m = MsgDepositResponse{} }
func (m *MsgDepositResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgDepositResponse) ProtoMessage()   {}
func (*MsgDepositResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgDepositResponse"
}

func (m *MsgOpenSubscription) Reset()        { *m = MsgOpenSubscription{} }
func (m *MsgOpenSubscription) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgOpenSubscription) ProtoMessage()   {}
func (*MsgOpenSubscription) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgOpenSubscription"
}

func (m *MsgOpenSubscriptionResponse) Reset()        { *m = MsgOpenSubscriptionResponse{} }
func (m *MsgOpenSubscriptionResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgOpenSubscriptionResponse) ProtoMessage()   {}
func (*MsgOpenSubscriptionResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgOpenSubscriptionResponse"
}

func (m *MsgPlaceBid) Reset()        { *m = MsgPlaceBid{} }
func (m *MsgPlaceBid) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgPlaceBid) ProtoMessage()   {}
func (*MsgPlaceBid) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgPlaceBid"
}

func (m *MsgPlaceBidResponse) Reset()        { *m = MsgPlaceBidResponse{} }
func (m *MsgPlaceBidResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgPlaceBidResponse) ProtoMessage()   {}
func (*MsgPlaceBidResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgPlaceBidResponse"
}

func (m *MsgClaimBid) Reset()        { *m = MsgClaimBid{} }
func (m *MsgClaimBid) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgClaimBid) ProtoMessage()   {}
func (*MsgClaimBid) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgClaimBid"
}

func (m *MsgClaimBidResponse) Reset()        { *m = MsgClaimBidResponse{} }
func (m *MsgClaimBidResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgClaimBidResponse) ProtoMessage()   {}
func (*MsgClaimBidResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgClaimBidResponse"
}

func (m *MsgReportWork) Reset()        { *m = MsgReportWork{} }
func (m *MsgReportWork) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgReportWork) ProtoMessage()   {}
func (*MsgReportWork) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgReportWork"
}

func (m *MsgReportWorkResponse) Reset()        { *m = MsgReportWorkResponse{} }
func (m *MsgReportWorkResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgReportWorkResponse) ProtoMessage()   {}
func (*MsgReportWorkResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgReportWorkResponse"
}

func (m *MsgCloseSubscription) Reset()        { *m = MsgCloseSubscription{} }
func (m *MsgCloseSubscription) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgCloseSubscription) ProtoMessage()   {}
func (*MsgCloseSubscription) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgCloseSubscription"
}

func (m *MsgCloseSubscriptionResponse) Reset()        { *m = MsgCloseSubscriptionResponse{} }
func (m *MsgCloseSubscriptionResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgCloseSubscriptionResponse) ProtoMessage()   {}
func (*MsgCloseSubscriptionResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgCloseSubscriptionResponse"
}

func (m *MsgUpdateParams) Reset()        { *m = MsgUpdateParams{} }
func (m *MsgUpdateParams) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgUpdateParams) ProtoMessage()   {}
func (*MsgUpdateParams) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgUpdateParams"
}

func (m *MsgUpdateParamsResponse) Reset()        { *m = MsgUpdateParamsResponse{} }
func (m *MsgUpdateParamsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MsgUpdateParamsResponse) ProtoMessage()   {}
func (*MsgUpdateParamsResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.MsgUpdateParamsResponse"
}

func (p *Params) Reset()        { *p = Params{} }
func (p *Params) String() string { return fmt.Sprintf("%+v", *p) }
func (*Params) ProtoMessage()   {}
func (*Params) XXX_MessageName() string {
	return "vaultmesh.rental.v1.Params"
}
