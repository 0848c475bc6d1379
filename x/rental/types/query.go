package types

import (
	"context"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryParamsRequest requests the module parameters
type QueryParamsRequest struct{}

// QueryParamsResponse returns the module parameters
type QueryParamsResponse struct {
	Params Params `protobuf:"bytes,1,opt,name=params,proto3" json:"params"`
}

// QueryRegistryRequest requests the registry metadata record
type QueryRegistryRequest struct{}

// QueryRegistryResponse returns the oracle record created at bootstrap
type QueryRegistryResponse struct {
	Oracle   Oracle `protobuf:"bytes,1,opt,name=oracle,proto3" json:"oracle"`
	AppCount uint64 `protobuf:"varint,2,opt,name=app_count,json=appCount,proto3" json:"app_count,omitempty"`
}

// QueryAppRequest requests a single app by id
type QueryAppRequest struct {
	AppId uint64 `protobuf:"varint,1,opt,name=app_id,json=appId,proto3" json:"app_id,omitempty"`
}

// QueryAppResponse returns a single app
type QueryAppResponse struct {
	App App `protobuf:"bytes,1,opt,name=app,proto3" json:"app"`
}

// QueryAppsRequest requests the app listing with pagination
type QueryAppsRequest struct {
	Pagination *query.PageRequest `protobuf:"bytes,1,opt,name=pagination,proto3" json:"pagination,omitempty"`
}

// QueryAppsResponse returns a page of apps
type QueryAppsResponse struct {
	Apps       []App               `protobuf:"bytes,1,rep,name=apps,proto3" json:"apps"`
	Pagination *query.PageResponse `protobuf:"bytes,2,opt,name=pagination,proto3" json:"pagination,omitempty"`
}

// QueryEscrowAccountRequest requests a subscriber's escrow account
type QueryEscrowAccountRequest struct {
	Address string `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
}

// QueryEscrowAccountResponse returns a subscriber's escrow account
type QueryEscrowAccountResponse struct {
	EscrowAccount EscrowAccount `protobuf:"bytes,1,opt,name=escrow_account,json=escrowAccount,proto3" json:"escrow_account"`
}

// QuerySubscriptionRequest requests one subscription by owner and id
type QuerySubscriptionRequest struct {
	Subscriber     string `protobuf:"bytes,1,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	SubscriptionId uint64 `protobuf:"varint,2,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
}

// QuerySubscriptionResponse returns one subscription
type QuerySubscriptionResponse struct {
	Subscription Subscription `protobuf:"bytes,1,opt,name=subscription,proto3" json:"subscription"`
}

// QuerySubscriptionsRequest requests a subscriber's subscriptions with
// pagination
type QuerySubscriptionsRequest struct {
	Subscriber string             `protobuf:"bytes,1,opt,name=subscriber,proto3" json:"subscriber,omitempty"`
	Pagination *query.PageRequest `protobuf:"bytes,2,opt,name=pagination,proto3" json:"pagination,omitempty"`
}

// QuerySubscriptionsResponse returns a page of subscriptions
type QuerySubscriptionsResponse struct {
	Subscriptions []Subscription      `protobuf:"bytes,1,rep,name=subscriptions,proto3" json:"subscriptions"`
	Pagination    *query.PageResponse `protobuf:"bytes,2,opt,name=pagination,proto3" json:"pagination,omitempty"`
}

// QueryWorkerNonceRequest requests a worker's current replay nonce by
// hex-encoded identity key
type QueryWorkerNonceRequest struct {
	WorkerKey string `protobuf:"bytes,1,opt,name=worker_key,json=workerKey,proto3" json:"worker_key,omitempty"`
}

// QueryWorkerNonceResponse returns a worker's current replay nonce
type QueryWorkerNonceResponse struct {
	Nonce uint64 `protobuf:"varint,1,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

// QueryServer is the rental Query service
type QueryServer interface {
	Params(context.Context, *QueryParamsRequest) (*QueryParamsResponse, error)
	Registry(context.Context, *QueryRegistryRequest) (*QueryRegistryResponse, error)
	App(context.Context, *QueryAppRequest) (*QueryAppResponse, error)
	Apps(context.Context, *QueryAppsRequest) (*QueryAppsResponse, error)
	EscrowAccount(context.Context, *QueryEscrowAccountRequest) (*QueryEscrowAccountResponse, error)
	Subscription(context.Context, *QuerySubscriptionRequest) (*QuerySubscriptionResponse, error)
	Subscriptions(context.Context, *QuerySubscriptionsRequest) (*QuerySubscriptionsResponse, error)
	WorkerNonce(context.Context, *QueryWorkerNonceRequest) (*QueryWorkerNonceResponse, error)
}

// Proto plumbing for the query types.

func (m *QueryParamsRequest) Reset()        { *m = QueryParamsRequest{} }
func (m *QueryParamsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryParamsRequest) ProtoMessage()   {}
func (*QueryParamsRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryParamsRequest"
}

func (m *QueryParamsResponse) Reset()        { *m = QueryParamsResponse{} }
func (m *QueryParamsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryParamsResponse) ProtoMessage()   {}
func (*QueryParamsResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryParamsResponse"
}

func (m *QueryRegistryRequest) Reset()        { *m = QueryRegistryRequest{} }
func (m *QueryRegistryRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryRegistryRequest) ProtoMessage()   {}
func (*QueryRegistryRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryRegistryRequest"
}

func (m *QueryRegistryResponse) Reset()        { *m = QueryRegistryResponse{} }
func (m *QueryRegistryResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryRegistryResponse) ProtoMessage()   {}
func (*QueryRegistryResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryRegistryResponse"
}

func (m *QueryAppRequest) Reset()        { *m = QueryAppRequest{} }
func (m *QueryAppRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryAppRequest) ProtoMessage()   {}
func (*QueryAppRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryAppRequest"
}

func (m *QueryAppResponse) Reset()        { *m = QueryAppResponse{} }
func (m *QueryAppResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryAppResponse) ProtoMessage()   {}
func (*QueryAppResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryAppResponse"
}

func (m *QueryAppsRequest) Reset()        { *m = QueryAppsRequest{} }
func (m *QueryAppsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryAppsRequest) ProtoMessage()   {}
func (*QueryAppsRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryAppsRequest"
}

func (m *QueryAppsResponse) Reset()        { *m = QueryAppsResponse{} }
func (m *QueryAppsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryAppsResponse) ProtoMessage()   {}
func (*QueryAppsResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryAppsResponse"
}

func (m *QueryEscrowAccountRequest) Reset()        { *m = QueryEscrowAccountRequest{} }
func (m *QueryEscrowAccountRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryEscrowAccountRequest) ProtoMessage()   {}
func (*QueryEscrowAccountRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryEscrowAccountRequest"
}

func (m *QueryEscrowAccountResponse) Reset()        { *m = QueryEscrowAccountResponse{} }
func (m *QueryEscrowAccountResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryEscrowAccountResponse) ProtoMessage()   {}
func (*QueryEscrowAccountResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryEscrowAccountResponse"
}

func (m *QuerySubscriptionRequest) Reset()        { *m = QuerySubscriptionRequest{} }
func (m *QuerySubscriptionRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QuerySubscriptionRequest) ProtoMessage()   {}
func (*QuerySubscriptionRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QuerySubscriptionRequest"
}

func (m *QuerySubscriptionResponse) Reset()        { *m = QuerySubscriptionResponse{} }
func (m *QuerySubscriptionResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QuerySubscriptionResponse) ProtoMessage()   {}
func (*QuerySubscriptionResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QuerySubscriptionResponse"
}

func (m *QuerySubscriptionsRequest) Reset()        { *m = QuerySubscriptionsRequest{} }
func (m *QuerySubscriptionsRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QuerySubscriptionsRequest) ProtoMessage()   {}
func (*QuerySubscriptionsRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QuerySubscriptionsRequest"
}

func (m *QuerySubscriptionsResponse) Reset()        { *m = QuerySubscriptionsResponse{} }
func (m *QuerySubscriptionsResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QuerySubscriptionsResponse) ProtoMessage()   {}
func (*QuerySubscriptionsResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QuerySubscriptionsResponse"
}

func (m *QueryWorkerNonceRequest) Reset()        { *m = QueryWorkerNonceRequest{} }
func (m *QueryWorkerNonceRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryWorkerNonceRequest) ProtoMessage()   {}
func (*QueryWorkerNonceRequest) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryWorkerNonceRequest"
}

func (m *QueryWorkerNonceResponse) Reset()        { *m = QueryWorkerNonceResponse{} }
func (m *QueryWorkerNonceResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*QueryWorkerNonceResponse) ProtoMessage()   {}
func (*QueryWorkerNonceResponse) XXX_MessageName() string {
	return "vaultmesh.rental.v1.QueryWorkerNonceResponse"
}
