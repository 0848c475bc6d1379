package types

import (
	"context"

	grpc1 "github.com/cosmos/gogoproto/grpc"
	grpc "google.golang.org/grpc"
)

// QueryClient is the client API for Query service.
type QueryClient interface {
	Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error)
	Registry(ctx context.Context, in *QueryRegistryRequest, opts ...grpc.CallOption) (*QueryRegistryResponse, error)
	App(ctx context.Context, in *QueryAppRequest, opts ...grpc.CallOption) (*QueryAppResponse, error)
	Apps(ctx context.Context, in *QueryAppsRequest, opts ...grpc.CallOption) (*QueryAppsResponse, error)
	EscrowAccount(ctx context.Context, in *QueryEscrowAccountRequest, opts ...grpc.CallOption) (*QueryEscrowAccountResponse, error)
	Subscription(ctx context.Context, in *QuerySubscriptionRequest, opts ...grpc.CallOption) (*QuerySubscriptionResponse, error)
	Subscriptions(ctx context.Context, in *QuerySubscriptionsRequest, opts ...grpc.CallOption) (*QuerySubscriptionsResponse, error)
	WorkerNonce(ctx context.Context, in *QueryWorkerNonceRequest, opts ...grpc.CallOption) (*QueryWorkerNonceResponse, error)
}

type queryClient struct {
	cc grpc1.ClientConn
}

func NewQueryClient(cc grpc1.ClientConn) QueryClient {
	return &queryClient{cc}
}

func (c *queryClient) Params(ctx context.Context, in *QueryParamsRequest, opts ...grpc.CallOption) (*QueryParamsResponse, error) {
	out := new(QueryParamsResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/Params", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Registry(ctx context.Context, in *QueryRegistryRequest, opts ...grpc.CallOption) (*QueryRegistryResponse, error) {
	out := new(QueryRegistryResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/Registry", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) App(ctx context.Context, in *QueryAppRequest, opts ...grpc.CallOption) (*QueryAppResponse, error) {
	out := new(QueryAppResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/App", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Apps(ctx context.Context, in *QueryAppsRequest, opts ...grpc.CallOption) (*QueryAppsResponse, error) {
	out := new(QueryAppsResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/Apps", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) EscrowAccount(ctx context.Context, in *QueryEscrowAccountRequest, opts ...grpc.CallOption) (*QueryEscrowAccountResponse, error) {
	out := new(QueryEscrowAccountResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/EscrowAccount", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Subscription(ctx context.Context, in *QuerySubscriptionRequest, opts ...grpc.CallOption) (*QuerySubscriptionResponse, error) {
	out := new(QuerySubscriptionResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/Subscription", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) Subscriptions(ctx context.Context, in *QuerySubscriptionsRequest, opts ...grpc.CallOption) (*QuerySubscriptionsResponse, error) {
	out := new(QuerySubscriptionsResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/Subscriptions", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryClient) WorkerNonce(ctx context.Context, in *QueryWorkerNonceRequest, opts ...grpc.CallOption) (*QueryWorkerNonceResponse, error) {
	out := new(QueryWorkerNonceResponse)
	err := c.cc.Invoke(ctx, "/vaultmesh.rental.v1.Query/WorkerNonce", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
