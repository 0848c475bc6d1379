package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/types/query"

	rentaltypes "github.com/vaultmesh/vaultmesh/x/rental/types"
)

// RentalService reads marketplace state from a running node over the
// rental query service.
type RentalService struct {
	clientCtx   client.Context
	queryClient rentaltypes.QueryClient
}

// NewRentalService creates a new rental read service
func NewRentalService(clientCtx client.Context) *RentalService {
	return &RentalService{
		clientCtx:   clientCtx,
		queryClient: rentaltypes.NewQueryClient(clientCtx),
	}
}

// appListingFromApp maps a chain App record to the gateway response shape
func appListingFromApp(app rentaltypes.App) AppListing {
	return AppListing{
		ID:            app.ID,
		ManifestHash:  app.ManifestHash,
		BasePrice:     app.BasePrice.String(),
		Creator:       app.Creator,
		PayoutAddress: app.PayoutAddress,
		CreatedAt:     app.CreatedAt,
	}
}

// subscriptionViewFromSubscription maps a chain Subscription record to the
// gateway response shape
func subscriptionViewFromSubscription(sub rentaltypes.Subscription) SubscriptionView {
	return SubscriptionView{
		ID:             sub.ID,
		Subscriber:     sub.Subscriber,
		AppID:          sub.AppID,
		ParamsHash:     sub.ParamsHash,
		MaxPrice:       sub.MaxPrice.String(),
		CurrentPrice:   sub.CurrentPrice.String(),
		Assigned:       sub.Assigned,
		Executor:       sub.Executor,
		ExecutorKey:    sub.ExecutorKey,
		BidEndTime:     sub.BidEndTime,
		WorkNonce:      sub.WorkNonce,
		LastReportTime: sub.LastReportTime,
		Restart:        sub.Restart,
		Closed:         sub.Closed,
	}
}

// pageRequestFromQuery builds a PageRequest from limit/offset query params
func pageRequestFromQuery(c *gin.Context) *query.PageRequest {
	limit := ValidateLimit(c.Query("limit"), 50, 200)
	offset := uint64(0)
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			offset = parsed
		}
	}
	return &query.PageRequest{
		Offset:     offset,
		Limit:      uint64(limit),
		CountTotal: true,
	}
}

// handleGetRentalParams returns the rental module parameters
func (s *Server) handleGetRentalParams(c *gin.Context) {
	res, err := s.rentalService.queryClient.Params(context.Background(), &rentaltypes.QueryParamsRequest{})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query rental params",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	c.JSON(http.StatusOK, RentalParamsResponse{
		Denom:                 res.Params.Denom,
		BidWindowSeconds:      res.Params.BidWindowSeconds,
		ClaimWindowSeconds:    res.Params.ClaimWindowSeconds,
		ReportIntervalSeconds: res.Params.ReportIntervalSeconds,
		SlaWindowSeconds:      res.Params.SlaWindowSeconds,
	})
}

// handleGetRegistry returns the registry bootstrap record
func (s *Server) handleGetRegistry(c *gin.Context) {
	res, err := s.rentalService.queryClient.Registry(context.Background(), &rentaltypes.QueryRegistryRequest{})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query registry",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	c.JSON(http.StatusOK, RegistryResponse{
		ConsensusKey:     res.Oracle.ConsensusKey,
		AttestationProof: res.Oracle.AttestationProof,
		CreatedAt:        res.Oracle.CreatedAt,
		AppCount:         res.AppCount,
	})
}

// handleListApps returns the paginated app catalog
func (s *Server) handleListApps(c *gin.Context) {
	res, err := s.rentalService.queryClient.Apps(context.Background(), &rentaltypes.QueryAppsRequest{
		Pagination: pageRequestFromQuery(c),
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query apps",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	apps := make([]AppListing, 0, len(res.Apps))
	for _, app := range res.Apps {
		apps = append(apps, appListingFromApp(app))
	}

	var total uint64
	if res.Pagination != nil {
		total = res.Pagination.Total
	}

	c.JSON(http.StatusOK, AppListResponse{
		Apps:  apps,
		Total: total,
	})
}

// handleGetApp returns a single app listing by id
func (s *Server) handleGetApp(c *gin.Context) {
	appID, err := ValidateID(c.Param("app_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid app id",
			Details: err.Error(),
			Code:    "INVALID_APP_ID",
		})
		return
	}

	res, err := s.rentalService.queryClient.App(context.Background(), &rentaltypes.QueryAppRequest{AppId: appID})
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "App not found",
			Details: err.Error(),
			Code:    "APP_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, appListingFromApp(res.App))
}

// handleGetEscrowAccount returns a subscriber's escrow account
func (s *Server) handleGetEscrowAccount(c *gin.Context) {
	address := c.Param("address")
	if err := ValidateAddress(address); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid address",
			Details: err.Error(),
			Code:    "INVALID_ADDRESS",
		})
		return
	}

	res, err := s.rentalService.queryClient.EscrowAccount(context.Background(), &rentaltypes.QueryEscrowAccountRequest{
		Address: address,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Escrow account not found",
			Details: err.Error(),
			Code:    "ESCROW_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, EscrowAccountResponse{
		Owner:             res.EscrowAccount.Owner,
		Balance:           res.EscrowAccount.Balance.String(),
		SubscriptionCount: res.EscrowAccount.SubscriptionCount,
	})
}

// handleListSubscriptions returns a subscriber's subscriptions
func (s *Server) handleListSubscriptions(c *gin.Context) {
	subscriber := c.Param("subscriber")
	if err := ValidateAddress(subscriber); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid subscriber address",
			Details: err.Error(),
			Code:    "INVALID_ADDRESS",
		})
		return
	}

	res, err := s.rentalService.queryClient.Subscriptions(context.Background(), &rentaltypes.QuerySubscriptionsRequest{
		Subscriber: subscriber,
		Pagination: pageRequestFromQuery(c),
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query subscriptions",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	subs := make([]SubscriptionView, 0, len(res.Subscriptions))
	for _, sub := range res.Subscriptions {
		subs = append(subs, subscriptionViewFromSubscription(sub))
	}

	var total uint64
	if res.Pagination != nil {
		total = res.Pagination.Total
	}

	c.JSON(http.StatusOK, SubscriptionListResponse{
		Subscriptions: subs,
		Total:         total,
	})
}

// handleGetSubscription returns one subscription by owner and sequence id
func (s *Server) handleGetSubscription(c *gin.Context) {
	subscriber := c.Param("subscriber")
	if err := ValidateAddress(subscriber); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid subscriber address",
			Details: err.Error(),
			Code:    "INVALID_ADDRESS",
		})
		return
	}

	subID, err := ValidateID(c.Param("subscription_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid subscription id",
			Details: err.Error(),
			Code:    "INVALID_SUBSCRIPTION_ID",
		})
		return
	}

	res, err := s.rentalService.queryClient.Subscription(context.Background(), &rentaltypes.QuerySubscriptionRequest{
		Subscriber:     subscriber,
		SubscriptionId: subID,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Subscription not found",
			Details: err.Error(),
			Code:    "SUBSCRIPTION_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, subscriptionViewFromSubscription(res.Subscription))
}

// handleGetWorkerNonce returns a worker's current replay nonce
func (s *Server) handleGetWorkerNonce(c *gin.Context) {
	workerKey := c.Param("worker_key")
	if err := ValidateWorkerKey(workerKey); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid worker key",
			Details: err.Error(),
			Code:    "INVALID_WORKER_KEY",
		})
		return
	}

	res, err := s.rentalService.queryClient.WorkerNonce(context.Background(), &rentaltypes.QueryWorkerNonceRequest{
		WorkerKey: workerKey,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query worker nonce",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	c.JSON(http.StatusOK, WorkerNonceResponse{
		WorkerKey: workerKey,
		Nonce:     res.Nonce,
	})
}

// Ping verifies the service can reach the configured node
func (rs *RentalService) Ping() error {
	_, err := rs.queryClient.Params(context.Background(), &rentaltypes.QueryParamsRequest{})
	if err != nil {
		return fmt.Errorf("rental query service unreachable: %w", err)
	}
	return nil
}
