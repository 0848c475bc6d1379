package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cosmos/cosmos-sdk/types/query"

	rentaltypes "github.com/vaultmesh/vaultmesh/x/rental/types"
)

// handleGetMarketStats returns a marketplace overview: catalog size,
// bootstrap state, and the auction timing parameters
func (s *Server) handleGetMarketStats(c *gin.Context) {
	qc := s.rentalService.queryClient

	paramsRes, err := qc.Params(context.Background(), &rentaltypes.QueryParamsRequest{})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Failed to query market state",
			Details: err.Error(),
			Code:    "NODE_UNAVAILABLE",
		})
		return
	}

	stats := MarketStats{
		Denom:                 paramsRes.Params.Denom,
		BidWindowSeconds:      paramsRes.Params.BidWindowSeconds,
		ClaimWindowSeconds:    paramsRes.Params.ClaimWindowSeconds,
		ReportIntervalSeconds: paramsRes.Params.ReportIntervalSeconds,
		SlaWindowSeconds:      paramsRes.Params.SlaWindowSeconds,
		LastUpdated:           time.Now(),
	}

	// The registry query fails until InitRegistry has run; the market is
	// still readable before bootstrap, just empty.
	if regRes, err := qc.Registry(context.Background(), &rentaltypes.QueryRegistryRequest{}); err == nil {
		stats.Bootstrapped = true
		stats.TotalApps = regRes.AppCount
	} else {
		appsRes, err := qc.Apps(context.Background(), &rentaltypes.QueryAppsRequest{
			Pagination: &query.PageRequest{Limit: 1, CountTotal: true},
		})
		if err == nil && appsRes.Pagination != nil {
			stats.TotalApps = appsRes.Pagination.Total
		}
	}

	c.JSON(http.StatusOK, stats)

	// Push the refreshed snapshot to live market subscribers.
	s.wsHub.BroadcastToChannel("market", stats)
}
