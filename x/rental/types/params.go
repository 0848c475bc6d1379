package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default rental parameters
const (
	DefaultDenom                 = "uvlt"
	DefaultBidWindowSeconds      = int64(60)
	DefaultClaimWindowSeconds    = int64(300)
	DefaultReportIntervalSeconds = int64(600)
	DefaultSlaWindowSeconds      = int64(900)
)

// Params defines the rental module parameters
type Params struct {
	// Denom is the coin denomination used for escrow deposits and worker payouts
	Denom string `protobuf:"bytes,1,opt,name=denom,proto3" json:"denom,omitempty"`
	// BidWindowSeconds is how long a new subscription accepts bids
	BidWindowSeconds int64 `protobuf:"varint,2,opt,name=bid_window_seconds,json=bidWindowSeconds,proto3" json:"bid_window_seconds,omitempty"`
	// ClaimWindowSeconds is how long after the bid window closes the winner may claim
	ClaimWindowSeconds int64 `protobuf:"varint,3,opt,name=claim_window_seconds,json=claimWindowSeconds,proto3" json:"claim_window_seconds,omitempty"`
	// ReportIntervalSeconds is the minimum spacing between accepted work reports
	ReportIntervalSeconds int64 `protobuf:"varint,4,opt,name=report_interval_seconds,json=reportIntervalSeconds,proto3" json:"report_interval_seconds,omitempty"`
	// SlaWindowSeconds is the deadline after the last report before a restart is flagged
	SlaWindowSeconds int64 `protobuf:"varint,5,opt,name=sla_window_seconds,json=slaWindowSeconds,proto3" json:"sla_window_seconds,omitempty"`
}

// NewParams creates a new Params instance
func NewParams(denom string, bidWindow, claimWindow, reportInterval, slaWindow int64) Params {
	return Params{
		Denom:                 denom,
		BidWindowSeconds:      bidWindow,
		ClaimWindowSeconds:    claimWindow,
		ReportIntervalSeconds: reportInterval,
		SlaWindowSeconds:      slaWindow,
	}
}

// DefaultParams returns default rental parameters
func DefaultParams() Params {
	return NewParams(
		DefaultDenom,
		DefaultBidWindowSeconds,
		DefaultClaimWindowSeconds,
		DefaultReportIntervalSeconds,
		DefaultSlaWindowSeconds,
	)
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.Denom); err != nil {
		return fmt.Errorf("invalid denom: %w", err)
	}
	if p.BidWindowSeconds <= 0 {
		return fmt.Errorf("bid window must be positive: %d", p.BidWindowSeconds)
	}
	if p.ClaimWindowSeconds <= 0 {
		return fmt.Errorf("claim window must be positive: %d", p.ClaimWindowSeconds)
	}
	if p.ReportIntervalSeconds <= 0 {
		return fmt.Errorf("report interval must be positive: %d", p.ReportIntervalSeconds)
	}
	if p.SlaWindowSeconds < p.ReportIntervalSeconds {
		return fmt.Errorf("sla window %d must not be shorter than report interval %d",
			p.SlaWindowSeconds, p.ReportIntervalSeconds)
	}
	return nil
}
