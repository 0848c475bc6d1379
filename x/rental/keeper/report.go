package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// ReportResult describes which settlement branch a liveness report took.
type ReportResult struct {
	// Paid is true when one cycle's rent moved from escrow to the worker.
	Paid bool
	// Restart is true when the subscription is in (or just entered) the
	// restart fault state. Payments stay withheld until an external
	// recovery clears the flag.
	Restart bool
	// Closed is true when the report force-closed the subscription because
	// the subscriber could no longer cover the current price.
	Closed bool
}

// ReportWork processes the assigned worker's recurring liveness report.
//
// A report inside the liveness window pays one cycle at the current price
// out of the subscriber's escrow. A report past the SLA deadline is still
// accepted but flags the subscription for restart and withholds payment, as
// does a report whose work nonce does not match the expected value. If the
// subscriber cannot cover the current price the subscription force-closes
// with no transfer, whatever the restart state. The worker's replay nonce
// burns on every accepted call regardless of the settlement branch.
func (k Keeper) ReportWork(ctx context.Context, worker sdk.AccAddress, workerKey, consensusKey string, subscriber sdk.AccAddress, subscriptionID, workNonce uint64, signature, record []byte) (ReportResult, error) {
	identity, err := types.ParseWorkerKey(workerKey)
	if err != nil {
		return ReportResult{}, types.ErrInvalidWorkerKey.Wrap(err.Error())
	}

	sub, err := k.GetSubscription(ctx, subscriber, subscriptionID)
	if err != nil {
		return ReportResult{}, err
	}

	if err := k.verifyWorkerAttestation(ctx, consensusKey, identity, signature, record); err != nil {
		return ReportResult{}, err
	}

	if sub.Closed {
		return ReportResult{}, types.ErrSubscriptionClosed
	}
	if !sub.Assigned {
		return ReportResult{}, types.ErrNotAssigned
	}
	if sub.ExecutorKey != workerKey || sub.Executor != worker.String() {
		return ReportResult{}, types.ErrUnauthorizedWorker.Wrapf("worker %s is not the executor", worker.String())
	}
	if sub.Restart {
		return ReportResult{}, types.ErrRestartPending
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()

	restartReason := ""
	switch {
	case now > sub.LastReportTime+params.SlaWindowSeconds:
		// SLA breach: the report still counts, the payment does not.
		sub.Restart = true
		restartReason = "sla_missed"
	case now < sub.LastReportTime+params.ReportIntervalSeconds:
		return ReportResult{}, types.ErrReportedTooEarly.Wrapf("next report accepted from %d, now %d", sub.LastReportTime+params.ReportIntervalSeconds, now)
	}

	if workNonce != sub.WorkNonce {
		// A worker that cannot echo the expected nonce cannot prove it
		// executed the previous cycle.
		sub.Restart = true
		if restartReason == "" {
			restartReason = "work_nonce_mismatch"
		}
	}

	account, err := k.GetEscrowAccount(ctx, subscriber)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Restart: sub.Restart}

	if account.Balance.LT(sub.CurrentPrice) {
		// Insolvency: close out instead of letting the debt accumulate.
		sub.Closed = true
		result.Closed = true

		if k.metrics != nil {
			k.metrics.SubscriptionsClosed.WithLabelValues("insolvent").Inc()
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSubscriptionClosed,
				sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
				sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
				sdk.NewAttribute(types.AttributeKeyReason, "insolvent"),
			),
		)
	} else if !sub.Restart {
		coins := sdk.NewCoins(sdk.NewCoin(params.Denom, sub.CurrentPrice))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(sdkCtx, types.ModuleName, worker, coins); err != nil {
			return ReportResult{}, types.ErrInsufficientEscrow.Wrapf("payout failed: %v", err)
		}

		account.Balance = account.Balance.Sub(sub.CurrentPrice)
		if err := k.SetEscrowAccount(ctx, account); err != nil {
			return ReportResult{}, err
		}

		sub.WorkNonce++
		sub.LastReportTime = now
		result.Paid = true

		if k.metrics != nil && sub.CurrentPrice.IsInt64() {
			k.metrics.WorkerPayouts.WithLabelValues(params.Denom).Add(float64(sub.CurrentPrice.Int64()))
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePayout,
				sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
				sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
				sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
				sdk.NewAttribute(types.AttributeKeyAmount, sub.CurrentPrice.String()),
				sdk.NewAttribute(types.AttributeKeyBalance, account.Balance.String()),
			),
		)
	}

	if err := k.SetSubscription(ctx, sub); err != nil {
		return ReportResult{}, err
	}

	k.bumpWorkerNonce(ctx, identity)

	if restartReason != "" {
		if k.metrics != nil {
			k.metrics.RestartsFlagged.WithLabelValues(restartReason).Inc()
		}

		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRestartFlagged,
				sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
				sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
				sdk.NewAttribute(types.AttributeKeyReason, restartReason),
			),
		)
	}

	outcome := "unpaid"
	if result.Paid {
		outcome = "paid"
	}
	if k.metrics != nil {
		k.metrics.ReportsAccepted.WithLabelValues(outcome).Inc()
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWorkReported,
			sdk.NewAttribute(types.AttributeKeyWorker, worker.String()),
			sdk.NewAttribute(types.AttributeKeySubscriber, subscriber.String()),
			sdk.NewAttribute(types.AttributeKeySubscription, fmt.Sprintf("%d", subscriptionID)),
			sdk.NewAttribute(types.AttributeKeyWorkNonce, fmt.Sprintf("%d", workNonce)),
			sdk.NewAttribute(types.AttributeKeyReason, outcome),
		),
	)

	return result, nil
}
