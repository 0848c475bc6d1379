package keeper

import (
	"context"
	"fmt"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// InitGenesis initializes the rental module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, data types.GenesisState) error {
	if err := k.SetParams(ctx, data.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	if data.Oracle != nil {
		store := k.getStore(ctx)
		bz, err := k.cdc.Marshal(data.Oracle)
		if err != nil {
			return fmt.Errorf("failed to marshal oracle: %w", err)
		}
		store.Set(OracleKey, bz)

		var maxAppID uint64
		seenApp := false

		for _, app := range data.Apps {
			if err := k.SetApp(ctx, app); err != nil {
				return fmt.Errorf("failed to initialize app %d: %w", app.ID, err)
			}
			if app.ID > maxAppID {
				maxAppID = app.ID
			}
			seenApp = true
		}

		// App ids come out of the counter, so the counter must always sit
		// past the highest imported id.
		count := data.AppCount
		if seenApp && count <= maxAppID {
			count = maxAppID + 1
		}
		k.setAppCount(ctx, count)
	}

	for _, account := range data.EscrowAccounts {
		if err := k.SetEscrowAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to initialize escrow account %s: %w", account.Owner, err)
		}
	}

	for _, sub := range data.Subscriptions {
		if err := k.SetSubscription(ctx, sub); err != nil {
			return fmt.Errorf("failed to initialize subscription %s/%d: %w", sub.Subscriber, sub.ID, err)
		}
	}

	for _, rec := range data.WorkerNonces {
		identity, err := types.ParseWorkerKey(rec.WorkerKey)
		if err != nil {
			return fmt.Errorf("invalid worker key %s: %w", rec.WorkerKey, err)
		}
		k.SetWorkerNonce(ctx, identity, rec.Nonce)
	}

	return nil
}

// ExportGenesis exports the rental module's full state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export params: %w", err)
	}
	genesis.Params = params

	oracle, err := k.GetOracle(ctx)
	if err == nil {
		genesis.Oracle = &oracle

		count, err := k.GetAppCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to export app count: %w", err)
		}
		genesis.AppCount = count
	}

	if err := k.IterateApps(ctx, func(app types.App) (bool, error) {
		genesis.Apps = append(genesis.Apps, app)
		return false, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to export apps: %w", err)
	}

	if err := k.IterateEscrowAccounts(ctx, func(account types.EscrowAccount) (bool, error) {
		genesis.EscrowAccounts = append(genesis.EscrowAccounts, account)
		return false, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to export escrow accounts: %w", err)
	}

	if err := k.IterateSubscriptions(ctx, func(sub types.Subscription) (bool, error) {
		genesis.Subscriptions = append(genesis.Subscriptions, sub)
		return false, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to export subscriptions: %w", err)
	}

	k.IterateWorkerNonces(ctx, func(identity []byte, nonce uint64) bool {
		genesis.WorkerNonces = append(genesis.WorkerNonces, types.WorkerNonceRecord{
			WorkerKey: fmt.Sprintf("%x", identity),
			Nonce:     nonce,
		})
		return false
	})

	return genesis, nil
}
