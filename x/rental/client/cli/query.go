package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// GetQueryCmd returns the cli query commands for the rental module
func GetQueryCmd() *cobra.Command {
	rentalQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the rental module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	rentalQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryRegistry(),
		GetCmdQueryApp(),
		GetCmdQueryApps(),
		GetCmdQueryEscrowAccount(),
		GetCmdQuerySubscription(),
		GetCmdQuerySubscriptions(),
		GetCmdQueryWorkerNonce(),
	)

	return rentalQueryCmd
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current rental module parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Params(context.Background(), &types.QueryParamsRequest{})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryRegistry returns the command to query the registry oracle record
func GetCmdQueryRegistry() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Query the registry oracle record and the next app id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Registry(context.Background(), &types.QueryRegistryRequest{})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryApp returns the command to query one app listing by id
func GetCmdQueryApp() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app [app-id]",
		Short: "Query an app listing by id",
		Long: `Query detailed information about a registered app.

Example:
  $ vaultmeshd query rental app 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			appID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid app id: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.App(context.Background(), &types.QueryAppRequest{AppId: appID})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryApps returns the command to query the paginated app listing
func GetCmdQueryApps() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Query all registered app listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			pageReq, err := client.ReadPageRequest(cmd.Flags())
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Apps(context.Background(), &types.QueryAppsRequest{Pagination: pageReq})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "apps")
	return cmd
}

// GetCmdQueryEscrowAccount returns the command to query an escrow account
func GetCmdQueryEscrowAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow [address]",
		Short: "Query a subscriber's escrow account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.EscrowAccount(context.Background(), &types.QueryEscrowAccountRequest{Address: args[0]})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySubscription returns the command to query one subscription
func GetCmdQuerySubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription [subscriber] [subscription-id]",
		Short: "Query one subscription by owner and sequence id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Subscription(context.Background(), &types.QuerySubscriptionRequest{
				Subscriber:     args[0],
				SubscriptionId: subscriptionID,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQuerySubscriptions returns the command to query a subscriber's
// subscriptions
func GetCmdQuerySubscriptions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions [subscriber]",
		Short: "Query all subscriptions of one subscriber",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			pageReq, err := client.ReadPageRequest(cmd.Flags())
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.Subscriptions(context.Background(), &types.QuerySubscriptionsRequest{
				Subscriber: args[0],
				Pagination: pageReq,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	flags.AddPaginationFlagsToCmd(cmd, "subscriptions")
	return cmd
}

// GetCmdQueryWorkerNonce returns the command to query a worker's replay nonce
func GetCmdQueryWorkerNonce() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker-nonce [worker-key]",
		Short: "Query the replay nonce a worker must attest to next",
		Long: `Query a worker's current replay nonce by its hex-encoded 32-byte
identity key. The oracle must sign this value alongside the identity for the
worker's next authenticated call.

Example:
  $ vaultmeshd query rental worker-nonce 9f3c...e1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			queryClient := types.NewQueryClient(clientCtx)
			res, err := queryClient.WorkerNonce(context.Background(), &types.QueryWorkerNonceRequest{WorkerKey: args[0]})
			if err != nil {
				return err
			}

			return clientCtx.PrintProto(res)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
