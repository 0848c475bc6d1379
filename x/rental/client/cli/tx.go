package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// GetTxCmd returns the transaction commands for the rental module
func GetTxCmd() *cobra.Command {
	rentalTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Rental transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	rentalTxCmd.AddCommand(
		CmdAnnounceWorker(),
		CmdRegisterApp(),
		CmdDeposit(),
		CmdOpenSubscription(),
		CmdPlaceBid(),
		CmdClaimBid(),
		CmdReportWork(),
		CmdCloseSubscription(),
	)

	return rentalTxCmd
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid integer amount: %s", s)
	}
	return amount, nil
}

// CmdAnnounceWorker returns a CLI command handler for announcing a worker
func CmdAnnounceWorker() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce-worker [attestation-proof] [transit-key] [peer-address]",
		Short: "Announce a worker's attestation proof and peer address",
		Long: `Publish a worker's attestation proof, transit key, and p2p peer
address as an event so subscribers can discover it.

Example:
  $ vaultmeshd tx rental announce-worker "proof..." 9f3c...e1 /dns4/worker.example.com/tcp/7777 --from workerkey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAnnounceWorker{
				Worker:           clientCtx.GetFromAddress().String(),
				AttestationProof: args[0],
				TransitKey:       args[1],
				PeerAddress:      args[2],
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRegisterApp returns a CLI command handler for listing a new app
func CmdRegisterApp() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-app [manifest-hash] [base-price]",
		Short: "Register an app listing in the marketplace",
		Long: `Register a new app listing. The allocated app id is the current
counter value; the payout address is the sender's own account.

Example:
  $ vaultmeshd tx rental register-app bafybeigdyrzt... 100 --from creatorkey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			basePrice, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			from := clientCtx.GetFromAddress().String()
			msg := &types.MsgRegisterApp{
				Creator:       from,
				ManifestHash:  args[0],
				BasePrice:     basePrice,
				PayoutAddress: from,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns a CLI command handler for funding escrow
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [amount]",
		Short: "Deposit coins into the rental escrow",
		Long: `Move coins from the sender's bank balance into the rental module
escrow. The amount is denominated in the module's escrow denom.

Example:
  $ vaultmeshd tx rental deposit 1000000 --from subscriberkey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				Amount:    amount,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdOpenSubscription returns a CLI command handler for opening a subscription
func CmdOpenSubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open-subscription [app-id] [params-hash] [max-price]",
		Short: "Open a rental subscription and its bidding window",
		Long: `Open a subscription for an app. The escrow balance must cover at
least one cycle at the max price ceiling; workers then bid the recurring
price down during the bid window.

Example:
  $ vaultmeshd tx rental open-subscription 0 b1946ac9... 100 --from subscriberkey`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			appID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid app id: %w", err)
			}

			maxPrice, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			msg := &types.MsgOpenSubscription{
				Subscriber: clientCtx.GetFromAddress().String(),
				AppId:      appID,
				ParamsHash: args[1],
				MaxPrice:   maxPrice,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPlaceBid returns a CLI command handler for bidding on a subscription
func CmdPlaceBid() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place-bid [worker-key] [consensus-key] [subscriber] [subscription-id] [bid-amount] [signature-hex] [record-hex]",
		Short: "Place an authenticated underbid on an open subscription",
		Long: `Bid for the right to execute a subscription. The signature and
verification record must attest the worker identity key and its current
replay nonce under the registry's oracle key.

Example:
  $ vaultmeshd tx rental place-bid 9f3c...e1 77aa...02 vm1subscriber... 0 90 abcd... ef01... --from workerkey`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			bidAmount, err := parseAmount(args[4])
			if err != nil {
				return err
			}

			signature, err := hex.DecodeString(args[5])
			if err != nil {
				return fmt.Errorf("invalid signature hex: %w", err)
			}

			record, err := hex.DecodeString(args[6])
			if err != nil {
				return fmt.Errorf("invalid record hex: %w", err)
			}

			msg := &types.MsgPlaceBid{
				Worker:         clientCtx.GetFromAddress().String(),
				WorkerKey:      args[0],
				ConsensusKey:   args[1],
				Subscriber:     args[2],
				SubscriptionId: subscriptionID,
				BidAmount:      bidAmount,
				Signature:      signature,
				Record:         record,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimBid returns a CLI command handler for claiming a won auction
func CmdClaimBid() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-bid [worker-key] [consensus-key] [subscriber] [subscription-id] [signature-hex] [record-hex]",
		Short: "Claim a won auction after the bid window closes",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			signature, err := hex.DecodeString(args[4])
			if err != nil {
				return fmt.Errorf("invalid signature hex: %w", err)
			}

			record, err := hex.DecodeString(args[5])
			if err != nil {
				return fmt.Errorf("invalid record hex: %w", err)
			}

			msg := &types.MsgClaimBid{
				Worker:         clientCtx.GetFromAddress().String(),
				WorkerKey:      args[0],
				ConsensusKey:   args[1],
				Subscriber:     args[2],
				SubscriptionId: subscriptionID,
				Signature:      signature,
				Record:         record,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdReportWork returns a CLI command handler for the recurring liveness report
func CmdReportWork() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-work [worker-key] [consensus-key] [subscriber] [subscription-id] [work-nonce] [signature-hex] [record-hex]",
		Short: "Submit the assigned worker's liveness report for one cycle",
		Args:  cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			workNonce, err := strconv.ParseUint(args[4], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid work nonce: %w", err)
			}

			signature, err := hex.DecodeString(args[5])
			if err != nil {
				return fmt.Errorf("invalid signature hex: %w", err)
			}

			record, err := hex.DecodeString(args[6])
			if err != nil {
				return fmt.Errorf("invalid record hex: %w", err)
			}

			msg := &types.MsgReportWork{
				Worker:         clientCtx.GetFromAddress().String(),
				WorkerKey:      args[0],
				ConsensusKey:   args[1],
				Subscriber:     args[2],
				SubscriptionId: subscriptionID,
				WorkNonce:      workNonce,
				Signature:      signature,
				Record:         record,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCloseSubscription returns a CLI command handler for closing a subscription
func CmdCloseSubscription() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close-subscription [subscription-id]",
		Short: "Close one of the sender's subscriptions",
		Long: `Close a subscription permanently. Escrow already spent on past
cycles is not refunded.

Example:
  $ vaultmeshd tx rental close-subscription 0 --from subscriberkey`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			subscriptionID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid subscription id: %w", err)
			}

			msg := &types.MsgCloseSubscription{
				Subscriber:     clientCtx.GetFromAddress().String(),
				SubscriptionId: subscriptionID,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
