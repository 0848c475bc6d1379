package ante

import (
	"crypto/ed25519"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	rentalkeeper "github.com/vaultmesh/vaultmesh/x/rental/keeper"
	rentaltypes "github.com/vaultmesh/vaultmesh/x/rental/types"
)

// RentalDecorator rejects marketplace transactions that are certain to fail
// before they reach the message server, so malformed attestations and
// underfunded subscriptions pay CheckTx gas instead of a full execution.
type RentalDecorator struct {
	keeper *rentalkeeper.Keeper
}

// NewRentalDecorator creates a new RentalDecorator
func NewRentalDecorator(keeper *rentalkeeper.Keeper) RentalDecorator {
	return RentalDecorator{
		keeper: keeper,
	}
}

// AnteHandle implements the AnteDecorator interface
func (rd RentalDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (newCtx sdk.Context, err error) {
	// Skip validation during simulation
	if simulate {
		return next(ctx, tx, simulate)
	}

	for _, msg := range tx.GetMsgs() {
		switch msg := msg.(type) {
		case *rentaltypes.MsgPlaceBid:
			if err := rd.validateAttestedCall(ctx, msg.WorkerKey, msg.Signature, msg.Record); err != nil {
				return ctx, err
			}
		case *rentaltypes.MsgClaimBid:
			if err := rd.validateAttestedCall(ctx, msg.WorkerKey, msg.Signature, msg.Record); err != nil {
				return ctx, err
			}
		case *rentaltypes.MsgReportWork:
			if err := rd.validateAttestedCall(ctx, msg.WorkerKey, msg.Signature, msg.Record); err != nil {
				return ctx, err
			}
		case *rentaltypes.MsgOpenSubscription:
			if err := rd.validateOpenSubscription(ctx, msg); err != nil {
				return ctx, err
			}
		}
	}

	return next(ctx, tx, simulate)
}

// validateAttestedCall performs the cheap structural checks on an
// authenticated worker call: key and signature sizes, record framing, and a
// bootstrapped registry. Cryptographic verification stays in the keeper.
func (rd RentalDecorator) validateAttestedCall(ctx sdk.Context, workerKey string, signature, record []byte) error {
	ctx.GasMeter().ConsumeGas(1000, "rental attestation validation")

	if _, err := rentaltypes.ParseWorkerKey(workerKey); err != nil {
		return sdkerrors.ErrInvalidRequest.Wrapf("invalid worker key: %s", err)
	}

	if len(signature) != ed25519.SignatureSize {
		return sdkerrors.ErrInvalidRequest.Wrapf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(signature))
	}

	expectedLen := rentaltypes.AttestationPayloadOffset + rentaltypes.AttestationMessageSize
	if len(record) != expectedLen {
		return sdkerrors.ErrInvalidRequest.Wrapf("verification record must be %d bytes, got %d", expectedLen, len(record))
	}

	if _, err := rd.keeper.GetOracle(ctx); err != nil {
		return err
	}

	return nil
}

// validateOpenSubscription rejects a subscription whose owner cannot cover
// one cycle at the price ceiling.
func (rd RentalDecorator) validateOpenSubscription(ctx sdk.Context, msg *rentaltypes.MsgOpenSubscription) error {
	ctx.GasMeter().ConsumeGas(1000, "rental subscription validation")

	subscriber, err := sdk.AccAddressFromBech32(msg.Subscriber)
	if err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid subscriber address: %s", err)
	}

	account, err := rd.keeper.GetEscrowAccount(ctx, subscriber)
	if err != nil {
		return err
	}

	if account.Balance.LT(msg.MaxPrice) {
		return rentaltypes.ErrInsufficientEscrow.Wrapf("balance %s, max price %s", account.Balance.String(), msg.MaxPrice.String())
	}

	return nil
}
