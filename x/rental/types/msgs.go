package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message type URLs
const (
	TypeMsgInitRegistry      = "init_registry"
	TypeMsgAnnounceWorker    = "announce_worker"
	TypeMsgRegisterApp       = "register_app"
	TypeMsgDeposit           = "deposit"
	TypeMsgOpenSubscription  = "open_subscription"
	TypeMsgPlaceBid          = "place_bid"
	TypeMsgClaimBid          = "claim_bid"
	TypeMsgReportWork        = "report_work"
	TypeMsgCloseSubscription = "close_subscription"
	TypeMsgUpdateParams      = "update_params"
)

var (
	_ sdk.Msg = &MsgInitRegistry{}
	_ sdk.Msg = &MsgAnnounceWorker{}
	_ sdk.Msg = &MsgRegisterApp{}
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgOpenSubscription{}
	_ sdk.Msg = &MsgPlaceBid{}
	_ sdk.Msg = &MsgClaimBid{}
	_ sdk.Msg = &MsgReportWork{}
	_ sdk.Msg = &MsgCloseSubscription{}
	_ sdk.Msg = &MsgUpdateParams{}
)

// GetSigners implementations - these assume addresses are valid (validated in ValidateBasic)

// GetSigners returns the expected signers for MsgInitRegistry
func (msg *MsgInitRegistry) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// GetSigners returns the expected signers for MsgAnnounceWorker
func (msg *MsgAnnounceWorker) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

// GetSigners returns the expected signers for MsgRegisterApp
func (msg *MsgRegisterApp) GetSigners() []sdk.AccAddress {
	creator, _ := sdk.AccAddressFromBech32(msg.Creator)
	return []sdk.AccAddress{creator}
}

// GetSigners returns the expected signers for MsgDeposit
func (msg *MsgDeposit) GetSigners() []sdk.AccAddress {
	depositor, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{depositor}
}

// GetSigners returns the expected signers for MsgOpenSubscription
func (msg *MsgOpenSubscription) GetSigners() []sdk.AccAddress {
	subscriber, _ := sdk.AccAddressFromBech32(msg.Subscriber)
	return []sdk.AccAddress{subscriber}
}

// GetSigners returns the expected signers for MsgPlaceBid
func (msg *MsgPlaceBid) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

// GetSigners returns the expected signers for MsgClaimBid
func (msg *MsgClaimBid) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

// GetSigners returns the expected signers for MsgReportWork
func (msg *MsgReportWork) GetSigners() []sdk.AccAddress {
	worker, _ := sdk.AccAddressFromBech32(msg.Worker)
	return []sdk.AccAddress{worker}
}

// GetSigners returns the expected signers for MsgCloseSubscription
func (msg *MsgCloseSubscription) GetSigners() []sdk.AccAddress {
	subscriber, _ := sdk.AccAddressFromBech32(msg.Subscriber)
	return []sdk.AccAddress{subscriber}
}

// GetSigners returns the expected signers for MsgUpdateParams
func (msg *MsgUpdateParams) GetSigners() []sdk.AccAddress {
	authority, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{authority}
}

// ValidateBasic performs basic validation of MsgInitRegistry
func (msg *MsgInitRegistry) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}

	if _, err := ParseWorkerKey(msg.ConsensusKey); err != nil {
		return fmt.Errorf("invalid consensus key: %w", err)
	}

	return nil
}

// ValidateBasic performs basic validation of MsgAnnounceWorker
func (msg *MsgAnnounceWorker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Worker); err != nil {
		return fmt.Errorf("invalid worker address: %w", err)
	}

	if _, err := ParseWorkerKey(msg.TransitKey); err != nil {
		return fmt.Errorf("invalid transit key: %w", err)
	}

	if msg.PeerAddress == "" {
		return fmt.Errorf("peer address is required")
	}

	return nil
}

// ValidateBasic performs basic validation of MsgRegisterApp
func (msg *MsgRegisterApp) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return fmt.Errorf("invalid creator address: %w", err)
	}

	if _, err := sdk.AccAddressFromBech32(msg.PayoutAddress); err != nil {
		return fmt.Errorf("invalid payout address: %w", err)
	}

	if msg.ManifestHash == "" {
		return fmt.Errorf("manifest hash is required")
	}

	if msg.BasePrice.IsNil() || msg.BasePrice.IsNegative() {
		return fmt.Errorf("base price must be non-negative")
	}

	return nil
}

// ValidateBasic performs basic validation of MsgDeposit
func (msg *MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return fmt.Errorf("invalid depositor address: %w", err)
	}

	if msg.Amount.IsNil() || msg.Amount.IsZero() || msg.Amount.IsNegative() {
		return fmt.Errorf("deposit amount must be positive")
	}

	return nil
}

// ValidateBasic performs basic validation of MsgOpenSubscription
func (msg *MsgOpenSubscription) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return fmt.Errorf("invalid subscriber address: %w", err)
	}

	if msg.MaxPrice.IsNil() || msg.MaxPrice.IsNegative() {
		return fmt.Errorf("max price must be non-negative")
	}

	return nil
}

// ValidateBasic performs basic validation of MsgPlaceBid
func (msg *MsgPlaceBid) ValidateBasic() error {
	if err := validateWorkerAuth(msg.Worker, msg.WorkerKey, msg.ConsensusKey, msg.Signature, msg.Record); err != nil {
		return err
	}

	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return fmt.Errorf("invalid subscriber address: %w", err)
	}

	if msg.BidAmount.IsNil() || msg.BidAmount.IsNegative() {
		return fmt.Errorf("bid amount must be non-negative")
	}

	return nil
}

// ValidateBasic performs basic validation of MsgClaimBid
func (msg *MsgClaimBid) ValidateBasic() error {
	if err := validateWorkerAuth(msg.Worker, msg.WorkerKey, msg.ConsensusKey, msg.Signature, msg.Record); err != nil {
		return err
	}

	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return fmt.Errorf("invalid subscriber address: %w", err)
	}

	return nil
}

// ValidateBasic performs basic validation of MsgReportWork
func (msg *MsgReportWork) ValidateBasic() error {
	if err := validateWorkerAuth(msg.Worker, msg.WorkerKey, msg.ConsensusKey, msg.Signature, msg.Record); err != nil {
		return err
	}

	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return fmt.Errorf("invalid subscriber address: %w", err)
	}

	return nil
}

// ValidateBasic performs basic validation of MsgCloseSubscription
func (msg *MsgCloseSubscription) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Subscriber); err != nil {
		return fmt.Errorf("invalid subscriber address: %w", err)
	}

	return nil
}

// ValidateBasic performs basic validation of MsgUpdateParams
func (msg *MsgUpdateParams) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %w", err)
	}

	return msg.Params.Validate()
}

// validateWorkerAuth checks the fields common to every authenticated worker
// message: signer account, identity key, claimed consensus key, raw
// signature, and the bundled verification record.
func validateWorkerAuth(worker, workerKey, consensusKey string, signature, record []byte) error {
	if _, err := sdk.AccAddressFromBech32(worker); err != nil {
		return fmt.Errorf("invalid worker address: %w", err)
	}

	if _, err := ParseWorkerKey(workerKey); err != nil {
		return fmt.Errorf("invalid worker key: %w", err)
	}

	if _, err := ParseWorkerKey(consensusKey); err != nil {
		return fmt.Errorf("invalid consensus key: %w", err)
	}

	if len(signature) != 64 {
		return fmt.Errorf("signature must be 64 bytes, got %d", len(signature))
	}

	if len(record) < AttestationHeaderSize {
		return fmt.Errorf("verification record shorter than its %d byte header", AttestationHeaderSize)
	}

	return nil
}
