package types

import (
	"strings"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Test addresses for validation tests - using valid bech32 cosmos addresses
var (
	validAddress   = "cosmos1zg69v7ys40x77y352eufp27daufrg4ncnjqz7q"
	otherAddress   = "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgpjnp7du"
	invalidAddress = "invalid"
	validHexKey    = strings.Repeat("ab", 32)
	validSig       = make([]byte, 64)
	validRecord    = make([]byte, 152)
)

func init() {
	// Initialize SDK config to use cosmos prefix
	config := sdk.GetConfig()
	config.SetBech32PrefixForAccount("cosmos", "cosmospub")
	config.SetBech32PrefixForValidator("cosmosvaloper", "cosmosvaloperpub")
	config.SetBech32PrefixForConsensusNode("cosmosvalcons", "cosmosvalconspub")
}

func TestMsgInitRegistry_ValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     MsgInitRegistry
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid message",
			msg: MsgInitRegistry{
				Authority:        validAddress,
				ConsensusKey:     validHexKey,
				AttestationProof: "proof",
			},
			wantErr: false,
		},
		{
			name: "invalid authority",
			msg: MsgInitRegistry{
				Authority:    invalidAddress,
				ConsensusKey: validHexKey,
			},
			wantErr: true,
			errMsg:  "invalid authority address",
		},
		{
			name: "consensus key not hex",
			msg: MsgInitRegistry{
				Authority:    validAddress,
				ConsensusKey: "zz" + validHexKey[2:],
			},
			wantErr: true,
			errMsg:  "invalid consensus key",
		},
		{
			name: "consensus key wrong size",
			msg: MsgInitRegistry{
				Authority:    validAddress,
				ConsensusKey: validHexKey[:40],
			},
			wantErr: true,
			errMsg:  "must be 32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Errorf("MsgInitRegistry.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("MsgInitRegistry.ValidateBasic() error = %v, want error containing %v", err, tt.errMsg)
				}
			}
		})
	}
}

func TestMsgRegisterApp_ValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     MsgRegisterApp
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid message",
			msg: MsgRegisterApp{
				Creator:       validAddress,
				ManifestHash:  "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
				BasePrice:     math.NewInt(100),
				PayoutAddress: validAddress,
			},
			wantErr: false,
		},
		{
			name: "invalid creator address",
			msg: MsgRegisterApp{
				Creator:       invalidAddress,
				ManifestHash:  "hash",
				BasePrice:     math.NewInt(100),
				PayoutAddress: validAddress,
			},
			wantErr: true,
			errMsg:  "invalid creator address",
		},
		{
			name: "invalid payout address",
			msg: MsgRegisterApp{
				Creator:       validAddress,
				ManifestHash:  "hash",
				BasePrice:     math.NewInt(100),
				PayoutAddress: invalidAddress,
			},
			wantErr: true,
			errMsg:  "invalid payout address",
		},
		{
			name: "empty manifest hash",
			msg: MsgRegisterApp{
				Creator:       validAddress,
				ManifestHash:  "",
				BasePrice:     math.NewInt(100),
				PayoutAddress: validAddress,
			},
			wantErr: true,
			errMsg:  "manifest hash is required",
		},
		{
			name: "negative base price",
			msg: MsgRegisterApp{
				Creator:       validAddress,
				ManifestHash:  "hash",
				BasePrice:     math.NewInt(-1),
				PayoutAddress: validAddress,
			},
			wantErr: true,
			errMsg:  "base price must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Errorf("MsgRegisterApp.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("MsgRegisterApp.ValidateBasic() error = %v, want error containing %v", err, tt.errMsg)
				}
			}
		})
	}
}

func TestMsgDeposit_ValidateBasic(t *testing.T) {
	tests := []struct {
		name    string
		msg     MsgDeposit
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid message",
			msg:     MsgDeposit{Depositor: validAddress, Amount: math.NewInt(1000)},
			wantErr: false,
		},
		{
			name:    "invalid depositor",
			msg:     MsgDeposit{Depositor: invalidAddress, Amount: math.NewInt(1000)},
			wantErr: true,
			errMsg:  "invalid depositor address",
		},
		{
			name:    "zero amount",
			msg:     MsgDeposit{Depositor: validAddress, Amount: math.NewInt(0)},
			wantErr: true,
			errMsg:  "deposit amount must be positive",
		},
		{
			name:    "negative amount",
			msg:     MsgDeposit{Depositor: validAddress, Amount: math.NewInt(-5)},
			wantErr: true,
			errMsg:  "deposit amount must be positive",
		},
		{
			name:    "nil amount",
			msg:     MsgDeposit{Depositor: validAddress},
			wantErr: true,
			errMsg:  "deposit amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Errorf("MsgDeposit.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("MsgDeposit.ValidateBasic() error = %v, want error containing %v", err, tt.errMsg)
				}
			}
		})
	}
}

func TestMsgPlaceBid_ValidateBasic(t *testing.T) {
	valid := MsgPlaceBid{
		Worker:         validAddress,
		WorkerKey:      validHexKey,
		ConsensusKey:   validHexKey,
		Subscriber:     otherAddress,
		SubscriptionId: 0,
		BidAmount:      math.NewInt(90),
		Signature:      validSig,
		Record:         validRecord,
	}

	tests := []struct {
		name    string
		mutate  func(m *MsgPlaceBid)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid message",
			mutate:  func(m *MsgPlaceBid) {},
			wantErr: false,
		},
		{
			name:    "invalid worker address",
			mutate:  func(m *MsgPlaceBid) { m.Worker = invalidAddress },
			wantErr: true,
			errMsg:  "invalid worker address",
		},
		{
			name:    "worker key wrong size",
			mutate:  func(m *MsgPlaceBid) { m.WorkerKey = validHexKey[:10] },
			wantErr: true,
			errMsg:  "invalid worker key",
		},
		{
			name:    "consensus key not hex",
			mutate:  func(m *MsgPlaceBid) { m.ConsensusKey = "not-hex" },
			wantErr: true,
			errMsg:  "invalid consensus key",
		},
		{
			name:    "invalid subscriber address",
			mutate:  func(m *MsgPlaceBid) { m.Subscriber = invalidAddress },
			wantErr: true,
			errMsg:  "invalid subscriber address",
		},
		{
			name:    "negative bid",
			mutate:  func(m *MsgPlaceBid) { m.BidAmount = math.NewInt(-1) },
			wantErr: true,
			errMsg:  "bid amount must be non-negative",
		},
		{
			name:    "short signature",
			mutate:  func(m *MsgPlaceBid) { m.Signature = make([]byte, 63) },
			wantErr: true,
			errMsg:  "signature must be 64 bytes",
		},
		{
			name:    "record shorter than header",
			mutate:  func(m *MsgPlaceBid) { m.Record = make([]byte, 15) },
			wantErr: true,
			errMsg:  "verification record shorter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := valid
			tt.mutate(&msg)
			err := msg.ValidateBasic()
			if (err != nil) != tt.wantErr {
				t.Errorf("MsgPlaceBid.ValidateBasic() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && tt.errMsg != "" {
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("MsgPlaceBid.ValidateBasic() error = %v, want error containing %v", err, tt.errMsg)
				}
			}
		})
	}
}

func TestMsgOpenSubscription_ValidateBasic(t *testing.T) {
	msg := MsgOpenSubscription{
		Subscriber: validAddress,
		AppId:      0,
		ParamsHash: "cfg",
		MaxPrice:   math.NewInt(100),
	}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("MsgOpenSubscription.ValidateBasic() unexpected error: %v", err)
	}

	msg.MaxPrice = math.NewInt(-1)
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgOpenSubscription.ValidateBasic() expected error for negative max price")
	}

	msg.MaxPrice = math.NewInt(100)
	msg.Subscriber = invalidAddress
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgOpenSubscription.ValidateBasic() expected error for invalid subscriber")
	}
}

func TestMsgCloseSubscription_ValidateBasic(t *testing.T) {
	msg := MsgCloseSubscription{Subscriber: validAddress, SubscriptionId: 3}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("MsgCloseSubscription.ValidateBasic() unexpected error: %v", err)
	}

	msg.Subscriber = invalidAddress
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgCloseSubscription.ValidateBasic() expected error for invalid subscriber")
	}
}

func TestMsgAnnounceWorker_ValidateBasic(t *testing.T) {
	msg := MsgAnnounceWorker{
		Worker:           validAddress,
		AttestationProof: "proof",
		TransitKey:       validHexKey,
		PeerAddress:      "/ip4/10.0.0.1/tcp/4001",
	}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("MsgAnnounceWorker.ValidateBasic() unexpected error: %v", err)
	}

	msg.PeerAddress = ""
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgAnnounceWorker.ValidateBasic() expected error for empty peer address")
	}

	msg.PeerAddress = "/ip4/10.0.0.1/tcp/4001"
	msg.TransitKey = "short"
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgAnnounceWorker.ValidateBasic() expected error for bad transit key")
	}
}

func TestMsgPlaceBid_GetSigners(t *testing.T) {
	msg := MsgPlaceBid{Worker: validAddress}

	signers := msg.GetSigners()
	if len(signers) != 1 {
		t.Fatalf("Expected 1 signer, got %d", len(signers))
	}

	expected, _ := sdk.AccAddressFromBech32(validAddress)
	if !signers[0].Equals(expected) {
		t.Errorf("Expected signer %s, got %s", expected, signers[0])
	}
}

func TestMsgUpdateParams_ValidateBasic(t *testing.T) {
	msg := MsgUpdateParams{
		Authority: validAddress,
		Params:    DefaultParams(),
	}
	if err := msg.ValidateBasic(); err != nil {
		t.Errorf("MsgUpdateParams.ValidateBasic() unexpected error: %v", err)
	}

	msg.Params.BidWindowSeconds = 0
	if err := msg.ValidateBasic(); err == nil {
		t.Error("MsgUpdateParams.ValidateBasic() expected error for zero bid window")
	}
}
