package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// RegisterLegacyAminoCodec registers the necessary x/rental interfaces and concrete types
// on the provided LegacyAmino codec. These types are used for Amino JSON serialization.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgInitRegistry{}, "vaultmesh/rental/MsgInitRegistry", nil)
	cdc.RegisterConcrete(&MsgAnnounceWorker{}, "vaultmesh/rental/MsgAnnounceWorker", nil)
	cdc.RegisterConcrete(&MsgRegisterApp{}, "vaultmesh/rental/MsgRegisterApp", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "vaultmesh/rental/MsgDeposit", nil)
	cdc.RegisterConcrete(&MsgOpenSubscription{}, "vaultmesh/rental/MsgOpenSubscription", nil)
	cdc.RegisterConcrete(&MsgPlaceBid{}, "vaultmesh/rental/MsgPlaceBid", nil)
	cdc.RegisterConcrete(&MsgClaimBid{}, "vaultmesh/rental/MsgClaimBid", nil)
	cdc.RegisterConcrete(&MsgReportWork{}, "vaultmesh/rental/MsgReportWork", nil)
	cdc.RegisterConcrete(&MsgCloseSubscription{}, "vaultmesh/rental/MsgCloseSubscription", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "vaultmesh/rental/MsgUpdateParams", nil)
}

// RegisterInterfaces registers the x/rental interface types with the interface registry
func RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&MsgInitRegistry{},
		&MsgAnnounceWorker{},
		&MsgRegisterApp{},
		&MsgDeposit{},
		&MsgOpenSubscription{},
		&MsgPlaceBid{},
		&MsgClaimBid{},
		&MsgReportWork{},
		&MsgCloseSubscription{},
		&MsgUpdateParams{},
	)

	registry.RegisterImplementations((*txtypes.MsgResponse)(nil),
		&MsgInitRegistryResponse{},
		&MsgAnnounceWorkerResponse{},
		&MsgRegisterAppResponse{},
		&MsgDepositResponse{},
		&MsgOpenSubscriptionResponse{},
		&MsgPlaceBidResponse{},
		&MsgClaimBidResponse{},
		&MsgReportWorkResponse{},
		&MsgCloseSubscriptionResponse{},
		&MsgUpdateParamsResponse{},
	)
}

var (
	amino = codec.NewLegacyAmino()
)

func init() {
	RegisterLegacyAminoCodec(amino)
}
