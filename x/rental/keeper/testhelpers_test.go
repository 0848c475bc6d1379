package keeper_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vaultmesh/vaultmesh/testutil/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// testOracle is the trusted consensus signer for a test marketplace.
type testOracle struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

func newTestOracle(t *testing.T) testOracle {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return testOracle{priv: priv, pub: pub}
}

func (o testOracle) keyHex() string {
	return hex.EncodeToString(o.pub)
}

// attest builds the raw signature and verification record for one
// authenticated worker call: the oracle signs identity||nonce_be.
func (o testOracle) attest(identity []byte, nonce uint64) (signature, record []byte) {
	message := make([]byte, 0, types.AttestationMessageSize)
	message = append(message, identity...)
	message = binary.BigEndian.AppendUint64(message, nonce)

	signature = ed25519.Sign(o.priv, message)

	record = make([]byte, 0, types.AttestationPayloadOffset+len(message))
	record = append(record, 1, 0)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationSignatureOffset))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationPubKeyOffset))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationPayloadOffset))
	record = binary.LittleEndian.AppendUint16(record, uint16(len(message)))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = append(record, o.pub...)
	record = append(record, signature...)
	record = append(record, message...)

	return signature, record
}

// testWorker is a bidding worker: a bech32 account plus the 32-byte
// identity key the oracle attests for it.
type testWorker struct {
	addr     sdk.AccAddress
	identity []byte
	keyHex   string
}

func newTestWorker(t *testing.T) testWorker {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	addr := make(sdk.AccAddress, 20)
	_, err = rand.Read(addr)
	require.NoError(t, err)

	return testWorker{addr: addr, identity: pub, keyHex: hex.EncodeToString(pub)}
}

func newTestAddr(t *testing.T) sdk.AccAddress {
	addr := make(sdk.AccAddress, 20)
	_, err := rand.Read(addr)
	require.NoError(t, err)
	return addr
}

// marketFixture is a bootstrapped marketplace: registry initialized, one
// app registered, one funded subscriber.
type marketFixture struct {
	keepertest.RentalTestFixture
	oracle     testOracle
	creator    sdk.AccAddress
	subscriber sdk.AccAddress
	appID      uint64
}

func setupMarket(t *testing.T) (marketFixture, sdk.Context) {
	f, ctx := keepertest.RentalKeeperFixture(t)

	oracle := newTestOracle(t)
	require.NoError(t, f.Keeper.InitRegistry(ctx, oracle.keyHex(), "genesis attestation"))

	creator := newTestAddr(t)
	appID, err := f.Keeper.RegisterApp(ctx, creator, "bafybeigdyrztmanifest", math.NewInt(100), creator)
	require.NoError(t, err)

	subscriber := newTestAddr(t)
	f.FundAccount(t, ctx, subscriber, math.NewInt(1_000_000))
	_, err = f.Keeper.Deposit(ctx, subscriber, math.NewInt(10_000))
	require.NoError(t, err)

	return marketFixture{
		RentalTestFixture: f,
		oracle:            oracle,
		creator:           creator,
		subscriber:        subscriber,
		appID:             appID,
	}, ctx
}

// openSub opens a subscription at the given ceiling and returns its id.
func (m marketFixture) openSub(t *testing.T, ctx sdk.Context, maxPrice int64) uint64 {
	id, _, err := m.Keeper.OpenSubscription(ctx, m.subscriber, m.appID, "paramshash", math.NewInt(maxPrice))
	require.NoError(t, err)
	return id
}

// bid places an authenticated bid by the given worker at its current nonce.
func (m marketFixture) bid(ctx sdk.Context, w testWorker, subID uint64, amount int64) (bool, math.Int, error) {
	nonce := m.Keeper.GetWorkerNonce(ctx, w.identity)
	sig, record := m.oracle.attest(w.identity, nonce)
	return m.Keeper.PlaceBid(ctx, w.addr, w.keyHex, m.oracle.keyHex(), m.subscriber, subID, math.NewInt(amount), sig, record)
}

// claim claims a won auction for the given worker at its current nonce.
func (m marketFixture) claim(ctx sdk.Context, w testWorker, subID uint64) error {
	nonce := m.Keeper.GetWorkerNonce(ctx, w.identity)
	sig, record := m.oracle.attest(w.identity, nonce)
	return m.Keeper.ClaimBid(ctx, w.addr, w.keyHex, m.oracle.keyHex(), m.subscriber, subID, sig, record)
}

// report submits a liveness report for the given worker at its current
// replay nonce, echoing workNonce as the proof of continuous execution.
func (m marketFixture) report(ctx sdk.Context, w testWorker, subID, workNonce uint64) (keeper.ReportResult, error) {
	nonce := m.Keeper.GetWorkerNonce(ctx, w.identity)
	sig, record := m.oracle.attest(w.identity, nonce)
	return m.Keeper.ReportWork(ctx, w.addr, w.keyHex, m.oracle.keyHex(), m.subscriber, subID, workNonce, sig, record)
}

// advance moves the block time forward by the given number of seconds.
func advance(ctx sdk.Context, seconds int64) sdk.Context {
	return ctx.WithBlockTime(ctx.BlockTime().Add(time.Duration(seconds) * time.Second))
}

// assignedWorker runs a full auction and claim so reporting tests start from
// an assigned subscription. Returns the worker and the context after the
// claim.
func (m marketFixture) assignedWorker(t *testing.T, ctx sdk.Context, subID uint64, price int64) (testWorker, sdk.Context) {
	w := newTestWorker(t)
	won, _, err := m.bid(ctx, w, subID, price)
	require.NoError(t, err)
	require.True(t, won)

	ctx = advance(ctx, types.DefaultBidWindowSeconds+1)
	require.NoError(t, m.claim(ctx, w, subID))
	return w, ctx
}
