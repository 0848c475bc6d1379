package property

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	keepertest "github.com/vaultmesh/vaultmesh/testutil/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/keeper"
	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// propMarket is a bootstrapped marketplace for property runs: registry
// initialized, one app, one funded subscriber.
type propMarket struct {
	keeper     *keeper.Keeper
	ctx        sdk.Context
	oraclePriv ed25519.PrivateKey
	oracleKey  string
	subscriber sdk.AccAddress
	appID      uint64
}

type propWorker struct {
	addr     sdk.AccAddress
	identity []byte
	keyHex   string
}

func newPropMarket(t *testing.T, deposit int64) *propMarket {
	f, ctx := keepertest.RentalKeeperFixture(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	oracleKey := hex.EncodeToString(pub)
	require.NoError(t, f.Keeper.InitRegistry(ctx, oracleKey, "proof"))

	creator := randomAddr(t)
	appID, err := f.Keeper.RegisterApp(ctx, creator, "manifest", math.NewInt(1), creator)
	require.NoError(t, err)

	subscriber := randomAddr(t)
	f.FundAccount(t, ctx, subscriber, math.NewInt(deposit))
	_, err = f.Keeper.Deposit(ctx, subscriber, math.NewInt(deposit))
	require.NoError(t, err)

	return &propMarket{
		keeper:     f.Keeper,
		ctx:        ctx,
		oraclePriv: priv,
		oracleKey:  oracleKey,
		subscriber: subscriber,
		appID:      appID,
	}
}

func randomAddr(t *testing.T) sdk.AccAddress {
	addr := make(sdk.AccAddress, 20)
	_, err := rand.Read(addr)
	require.NoError(t, err)
	return addr
}

func newPropWorker(t *testing.T) propWorker {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return propWorker{addr: randomAddr(t), identity: pub, keyHex: hex.EncodeToString(pub)}
}

// attest signs identity||nonce_be with the market oracle and wraps it in a
// verification record.
func (m *propMarket) attest(identity []byte, nonce uint64) (signature, record []byte) {
	message := make([]byte, 0, types.AttestationMessageSize)
	message = append(message, identity...)
	message = binary.BigEndian.AppendUint64(message, nonce)

	signature = ed25519.Sign(m.oraclePriv, message)

	record = make([]byte, 0, types.AttestationPayloadOffset+len(message))
	record = append(record, 1, 0)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationSignatureOffset))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationPubKeyOffset))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = binary.LittleEndian.AppendUint16(record, uint16(types.AttestationPayloadOffset))
	record = binary.LittleEndian.AppendUint16(record, uint16(len(message)))
	record = binary.LittleEndian.AppendUint16(record, types.AttestationRecordIndexSentinel)
	record = append(record, m.oraclePriv.Public().(ed25519.PublicKey)...)
	record = append(record, signature...)
	record = append(record, message...)

	return signature, record
}

func (m *propMarket) bid(w propWorker, subID uint64, amount int64) (bool, error) {
	nonce := m.keeper.GetWorkerNonce(m.ctx, w.identity)
	sig, record := m.attest(w.identity, nonce)
	won, _, err := m.keeper.PlaceBid(m.ctx, w.addr, w.keyHex, m.oracleKey, m.subscriber, subID, math.NewInt(amount), sig, record)
	return won, err
}

// TestAuctionPriceProperties tests reverse-auction pricing over random bid
// sequences
func TestAuctionPriceProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxPrice := rapid.Int64Range(10, 1000).Draw(rt, "maxPrice")
		m := newPropMarket(t, maxPrice)

		subID, _, err := m.keeper.OpenSubscription(m.ctx, m.subscriber, m.appID, "params", math.NewInt(maxPrice))
		require.NoError(t, err)

		bidCount := rapid.IntRange(1, 12).Draw(rt, "bidCount")

		lowestWinning := maxPrice + 1
		var expectedExecutor string
		anyoneWon := false

		for i := 0; i < bidCount; i++ {
			w := newPropWorker(t)
			amount := rapid.Int64Range(1, maxPrice).Draw(rt, "bid")

			won, err := m.bid(w, subID, amount)
			require.NoError(rt, err)

			// Property: a bid wins iff it strictly undercuts the standing
			// price, except the first ceiling bid on an unassigned auction.
			expectWin := amount < lowestWinning || (amount == maxPrice && !anyoneWon)
			require.Equal(rt, expectWin, won, "bid %d at %d against standing %d", i, amount, lowestWinning)

			if won {
				if amount < lowestWinning {
					lowestWinning = amount
				}
				expectedExecutor = w.addr.String()
				anyoneWon = true
			}
		}

		sub, err := m.keeper.GetSubscription(m.ctx, m.subscriber, subID)
		require.NoError(rt, err)

		// Property: the price never exceeds the ceiling and only moves down.
		require.True(rt, sub.CurrentPrice.LTE(sub.MaxPrice))

		// Property: the recorded executor is the last strict underbidder, or
		// the first ceiling bidder if nobody undercut.
		require.Equal(rt, expectedExecutor, sub.Executor)
		if lowestWinning <= maxPrice {
			require.Equal(rt, math.NewInt(lowestWinning), sub.CurrentPrice)
		}
	})
}

// TestWorkerNonceProperties tests that every successful authenticated call
// burns exactly one replay nonce and failed calls burn none
func TestWorkerNonceProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := newPropMarket(t, 1000)

		subID, _, err := m.keeper.OpenSubscription(m.ctx, m.subscriber, m.appID, "params", math.NewInt(1000))
		require.NoError(t, err)

		w := newPropWorker(t)
		callCount := rapid.IntRange(1, 10).Draw(rt, "callCount")

		expected := uint64(0)
		for i := 0; i < callCount; i++ {
			if rapid.Bool().Draw(rt, "stale") {
				// A stale or future nonce must be rejected without burning.
				offset := rapid.Uint64Range(1, 5).Draw(rt, "offset")
				sig, record := m.attest(w.identity, expected+offset)
				_, _, err := m.keeper.PlaceBid(m.ctx, w.addr, w.keyHex, m.oracleKey, m.subscriber, subID, math.NewInt(500), sig, record)
				require.Error(rt, err)
			} else {
				amount := rapid.Int64Range(1, 1000).Draw(rt, "amount")
				_, err := m.bid(w, subID, amount)
				require.NoError(rt, err)
				expected++
			}

			require.Equal(rt, expected, m.keeper.GetWorkerNonce(m.ctx, w.identity))
		}
	})
}

// TestEscrowConservationProperties tests that escrow records and the module
// account stay in lockstep over random deposit sequences
func TestEscrowConservationProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f, ctx := keepertest.RentalKeeperFixture(t)

		depositorCount := rapid.IntRange(1, 5).Draw(rt, "depositors")
		total := math.ZeroInt()

		for i := 0; i < depositorCount; i++ {
			depositor := randomAddr(t)
			funds := rapid.Int64Range(1, 1_000_000).Draw(rt, "funds")
			f.FundAccount(t, ctx, depositor, math.NewInt(funds))

			deposits := rapid.IntRange(1, 3).Draw(rt, "deposits")
			remaining := funds
			for j := 0; j < deposits && remaining > 0; j++ {
				amount := rapid.Int64Range(1, remaining).Draw(rt, "amount")
				_, err := f.Keeper.Deposit(ctx, depositor, math.NewInt(amount))
				require.NoError(rt, err)
				total = total.Add(math.NewInt(amount))
				remaining -= amount
			}
		}

		sum := math.ZeroInt()
		require.NoError(rt, f.Keeper.IterateEscrowAccounts(ctx, func(account types.EscrowAccount) (bool, error) {
			sum = sum.Add(account.Balance)
			return false, nil
		}))
		require.Equal(rt, total, sum)

		msg, broken := keeper.EscrowBalanceInvariant(*f.Keeper)(ctx)
		require.False(rt, broken, msg)
	})
}
