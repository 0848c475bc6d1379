package keeper

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/vaultmesh/vaultmesh/x/rental/types"
)

// ed25519LowOrderPoints are the small-subgroup points that must never be
// accepted as a signing key. Verifying against one of them allows signature
// forgery because multiplying by the curve order produces the identity
// element.
// Reference: https://cr.yp.to/ecdh/curve25519-20060209.pdf
var ed25519LowOrderPoints = [][]byte{
	// 1. Identity point (0)
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	// 2. Order 1 point
	{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	// 3. Order 8 point (p-1 encoding)
	{0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f},
	// 4. Order 2 point (non-canonical)
	{0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b, 0x76, 0x0d, 0x10, 0x67, 0x0f, 0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39, 0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0x7a},
	// 5. Order 4 point (non-canonical, high bit set)
	{0xc7, 0x17, 0x6a, 0x70, 0x3d, 0x4d, 0xd8, 0x4f, 0xba, 0x3c, 0x0b, 0x76, 0x0d, 0x10, 0x67, 0x0f, 0x2a, 0x20, 0x53, 0xfa, 0x2c, 0x39, 0xcc, 0xc6, 0x4e, 0xc7, 0xfd, 0x77, 0x92, 0xac, 0x03, 0xfa},
	// 6. Order 4 point
	{0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0, 0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05},
	// 7. Order 4 point (high bit set)
	{0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0, 0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x85},
	// 8. Identity with high bit set (non-canonical zero)
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80},
}

// parseAttestationRecord deserializes raw verification record bytes. Only
// structure is checked here; header field values are validated separately so
// a caller can distinguish truncation from a well-formed record describing
// the wrong layout.
func parseAttestationRecord(raw []byte) (*types.AttestationRecord, error) {
	if len(raw) < types.AttestationPayloadOffset {
		return nil, fmt.Errorf("record too short: minimum %d bytes required, got %d", types.AttestationPayloadOffset, len(raw))
	}

	rec := &types.AttestationRecord{}

	rec.NumSignatures = raw[0]
	rec.Padding = raw[1]
	rec.SignatureOffset = binary.LittleEndian.Uint16(raw[2:4])
	rec.SignatureRecordIndex = binary.LittleEndian.Uint16(raw[4:6])
	rec.PubKeyOffset = binary.LittleEndian.Uint16(raw[6:8])
	rec.PubKeyRecordIndex = binary.LittleEndian.Uint16(raw[8:10])
	rec.MessageOffset = binary.LittleEndian.Uint16(raw[10:12])
	rec.MessageSize = binary.LittleEndian.Uint16(raw[12:14])
	rec.MessageRecordIndex = binary.LittleEndian.Uint16(raw[14:16])

	rec.PubKey = make([]byte, ed25519.PublicKeySize)
	copy(rec.PubKey, raw[types.AttestationPubKeyOffset:types.AttestationSignatureOffset])

	rec.Signature = make([]byte, ed25519.SignatureSize)
	copy(rec.Signature, raw[types.AttestationSignatureOffset:types.AttestationPayloadOffset])

	rec.Message = make([]byte, len(raw)-types.AttestationPayloadOffset)
	copy(rec.Message, raw[types.AttestationPayloadOffset:])

	return rec, nil
}

// isUsableSigningKey rejects an all-zero or low-order Ed25519 public key.
func isUsableSigningKey(key []byte) bool {
	if len(key) != ed25519.PublicKeySize {
		return false
	}

	for _, lowOrder := range ed25519LowOrderPoints {
		if bytes.Equal(key, lowOrder) {
			return false
		}
	}

	return true
}

// verifyWorkerAttestation authenticates one worker call. The caller supplies
// the consensus key it believes the registry trusts, the claimed 32-byte
// worker identity, a raw 64-byte signature, and the verification record
// bundled with the message. The expected signed payload is rebuilt here from
// stored state: the identity followed by the worker's current replay nonce.
// Nothing inside the record is trusted until it matches that expectation
// byte for byte and the signature verifies under the oracle key.
func (k Keeper) verifyWorkerAttestation(ctx context.Context, consensusKey string, identity, signature, record []byte) error {
	oracle, err := k.GetOracle(ctx)
	if err != nil {
		return err
	}

	if consensusKey != oracle.ConsensusKey {
		k.metrics.RecordAttestationFailure("untrusted_key")
		return types.ErrUntrustedConsensusKey.Wrapf("got %s", consensusKey)
	}

	oracleKey, err := types.ParseWorkerKey(oracle.ConsensusKey)
	if err != nil {
		return types.ErrInvalidWorkerKey.Wrapf("stored oracle key: %v", err)
	}

	rec, err := parseAttestationRecord(record)
	if err != nil {
		k.metrics.RecordAttestationFailure("malformed")
		return types.ErrMalformedReport.Wrap(err.Error())
	}

	if len(rec.Message) != types.AttestationMessageSize {
		k.metrics.RecordAttestationFailure("malformed")
		return types.ErrMalformedReport.Wrapf("message length: expected %d, got %d", types.AttestationMessageSize, len(rec.Message))
	}

	if err := rec.ValidateHeader(); err != nil {
		k.metrics.RecordAttestationFailure("malformed")
		return types.ErrMalformedReport.Wrap(err.Error())
	}

	if !bytes.Equal(rec.PubKey, oracleKey) {
		k.metrics.RecordAttestationFailure("mismatch")
		return types.ErrSignatureVerification.Wrap("embedded public key does not match oracle key")
	}

	if !bytes.Equal(rec.Signature, signature) {
		k.metrics.RecordAttestationFailure("mismatch")
		return types.ErrSignatureVerification.Wrap("embedded signature does not match supplied signature")
	}

	expected := types.BuildAttestationMessage(identity, k.GetWorkerNonce(ctx, identity))
	if !bytes.Equal(rec.Message, expected) {
		k.metrics.RecordAttestationFailure("mismatch")
		return types.ErrSignatureVerification.Wrap("embedded message does not match expected payload")
	}

	if !isUsableSigningKey(oracleKey) {
		k.metrics.RecordAttestationFailure("bad_signature")
		return types.ErrSignatureVerification.Wrap("oracle key is not a usable signing key")
	}

	if isZeroBytes(signature) {
		k.metrics.RecordAttestationFailure("bad_signature")
		return types.ErrSignatureVerification.Wrap("all-zero signature")
	}

	if !ed25519.Verify(ed25519.PublicKey(oracleKey), expected, signature) {
		k.metrics.RecordAttestationFailure("bad_signature")
		return types.ErrSignatureVerification
	}

	return nil
}

func isZeroBytes(bz []byte) bool {
	for _, b := range bz {
		if b != 0 {
			return false
		}
	}
	return true
}
