package types

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Single-signature Ed25519 verification record layout. The record is a
// 16-byte header followed by the public key, the signature, and the signed
// message. Offsets inside the header are little-endian u16 and must describe
// exactly that layout; the three record-index fields carry the reserved
// self-reference sentinel.
const (
	// AttestationHeaderSize is the fixed header length in bytes
	AttestationHeaderSize = 16

	// WorkerKeySize is the Ed25519 identity key length
	WorkerKeySize = ed25519.PublicKeySize

	// AttestationNonceSize is the big-endian nonce suffix length
	AttestationNonceSize = 8

	// AttestationMessageSize is the signed message length: identity plus nonce
	AttestationMessageSize = WorkerKeySize + AttestationNonceSize

	// AttestationPubKeyOffset is where the embedded public key starts
	AttestationPubKeyOffset = AttestationHeaderSize

	// AttestationSignatureOffset is where the embedded signature starts
	AttestationSignatureOffset = AttestationPubKeyOffset + ed25519.PublicKeySize

	// AttestationPayloadOffset is where the embedded message starts
	AttestationPayloadOffset = AttestationSignatureOffset + ed25519.SignatureSize

	// AttestationRecordIndexSentinel marks an offset as referring to this record
	AttestationRecordIndexSentinel = uint16(0xFFFF)
)

// AttestationRecord is the parsed form of a verification record. Header
// fields are kept verbatim so every one of them can be checked against the
// single-signature layout before any byte of the payload is trusted.
type AttestationRecord struct {
	NumSignatures        byte
	Padding              byte
	SignatureOffset      uint16
	SignatureRecordIndex uint16
	PubKeyOffset         uint16
	PubKeyRecordIndex    uint16
	MessageOffset        uint16
	MessageSize          uint16
	MessageRecordIndex   uint16
	PubKey               []byte
	Signature            []byte
	Message              []byte
}

// ValidateHeader asserts that every header field matches the
// single-signature layout implied by the payload lengths. Any deviation
// means the record does not attest what it appears to attest.
func (r *AttestationRecord) ValidateHeader() error {
	if r.NumSignatures != 1 {
		return fmt.Errorf("expected 1 signature, got %d", r.NumSignatures)
	}
	if r.Padding != 0 {
		return fmt.Errorf("nonzero header padding: %d", r.Padding)
	}
	if r.PubKeyOffset != uint16(AttestationPubKeyOffset) {
		return fmt.Errorf("public key offset: expected %d, got %d", AttestationPubKeyOffset, r.PubKeyOffset)
	}
	if r.SignatureOffset != uint16(AttestationSignatureOffset) {
		return fmt.Errorf("signature offset: expected %d, got %d", AttestationSignatureOffset, r.SignatureOffset)
	}
	if r.MessageOffset != uint16(AttestationPayloadOffset) {
		return fmt.Errorf("message offset: expected %d, got %d", AttestationPayloadOffset, r.MessageOffset)
	}
	if int(r.MessageSize) != len(r.Message) {
		return fmt.Errorf("message size: declared %d, embedded %d", r.MessageSize, len(r.Message))
	}
	if r.SignatureRecordIndex != AttestationRecordIndexSentinel {
		return fmt.Errorf("signature record index: expected sentinel, got %d", r.SignatureRecordIndex)
	}
	if r.PubKeyRecordIndex != AttestationRecordIndexSentinel {
		return fmt.Errorf("public key record index: expected sentinel, got %d", r.PubKeyRecordIndex)
	}
	if r.MessageRecordIndex != AttestationRecordIndexSentinel {
		return fmt.Errorf("message record index: expected sentinel, got %d", r.MessageRecordIndex)
	}
	return nil
}

// BuildAttestationMessage constructs the 40-byte message a worker's oracle
// must have signed: the 32-byte identity key followed by the worker's current
// replay nonce in big-endian order.
func BuildAttestationMessage(identity []byte, nonce uint64) []byte {
	msg := make([]byte, 0, AttestationMessageSize)
	msg = append(msg, identity...)
	msg = binary.BigEndian.AppendUint64(msg, nonce)
	return msg
}

// ParseWorkerKey decodes a hex-encoded 32-byte Ed25519 identity key.
func ParseWorkerKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("worker key is not valid hex: %w", err)
	}
	if len(key) != WorkerKeySize {
		return nil, fmt.Errorf("worker key must be %d bytes, got %d", WorkerKeySize, len(key))
	}
	return key, nil
}
