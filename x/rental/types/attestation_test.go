package types

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func validParsedRecord() AttestationRecord {
	return AttestationRecord{
		NumSignatures:        1,
		Padding:              0,
		SignatureOffset:      48,
		SignatureRecordIndex: AttestationRecordIndexSentinel,
		PubKeyOffset:         16,
		PubKeyRecordIndex:    AttestationRecordIndexSentinel,
		MessageOffset:        112,
		MessageSize:          40,
		MessageRecordIndex:   AttestationRecordIndexSentinel,
		PubKey:               make([]byte, 32),
		Signature:            make([]byte, 64),
		Message:              make([]byte, 40),
	}
}

func TestAttestationRecord_ValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *AttestationRecord)
		wantErr string
	}{
		{
			name:   "valid header",
			mutate: func(r *AttestationRecord) {},
		},
		{
			name:    "two signatures",
			mutate:  func(r *AttestationRecord) { r.NumSignatures = 2 },
			wantErr: "expected 1 signature",
		},
		{
			name:    "nonzero padding",
			mutate:  func(r *AttestationRecord) { r.Padding = 7 },
			wantErr: "padding",
		},
		{
			name:    "wrong signature offset",
			mutate:  func(r *AttestationRecord) { r.SignatureOffset = 50 },
			wantErr: "signature offset",
		},
		{
			name:    "wrong pubkey offset",
			mutate:  func(r *AttestationRecord) { r.PubKeyOffset = 0 },
			wantErr: "public key offset",
		},
		{
			name:    "wrong message offset",
			mutate:  func(r *AttestationRecord) { r.MessageOffset = 100 },
			wantErr: "message offset",
		},
		{
			name:    "declared size disagrees with embedded message",
			mutate:  func(r *AttestationRecord) { r.MessageSize = 39 },
			wantErr: "message size",
		},
		{
			name:    "signature index not sentinel",
			mutate:  func(r *AttestationRecord) { r.SignatureRecordIndex = 0 },
			wantErr: "signature record index",
		},
		{
			name:    "pubkey index not sentinel",
			mutate:  func(r *AttestationRecord) { r.PubKeyRecordIndex = 1 },
			wantErr: "public key record index",
		},
		{
			name:    "message index not sentinel",
			mutate:  func(r *AttestationRecord) { r.MessageRecordIndex = 0xFFFE },
			wantErr: "message record index",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validParsedRecord()
			tt.mutate(&rec)
			err := rec.ValidateHeader()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateHeader() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateHeader() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateHeader() error = %v, want error containing %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildAttestationMessage(t *testing.T) {
	identity := bytes.Repeat([]byte{0xAA}, 32)
	msg := BuildAttestationMessage(identity, 7)

	if len(msg) != AttestationMessageSize {
		t.Fatalf("expected %d byte message, got %d", AttestationMessageSize, len(msg))
	}

	if !bytes.Equal(msg[:32], identity) {
		t.Error("message does not start with the identity key")
	}

	if nonce := binary.BigEndian.Uint64(msg[32:]); nonce != 7 {
		t.Errorf("expected big-endian nonce 7, got %d", nonce)
	}
}

func TestParseWorkerKey(t *testing.T) {
	key, err := ParseWorkerKey(strings.Repeat("0f", 32))
	if err != nil {
		t.Fatalf("ParseWorkerKey() unexpected error: %v", err)
	}
	if len(key) != WorkerKeySize {
		t.Errorf("expected %d byte key, got %d", WorkerKeySize, len(key))
	}

	if _, err := ParseWorkerKey("xyz"); err == nil {
		t.Error("ParseWorkerKey() expected error for non-hex input")
	}

	if _, err := ParseWorkerKey(strings.Repeat("0f", 16)); err == nil {
		t.Error("ParseWorkerKey() expected error for short key")
	}
}
