// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bls implements the Signature Verifier external collaborator
// (spec §1, §6): a proof-of-possession check over a BLS12-381 consensus
// public key, guarding against rogue-key attacks when a validator
// registers its consensus key.
package bls

import (
	blst "github.com/supranational/blst/bindings/go"
)

// popDST is the domain separation tag for proof-of-possession signatures,
// distinct from the DST used to sign consensus messages so a PoP cannot be
// replayed as a message signature or vice versa.
const popDST = "BLS_POP_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_"

// Verifier checks a BLS proof-of-possession over a claimed consensus
// public key. Consumers of the staking core depend only on this
// interface, never on the blst package directly.
type Verifier interface {
	VerifyPoP(pubkey, pop []byte) bool
}

// BLST is the production Verifier backed by supranational/blst.
type BLST struct{}

// VerifyPoP returns true iff pop is a valid proof-of-possession signature
// over pubkey: i.e. pubkey's holder signed pubkey's own bytes with the
// corresponding private key. Malformed input (wrong length, invalid curve
// point) is treated as a failed verification rather than a panic — this
// function backs a user-facing entry point (initialize_validator /
// rotate_consensus_key) that must reject bad input cleanly, not crash.
func (BLST) VerifyPoP(pubkey, pop []byte) bool {
	if len(pubkey) == 0 || len(pop) == 0 {
		return false
	}

	pk := new(blst.P1Affine).Uncompress(pubkey)
	if pk == nil || !pk.KeyValidate() {
		return false
	}

	sig := new(blst.P2Affine).Uncompress(pop)
	if sig == nil {
		return false
	}

	return sig.Verify(true, pk, true, pubkey, []byte(popDST))
}

// NoopVerifier always succeeds; wired only in tests/scenario harnesses
// that construct pools without real key material (spec §8 scenarios
// mint validators without generating BLS keys).
type NoopVerifier struct{}

func (NoopVerifier) VerifyPoP([]byte, []byte) bool { return true }
