// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// Ed25519Plugin implements MariaDB's client_ed25519 plugin: the password is
// the Ed25519 signing key's seed, and the "scramble" is signed rather than
// hashed against. Not negotiated by a stock MySQL server; callers targeting
// MariaDB register it explicitly via PluginRegistry.Register.
type Ed25519Plugin struct{}

func (Ed25519Plugin) Name() string { return pluginClientEd25519 }

// Authenticate signs authData (the server's scramble) with the Ed25519 key
// derived from password, following MariaDB's ref10-derived signing scheme
// (expand seed -> public key -> per-message nonce -> challenge scalar ->
// response scalar).
func (Ed25519Plugin) Authenticate(password string, authData []byte) ([]byte, error) {
	expanded := sha512.Sum512([]byte(password))
	secretScalar, prefix := expanded[:32], expanded[32:]

	priv, err := edwards25519.NewScalar().SetBytesWithClamping(secretScalar)
	if err != nil {
		return nil, err
	}
	pub := ed25519PublicPoint(priv)

	nonce, err := ed25519Nonce(prefix, authData)
	if err != nil {
		return nil, err
	}
	nonceR := ed25519PublicPoint(nonce)

	challenge, err := ed25519Challenge(nonceR, pub, authData)
	if err != nil {
		return nil, err
	}

	response := challenge.MultiplyAdd(challenge, priv, nonce)
	return append(nonceR.Bytes(), response.Bytes()...), nil
}

// ed25519PublicPoint computes scalar*B, the curve point corresponding to a
// private scalar (the signer's public key when scalar is the clamped
// secret, or the per-message commitment R when scalar is the nonce).
func ed25519PublicPoint(scalar *edwards25519.Scalar) *edwards25519.Point {
	return (&edwards25519.Point{}).ScalarBaseMult(scalar)
}

// ed25519Nonce derives the deterministic per-message nonce scalar r from
// the signing key's hash prefix and the message being signed.
func ed25519Nonce(prefix, message []byte) (*edwards25519.Scalar, error) {
	h := sha512.New()
	h.Write(prefix)
	h.Write(message)
	return edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
}

// ed25519Challenge derives the Fiat-Shamir challenge scalar k = H(R || A || message).
func ed25519Challenge(R, A *edwards25519.Point, message []byte) (*edwards25519.Scalar, error) {
	h := sha512.New()
	h.Write(R.Bytes())
	h.Write(A.Bytes())
	h.Write(message)
	return edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
}
