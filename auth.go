// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2018 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
)

// ParseRSAPublicKeyPEM decodes the PEM-encoded RSA public key a server
// sends in response to a caching_sha2_password public-key request
// (auth-more-data state 0x04, full auth, no cached key).
func ParseRSAPublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, &ProtocolViolationError{What: "server public key response is not valid PEM"}
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, &ProtocolViolationError{What: "server public key is not an RSA key"}
	}
	return key, nil
}

// EncryptPasswordRSA encrypts password for caching_sha2_password's
// non-TLS full-auth path: the password is NUL-terminated, XORed byte-wise
// against a repeating copy of seed, then RSA-OAEP(SHA1) encrypted under the
// server's public key.
func EncryptPasswordRSA(password string, seed []byte, pub *rsa.PublicKey) ([]byte, error) {
	plain := make([]byte, len(password)+1)
	copy(plain, password)
	for i := range plain {
		plain[i] ^= seed[i%len(seed)]
	}
	return rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, plain, nil)
}
