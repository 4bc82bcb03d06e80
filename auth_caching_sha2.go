// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import "crypto/sha256"

// CachingSHA2PasswordPlugin implements caching_sha2_password's initial
// challenge-response round. Its second round — fast-auth-success, or a
// full-auth exchange requiring RSA-encrypted or cleartext-over-TLS password
// delivery — cannot be expressed as a single pure Authenticate call, since it
// depends on a transport-security fact (is the channel already encrypted?)
// and possibly an extra round trip to fetch the server's RSA public key.
// Callers drive that round themselves using ClassifyAuthMoreData,
// EncryptPasswordRSA, ParseRSAPublicKeyPEM and ClearTextPassword below.
type CachingSHA2PasswordPlugin struct{}

func (CachingSHA2PasswordPlugin) Name() string { return pluginCachingSHA2Password }

// Authenticate computes the initial scrambled response sent in the
// HandshakeResponse41 (or an auth-switch-response).
func (CachingSHA2PasswordPlugin) Authenticate(password string, authData []byte) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	return scrambleSHA256Password(authData, password), nil
}

// scrambleSHA256Password computes SHA256(password) XOR
// SHA256(SHA256(SHA256(password)) + scramble).
func scrambleSHA256Password(scramble []byte, password string) []byte {
	crypt := sha256.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	stage1Hash := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1Hash)
	crypt.Write(scramble)
	stage2 := crypt.Sum(nil)

	token := make([]byte, len(stage1))
	for i := range stage1 {
		token[i] = stage1[i] ^ stage2[i]
	}
	return token
}

// ClearTextPassword encodes password for the full-auth cleartext path,
// which the caller may only take over a channel it knows to be encrypted
// (TLS, or a local Unix socket).
func ClearTextPassword(password string) []byte {
	return append([]byte(password), 0)
}
