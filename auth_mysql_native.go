// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import "crypto/sha1"

// NativePasswordPlugin implements mysql_native_password: SHA1-based
// challenge-response scrambling.
type NativePasswordPlugin struct{}

func (NativePasswordPlugin) Name() string { return pluginMySQLNativePassword }

// Authenticate scrambles password against the first 20 bytes of authData
// (the handshake's combined salt1+salt2, or an auth-switch-request's
// plugin data). An empty password scrambles to nil, matching the wire
// convention for anonymous accounts.
func (NativePasswordPlugin) Authenticate(password string, authData []byte) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	scramble := authData
	if len(scramble) > 20 {
		scramble = scramble[:20]
	}
	return scrambleNativePassword(scramble, password), nil
}

// scrambleNativePassword computes SHA1(password) XOR SHA1(scramble +
// SHA1(SHA1(password))), the 4.1+ challenge-response token.
func scrambleNativePassword(scramble []byte, password string) []byte {
	crypt := sha1.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(stage1)
	hash := crypt.Sum(nil)

	crypt.Reset()
	crypt.Write(scramble)
	crypt.Write(hash)
	token := crypt.Sum(nil)

	for i := range token {
		token[i] ^= stage1[i]
	}
	return token
}
