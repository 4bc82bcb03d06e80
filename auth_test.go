// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"bytes"
	"testing"
)

func scramble20() []byte {
	s := make([]byte, 20)
	for i := range s {
		s[i] = byte(i + 1)
	}
	return s
}

func TestNativePasswordPluginEmptyPassword(t *testing.T) {
	p := NativePasswordPlugin{}
	got, err := p.Authenticate("", scramble20())
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for empty password", got)
	}
}

func TestNativePasswordPluginDeterministic(t *testing.T) {
	p := NativePasswordPlugin{}
	scramble := scramble20()
	a, err := p.Authenticate("hunter2", scramble)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	b, _ := p.Authenticate("hunter2", scramble)
	if !bytes.Equal(a, b) {
		t.Error("scrambling is not deterministic for identical inputs")
	}
	if len(a) != 20 {
		t.Errorf("token length = %d, want 20", len(a))
	}
	c, _ := p.Authenticate("different", scramble)
	if bytes.Equal(a, c) {
		t.Error("different passwords scrambled to the same token")
	}
}

func TestCachingSHA2PasswordPluginDeterministic(t *testing.T) {
	p := CachingSHA2PasswordPlugin{}
	scramble := scramble20()
	a, err := p.Authenticate("hunter2", scramble)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	b, _ := p.Authenticate("hunter2", scramble)
	if !bytes.Equal(a, b) {
		t.Error("scrambling is not deterministic for identical inputs")
	}
	if len(a) != 32 {
		t.Errorf("token length = %d, want 32", len(a))
	}
}

func TestClearTextPassword(t *testing.T) {
	got := ClearTextPassword("hunter2")
	want := append([]byte("hunter2"), 0)
	if !bytes.Equal(got, want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestPluginRegistry(t *testing.T) {
	r := DefaultPluginRegistry()
	if _, ok := r.Lookup(pluginMySQLNativePassword); !ok {
		t.Error("mysql_native_password not registered by default")
	}
	if _, ok := r.Lookup(pluginCachingSHA2Password); !ok {
		t.Error("caching_sha2_password not registered by default")
	}
	if _, ok := r.Lookup(pluginClientEd25519); ok {
		t.Error("client_ed25519 should not be registered by default")
	}

	r.Register(Ed25519Plugin{})
	if _, ok := r.Lookup(pluginClientEd25519); !ok {
		t.Error("client_ed25519 not registered after explicit Register")
	}
}

func TestEd25519PluginDeterministic(t *testing.T) {
	p := Ed25519Plugin{}
	scramble := []byte("0123456789abcdefghij")
	a, err := p.Authenticate("hunter2", scramble)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("signature length = %d, want 64", len(a))
	}
	b, _ := p.Authenticate("hunter2", scramble)
	if !bytes.Equal(a, b) {
		t.Error("signing is not deterministic for identical inputs")
	}
}
