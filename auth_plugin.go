// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// AuthPlugin computes a single scrambled authentication response from a
// cleartext password and the server-supplied challenge bytes. It is a pure
// function: no connection, no socket, no retries. Plugins whose protocol
// needs more than one round trip (caching_sha2_password's RSA/cleartext
// full-auth path) expose additional pure helpers instead of trying to fit
// every round through this interface; see auth_caching_sha2.go.
type AuthPlugin interface {
	// Name is the plugin name as advertised on the wire, e.g.
	// "mysql_native_password".
	Name() string

	// Authenticate returns the bytes to send as the initial auth response
	// (in a HandshakeResponse41 or an auth-switch-response), given the
	// challenge data the server sent (the handshake salt, or the data
	// accompanying an auth-switch-request).
	Authenticate(password string, authData []byte) ([]byte, error)
}

// PluginRegistry maps plugin names to the AuthPlugin that handles them.
// Callers construct and own their own registry instance; this package has
// no package-level mutable state.
type PluginRegistry struct {
	plugins map[string]AuthPlugin
}

// NewPluginRegistry returns an empty registry.
func NewPluginRegistry() *PluginRegistry {
	return &PluginRegistry{plugins: make(map[string]AuthPlugin)}
}

// Register adds (or replaces) the plugin handling its advertised name.
func (r *PluginRegistry) Register(p AuthPlugin) {
	r.plugins[p.Name()] = p
}

// Lookup returns the plugin registered for name, if any.
func (r *PluginRegistry) Lookup(name string) (AuthPlugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// DefaultPluginRegistry returns a registry pre-populated with the two
// plugins a standard MySQL 8+ server negotiates by default. client_ed25519
// is MariaDB-specific and not included by default; callers that connect to
// a MariaDB server configured for it register Ed25519Plugin themselves.
func DefaultPluginRegistry() *PluginRegistry {
	r := NewPluginRegistry()
	r.Register(NativePasswordPlugin{})
	r.Register(CachingSHA2PasswordPlugin{})
	return r
}
