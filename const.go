// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// protocol version the handshake engine requires; anything lower is the
// pre-4.1 protocol, which is explicitly unsupported.
const minProtocolVersion = 10

// maxPacketSize is the largest single-packet payload (2^24 - 1). A payload
// reaching exactly this length is followed by a continuation packet.
const maxPacketSize = 1<<24 - 1

// command bytes. Every outbound command payload starts with exactly one of
// these.
type commandType byte

const (
	comSleep           commandType = 0x00
	comQuit            commandType = 0x01
	comInitDB          commandType = 0x02
	comQuery           commandType = 0x03
	comFieldList       commandType = 0x04
	comPing            commandType = 0x0e
	comStmtPrepare     commandType = 0x16
	comStmtExecute     commandType = 0x17
	comStmtSendLongData commandType = 0x18
	comStmtClose       commandType = 0x19
	comStmtReset       commandType = 0x1a
	comSetOption       commandType = 0x1b
	comStmtFetch       commandType = 0x1c
	comResetConnection commandType = 0x1f
	comStmtBulkExecute commandType = 0xfa // MariaDB extension
)

// first-byte sentinels used by the response classifier.
const (
	iOK           byte = 0x00
	iLocalInFile  byte = 0xfb
	iEOF          byte = 0xfe
	iERR          byte = 0xff
	iAuthMoreData byte = 0x01
)

// ClientFlag is a bit in the 32-bit client/server capability bitfield
// negotiated at handshake time.
type ClientFlag uint32

const (
	ClientLongPassword ClientFlag = 1 << iota
	ClientFoundRows
	ClientLongFlag
	ClientConnectWithDB
	ClientNoSchema
	ClientCompress
	ClientODBC
	ClientLocalFiles
	ClientIgnoreSpace
	ClientProtocol41
	ClientInteractive
	ClientSSL
	ClientIgnoreSIGPIPE
	ClientTransactions
	ClientReserved
	ClientSecureConn
	ClientMultiStatements
	ClientMultiResults
	ClientPSMultiResults
	ClientPluginAuth
	ClientConnectAttrs
	ClientPluginAuthLenEncClientData
	ClientCanHandleExpiredPasswords
	ClientSessionTrack
	ClientDeprecateEOF
	ClientQueryAttributes ClientFlag = 1 << 27
	ClientOptionalResultsetMetadata ClientFlag = 1 << 25
	ClientZstdCompressionAlgorithm ClientFlag = 1 << 26
	ClientSSLVerifyServerCert ClientFlag = 1 << 30
	ClientRememberOptions ClientFlag = 1 << 31
)

// clientWantedFlags are the capability bits the handshake engine always asks
// for; CLIENT_CONNECT_WITH_DB, CLIENT_DEPRECATE_EOF and CLIENT_SSL are added
// conditionally (see handshake.go).
const clientWantedFlags = ClientProtocol41 |
	ClientSecureConn |
	ClientPluginAuth |
	ClientLongPassword |
	ClientLongFlag |
	ClientTransactions |
	ClientMultiResults |
	ClientPluginAuthLenEncClientData

// status flags, as reported in OK/EOF packets.
type statusFlag uint16

const (
	statusInTrans statusFlag = 1 << iota
	statusInAutocommit
	_
	statusMoreResultsExists
	statusNoGoodIndexUsed
	statusNoIndexUsed
	statusCursorExists
	statusLastRowSent
	statusDBDropped
	statusNoBackslashEscapes
	statusMetadataChanged
	statusQueryWasSlow
	statusPSOutParams
	statusInTransReadonly
	statusSessionStateChanged
)

// fieldType is the wire type code of a column, as reported in a column
// definition packet.
type fieldType byte

const (
	fieldTypeDecimal fieldType = iota
	fieldTypeTiny
	fieldTypeShort
	fieldTypeLong
	fieldTypeFloat
	fieldTypeDouble
	fieldTypeNULL
	fieldTypeTimestamp
	fieldTypeLongLong
	fieldTypeInt24
	fieldTypeDate
	fieldTypeTime
	fieldTypeDateTime
	fieldTypeYear
	fieldTypeNewDate
	fieldTypeVarChar
	fieldTypeBit
)

const (
	fieldTypeJSON fieldType = iota + 0xf5
	fieldTypeNewDecimal
	fieldTypeEnum
	fieldTypeSet
	fieldTypeTinyBLOB
	fieldTypeMediumBLOB
	fieldTypeLongBLOB
	fieldTypeBLOB
	fieldTypeVarString
	fieldTypeString
	fieldTypeGeometry
)

// fieldFlag is a bit in a column definition's 16-bit flags field.
type fieldFlag uint16

const (
	flagNotNULL fieldFlag = 1 << iota
	flagPriKey
	flagUniqueKey
	flagMultipleKey
	flagBLOB
	flagUnsigned
	flagZeroFill
	flagBinary
	flagEnum
	flagAutoIncrement
	flagTimestamp
	flagSet
	flagUnknown1
	flagUnknown2
	flagUnknown3
	flagUnknown4
)

// auth plugin names the handshake engine recognizes out of the box.
const (
	pluginMySQLNativePassword = "mysql_native_password"
	pluginCachingSHA2Password = "caching_sha2_password"
	pluginClientEd25519       = "client_ed25519"
)

// MariaDB COM_STMT_BULK_EXECUTE flags.
const (
	bulkSendUnitResults    uint16 = 0x1
	bulkSendTypesToServer  uint16 = 0x80
)

// per-parameter marker bytes used by COM_STMT_BULK_EXECUTE row encoding.
const (
	bulkParamValue   byte = 0x00
	bulkParamNull    byte = 0x01
	bulkParamDefault byte = 0x02
	bulkParamIgnore  byte = 0x03
)
