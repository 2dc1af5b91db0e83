/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rules

import (
	"strconv"
)

// Transaction types as carried in operation.type
const (
	Node                = "0"
	Nym                 = "1"
	GetTxn              = "3"
	TxnAuthrAgrmt       = "4"
	TxnAuthrAgrmtAML    = "5"
	GetTxnAuthrAgrmt    = "6"
	GetTxnAuthrAgrmtAML = "7"
	Attrib              = "100"
	Schema              = "101"
	CredDef             = "102"
	GetAttr             = "104"
	GetNym              = "105"
	GetSchema           = "107"
	GetCredDef          = "108"
	PoolUpgrade         = "109"
	NodeUpgrade         = "110"
	PoolConfig          = "111"
	RevRegDef           = "113"
	RevRegEntry         = "114"
	GetRevRegDef        = "115"
	GetRevReg           = "116"
	GetRevRegDelta      = "117"
	PoolRestart         = "118"
	GetValidatorInfo    = "119"
	AuthRule            = "120"
	GetAuthRule         = "121"
	AuthRules           = "122"
)

// Ledger ids
const (
	PoolLedgerID   = 0
	DomainLedgerID = 1
	ConfigLedgerID = 2
)

var txnAliases = map[string]string{
	"NODE":                     Node,
	"NYM":                      Nym,
	"GET_TXN":                  GetTxn,
	"TXN_AUTHOR_AGREEMENT":     TxnAuthrAgrmt,
	"TXN_AUTHOR_AGREEMENT_AML": TxnAuthrAgrmtAML,
	"ATTRIB":                   Attrib,
	"SCHEMA":                   Schema,
	"CRED_DEF":                 CredDef,
	"POOL_UPGRADE":             PoolUpgrade,
	"NODE_UPGRADE":             NodeUpgrade,
	"POOL_CONFIG":              PoolConfig,
	"REVOC_REG_DEF":            RevRegDef,
	"REVOC_REG_ENTRY":          RevRegEntry,
	"POOL_RESTART":             PoolRestart,
	"VALIDATOR_INFO":           GetValidatorInfo,
	"AUTH_RULE":                AuthRule,
	"AUTH_RULES":               AuthRules,
}

var ledgerAliases = map[string]int{
	"POOL":   PoolLedgerID,
	"DOMAIN": DomainLedgerID,
	"CONFIG": ConfigLedgerID,
}

// TxnTypeCode resolves a well-known alias ("NYM") or a numeric code ("1") to
// the code sent on the wire.
func TxnTypeCode(txnType string) (string, bool) {
	if code, ok := txnAliases[txnType]; ok {
		return code, true
	}
	if _, err := strconv.ParseUint(txnType, 10, 32); err == nil {
		return txnType, true
	}
	return "", false
}

// LedgerID resolves a ledger name or a numeric ledger id. The empty string
// selects the domain ledger.
func LedgerID(ledgerType string) (int, bool) {
	if ledgerType == "" {
		return DomainLedgerID, true
	}
	if id, ok := ledgerAliases[ledgerType]; ok {
		return id, true
	}
	id, err := strconv.Atoi(ledgerType)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
