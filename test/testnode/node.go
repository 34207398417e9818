// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testnode serves the node RPC endpoints the stacker uses from memory.
package testnode

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
	"github.com/stx-tools/pox-stacker/stacks"
	"github.com/stx-tools/pox-stacker/stacksclient/httpclient"
	"github.com/stx-tools/pox-stacker/tx"
)

// Node represents an in-memory node with the pox, accounts and transactions endpoints.
type Node interface {
	// Start starts the node
	Start() error

	// Stop stops the node
	Stop() error

	// APIServer returns the node api server
	APIServer() *httptest.Server

	// Transactions returns the accepted transactions in arrival order.
	Transactions() []*tx.Transaction

	// RejectTransactions makes the node refuse every later broadcast with reason.
	RejectTransactions(reason string)

	// FailAccount makes the accounts endpoint answer 500 for addr.
	FailAccount(addr stacks.Address)
}

type node struct {
	pox      httpclient.PoxInfo
	accounts map[string]httpclient.Account
	network  *stacks.Network

	apiServer *httptest.Server

	mu           sync.Mutex
	txs          []*tx.Transaction
	rejectReason string
	failing      map[string]bool
}

// Start starts the API server. Returns an error if the node is already running.
func (n *node) Start() error {
	if n.apiServer != nil {
		return errors.New("node is already running")
	}

	router := mux.NewRouter()
	router.Path("/v2/pox").Methods(http.MethodGet).HandlerFunc(n.handleGetPox)
	router.Path("/v2/accounts/{principal}").Methods(http.MethodGet).HandlerFunc(n.handleGetAccount)
	router.Path("/v2/transactions").Methods(http.MethodPost).HandlerFunc(n.handlePostTransaction)

	n.apiServer = httptest.NewServer(router)
	return nil
}

// Stop stops the API server.
func (n *node) Stop() error {
	if n.apiServer == nil {
		return errors.New("node is not running")
	}
	n.apiServer.Close()
	n.apiServer = nil
	return nil
}

func (n *node) APIServer() *httptest.Server {
	return n.apiServer
}

func (n *node) Transactions() []*tx.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*tx.Transaction(nil), n.txs...)
}

func (n *node) RejectTransactions(reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejectReason = reason
}

func (n *node) FailAccount(addr stacks.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failing == nil {
		n.failing = make(map[string]bool)
	}
	n.failing[addr.String()] = true
}

func (n *node) handleGetPox(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, n.pox)
}

func (n *node) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	principal := mux.Vars(r)["principal"]

	n.mu.Lock()
	failing := n.failing[principal]
	n.mu.Unlock()
	if failing {
		http.Error(w, "account lookup failed", http.StatusInternalServerError)
		return
	}

	acc, ok := n.accounts[principal]
	if !ok {
		// unknown principals exist with nothing in them
		acc = httpclient.Account{Balance: hex128(0), Locked: hex128(0)}
	}
	writeJSON(w, http.StatusOK, acc)
}

func (n *node) handlePostTransaction(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trx, err := tx.Decode(raw)
	if err != nil {
		reject(w, "Deserialization", "")
		return
	}
	id, _ := trx.ID()
	txID := hex.EncodeToString(id[:])

	if trx.ChainID() != n.network.ChainID || trx.Version() != n.network.TxVersion {
		reject(w, "BadTransactionVersion", txID)
		return
	}
	if err := tx.Verify(trx); err != nil {
		reject(w, "SignatureValidation", txID)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.rejectReason != "" {
		reject(w, n.rejectReason, txID)
		return
	}
	n.txs = append(n.txs, trx)
	writeJSON(w, http.StatusOK, txID)
}

func reject(w http.ResponseWriter, reason, txID string) {
	writeJSON(w, http.StatusBadRequest, httpclient.BroadcastRejection{
		Error:  "transaction rejected",
		Reason: reason,
		TxID:   txID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
