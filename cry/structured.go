// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"github.com/pkg/errors"
	"github.com/stx-tools/pox-stacker/clarity"
)

// structuredDataPrefix is the ascii "SIP018".
var structuredDataPrefix = []byte("SIP018")

// StructuredDataHash hashes a clarity domain and message for off-chain signing:
// sha256(prefix || sha256(domain) || sha256(message)).
func StructuredDataHash(domain, message clarity.Value) (Hash, error) {
	d, err := clarity.Encode(domain)
	if err != nil {
		return Hash{}, errors.Wrap(err, "encode domain")
	}
	m, err := clarity.Encode(message)
	if err != nil {
		return Hash{}, errors.Wrap(err, "encode message")
	}
	dh := Sha256(d)
	mh := Sha256(m)
	return Sha256(structuredDataPrefix, dh[:], mh[:]), nil
}

// SignStructuredData signs the structured data hash of domain and message.
func SignStructuredData(domain, message clarity.Value, key *PrivateKey) ([]byte, error) {
	h, err := StructuredDataHash(domain, message)
	if err != nil {
		return nil, err
	}
	return SignRSV(h[:], key.PrivateKey)
}
