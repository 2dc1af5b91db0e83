/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package request

// AuthKind tells which authentication region a request carries
type AuthKind int

const (
	// Unsigned requests carry neither signature nor signatures
	Unsigned AuthKind = iota
	// Single requests carry one signature made by the identifier
	Single
	// Multi requests carry signatures keyed by signer DID
	Multi
)

func (k AuthKind) String() string {
	switch k {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "unsigned"
	}
}

// Auth is the authentication region of a request. A request holds a single
// signature or a signature map, never both.
type Auth struct {
	kind       AuthKind
	signature  string
	signatures map[string]string
}

// UnsignedAuth returns an empty authentication region
func UnsignedAuth() Auth {
	return Auth{}
}

// SingleAuth returns a region holding one signature
func SingleAuth(signature string) Auth {
	return Auth{kind: Single, signature: signature}
}

// MultiAuth returns a region holding the given signatures
func MultiAuth(signatures map[string]string) Auth {
	copied := make(map[string]string, len(signatures))
	for k, v := range signatures {
		copied[k] = v
	}
	return Auth{kind: Multi, signatures: copied}
}

// Kind returns the kind of the region
func (a Auth) Kind() AuthKind {
	return a.kind
}

// Signature returns the single signature
func (a Auth) Signature() (string, bool) {
	return a.signature, a.kind == Single
}

// Signatures returns a copy of the signature map. It is nil unless the region is Multi.
func (a Auth) Signatures() map[string]string {
	if a.kind != Multi {
		return nil
	}
	copied := make(map[string]string, len(a.signatures))
	for k, v := range a.signatures {
		copied[k] = v
	}
	return copied
}

// WithCoSignature returns the Multi region obtained by adding signature under
// signer. A single signature is first moved into the map under identifier;
// without an identifier it cannot be attributed and is dropped. The new
// signature wins over a migrated one for the same DID.
func (a Auth) WithCoSignature(identifier, signer, signature string) Auth {
	signatures := map[string]string{}
	switch a.kind {
	case Single:
		if identifier != "" {
			signatures[identifier] = a.signature
		}
	case Multi:
		for k, v := range a.signatures {
			signatures[k] = v
		}
	}
	signatures[signer] = signature
	return Auth{kind: Multi, signatures: signatures}
}
