package ledger

import (
	"context"
	"fmt"
)

// Reason is an application-level failure reported by the canister itself, as
// opposed to a transport or decoding failure of the call.
type Reason string

const (
	ReasonTokenNotFound      Reason = "TokenNotFound"
	ReasonCollectionNotFound Reason = "CollectionNotFound"
	ReasonInvalidTokenID     Reason = "InvalidTokenID"
	ReasonUnauthorized       Reason = "Unauthorized"
)

// String renders the reason the way the canister error enum prints it.
func (r Reason) String() string {
	switch r {
	case ReasonTokenNotFound:
		return "Token not found"
	case ReasonCollectionNotFound:
		return "Collection not found"
	case ReasonInvalidTokenID:
		return "Invalid Token ID"
	case ReasonUnauthorized:
		return "Unauthorized access"
	default:
		return string(r)
	}
}

// Collection describes a ledger-side token collection.
type Collection struct {
	ID          int64   `json:"id"`
	Owner       string  `json:"owner"`
	Logo        *string `json:"logo"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Symbol      string  `json:"symbol"`
}

// Token describes a ledger-side minted token.
type Token struct {
	ID           int64  `json:"id"`
	Owner        string `json:"owner"`
	Metadata     string `json:"metadata"`
	CollectionID int64  `json:"collection_id"`
}

// CreateSuccess is the Ok arm of a create_collection call.
type CreateSuccess struct {
	TxnID      string     `json:"txn_id"`
	Collection Collection `json:"collection"`
}

// MintSuccess is the Ok arm of a mint_token call.
type MintSuccess struct {
	TxnID string `json:"txn_id"`
	Token Token  `json:"token"`
}

// BurnSuccess is the Ok arm of a burn_token call.
type BurnSuccess struct {
	TxnID string `json:"txn_id"`
}

// CollectionResult is the decoded union returned by create_collection.
// Exactly one of Ok and Err is set when the call itself succeeded.
type CollectionResult struct {
	Ok  *CreateSuccess `json:"Ok,omitempty"`
	Err *Reason        `json:"Err,omitempty"`
}

// MintResult is the decoded union returned by mint_token.
type MintResult struct {
	Ok  *MintSuccess `json:"Ok,omitempty"`
	Err *Reason      `json:"Err,omitempty"`
}

// BurnResult is the decoded union returned by burn_token.
type BurnResult struct {
	Ok  *BurnSuccess `json:"Ok,omitempty"`
	Err *Reason      `json:"Err,omitempty"`
}

// Empty reports a decoded union with neither arm set. A conforming canister
// always sets exactly one; an empty union means the response body was not the
// expected encoding.
func (r *CollectionResult) Empty() bool { return r.Ok == nil && r.Err == nil }

func (r *MintResult) Empty() bool { return r.Ok == nil && r.Err == nil }

func (r *BurnResult) Empty() bool { return r.Ok == nil && r.Err == nil }

// Service invokes the remote ledger canister. A non-nil error means the call
// did not complete (transport or decoding failure); an application-level
// rejection comes back as the Err arm of the result union.
type Service interface {
	CreateCollection(ctx context.Context, name, symbol, description string, logoURL *string) (*CollectionResult, error)
	MintToken(ctx context.Context, collectionID int64, externalRef, contentHash string) (*MintResult, error)
	BurnToken(ctx context.Context, ref string) (*BurnResult, error)
}

// BurnRef formats the composite token reference used to address a token for
// burning.
func BurnRef(tokenID, collectionID int64) string {
	return fmt.Sprintf("%dx%d", tokenID, collectionID)
}
