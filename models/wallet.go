package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet owner types. The store wallet is a singleton row owned by the
// operator; customer wallets are one per user. Both share the same
// transaction-recording contract.
const (
	WalletOwnerStore = "store"
	WalletOwnerUser  = "user"
)

// Wallet transaction types
const (
	TransactionTypeCredit = "credit" // system credit
	TransactionTypeDebit  = "debit"  // system debit
	TransactionTypeRefund = "refund" // refund from order, locked once written
	TransactionTypeCoupon = "coupon" // coupon compensation
	TransactionTypeManual = "manual" // admin adjustment
)

// Transaction directions
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// Transaction sources
const (
	TransactionSourceSystem = "system"
	TransactionSourceAdmin  = "admin"
)

// Wallet backs a balance with an append-only transaction log. The balance is
// clamped so it never goes below zero.
type Wallet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	OwnerType string         `json:"owner_type" gorm:"index;not null"`
	UserID    *uint          `json:"user_id" gorm:"uniqueIndex"` // nil for the store wallet
	Balance   float64        `json:"balance" gorm:"default:0"`
	Currency  string         `json:"currency" gorm:"default:'NPR'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Transactions []WalletTransaction `json:"transactions,omitempty" gorm:"foreignKey:WalletID"`
}

// WalletTransaction is one entry in a wallet's ledger. Refund transactions
// are locked at creation and must never be edited afterwards.
type WalletTransaction struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	WalletID       uint      `json:"wallet_id" gorm:"index"`
	Type           string    `json:"type"`
	Direction      string    `json:"direction"`
	Amount         float64   `json:"amount" gorm:"check:amount > 0"`
	Note           string    `json:"note"`
	RelatedOrderID *uint     `json:"related_order_id" gorm:"index"`
	Locked         bool      `json:"locked" gorm:"default:false"`
	Source         string    `json:"source" gorm:"default:'admin'"`
	Reference      string    `json:"reference"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DeriveDirection maps a transaction type to its balance direction.
// Compatibility shim: legacy ledger records carried no direction field, so
// the direction is always derivable from the type alone.
func DeriveDirection(transactionType string) string {
	switch transactionType {
	case TransactionTypeDebit:
		return DirectionDebit
	case TransactionTypeCredit, TransactionTypeRefund, TransactionTypeCoupon, TransactionTypeManual:
		return DirectionCredit
	default:
		return DirectionCredit
	}
}
