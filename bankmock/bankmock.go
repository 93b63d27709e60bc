// Package bankmock generates the fake banking dashboard shown after login.
// Every value is invented on each call from the supplied random source;
// nothing here is account data and nothing is persisted.
package bankmock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType labels a mock account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
)

// Account is a mock bank account.
type Account struct {
	Name    string
	Number  string
	Type    AccountType
	Balance decimal.Decimal
}

// Transaction is a mock card transaction.
type Transaction struct {
	ID       uuid.UUID
	Merchant string
	Category string
	Amount   decimal.Decimal
	PostedAt time.Time
}

// Dashboard is the full mock dashboard payload.
type Dashboard struct {
	Owner        string
	Accounts     []Account
	Transactions []Transaction
	GeneratedAt  time.Time
}

var merchants = []struct {
	name     string
	category string
}{
	{"Blue Bottle Coffee", "Dining"},
	{"Whole Foods Market", "Groceries"},
	{"Shell", "Transport"},
	{"Netflix", "Entertainment"},
	{"CVS Pharmacy", "Health"},
	{"Amazon", "Shopping"},
	{"Delta Air Lines", "Travel"},
	{"Equinox", "Fitness"},
	{"Con Edison", "Utilities"},
	{"Trader Joe's", "Groceries"},
}

// Generate builds a dashboard for owner. Output is deterministic given the
// random source and now.
func Generate(rng *rand.Rand, owner string, now time.Time) Dashboard {
	accounts := []Account{
		{
			Name:    "Everyday Checking",
			Number:  maskedNumber(rng),
			Type:    AccountChecking,
			Balance: amount(rng, 50_000, 500_000),
		},
		{
			Name:    "High-Yield Savings",
			Number:  maskedNumber(rng),
			Type:    AccountSavings,
			Balance: amount(rng, 200_000, 2_000_000),
		},
		{
			Name:    "Platinum Card",
			Number:  maskedNumber(rng),
			Type:    AccountCredit,
			Balance: amount(rng, 0, 300_000).Neg(),
		},
	}

	count := 5 + rng.Intn(4)
	transactions := make([]Transaction, 0, count)
	for i := 0; i < count; i++ {
		m := merchants[rng.Intn(len(merchants))]
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// math/rand readers never fail; keep the payload well formed anyway.
			id = uuid.Nil
		}
		transactions = append(transactions, Transaction{
			ID:       id,
			Merchant: m.name,
			Category: m.category,
			Amount:   amount(rng, 500, 25_000).Neg(),
			PostedAt: now.AddDate(0, 0, -i).Add(-time.Duration(rng.Intn(12)) * time.Hour),
		})
	}

	return Dashboard{
		Owner:        owner,
		Accounts:     accounts,
		Transactions: transactions,
		GeneratedAt:  now,
	}
}

// amount draws a money value between lo and hi cents, with exactly two
// decimal places.
func amount(rng *rand.Rand, lo, hi int64) decimal.Decimal {
	cents := lo + rng.Int63n(hi-lo+1)
	return decimal.New(cents, -2)
}

func maskedNumber(rng *rand.Rand) string {
	return fmt.Sprintf("****%04d", rng.Intn(10_000))
}
