package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind tags an account bucket by its tax treatment. Account types are
// a tagged variant, not a hierarchy; the treatment is a function of the tag.
type AccountKind string

const (
	AccountTaxable         AccountKind = "taxable"
	AccountTraditionalIRA  AccountKind = "ira_traditional"
	AccountTraditional401k AccountKind = "401k_traditional"
	AccountRothIRA         AccountKind = "ira_roth"
	AccountHSA             AccountKind = "hsa"
)

// AllAccountKinds lists every bucket in a stable order.
var AllAccountKinds = []AccountKind{
	AccountTaxable,
	AccountTraditionalIRA,
	AccountTraditional401k,
	AccountRothIRA,
	AccountHSA,
}

// TaxTreatment describes how a withdrawal from a bucket is taxed.
type TaxTreatment int

const (
	TaxFree TaxTreatment = iota
	OrdinaryIncome
	CapitalGains
)

// String returns a human-readable name for the tax treatment.
func (tt TaxTreatment) String() string {
	switch tt {
	case TaxFree:
		return "tax-free"
	case OrdinaryIncome:
		return "ordinary-income"
	case CapitalGains:
		return "capital-gains"
	default:
		return "unknown"
	}
}

// Treatment returns the tax treatment of withdrawals from this bucket kind.
func (k AccountKind) Treatment() TaxTreatment {
	switch k {
	case AccountTaxable:
		return CapitalGains
	case AccountTraditionalIRA, AccountTraditional401k:
		return OrdinaryIncome
	default:
		return TaxFree
	}
}

// SubjectToRMD reports whether the bucket kind is subject to required
// minimum distributions.
func (k AccountKind) SubjectToRMD() bool {
	return k == AccountTraditionalIRA || k == AccountTraditional401k
}

// AccountBuckets holds the household balances at an instant, keyed by tax
// treatment. Balances are never negative; withdrawals clamp to what is
// available.
type AccountBuckets struct {
	Taxable         decimal.Decimal `yaml:"taxable" json:"taxable"`
	TraditionalIRA  decimal.Decimal `yaml:"ira_traditional" json:"ira_traditional"`
	Traditional401k decimal.Decimal `yaml:"401k_traditional" json:"401k_traditional"`
	RothIRA         decimal.Decimal `yaml:"ira_roth" json:"ira_roth"`
	HSA             decimal.Decimal `yaml:"hsa" json:"hsa"`
}

// Balance returns the balance held in the given bucket.
func (b AccountBuckets) Balance(kind AccountKind) decimal.Decimal {
	switch kind {
	case AccountTaxable:
		return b.Taxable
	case AccountTraditionalIRA:
		return b.TraditionalIRA
	case AccountTraditional401k:
		return b.Traditional401k
	case AccountRothIRA:
		return b.RothIRA
	case AccountHSA:
		return b.HSA
	}
	return decimal.Zero
}

// SetBalance replaces the balance of the given bucket.
func (b *AccountBuckets) SetBalance(kind AccountKind, amount decimal.Decimal) {
	switch kind {
	case AccountTaxable:
		b.Taxable = amount
	case AccountTraditionalIRA:
		b.TraditionalIRA = amount
	case AccountTraditional401k:
		b.Traditional401k = amount
	case AccountRothIRA:
		b.RothIRA = amount
	case AccountHSA:
		b.HSA = amount
	}
}

// Withdraw removes up to amount from the bucket and returns what was
// actually taken. The balance never goes below zero.
func (b *AccountBuckets) Withdraw(kind AccountKind, amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	available := b.Balance(kind)
	taken := decimal.Min(amount, available)
	b.SetBalance(kind, available.Sub(taken))
	return taken
}

// Deposit adds amount to the bucket. Negative deposits are ignored.
func (b *AccountBuckets) Deposit(kind AccountKind, amount decimal.Decimal) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return
	}
	b.SetBalance(kind, b.Balance(kind).Add(amount))
}

// Total returns the sum of all bucket balances.
func (b AccountBuckets) Total() decimal.Decimal {
	total := b.Taxable
	total = total.Add(b.TraditionalIRA)
	total = total.Add(b.Traditional401k)
	total = total.Add(b.RothIRA)
	total = total.Add(b.HSA)
	return total
}

// IsDepleted reports whether every bucket is at zero.
func (b AccountBuckets) IsDepleted() bool {
	return b.Total().LessThanOrEqual(decimal.Zero)
}

// Clone returns an independent copy of the buckets.
func (b AccountBuckets) Clone() AccountBuckets {
	return b
}
