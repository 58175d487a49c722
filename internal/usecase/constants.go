package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultMemberCacheTTL is used when no TTL is configured
	DefaultMemberCacheTTL = 5 * time.Minute

	// DefaultCurrency labels holdings summaries when none is configured
	DefaultCurrency = "AUD"

	memberCachePrefix = "member:"
)

func memberCacheKey(memberID string) string {
	return memberCachePrefix + memberID + ":transactions"
}
