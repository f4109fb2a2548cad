package domain

// KeyPrefix namespaces every Redis key written by fundex.
const KeyPrefix = "fundex:"

// FundKeyPrefix prefixes the catalog hash keys: fundex:fund:<schemeCode>.
const FundKeyPrefix = KeyPrefix + "fund:"

// FundIndexName is the FT index over the catalog hashes.
const FundIndexName = KeyPrefix + "fund:idx"

// CacheKeyPrefix prefixes serialized search/suggest result entries.
const CacheKeyPrefix = KeyPrefix + "cache:"
