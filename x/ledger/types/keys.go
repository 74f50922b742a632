package types

import "strings"

var BalancePrefix = []byte{0x01}

// FactoryDenomPrefix is the leading segment of denoms minted by contracts.
const FactoryDenomPrefix = "factory"

// FactoryDenom returns the denom creator mints under subdenom.
func FactoryDenom(creator, subdenom string) string {
	return strings.Join([]string{FactoryDenomPrefix, creator, subdenom}, "/")
}

// IsFactoryDenomOf reports whether denom was created by creator.
func IsFactoryDenomOf(denom, creator string) bool {
	parts := strings.SplitN(denom, "/", 3)
	return len(parts) == 3 && parts[0] == FactoryDenomPrefix && parts[1] == creator && parts[2] != ""
}

// BalanceKey returns the key of the balance of address in denom, relative to
// BalancePrefix. The address is length prefixed so that one address never
// prefixes another.
func BalanceKey(address, denom string) []byte {
	key := make([]byte, 0, 1+len(address)+len(denom))
	key = append(key, byte(len(address)))
	key = append(key, address...)
	return append(key, denom...)
}

// AddressBalancesPrefix returns the prefix of all balances held by address.
func AddressBalancesPrefix(address string) []byte {
	return append([]byte{byte(len(address))}, address...)
}

// SplitBalanceKey is the inverse of BalanceKey.
func SplitBalanceKey(key []byte) (address, denom string) {
	n := int(key[0])
	return string(key[1 : 1+n]), string(key[1+n:])
}
