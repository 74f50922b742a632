package types

const (
	// ModuleName is the codespace and store prefix of the gas distributor.
	ModuleName = "gasdistributor"

	// ContractName is used as the event type prefix and recorded with the
	// contract version.
	ContractName = "drop-gas-distributor"

	// ContractVersion is bumped on every change of the stored state layout.
	ContractVersion = "1.1.0"
)

var (
	PolicyPrefix       = []byte{0x01}
	ParamsKey          = []byte{0x02}
	ContractVersionKey = []byte{0x03}
	OwnablePrefix      = []byte{0x04}
)

// PolicyKey returns the store key of the policy for recipient. Keys sort in
// the byte order of the recipient address string.
func PolicyKey(recipient string) []byte {
	return append(append([]byte{}, PolicyPrefix...), recipient...)
}

// RecipientFromPolicyKey strips the policy prefix from key.
func RecipientFromPolicyKey(key []byte) string {
	return string(key[len(PolicyPrefix):])
}
