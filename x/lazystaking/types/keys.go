package types

const (
	ModuleName      = "lazystaking"
	ContractName    = "drop-lazy-staking"
	ContractVersion = "1.0.0"
)

var (
	ContractVersionKey = []byte{0x01}
	DenomKey           = []byte{0x02}
	OwnablePrefix      = []byte{0x03}
)
