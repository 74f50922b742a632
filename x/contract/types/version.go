package types

// ContractVersion is the recorded name and version of a contract instance.
type ContractVersion struct {
	Contract string `json:"contract"`
	Version  string `json:"version"`
}
