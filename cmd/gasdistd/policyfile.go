package main

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	"gopkg.in/yaml.v2"

	gasdisttypes "github.com/baron-chain/gasdistd/x/gasdistributor/types"
)

// policyFile is the YAML document accepted by --policies flags:
//
//	policies:
//	  - recipient: neutron1...
//	    target_balance: "1000000"
//	    threshold_balance: "100000"
//	    top_up_overshoot: "0"
type policyFile struct {
	Policies []policyEntry `yaml:"policies"`
}

type policyEntry struct {
	Recipient        string `yaml:"recipient"`
	TargetBalance    string `yaml:"target_balance"`
	ThresholdBalance string `yaml:"threshold_balance,omitempty"`
	TopUpOvershoot   string `yaml:"top_up_overshoot,omitempty"`
}

func readPolicyFile(path string) ([]gasdisttypes.Policy, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parsePolicies(bz)
}

func parsePolicies(bz []byte) ([]gasdisttypes.Policy, error) {
	var file policyFile
	if err := yaml.UnmarshalStrict(bz, &file); err != nil {
		return nil, fmt.Errorf("parse policies: %w", err)
	}
	policies := make([]gasdisttypes.Policy, 0, len(file.Policies))
	for i, e := range file.Policies {
		target, err := math.ParseUint(e.TargetBalance)
		if err != nil {
			return nil, fmt.Errorf("policy %d: target_balance: %w", i, err)
		}
		p := gasdisttypes.NewPolicy(e.Recipient, target)
		if e.ThresholdBalance != "" {
			threshold, err := math.ParseUint(e.ThresholdBalance)
			if err != nil {
				return nil, fmt.Errorf("policy %d: threshold_balance: %w", i, err)
			}
			p = p.WithThreshold(threshold)
		}
		if e.TopUpOvershoot != "" {
			overshoot, err := math.ParseUint(e.TopUpOvershoot)
			if err != nil {
				return nil, fmt.Errorf("policy %d: top_up_overshoot: %w", i, err)
			}
			p = p.WithOvershoot(overshoot)
		}
		policies = append(policies, p)
	}
	return policies, nil
}
