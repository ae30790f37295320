package impl

import (
	"sort"
	"strings"

	"dealscout/config"
)

// defaultRegionRadiusKm applies to any region without an override.
const defaultRegionRadiusKm = 10.0

// builtinRegionRadiiKm is the baseline inclusion table. Dense cores get a
// tighter radius, spread-out districts a larger one. Entries from
// config.RankingConfig.RegionRadiiKm overlay this table.
var builtinRegionRadiiKm = map[string]float64{
	"downtown":  3,
	"old town":  3,
	"midtown":   5,
	"uptown":    5,
	"harbor":    6,
	"riverside": 8,
	"suburbs":   15,
}

// radiusPolicy resolves a region display name to its maximum inclusion
// radius in kilometers. Lookup never fails; unknown names use the default.
type radiusPolicy struct {
	defaultKm float64
	table     map[string]float64
	// keys ordered longest first so substring matches resolve the same way
	// on every call; a name containing two table entries picks the more
	// specific one.
	orderedKeys []string
}

func newRadiusPolicy(cfg *config.RankingConfig) *radiusPolicy {
	policy := &radiusPolicy{
		defaultKm: defaultRegionRadiusKm,
		table:     make(map[string]float64, len(builtinRegionRadiiKm)),
	}
	for name, radius := range builtinRegionRadiiKm {
		policy.table[name] = radius
	}
	if cfg != nil {
		if cfg.DefaultRadiusKm > 0 {
			policy.defaultKm = cfg.DefaultRadiusKm
		}
		for name, radius := range cfg.RegionRadiiKm {
			policy.table[strings.ToLower(name)] = radius
		}
	}

	policy.orderedKeys = make([]string, 0, len(policy.table))
	for key := range policy.table {
		policy.orderedKeys = append(policy.orderedKeys, key)
	}
	sort.Slice(policy.orderedKeys, func(i, j int) bool {
		if len(policy.orderedKeys[i]) != len(policy.orderedKeys[j]) {
			return len(policy.orderedKeys[i]) > len(policy.orderedKeys[j])
		}
		return policy.orderedKeys[i] < policy.orderedKeys[j]
	})

	return policy
}

// RadiusFor returns the inclusion radius for a region display name. The name
// is matched case-insensitively, first exactly and then as a substring
// ("Downtown East" picks up the "downtown" entry). Empty or unknown names
// fall back to the default radius.
func (p *radiusPolicy) RadiusFor(regionName string) float64 {
	name := strings.ToLower(strings.TrimSpace(regionName))
	if name == "" {
		return p.defaultKm
	}

	if radius, ok := p.table[name]; ok {
		return radius
	}
	for _, key := range p.orderedKeys {
		if strings.Contains(name, key) {
			return p.table[key]
		}
	}

	return p.defaultKm
}
