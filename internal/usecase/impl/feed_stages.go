package impl

import (
	"sort"
	"strings"

	"dealscout/internal/domain/entity"
	"dealscout/internal/infra/geo"

	"github.com/paulmach/orb"
)

// stageMode controls what happens when a stage empties the working set. A
// hard stage always applies; a soft stage that would leave zero deals is
// skipped and the previous working set passes through unchanged.
type stageMode int

const (
	stageHard stageMode = iota
	stageSoft
)

// rankStage is one step of the ranking pipeline. Stages run in slice order,
// each receiving the previous stage's output. New stages can be inserted or
// reordered without touching the fallback logic in runStages.
type rankStage struct {
	name  string
	mode  stageMode
	apply func(deals []*entity.RankedDeal) []*entity.RankedDeal
}

func runStages(deals []*entity.RankedDeal, stages []rankStage) []*entity.RankedDeal {
	working := deals
	for _, stage := range stages {
		next := stage.apply(working)
		if stage.mode == stageSoft && len(next) == 0 && len(working) > 0 {
			continue
		}
		working = next
	}

	return working
}

// distanceAnnotationStage computes the great-circle distance from the user
// to each deal's region center. Deals without a resolvable region, or any
// deal when the location is unknown, are left unannotated.
func distanceAnnotationStage(location *orb.Point) rankStage {
	return rankStage{
		name: "distance",
		mode: stageHard,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if location == nil {
				return deals
			}
			for _, deal := range deals {
				if deal.Region == nil || !deal.Region.IsActive {
					continue
				}
				distance := geo.Distance(*location, deal.Region.Center())
				deal.DistanceKm = &distance
			}
			return deals
		},
	}
}

// preferenceFilterStage keeps deals whose normalized category matches one of
// the user's preferred categories. Soft: when nothing matches, the filter is
// skipped rather than producing an empty feed.
func preferenceFilterStage(enabled bool, preferences []string) rankStage {
	wanted := make(map[string]struct{}, len(preferences))
	for _, preference := range preferences {
		wanted[strings.ToLower(strings.TrimSpace(preference))] = struct{}{}
	}

	return rankStage{
		name: "preference",
		mode: stageSoft,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if !enabled || len(wanted) == 0 {
				return deals
			}
			matched := make([]*entity.RankedDeal, 0, len(deals))
			for _, deal := range deals {
				if _, ok := wanted[strings.ToLower(deal.PreferenceCategory)]; ok {
					matched = append(matched, deal)
				}
			}
			return matched
		},
	}
}

// radiusFilterStage drops deals outside their region's inclusion radius.
// Hard, but a no-op when the location is unknown so a denied location
// permission never blanks the whole feed. With a known location, deals
// without a distance (unresolved or deactivated region) are dropped as well.
func radiusFilterStage(location *orb.Point, policy *radiusPolicy) rankStage {
	return rankStage{
		name: "radius",
		mode: stageHard,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if location == nil {
				return deals
			}
			within := make([]*entity.RankedDeal, 0, len(deals))
			for _, deal := range deals {
				if deal.DistanceKm == nil {
					continue
				}
				regionName := ""
				if deal.Region != nil {
					regionName = deal.Region.Name
				}
				if *deal.DistanceKm > policy.RadiusFor(regionName) {
					continue
				}
				within = append(within, deal)
			}
			return within
		},
	}
}

// distanceSortStage orders deals nearest first when the location is known.
// Without a location the backend order (newest first) is preserved. Deals
// lacking a distance sort last as a tie-break.
func distanceSortStage(location *orb.Point) rankStage {
	return rankStage{
		name: "sort",
		mode: stageHard,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if location == nil {
				return deals
			}
			sort.SliceStable(deals, func(i, j int) bool {
				left, right := deals[i].DistanceKm, deals[j].DistanceKm
				if left == nil {
					return false
				}
				if right == nil {
					return true
				}
				return *left < *right
			})
			return deals
		},
	}
}

// categoryFilterStage keeps only deals whose raw tag is in the caller's
// explicit set. Empty set is a no-op.
func categoryFilterStage(categories []string) rankStage {
	wanted := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		wanted[strings.ToLower(strings.TrimSpace(category))] = struct{}{}
	}

	return rankStage{
		name: "category",
		mode: stageHard,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if len(wanted) == 0 {
				return deals
			}
			matched := make([]*entity.RankedDeal, 0, len(deals))
			for _, deal := range deals {
				if _, ok := wanted[strings.ToLower(deal.Category)]; ok {
					matched = append(matched, deal)
				}
			}
			return matched
		},
	}
}

// searchFilterStage keeps deals where the query appears, case-insensitively,
// in the title, description, venue name or raw tag. Blank query is a no-op.
func searchFilterStage(query string) rankStage {
	needle := strings.ToLower(strings.TrimSpace(query))

	return rankStage{
		name: "search",
		mode: stageHard,
		apply: func(deals []*entity.RankedDeal) []*entity.RankedDeal {
			if needle == "" {
				return deals
			}
			matched := make([]*entity.RankedDeal, 0, len(deals))
			for _, deal := range deals {
				haystack := strings.ToLower(deal.Title + "\x00" + deal.Description + "\x00" + deal.VenueName + "\x00" + deal.Category)
				if strings.Contains(haystack, needle) {
					matched = append(matched, deal)
				}
			}
			return matched
		},
	}
}
