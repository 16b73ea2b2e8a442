// Package quality maps a probed video summary to a VP9 CRF value.
//
// The mapping is a data table, not arithmetic: [DefaultLadder] can be tuned
// without touching pipeline logic. Decide is a pure function of its input.
package quality

import (
	"github.com/framefarm/webmvert/internal/probe"
)

// DefaultCRF is used when a file could not be inspected.
const DefaultCRF = 32

// Tier is one rung of the quality ladder. A file lands in the highest tier
// whose MinHeight it meets (inclusive lower bound, so a 720-pixel-tall file
// lands in the 720p tier, not the one below). When the file's bit rate is at
// or above HighBitRate, it is promoted one tier up: heavy sources get the
// stronger compression of the next rung.
type Tier struct {
	Name        string
	MinHeight   int
	HighBitRate int64 // bits/sec; 0 disables promotion for this tier
	CRF         int
}

// DefaultLadder orders tiers from highest resolution to lowest. Higher tiers
// carry a higher CRF (smaller output at acceptable fidelity); lower tiers a
// lower CRF (favoring detail preservation, since low-res sources have little
// detail to spare). CRF must be monotonically non-increasing down the table.
var DefaultLadder = []Tier{
	{Name: "2160p", MinHeight: 2160, HighBitRate: 45_000_000, CRF: 36},
	{Name: "1440p", MinHeight: 1440, HighBitRate: 20_000_000, CRF: 34},
	{Name: "1080p", MinHeight: 1080, HighBitRate: 10_000_000, CRF: 32},
	{Name: "720p", MinHeight: 720, HighBitRate: 6_000_000, CRF: 30},
	{Name: "480p", MinHeight: 480, HighBitRate: 2_500_000, CRF: 26},
	{Name: "low", MinHeight: 0, HighBitRate: 1_500_000, CRF: 24},
}

// Decide returns the CRF for a probed summary using the default ladder.
// A nil summary yields DefaultCRF.
func Decide(s *probe.Summary) int {
	return DecideWith(DefaultLadder, s)
}

// DecideWith returns the CRF for s against a custom ladder. The ladder must
// be ordered from highest MinHeight to lowest, ending in a MinHeight 0 rung.
func DecideWith(ladder []Tier, s *probe.Summary) int {
	if s == nil || len(ladder) == 0 {
		return DefaultCRF
	}

	idx := len(ladder) - 1
	for i, t := range ladder {
		if s.Height >= t.MinHeight {
			idx = i
			break
		}
	}

	// Bit rate promotion: unusually heavy sources for their resolution move
	// one rung up the ladder.
	if t := ladder[idx]; idx > 0 && t.HighBitRate > 0 && s.BitRate >= t.HighBitRate {
		idx--
	}

	return ladder[idx].CRF
}

// TierName returns the name of the ladder rung s falls into, for logging.
// A nil summary returns "default".
func TierName(s *probe.Summary) string {
	if s == nil {
		return "default"
	}
	for _, t := range DefaultLadder {
		if s.Height >= t.MinHeight {
			return t.Name
		}
	}
	return DefaultLadder[len(DefaultLadder)-1].Name
}
