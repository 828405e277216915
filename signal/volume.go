package signal

import (
	"fmt"

	"github.com/rustyeddy/swing/indicators"
)

// scoreVolume rates volume from -10 to +10. Heavy volume only matters
// with direction: up days read as accumulation, down days as
// distribution. Quiet or ordinary volume is commentary, not score.
func scoreVolume(latest indicators.Snapshot, closePrice, prevClose float64) (float64, []string) {
	score := 0.0
	var reasons []string

	relVol := latest.RelVolume
	priceChange := (closePrice - prevClose) / prevClose

	switch {
	case relVol > 1.5:
		if priceChange > 0 {
			score += 10
			reasons = append(reasons, fmt.Sprintf("High volume (%.1fx avg) on up day - accumulation", relVol))
		} else {
			score -= 10
			reasons = append(reasons, fmt.Sprintf("High volume (%.1fx avg) on down day - distribution", relVol))
		}
	case relVol < 0.7:
		reasons = append(reasons, fmt.Sprintf("Low volume (%.1fx avg) - lack of conviction", relVol))
	default:
		reasons = append(reasons, fmt.Sprintf("Normal volume (%.1fx avg)", relVol))
	}

	return clamp(score, -10, 10), reasons
}
