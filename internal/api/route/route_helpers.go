package route

import (
	"fmt"
	"strings"

	"github.com/cityscout-app/cityscout/internal/api/geo"
	"github.com/cityscout-app/cityscout/internal/types"
)

func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}

	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	response = strings.TrimSpace(response)

	// The model sometimes wraps the object in explanatory text; extract the
	// span between the first { and the last }.
	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}

	lastBrace := strings.LastIndex(response, "}")
	if lastBrace == -1 || lastBrace <= firstBrace {
		return response
	}

	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}

// totalDistanceKm folds over the places in visiting order, threading the last
// resolved point as an accumulator. Each resolved place contributes the
// great-circle distance from the previous resolved point; unresolved places
// contribute nothing and leave the accumulator unchanged, so a gap between
// two resolved places is bridged directly.
func totalDistanceKm(places []types.ResolvedPlace) float64 {
	var totalKm float64
	var prev *types.Coordinates
	for i := range places {
		coords := places[i].Coords
		if coords == nil {
			continue
		}
		if prev != nil {
			totalKm += geo.DistanceKm(*prev, *coords)
		}
		prev = coords
	}
	return totalKm
}

// formatDistance renders a kilometer value the way the client displays it.
func formatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}
