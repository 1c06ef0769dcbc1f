package route

import (
	"fmt"

	"github.com/cityscout-app/cityscout/internal/types"
)

const (
	routeSystemPromptEN = `You are a professional travel guide. Respond strictly in JSON (no markdown) with structure:
{ "title": "...", "duration": "...", "places": [{"name":"...","type":"...","time":"...","description":"..."}], "estimatedCost": "...", "language": "en" }. The route should be predominantly walkable (minimal public transport).`

	routeSystemPromptRU = `Ты — профессиональный туристический гид. Ответ верни строго в формате JSON (без markdown) со структурой:
{ "title": "...", "duration": "...", "places": [{"name":"...","type":"...","time":"...","description":"..."}], "estimatedCost": "...", "language": "ru" }. Маршрут должен быть максимально пешим (минимум транспорта).`
)

// buildRoutePrompts returns the system and user instructions for route
// generation in the requested language.
func buildRoutePrompts(req types.TripRequest) (system, user string) {
	profile := "{}"
	if len(req.Profile) > 0 {
		profile = string(req.Profile)
	}

	if req.Language == types.LanguageRU {
		kids := "нет"
		if req.WithKids {
			kids = "да"
		}
		user = fmt.Sprintf("Город: %s. Время: %s. Предпочтения: %s. Голод: %s. Транспорт: %s. Дети: %s.",
			req.City, req.Time, profile, req.Hunger, req.Transport, kids)
		return routeSystemPromptRU, user
	}

	kids := "no"
	if req.WithKids {
		kids = "yes"
	}
	user = fmt.Sprintf("City: %s. Time: %s. Preferences: %s. Hunger: %s. Transport: %s. Kids: %s.",
		req.City, req.Time, profile, req.Hunger, req.Transport, kids)
	return routeSystemPromptEN, user
}
