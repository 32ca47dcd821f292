package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentTravelPlan Intent = "travel_plan"
	IntentSimple     Intent = "simple"
)

// maxPlanDays caps the day count taken from free text; the count sizes the
// fallback plan allocation and the response body.
const maxPlanDays = 14

var (
	// A number immediately followed by día(s)/day(s) is the most reliable
	// travel-plan signal. The trailing boundary keeps "3 diamonds" or
	// "2 daytime trips" from counting as a day figure.
	dayCountPattern = regexp.MustCompile(`(\d+)\s*(?:d[ií]as?|days?)\b`)

	// Activity verbs used by the compound-request heuristic ("do X and Y").
	activityVerbPattern = regexp.MustCompile(`\b(comer|visitar|hacer|ir)\b`)
)

// IntentClassifier decides whether a message asks for a multi-day itinerary
// or a single recommendation list.
type IntentClassifier struct {
	planKeywords []string
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		planKeywords: []string{"plan", "itinerario", "recorrido", "explorar", "itinerary", "ruta"},
	}
}

// Classify applies an ordered rule chain. The order matters: an explicit day
// count wins over the keyword rules, which can both match ambiguous text.
func (c *IntentClassifier) Classify(message string) Intent {
	msg := strings.ToLower(message)

	if dayCountPattern.MatchString(msg) {
		return IntentTravelPlan
	}

	for _, keyword := range c.planKeywords {
		if strings.Contains(msg, keyword) {
			return IntentTravelPlan
		}
	}

	if strings.Contains(msg, " y ") && activityVerbPattern.MatchString(msg) {
		return IntentTravelPlan
	}

	return IntentSimple
}

// ExtractDayCount pulls the explicit day count out of the message, defaulting
// to a single day when no count is present or it cannot be parsed. The result
// is clamped to [1, maxPlanDays].
func (c *IntentClassifier) ExtractDayCount(message string) int {
	match := dayCountPattern.FindStringSubmatch(strings.ToLower(message))
	if len(match) < 2 {
		return 1
	}
	count, err := strconv.Atoi(match[1])
	if err != nil || count < 1 {
		return 1
	}
	if count > maxPlanDays {
		return maxPlanDays
	}
	return count
}
