package generative

import (
	"fmt"
	"strings"
)

func chatPrompt(message, promptContext string) string {
	contextPart := ""
	if strings.TrimSpace(promptContext) != "" {
		contextPart = fmt.Sprintf("\n        Conversation context: %s\n", promptContext)
	}

	return fmt.Sprintf(`
        You are a local tourism assistant for Cali, Colombia. Answer the user's
        message in the same language the user wrote in.%s
        User message: %q

        Return the response STRICTLY as a JSON object with the following keys:
        {
            "message": "A short, friendly answer to the user",
            "places": [
                {
                    "key": "stable identifier for the place",
                    "name": "Name of the place",
                    "description": "A 1-2 sentence description",
                    "address": "Street address",
                    "type": "one of: lodging, breakfast, tourism, shopping, entertainment, food",
                    "location": {"lat": <float>, "lng": <float>}
                }
            ],
            "travel_plan": {
                "total_days": <int>,
                "days": [
                    {
                        "day_number": <int, 1-based>,
                        "title": "Title for the day",
                        "activities": [
                            {
                                "time": "HH:MM",
                                "category": "activity category",
                                "place": <a place object as above, or a known place id string>
                            }
                        ]
                    }
                ]
            }
        }
        Include "places" ONLY for single recommendation requests and
        "travel_plan" ONLY when the user asks for a multi-day itinerary.
        Never include both. Do not wrap the JSON in markdown fences.
    `, contextPart, message)
}
