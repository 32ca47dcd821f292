package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentClassifier_Classify(t *testing.T) {
	classifier := NewIntentClassifier()

	tests := []struct {
		name     string
		message  string
		expected Intent
	}{
		{"day count spanish", "Quiero un plan de 3 días", IntentTravelPlan},
		{"day count single day", "Qué hacer en 1 día", IntentTravelPlan},
		{"day count english", "What can I do in 2 days?", IntentTravelPlan},
		{"day count no space", "itinerario de 5días", IntentTravelPlan},
		{"plan keyword", "Hazme un plan para el fin de semana", IntentTravelPlan},
		{"itinerary keyword", "Can you build an itinerary for me?", IntentTravelPlan},
		{"route keyword", "Quiero una ruta por el centro", IntentTravelPlan},
		{"compound activities", "Quiero comer y visitar el museo", IntentTravelPlan},
		{"compound with ir", "Me gustaría ir al parque y hacer senderismo", IntentTravelPlan},
		{"simple food request", "Quiero comer pizza", IntentSimple},
		{"digits before unrelated word", "I bought 3 diamonds downtown", IntentSimple},
		{"daytime is not a day count", "a 2 daytime stroll", IntentSimple},
		{"simple lodging request", "Dónde puedo dormir barato", IntentSimple},
		{"conjunction without activity verb", "Café y pan por favor", IntentSimple},
		{"empty message", "", IntentSimple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.Classify(tt.message))
		})
	}
}

func TestIntentClassifier_ExtractDayCount(t *testing.T) {
	classifier := NewIntentClassifier()

	tests := []struct {
		name     string
		message  string
		expected int
	}{
		{"spanish plural", "plan de 3 días", 3},
		{"spanish singular", "plan de 1 día", 1},
		{"english", "a 4 day trip", 4},
		{"no count defaults to one", "hazme un plan", 1},
		{"zero clamps to one", "plan de 0 días", 1},
		{"unaccented dias", "plan de 7 dias", 7},
		{"huge count clamps to max", "Quiero un plan de 500000 días", maxPlanDays},
		{"count just above max clamps", "plan de 15 días", maxPlanDays},
		{"max itself passes through", "plan de 14 días", 14},
		{"day figure inside other word ignored", "I bought 3 diamonds", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifier.ExtractDayCount(tt.message))
		})
	}
}
