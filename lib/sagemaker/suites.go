package sagemaker

import (
	"github.com/samber/lo"
)

const travelPreamble = "You are a helpful travel assistant. "

var travelQueries = []string{
	"Plan a 3-day itinerary for Paris",
	"What are the best travel tips for Japan?",
	"Recommend activities for a family vacation in Orlando",
}

// GreetingSuite is the single request sent right after an instance deployment.
func GreetingSuite() []Payload {
	return []Payload{{Inputs: "Hello! I want to plan a trip to Japan."}}
}

// TravelSuite sends the travel queries with explicit generation parameters.
func TravelSuite() []Payload {
	return lo.Map(travelQueries, func(q string, _ int) Payload {
		return Payload{
			Inputs: travelPreamble + q,
			Parameters: &GenerationParameters{
				MaxNewTokens: 200,
				Temperature:  0.7,
				TopP:         0.9,
				DoSample:     true,
			},
		}
	})
}

// Truncate cuts s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
