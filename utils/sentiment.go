package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"shopapi/config"
)

// SentimentResult is the outcome of analyzing one review text.
type SentimentResult struct {
	Sentiment   string `json:"sentiment"`
	Confidence  int    `json:"confidence"` // percent
	Explanation string `json:"explanation"`
}

type sentimentApiResponse struct {
	Sentiment   string `json:"sentiment"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
	Message     string `json:"message"`
}

// AnalyzeSentiment calls the configured sentiment API for the given review
// text. When the API is not configured or the call fails, a neutral result is
// returned so review creation never blocks on the external service.
func AnalyzeSentiment(content string) SentimentResult {
	neutral := SentimentResult{Sentiment: "neutral", Confidence: 0, Explanation: ""}

	apiUrl := config.AppConfig.SentimentApiUrl
	if apiUrl == "" {
		return neutral
	}

	client := resty.New().SetTimeout(10 * time.Second)

	var result sentimentApiResponse
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", config.AppConfig.SentimentApiKey)).
		SetBody(map[string]string{"text": content}).
		SetResult(&result).
		Post(apiUrl)

	if err != nil {
		log.Printf("Error calling sentiment API: %v", err)
		return neutral
	}
	if resp.StatusCode() != 200 {
		log.Printf("Sentiment API returned status %d: %s", resp.StatusCode(), resp.String())
		return neutral
	}

	switch result.Sentiment {
	case "positive", "negative", "neutral":
	default:
		log.Printf("Sentiment API returned unknown sentiment %q", result.Sentiment)
		return neutral
	}

	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}

	return SentimentResult{
		Sentiment:   result.Sentiment,
		Confidence:  result.Confidence,
		Explanation: result.Explanation,
	}
}
