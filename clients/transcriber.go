package clients

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"
)

// Transcription providers.
const (
	ProviderMock = "mock"
	ProviderHTTP = "http"
)

var ErrUnknownProvider = errors.New("unknown transcription provider")

// Transcriber turns a recording into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// NewTranscriber builds the transcriber for provider. url is required for the
// http provider.
func NewTranscriber(provider, url string, timeout time.Duration) (Transcriber, error) {
	switch provider {
	case ProviderMock, "":
		return MockTranscriber{}, nil
	case ProviderHTTP:
		if url == "" {
			return nil, fmt.Errorf("%s provider needs a url", ProviderHTTP)
		}
		return NewHTTPTranscriber(NewHTTP(timeout), url), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
}

// mockTranscripts cover the usual problems: filler-heavy, hedging-heavy,
// mixed, polished and half-finished delivery.
var mockTranscripts = []string{
	"Um, so basically the idea is, like, we need to, uh, fix onboarding. You know, it's literally the first " +
		"thing people see. Um, we should, like, put more people on it. You know what I mean?",

	"I think we might want to look at this, maybe next quarter. It seems like it could fit our plans. " +
		"I guess we should probably talk about it more. It's sort of important, in my opinion.",

	"So, um, I was thinking that we could maybe try something different. I think it might work better. " +
		"It's kind of like last year, but, you know, a bit different. Does that make sense?",

	"Today I want to show you why our support team matters. Response times fell by forty percent this year " +
		"because we automated triage. For example, studies show customers who get answers within an hour stay " +
		"twice as long. In conclusion, join us and start measuring what your customers feel today.",

	"Okay, so the migration is, um, going fine I think. Most of the services were moved last month. " +
		"There are, like, a few problems with the billing jobs but I feel we can, uh, sort them out.",
}

// MockTranscriber returns a canned transcript chosen from the audio path, so
// the same path always yields the same text.
type MockTranscriber struct{}

func (MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := fnv.New32a()
	h.Write([]byte(audioPath))
	return mockTranscripts[h.Sum32()%uint32(len(mockTranscripts))], nil
}
