package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tripstack/internal/extract"
	"tripstack/internal/port"
	"tripstack/mocks"
)

func TestFallbackExtractor_PrimarySucceeds(t *testing.T) {
	primary := new(mocks.MockExtractor)
	secondary := new(mocks.MockExtractor)

	out := &port.ExtractOutput{Arguments: json.RawMessage(`{}`), ModelUsed: "gpt-4o"}
	primary.On("Extract", mock.Anything, mock.Anything).Return(out, nil)

	f := extract.NewFallbackExtractor(
		[]port.Extractor{primary, secondary},
		[]string{"openai", "anthropic"},
		nil,
	)

	got, err := f.Extract(context.Background(), port.ExtractInput{})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.ModelUsed)
	secondary.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestFallbackExtractor_FallsBackOnError(t *testing.T) {
	primary := new(mocks.MockExtractor)
	secondary := new(mocks.MockExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, &extract.UpstreamError{Provider: "openai", Status: 500})
	out := &port.ExtractOutput{Arguments: json.RawMessage(`{}`), ModelUsed: "claude-sonnet"}
	secondary.On("Extract", mock.Anything, mock.Anything).Return(out, nil)

	f := extract.NewFallbackExtractor(
		[]port.Extractor{primary, secondary},
		[]string{"openai", "anthropic"},
		nil,
	)

	got, err := f.Extract(context.Background(), port.ExtractInput{})

	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet", got.ModelUsed)
}

func TestFallbackExtractor_RateLimitOpensCircuit(t *testing.T) {
	primary := new(mocks.MockExtractor)
	secondary := new(mocks.MockExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, extract.NewRateLimitError("openai", errors.New("429"), 60)).Once()
	out := &port.ExtractOutput{Arguments: json.RawMessage(`{}`), ModelUsed: "claude-sonnet"}
	secondary.On("Extract", mock.Anything, mock.Anything).Return(out, nil)

	f := extract.NewFallbackExtractor(
		[]port.Extractor{primary, secondary},
		[]string{"openai", "anthropic"},
		nil,
	)

	// First call rate-limits the primary, second call must skip it entirely.
	_, err := f.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)
	_, err = f.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)

	primary.AssertNumberOfCalls(t, "Extract", 1)
	secondary.AssertNumberOfCalls(t, "Extract", 2)
}

func TestFallbackExtractor_AllRateLimited(t *testing.T) {
	primary := new(mocks.MockExtractor)
	secondary := new(mocks.MockExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, extract.NewRateLimitError("openai", errors.New("429"), 30))
	secondary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, extract.NewRateLimitError("anthropic", errors.New("429"), 60))

	f := extract.NewFallbackExtractor(
		[]port.Extractor{primary, secondary},
		[]string{"openai", "anthropic"},
		nil,
	)

	_, err := f.Extract(context.Background(), port.ExtractInput{})

	var rlErr *extract.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackExtractor_AllFailNonRateLimit(t *testing.T) {
	primary := new(mocks.MockExtractor)

	primary.On("Extract", mock.Anything, mock.Anything).
		Return(nil, &extract.UpstreamError{Provider: "openai", Status: 503})

	f := extract.NewFallbackExtractor(
		[]port.Extractor{primary},
		[]string{"openai"},
		nil,
	)

	_, err := f.Extract(context.Background(), port.ExtractInput{})

	require.Error(t, err)
	var uerr *extract.UpstreamError
	assert.ErrorAs(t, err, &uerr)
}
