package generator

import (
	"context"
	"sync/atomic"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/trends"
)

// --- Mocks ---

type mockText struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	calls        atomic.Int32
	lastPrompt   atomic.Value
}

func (m *mockText) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	m.lastPrompt.Store(prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return "", nil
}

type mockImages struct {
	generateFunc func(ctx context.Context, prompt, aspectRatio string) ([]domain.GeneratedImage, error)
	calls        atomic.Int32
	lastAspect   atomic.Value
	lastPrompt   atomic.Value
}

func (m *mockImages) GenerateImages(ctx context.Context, prompt, aspectRatio string) ([]domain.GeneratedImage, error) {
	m.calls.Add(1)
	m.lastAspect.Store(aspectRatio)
	m.lastPrompt.Store(prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, aspectRatio)
	}
	return nil, nil
}

type mockEditor struct {
	editFunc func(ctx context.Context, ref domain.ReferenceImage, prompt string) ([]domain.ContentPart, error)
	calls    int
}

func (m *mockEditor) EditImage(ctx context.Context, ref domain.ReferenceImage, prompt string) ([]domain.ContentPart, error) {
	m.calls++
	if m.editFunc != nil {
		return m.editFunc(ctx, ref, prompt)
	}
	return nil, nil
}

type mockTrends struct {
	fetchFunc func(ctx context.Context) (*trends.Trend, error)
	calls     int
}

func (m *mockTrends) FetchTrending(ctx context.Context) (*trends.Trend, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return &trends.Trend{Topic: "a trending topic"}, nil
}

// fixedScenario は常に同じシナリオとリアクションを返すのだ。
type fixedScenario struct {
	scenario domain.Scenario
	reaction string
}

func (f fixedScenario) Sample() domain.Scenario { return f.scenario }
func (f fixedScenario) Reaction() string        { return f.reaction }
