package main

import (
	"context"
	"flag"
	"os"
	"time"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/pkg/genai"
	"campus-assistant-be/pkg/imagesearch"
	"campus-assistant-be/pkg/intent"
	"campus-assistant-be/pkg/knowledge"

	"github.com/fatih/color"
)

// Probe exercises the retrieval backends directly, without the HTTP server.
// Useful for checking API keys and provider availability from a shell.
func main() {
	query := flag.String("q", "show me images of cats", "query to classify and retrieve")
	count := flag.Int("n", 3, "number of images to request")
	flag.Parse()

	cfg := config.Load()

	color.Cyan("🚀 Campus Assistant Retrieval Probe\n")

	color.Yellow("\n[1] Intent classification")
	kind := intent.Classify(*query)
	color.Green("Query: %q → intent: %s", *query, kind)

	timeout := time.Duration(cfg.Chat.ProviderTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch kind {
	case intent.IntentStaticFAQ:
		color.Yellow("\n[2] Knowledge table lookup")
		answer, ok := knowledge.Lookup(*query)
		if !ok {
			color.Red("No knowledge entry matched (would fall through to Gemini)")
			os.Exit(1)
		}
		color.Green("Answer (%d chars):", len(answer))
		color.White("%s", answer)

	case intent.IntentImageRequest:
		term := intent.ExtractImageTerm(*query)
		color.Yellow("\n[2] Image providers, term=%q count=%d", term, *count)
		probeProviders(ctx, cfg, timeout, term, *count)

	default:
		color.Yellow("\n[2] Gemini generateContent")
		if cfg.Keys.GoogleGemini == "" {
			color.Red("GOOGLE_GEMINI_API_KEY is not set")
			os.Exit(1)
		}
		client := genai.NewGeminiClient(cfg.Keys.GoogleGemini, timeout)
		text, err := client.GenerateText(ctx, *query)
		if err != nil {
			color.Red("Gemini failed: %v", err)
			os.Exit(1)
		}
		if text == "" {
			color.Red("Gemini returned no candidates")
			os.Exit(1)
		}
		color.Green("Response (%d chars):", len(text))
		color.White("%s", text)
	}

	color.Cyan("\n✅ Probe finished")
}

func probeProviders(ctx context.Context, cfg *config.Config, timeout time.Duration, term string, count int) {
	providers := []imagesearch.Provider{}
	if cfg.Keys.Pixabay != "" {
		providers = append(providers, imagesearch.NewPixabayProvider(cfg.Keys.Pixabay, timeout))
	} else {
		color.Red("PIXABAY_API_KEY not set, skipping pixabay")
	}
	if cfg.Keys.Pexels != "" {
		providers = append(providers, imagesearch.NewPexelsProvider(cfg.Keys.Pexels, timeout))
	} else {
		color.Red("PEXELS_API_KEY not set, skipping pexels")
	}
	providers = append(providers, imagesearch.NewPicsumProvider())

	// Hit each provider individually so key problems show up per-provider,
	// unlike the server's resolver which stops at the first success.
	for _, p := range providers {
		color.Yellow("\n→ provider: %s", p.Name())
		start := time.Now()
		refs, err := p.FetchImages(ctx, term, count)
		if err != nil {
			color.Red("  failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
			continue
		}
		color.Green("  %d image(s) in %s", len(refs), time.Since(start).Round(time.Millisecond))
		for _, ref := range refs {
			color.White("  - [%s] %s (by %s)", ref.Id, ref.URL, ref.Photographer)
		}
	}
}
