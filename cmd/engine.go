package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/coursebuddy/internal/assistant"
	"github.com/abhisek/coursebuddy/internal/resources"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/store"
	"github.com/abhisek/coursebuddy/internal/videosearch"
)

// newSessionDeps assembles the response engine: video provider behind the
// resource gateway, the synthesizer and the store-backed context source.
func newSessionDeps(ctx context.Context, st *store.Store) (session.Deps, error) {
	vcfg := cfg.VideoSearch()
	provider, err := videosearch.NewProvider(ctx, vcfg, st)
	if err != nil {
		return session.Deps{}, fmt.Errorf("video provider: %w", err)
	}

	gateway := resources.NewGateway(provider, vcfg.Timeout)
	return session.Deps{
		Context: st.ContextSource(),
		Synth:   assistant.NewSynthesizer(gateway),
		Events:  st.EventRepo(),
	}, nil
}
