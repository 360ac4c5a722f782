package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/indiecore/bwproxy/pkg/card"
	"github.com/indiecore/bwproxy/pkg/decklist"
	"github.com/indiecore/bwproxy/pkg/scryfall"
)

// Source is the remote lookup surface the resolver needs.
type Source interface {
	Named(name string) (*card.Payload, error)
	SearchTokens(name string, emblem bool) ([]*card.Payload, error)
}

// Cache is the persistent lookup cache surface the resolver needs. Card
// and token entries are disjoint key spaces.
type Cache interface {
	GetCard(name string) (*card.Payload, bool, error)
	PutCard(name string, payload *card.Payload) error
	GetToken(name string) (*card.Payload, bool, error)
	PutToken(name string, payload *card.Payload) error
}

// ResolveOptions are the user choices that affect resolution.
type ResolveOptions struct {
	// SkipBasicLands drops basic land requests with a diagnostic.
	SkipBasicLands bool
	// AlternativeFrames and Playtest are forwarded into the derived
	// layout attributes of each resolved card.
	AlternativeFrames bool
	Playtest          bool
}

// Print is one resolved card with its requested print count. Double-faced
// cards resolve into one Print per face.
type Print struct {
	Card  card.LayoutCard
	Count int
}

// Resolver turns parsed requests into printable cards, consulting the
// cache before the remote service. Resolution of one request never aborts
// the batch: every failure becomes a diagnostic and the card is skipped.
type Resolver struct {
	source Source
	cache  Cache
}

func NewResolver(source Source, cache Cache) *Resolver {
	return &Resolver{source: source, cache: cache}
}

// Resolve processes the parse result in input order. Parse errors are
// carried over into the diagnostics so the caller sees one combined list.
func (r *Resolver) Resolve(parsed *decklist.Result, opts ResolveOptions) ([]Print, []Diagnostic) {
	var (
		prints []Print
		diags  []Diagnostic
	)

	for _, perr := range parsed.Errors {
		diags = append(diags, Diagnostic{
			Kind:    DiagParse,
			Line:    perr.Line,
			Message: fmt.Sprintf("%s: %q", perr.Reason, perr.Input),
		})
	}

	layoutOpts := card.PrintOptions{
		AlternativeFrames: opts.AlternativeFrames,
		Playtest:          opts.Playtest,
	}

	for _, req := range parsed.Requests {
		if opts.SkipBasicLands && req.Kind == decklist.KindCard && card.IsBasicLand(req.Name) {
			diags = append(diags, Diagnostic{
				Kind:    DiagSkipped,
				Line:    req.Line,
				Message: fmt.Sprintf("basic lands are excluded, %s will not be printed", req.Name),
			})
			continue
		}

		var (
			payload *card.Payload
			diag    *Diagnostic
			err     error
		)
		if req.Kind == decklist.KindCard {
			payload, err = r.resolveCard(req)
		} else {
			payload, diag, err = r.resolveToken(req)
		}
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagLookupMiss,
				Line:    req.Line,
				Message: fmt.Sprintf("skipping %s: %v", req.Name, err),
			})
			continue
		}
		if diag != nil {
			diags = append(diags, *diag)
		}

		o := layoutOpts
		o.FlavorName = req.FlavorName
		lc := card.NewLayoutCard(card.FromPayload(payload), o)

		// Transform and modal faces print as separate cards, in face order.
		for _, face := range lc.SplitFaces() {
			prints = append(prints, Print{Card: face, Count: req.Quantity})
		}
	}

	return prints, diags
}

func (r *Resolver) resolveCard(req decklist.Request) (*card.Payload, error) {
	if payload, ok, err := r.cache.GetCard(req.Name); err == nil && ok {
		return payload, nil
	}

	payload, err := r.source.Named(req.Name)
	if err != nil {
		if errors.Is(err, scryfall.ErrNotFound) {
			return nil, fmt.Errorf("no card found by that name")
		}
		return nil, err
	}

	if err := r.cache.PutCard(req.Name, payload); err != nil {
		return nil, fmt.Errorf("failed to cache %s: %w", req.Name, err)
	}
	return payload, nil
}

func (r *Resolver) resolveToken(req decklist.Request) (*card.Payload, *Diagnostic, error) {
	// An inline spec fully describes the token; no network, no cache.
	if req.Token != nil {
		return req.Token.Payload(), nil, nil
	}

	if payload, ok, err := r.cache.GetToken(req.Name); err == nil && ok {
		return payload, nil, nil
	}

	results, err := r.source.SearchTokens(req.Name, req.Kind == decklist.KindEmblem)
	if err != nil {
		return nil, nil, err
	}

	candidates := dedupeTokens(req.Name, results)
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("no matching tokens found")
	}

	payload := candidates[0]
	var diag *Diagnostic
	if len(candidates) > 1 {
		// Multiple distinct printings under one name: keep the first so
		// the output stays deterministic, but tell the user.
		diag = &Diagnostic{
			Kind: DiagAmbiguousToken,
			Line: req.Line,
			Message: fmt.Sprintf(
				"%d distinct printings of %s found, using %s (%s); specify the token inline to pick another",
				len(candidates), req.Name, payload.Name, payload.TypeLine,
			),
		}
	}

	if err := r.cache.PutToken(req.Name, payload); err != nil {
		return nil, nil, fmt.Errorf("failed to cache %s: %w", req.Name, err)
	}
	return payload, diag, nil
}

// dedupeTokens collapses a token search result down to the distinct
// printings matching the query. Multi-face tokens contribute each face;
// faces that are only a bare "Token" type line are asymmetric backs and
// are dropped. Printings differing only by power/toughness stay distinct.
func dedupeTokens(query string, results []*card.Payload) []*card.Payload {
	var faces []*card.Payload
	for _, res := range results {
		if len(res.CardFaces) > 0 {
			for i := range res.CardFaces {
				faces = append(faces, &res.CardFaces[i])
			}
		} else {
			faces = append(faces, res)
		}
	}

	foldName := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, ",", ""))
	}

	seen := make(map[string]bool)
	var out []*card.Payload
	for _, f := range faces {
		if !strings.Contains(foldName(f.Name), foldName(query)) {
			continue
		}
		if f.TypeLine == "" || f.TypeLine == "Token" {
			continue
		}

		sorted := card.SortColors(card.ToColors(f.Colors))
		cs := make([]string, len(sorted))
		for i, c := range sorted {
			cs[i] = string(c)
		}
		key := strings.Join([]string{
			f.Name, f.TypeLine, strings.Join(cs, ""), f.OracleText, f.Power, f.Toughness,
		}, "\n")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
