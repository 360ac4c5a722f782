// Package decklist parses plain-text decklists into structured card
// requests. Each line is tokenized and parsed independently: a malformed
// line is reported and skipped, never aborting the run.
package decklist

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/indiecore/bwproxy/pkg/card"
)

// Kind discriminates what a request asks for.
type Kind string

const (
	KindCard   Kind = "card"
	KindToken  Kind = "token"
	KindEmblem Kind = "emblem"
)

// Request is one resolved decklist entry: a card name (or inline token
// spec) with a print quantity. Created by the parser, consumed once by the
// resolver, never mutated afterwards.
type Request struct {
	Name       string
	Quantity   int
	Kind       Kind
	FlavorName string
	// Token holds the inline token description when the line spells the
	// token out instead of naming it. Nil otherwise.
	Token *TokenSpec
	// Line is the 1-based input line, kept for diagnostics.
	Line int
}

// ParseError records a line that could not be understood.
type ParseError struct {
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Input)
}

// Result is the parser output: the requests in input order plus the
// per-line errors encountered along the way.
type Result struct {
	Requests []Request
	Errors   []*ParseError
}

var (
	// Both // and # comment to the end of the line.
	commentRe     = regexp.MustCompile(`//.*$|#.*$`)
	doubleSpaceRe = regexp.MustCompile(` {2,}`)
	quantityRe    = regexp.MustCompile(`^([0-9]+)x?(\s|$)`)
	markerRe      = regexp.MustCompile(`(?i)\((token|emblem)\)`)
	flavorRe      = regexp.MustCompile(`\[(.*?)\]`)
)

// Parse reads a decklist line by line.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		parseLine(res, lineNum, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decklist: %w", err)
	}
	return res, nil
}

// ParseString parses an in-memory decklist.
func ParseString(s string) *Result {
	res, _ := Parse(strings.NewReader(s))
	return res
}

func parseLine(res *Result, lineNum int, raw string) {
	line := commentRe.ReplaceAllString(raw, "")
	line = doubleSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
	if line == "" {
		return
	}

	req := Request{Quantity: 1, Kind: KindCard, Line: lineNum}

	if m := quantityRe.FindStringSubmatch(line); m != nil {
		req.Quantity, _ = strconv.Atoi(m[1])
		line = strings.TrimSpace(line[len(m[0]):])
		if req.Quantity < 1 {
			res.Errors = append(res.Errors, &ParseError{
				Line:   lineNum,
				Input:  raw,
				Reason: "quantity must be at least 1",
			})
			return
		}
	}

	if m := flavorRe.FindStringSubmatch(line); m != nil {
		req.FlavorName = strings.TrimSpace(m[1])
		line = strings.TrimSpace(flavorRe.ReplaceAllString(line, ""))
	}

	// The marker may sit anywhere on the line; the name (or inline spec)
	// follows it, with any text before it kept as a fallback name.
	if loc := markerRe.FindStringSubmatchIndex(line); loc != nil {
		req.Kind = Kind(strings.ToLower(line[loc[2]:loc[3]]))
		before := strings.TrimSpace(line[:loc[0]])
		line = strings.TrimSpace(line[loc[1]:])
		if line == "" {
			line = before
		}
	}

	if line == "" {
		res.Errors = append(res.Errors, &ParseError{
			Line:   lineNum,
			Input:  raw,
			Reason: "no card name found",
		})
		return
	}
	req.Name = line

	if req.Kind != KindCard && strings.Contains(line, ";") {
		spec, err := ParseTokenSpec(line, req.FlavorName)
		if err != nil {
			res.Errors = append(res.Errors, &ParseError{
				Line:   lineNum,
				Input:  raw,
				Reason: err.Error(),
			})
			return
		}
		req.Token = spec
		req.Name = spec.Name
	}

	res.Requests = append(res.Requests, req)
}

// Quantities sums the requested print counts.
func (r *Result) Quantities() int {
	total := 0
	for _, req := range r.Requests {
		total += req.Quantity
	}
	return total
}

// Card supertypes and types recognized by the inline token grammar. The
// subtype list is open-ended, so subtypes are recognized by position
// instead.
var (
	supertypes = wordSet("Basic", "Legendary", "Snow", "World", "Ongoing", "Elite", "Host")
	cardTypes  = wordSet("Land", "Creature", "Artifact", "Enchantment",
		"Instant", "Sorcery", "Planeswalker", "Tribal", "Battle", "Kindred")
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// TokenSpec is an inline token description: semicolon-separated fields in
// the order [supertypes;] [P/T;] colors; [subtypes;] types[; rules...].
type TokenSpec struct {
	Name       string
	Supertypes []string
	Power      string
	Toughness  string
	Colors     []card.Color
	Types      []string
	Subtypes   []string
	Rules      []string
}

// segments is the token stream the spec parser consumes front to back.
type segments []string

func (s *segments) peek() string {
	if len(*s) == 0 {
		return ""
	}
	return (*s)[0]
}

func (s *segments) next() string {
	head := s.peek()
	*s = (*s)[1:]
	return head
}

func (s *segments) empty() bool { return len(*s) == 0 }

// ParseTokenSpec parses the semicolon-separated token grammar. The name
// argument is the bracketed custom name on the line, if any; a spec
// without subtypes requires one.
func ParseTokenSpec(text, name string) (*TokenSpec, error) {
	var segs segments
	for _, part := range strings.Split(text, ";") {
		segs = append(segs, strings.TrimSpace(part))
	}
	if len(segs) < 2 {
		return nil, fmt.Errorf("token spec needs at least colors and types")
	}

	spec := &TokenSpec{Name: name}

	// Optional leading supertypes.
	if words := titleWords(segs.peek()); len(words) > 0 && allIn(words, supertypes) {
		spec.Supertypes = words
		segs.next()
	}

	// Optional power/toughness.
	if strings.Contains(segs.peek(), "/") {
		pt := strings.SplitN(segs.next(), "/", 2)
		spec.Power = strings.TrimSpace(pt[0])
		spec.Toughness = strings.TrimSpace(pt[1])
	}

	if segs.empty() {
		return nil, fmt.Errorf("token spec is missing its colors")
	}
	for _, r := range strings.ToUpper(segs.next()) {
		c := card.Color(r)
		if containsAny(card.AllColors, c) {
			spec.Colors = append(spec.Colors, c)
		}
	}

	if segs.empty() {
		return nil, fmt.Errorf("token spec is missing its types")
	}

	// Either "subtypes; types" or just "types": when the following segment
	// is made of card types, the current one must be the subtypes.
	first := titleWords(segs.next())
	if !segs.empty() {
		if second := titleWords(segs.peek()); allIn(second, merged(cardTypes, supertypes)) {
			segs.next()
			spec.Subtypes = first
			spec.Types = second
		}
	}
	if spec.Types == nil {
		spec.Types = first
	}

	for !segs.empty() {
		if rule := segs.next(); rule != "" {
			spec.Rules = append(spec.Rules, rule)
		}
	}

	if spec.Name == "" {
		if len(spec.Subtypes) == 0 {
			return nil, fmt.Errorf("token spec without subtypes needs an explicit [name]")
		}
		spec.Name = strings.Join(spec.Subtypes, " ")
	}

	if spec.needsPT() && (spec.Power == "" || spec.Toughness == "") {
		return nil, fmt.Errorf("creature token %s is missing power/toughness", spec.Name)
	}

	return spec, nil
}

func (s *TokenSpec) needsPT() bool {
	for _, t := range s.Types {
		if t == "Creature" {
			return true
		}
	}
	for _, t := range s.Subtypes {
		if t == "Vehicle" {
			return true
		}
	}
	return false
}

// TypeLine assembles the printed type line for the token.
func (s *TokenSpec) TypeLine() string {
	parts := []string{"Token"}
	parts = append(parts, s.Supertypes...)
	parts = append(parts, s.Types...)
	line := strings.Join(parts, " ")
	if len(s.Subtypes) > 0 {
		line += " — " + strings.Join(s.Subtypes, " ")
	}
	return line
}

// Payload builds the card payload the spec describes, with no remote call.
func (s *TokenSpec) Payload() *card.Payload {
	colors := make([]string, len(s.Colors))
	for i, c := range s.Colors {
		colors[i] = string(c)
	}
	return &card.Payload{
		Name:       s.Name,
		TypeLine:   s.TypeLine(),
		Colors:     colors,
		Power:      s.Power,
		Toughness:  s.Toughness,
		OracleText: strings.Join(s.Rules, "\n"),
	}
}

// String re-serializes the spec in canonical form. Parsing the result
// yields the same attributes back.
func (s *TokenSpec) String() string {
	var parts []string
	if len(s.Supertypes) > 0 {
		parts = append(parts, strings.Join(s.Supertypes, " "))
	}
	if s.Power != "" || s.Toughness != "" {
		parts = append(parts, s.Power+"/"+s.Toughness)
	}
	letters := make([]string, len(s.Colors))
	for i, c := range s.Colors {
		letters[i] = string(c)
	}
	parts = append(parts, strings.Join(letters, ""))
	if len(s.Subtypes) > 0 {
		parts = append(parts, strings.Join(s.Subtypes, " "))
	}
	parts = append(parts, strings.Join(s.Types, " "))
	parts = append(parts, s.Rules...)
	return strings.Join(parts, "; ") + " [" + s.Name + "]"
}

func titleWords(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		out = append(out, strings.ToUpper(f[:1])+f[1:])
	}
	return out
}

func allIn(words []string, set map[string]bool) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}

func merged(sets ...map[string]bool) map[string]bool {
	m := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			m[k] = true
		}
	}
	return m
}

func containsAny(cs []card.Color, c card.Color) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}
