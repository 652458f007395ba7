package stream

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testTick = time.Millisecond

type recorder struct {
	mu     sync.Mutex
	tokens []string
	done   []string
}

func (r *recorder) onToken(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, s)
}

func (r *recorder) onDone(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, s)
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tokens...), append([]string(nil), r.done...)
}

func waitDone(t interface{ Fatal(args ...any) }, h *Handle) {
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("presentation did not finish")
	}
}

func TestBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"   ", nil},
		{"one", []int{3}},
		{"one two", []int{3, 7}},
		{"  lead\n\nnext  ", []int{6, 12}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Boundaries(tt.in), "%q", tt.in)
	}
}

func TestPresent_TokensThenDone(t *testing.T) {
	text := "Hello **Ada**,\n\n• one\n• two"
	r := &recorder{}
	h := Present(text, testTick, r.onToken, r.onDone)
	waitDone(t, h)

	tokens, done := r.snapshot()
	require.Len(t, tokens, len(strings.Fields(text)))
	assert.Equal(t, "Hello", tokens[0])
	assert.Equal(t, "Hello **Ada**,\n\n•", tokens[2])
	assert.Equal(t, []string{text}, done)
}

func TestPresent_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 12).Draw(rt, "words")
		text := strings.Join(words, " ")

		r := &recorder{}
		h := Present(text, testTick, r.onToken, r.onDone)
		waitDone(rt, h)

		tokens, done := r.snapshot()
		if len(tokens) != len(words) {
			rt.Fatalf("got %d tokens for %d words", len(tokens), len(words))
		}
		for i := 1; i < len(tokens); i++ {
			if len(tokens[i]) <= len(tokens[i-1]) || !strings.HasPrefix(tokens[i], tokens[i-1]) {
				rt.Fatalf("token %d %q does not extend %q", i, tokens[i], tokens[i-1])
			}
		}
		if len(done) != 1 || done[0] != text {
			rt.Fatalf("onDone calls = %q", done)
		}
	})
}

func TestPresent_CancelStopsCallbacks(t *testing.T) {
	r := &recorder{}
	h := Present(strings.Repeat("word ", 200), testTick, r.onToken, r.onDone)

	time.Sleep(10 * testTick)
	h.Cancel()
	before, _ := r.snapshot()
	waitDone(t, h)
	time.Sleep(10 * testTick)

	after, done := r.snapshot()
	assert.Equal(t, before, after, "no tokens after cancel")
	assert.Empty(t, done, "no onDone after cancel")
	assert.Less(t, len(after), 200)

	h.Cancel() // idempotent
}

func TestPresenter_NoInterleaving(t *testing.T) {
	p := NewPresenter(testTick)
	first := &recorder{}
	second := &recorder{}

	p.Present(strings.Repeat("old ", 100), first.onToken, first.onDone)
	time.Sleep(5 * testTick)
	h := p.Present("brand new reply", second.onToken, second.onDone)
	waitDone(t, h)

	firstTokens, firstDone := first.snapshot()
	time.Sleep(5 * testTick)
	firstAfter, _ := first.snapshot()
	assert.Equal(t, firstTokens, firstAfter)
	assert.Empty(t, firstDone)

	tokens, done := second.snapshot()
	assert.Equal(t, []string{"brand", "brand new", "brand new reply"}, tokens)
	assert.Equal(t, []string{"brand new reply"}, done)
}

func TestPresent_EmptyText(t *testing.T) {
	r := &recorder{}
	waitDone(t, Present("", testTick, r.onToken, r.onDone))
	tokens, done := r.snapshot()
	assert.Empty(t, tokens)
	assert.Equal(t, []string{""}, done)
}
