package cursor

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/appindex/internal/domain"
)

func TestQueryState_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		token string
	}{
		{"simple", "name = 'fred'", 10, "scroll-token-1"},
		{"empty query", "", 1, "tok"},
		{"query with spaces and quotes", `select name, age where name = "bob"`, 100, "c2Nyb2xsIGlk=="},
		{"token with underscores", "color = 'red'", 2, "a_b_c_d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := NewQueryState(tt.query, tt.limit, tt.token)
			if err != nil {
				t.Fatalf("NewQueryState: %v", err)
			}

			parsed, err := ParseQueryState(state.Serialize())
			if err != nil {
				t.Fatalf("ParseQueryState: %v", err)
			}
			if parsed.QueryText() != tt.query {
				t.Errorf("query text = %q, want %q", parsed.QueryText(), tt.query)
			}
			if parsed.Limit() != tt.limit {
				t.Errorf("limit = %d, want %d", parsed.Limit(), tt.limit)
			}
			if parsed.ScrollToken() != tt.token {
				t.Errorf("scroll token = %q, want %q", parsed.ScrollToken(), tt.token)
			}
		})
	}
}

func TestNewQueryState_Invalid(t *testing.T) {
	if _, err := NewQueryState("q", 0, "tok"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("zero limit: got %v, want ErrInvalidArgument", err)
	}
	if _, err := NewQueryState("q", -5, "tok"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("negative limit: got %v, want ErrInvalidArgument", err)
	}
	if _, err := NewQueryState("q", 10, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("empty token: got %v, want ErrInvalidArgument", err)
	}
}

func TestParseQueryState_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no delimiters", "just some text"},
		{"one delimiter", "query_aidelim_10"},
		{"three delimiters", "q_aidelim_10_aidelim_tok_aidelim_extra"},
		{"non-numeric limit", "query_aidelim_ten_aidelim_tok"},
		{"zero limit", "query_aidelim_0_aidelim_tok"},
		{"negative limit", "query_aidelim_-1_aidelim_tok"},
		{"empty scroll token", "query_aidelim_10_aidelim_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQueryState(tt.input); !errors.Is(err, domain.ErrCorruptCursorState) {
				t.Errorf("got %v, want ErrCorruptCursorState", err)
			}
		})
	}
}
