package providers

import (
	"errors"
	"testing"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

func chainNames(t *testing.T, r *Registry, opts domain.Options) []string {
	t.Helper()
	chain, err := r.Chain(opts)
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, p.Name())
	}
	return names
}

func TestChainAutoWithAllCredentials(t *testing.T) {
	r := NewRegistry()
	names := chainNames(t, r, domain.Options{
		Provider:     "auto",
		GoogleAPIKey: "gk",
		ORSAPIKey:    "ok",
	})

	want := []string{"google", "ors", "osrm"}
	if len(names) != len(want) {
		t.Fatalf("expected chain %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected chain %v, got %v", want, names)
		}
	}
}

func TestChainAutoWithoutCredentials(t *testing.T) {
	r := NewRegistry()
	names := chainNames(t, r, domain.Options{})

	if len(names) != 1 || names[0] != "osrm" {
		t.Fatalf("expected osrm-only chain, got %v", names)
	}
}

func TestChainAutoSkipsMissingKeys(t *testing.T) {
	r := NewRegistry()
	names := chainNames(t, r, domain.Options{Provider: "auto", ORSAPIKey: "ok"})

	want := []string{"ors", "osrm"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("expected chain %v, got %v", want, names)
	}
}

func TestChainExplicitProvider(t *testing.T) {
	r := NewRegistry()
	names := chainNames(t, r, domain.Options{Provider: "osrm"})

	if len(names) != 1 || names[0] != "osrm" {
		t.Fatalf("expected osrm-only chain, got %v", names)
	}
}

func TestChainExplicitProviderMissingCredential(t *testing.T) {
	r := NewRegistry()
	_, err := r.Chain(domain.Options{Provider: "google"})
	if err == nil {
		t.Fatal("expected error for google without api key")
	}

	var ie *domain.InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError, got %T", err)
	}
}

func TestChainUnknownProvider(t *testing.T) {
	r := NewRegistry()
	_, err := r.Chain(domain.Options{Provider: "teleport"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}

	var ie *domain.InvalidInputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvalidInputError, got %T", err)
	}
}

func TestChainHaversineIsEmpty(t *testing.T) {
	r := NewRegistry()
	chain, err := r.Chain(domain.Options{Provider: "haversine"})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != 0 {
		t.Fatalf("expected empty chain, got %d providers", len(chain))
	}
}
