package tests

import (
	"context"
	"testing"

	"github.com/aretw0/domaingen/pkg/domain"
	"github.com/aretw0/domaingen/pkg/ports"
)

// BuilderContractTest is a reusable test suite that verifies if an adapter complies with ports.Builder.
// newBuilder must return a builder that succeeds (status 0) on any well-formed stream.
func BuilderContractTest(t *testing.T, newBuilder func(t *testing.T) ports.Builder) {
	t.Helper()

	cfg := domain.SessionConfig{ToplevelConfigPath: "top.xml"}

	// 1. The whole stream is consumed, in order, exactly once.
	t.Run("ConsumesWholeStream", func(t *testing.T) {
		want := []domain.Command{
			domain.NewCommand(domain.VerbCreateSelectionCriterion, "exclusive", "Mode", "A", "B"),
			domain.NewCommand(domain.VerbStart),
			domain.NewCommand(domain.VerbImportDomain, "d.xml"),
		}
		var pulled []string
		seq := func(yield func(domain.Command) bool) {
			for _, c := range want {
				pulled = append(pulled, c.Verb())
				if !yield(c) {
					return
				}
			}
		}

		code, err := newBuilder(t).Run(context.Background(), cfg, seq)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != 0 {
			t.Errorf("expected status 0, got %d", code)
		}
		if len(pulled) != len(want) {
			t.Fatalf("expected %d commands consumed, got %d (%v)", len(want), len(pulled), pulled)
		}
		for i, c := range want {
			if pulled[i] != c.Verb() {
				t.Errorf("command %d: got %s, want %s", i, pulled[i], c.Verb())
			}
		}
	})

	// 2. An empty stream is a valid (if useless) session.
	t.Run("EmptyStream", func(t *testing.T) {
		code, err := newBuilder(t).Run(context.Background(), cfg, func(func(domain.Command) bool) {})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != 0 {
			t.Errorf("expected status 0, got %d", code)
		}
	})
}
