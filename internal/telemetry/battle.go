package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/loopyfoods/internal/battle"
)

// StartBattle opens a span covering one battle from its initial state.
// The caller ends it with EndBattle.
func StartBattle(ctx context.Context, tracer trace.Tracer, s battle.State, mode string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "battle.run")
	span.SetAttributes(
		attribute.String("battle.mode", mode),
		attribute.Int("player.tray_filled", s.PlayerTeam.Tray.Filled()),
		attribute.Int("player.kids", len(s.PlayerTeam.Kids)),
		attribute.Int("opponent.tray_filled", s.OpponentTeam.Tray.Filled()),
		attribute.Int("opponent.kids", len(s.OpponentTeam.Kids)),
	)
	return ctx, span
}

// EndBattle records the outcome and ends the span. A battle that did not
// finish is marked as an error.
func EndBattle(span trace.Span, s battle.State) {
	span.SetAttributes(
		attribute.Int("battle.steps", s.Steps),
		attribute.Int("player.stars", s.PlayerStars),
		attribute.Int("opponent.stars", s.OpponentStars),
		attribute.Bool("battle.ended", s.Ended),
	)
	if s.Ended {
		span.SetAttributes(attribute.String("battle.winner", string(s.Winner)))
	} else {
		span.SetStatus(codes.Error, "battle interrupted")
	}
	span.End()
}

// StepEvent adds the bites of one step to the span as events.
func StepEvent(span trace.Span, s battle.State) {
	for _, e := range s.EntriesAt(s.Steps) {
		span.AddEvent("bite", trace.WithAttributes(
			attribute.Int("step", e.Step),
			attribute.String("team", string(e.Team)),
			attribute.String("kid", e.Kid),
			attribute.String("food", e.Food),
			attribute.Int("stars", e.Stars),
		))
	}
}
