package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestSetup_WithoutEndpoint(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	tel, err := Setup(context.Background(), Options{Level: slog.LevelWarn, Writer: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tel.Shutdown(context.Background())

	tel.Logger.Info("hidden")
	tel.Logger.Warn("shown", "bot", "CBot")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "bot=CBot") {
		t.Fatalf("unexpected output: %q", out)
	}

	_, span := tel.Tracer("test").Start(context.Background(), "bot.tick")
	if span.SpanContext().IsValid() {
		t.Fatal("noop tracer should not produce a valid span context")
	}
	span.End()
	if otel.GetTracerProvider() != tel.TracerProvider {
		t.Fatal("global tracer provider not installed")
	}
}

type recordingHandler struct {
	level   slog.Level
	records *[]slog.Record
	attrs   []slog.Attr
}

func (h recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	r.AddAttrs(h.attrs...)
	*h.records = append(*h.records, r)
	return nil
}
func (h recordingHandler) WithAttrs(as []slog.Attr) slog.Handler {
	h.attrs = append(append([]slog.Attr{}, h.attrs...), as...)
	return h
}
func (h recordingHandler) WithGroup(string) slog.Handler { return h }

func TestFanout(t *testing.T) {
	var debug, warn []slog.Record
	logger := slog.New(fanout{
		recordingHandler{level: slog.LevelDebug, records: &debug},
		leveled{Handler: recordingHandler{level: slog.LevelDebug, records: &warn}, level: slog.LevelWarn},
	}).With("bot", "CBot")

	logger.Debug("tick")
	logger.Warn("rejected")

	if len(debug) != 2 {
		t.Fatalf("debug handler got %d records, want 2", len(debug))
	}
	if len(warn) != 1 || warn[0].Message != "rejected" {
		t.Fatalf("leveled handler got %+v", warn)
	}
	var found bool
	warn[0].Attrs(func(a slog.Attr) bool {
		found = found || (a.Key == "bot" && a.Value.String() == "CBot")
		return true
	})
	if !found {
		t.Fatal("WithAttrs not propagated")
	}
}
