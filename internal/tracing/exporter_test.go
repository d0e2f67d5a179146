package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)
	require.Equal(t, tracePath, exporter.Path())

	_, err = os.Stat(tracePath)
	require.NoError(t, err, "trace file should be created with parent dirs")

	require.NoError(t, exporter.Shutdown(context.Background()))
}

func TestFileExporter_WritesValidJSONL(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	start := time.Now()
	stub := tracetest.SpanStub{
		Name:      "grid.scroll",
		SpanKind:  trace.SpanKindInternal,
		StartTime: start,
		EndTime:   start.Add(5 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Ok},
		Attributes: []attribute.KeyValue{
			attribute.Int(AttrGridBound, 42),
			attribute.Float64(AttrScrollY, 12.5),
		},
		Events: []sdktrace.Event{
			{Name: EventViewCreated, Time: start, Attributes: []attribute.KeyValue{attribute.Int(AttrColumnIndex, 3)}},
		},
	}

	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.Shutdown(context.Background()))

	file, err := os.Open(tracePath)
	require.NoError(t, err)
	defer file.Close()

	var record SpanRecord
	require.NoError(t, json.NewDecoder(file).Decode(&record), "should be valid JSON")

	require.Equal(t, "grid.scroll", record.Name)
	require.Equal(t, "INTERNAL", record.Kind)
	require.Equal(t, "OK", record.Status)
	require.InDelta(t, 5.0, record.DurationMs, 0.001)
	require.EqualValues(t, 42, record.Attributes[AttrGridBound])
	require.EqualValues(t, 12.5, record.Attributes[AttrScrollY])
	require.Len(t, record.Events, 1)
	require.Equal(t, EventViewCreated, record.Events[0].Name)
	require.EqualValues(t, 3, record.Events[0].Attributes[AttrColumnIndex])
}

func TestFileExporter_MultipleSpansOnePerLine(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	spans := make([]sdktrace.ReadOnlySpan, 0, 3)
	for _, name := range []string{"grid.rows_added", "grid.rows_removed", "grid.rows_replaced"} {
		stub := tracetest.SpanStub{Name: name, StartTime: time.Now(), EndTime: time.Now()}
		spans = append(spans, stub.Snapshot())
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), spans))
	require.NoError(t, exporter.Shutdown(context.Background()))

	file, err := os.Open(tracePath)
	require.NoError(t, err)
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines++
	}
	require.Equal(t, 3, lines)
}

func TestFileExporter_ExportAfterShutdownFails(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "second shutdown is a no-op")

	stub := tracetest.SpanStub{Name: "late"}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.ErrorIs(t, err, errExporterClosed)
}

func TestSpanRecord_ErrorStatus(t *testing.T) {
	stub := tracetest.SpanStub{
		Name:   "grid.columns_replaced",
		Status: sdktrace.Status{Code: codes.Error, Description: "column 2 template: template returned nil"},
	}
	rec := recordOf(stub.Snapshot())
	require.Equal(t, "ERROR", rec.Status)
	require.Equal(t, "column 2 template: template returned nil", rec.StatusMsg)
	require.Empty(t, rec.ParentID)
}

func TestRecordOf_KindsAndParent(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	tests := []struct {
		kind trace.SpanKind
		want string
	}{
		{trace.SpanKindInternal, "INTERNAL"},
		{trace.SpanKindClient, "CLIENT"},
		{trace.SpanKindUnspecified, "UNSPECIFIED"},
	}
	for _, tt := range tests {
		stub := tracetest.SpanStub{Name: "grid.scroll", SpanKind: tt.kind, Parent: parent}
		rec := recordOf(stub.Snapshot())
		require.Equal(t, tt.want, rec.Kind)
		require.Equal(t, "UNSET", rec.Status)
		require.Equal(t, parent.SpanID().String(), rec.ParentID)
		require.Nil(t, rec.Attributes)
	}
}
