package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/tsbuild/internal/adapters/telemetry"
	"go.trai.ch/tsbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_LogsFinishedSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "compile finished in")
	})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := tp.Tracer("test").Start(context.Background(), "compile")
	span.End()
}

func TestBridge_WarnsOnFailedSpan(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "resolve-aliases failed after")
	})

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(log)))
	_, span := tp.Tracer("test").Start(context.Background(), "resolve-aliases")
	span.RecordError(errors.New("boom"))
	span.SetStatus(codes.Error, "boom")
	span.End()
}

func TestBridge_NilLogger(_ *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(nil)))
	_, span := tp.Tracer("test").Start(context.Background(), "clean")
	span.End()
}

func TestBridge_NoOps(t *testing.T) {
	b := telemetry.NewBridge(nil)
	assert.NoError(t, b.ForceFlush(context.Background()))
	assert.NoError(t, b.Shutdown(context.Background()))
}
