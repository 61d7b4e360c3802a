package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "", want: zapcore.InfoLevel},
		{in: "DEBUG", want: zapcore.DebugLevel},
		{in: " warn ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "verbose", want: zapcore.InfoLevel, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFactory_NamedLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := NewFactoryWithCore(core, "info", map[string]string{"Connector": "debug"})
	require.NoError(t, err)

	f.Named("Connector").Debug("dialing")
	f.Named("Resolver").Debug("hidden")
	f.Named("Resolver").Info("shown")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "dialing", entries[0].Message)
	assert.Equal(t, "Connector", entries[0].LoggerName)
	assert.Equal(t, "shown", entries[1].Message)
}

func TestFactory_DerivedLoggersKeepOverrides(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := NewFactoryWithCore(core, "info", map[string]string{"Connector": "debug", "RestAPI": "error"})
	require.NoError(t, err)

	// components receive the root logger and name themselves
	root := f.Named("")
	root.Named("Connector").Debug("chain ready")
	root.Named("Connector").Named("Dial").Debug("dialing endpoint")
	root.Named("GatewayClient").Debug("hidden")
	root.Named("RestAPI").Warn("hidden too")
	root.Named("RestAPI").Error("request failed")
	root.With(zap.String("chain", "pah")).Named("Connector").Debug("with fields")

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.LoggerName+": "+e.Message)
	}
	assert.Equal(t, []string{
		"Connector: chain ready",
		"Connector.Dial: dialing endpoint",
		"RestAPI: request failed",
		"Connector: with fields",
	}, got)
}

func TestFactory_Port(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f, err := NewFactoryWithCore(core, "debug", nil)
	require.NoError(t, err)

	l := f.Port("Aggregator").With("chain", "pah")
	l.Warn("chain failed", "code", "AGGREGATE_FAILURE")

	entries := logs.FilterMessage("chain failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Aggregator", entries[0].LoggerName)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "pah", ctx["chain"])
	assert.Equal(t, "AGGREGATE_FAILURE", ctx["code"])
}

func TestNewFactoryWithCore_InvalidOverride(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	_, err := NewFactoryWithCore(core, "info", map[string]string{"X": "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.With("k", "v").Error("ignored", "err", "x")
	})
}
