// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/toolhive-logging/logging"
	"github.com/stacklok/toolhive-logging/logging/mocks"
)

func TestLogger_ForwardsToSinksInOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	first := mocks.NewMockSink(ctrl)
	second := mocks.NewMockSink(ctrl)
	matchMessage := gomock.Cond(func(r logging.Record) bool { return r.Message == "ordered" })
	gomock.InOrder(
		first.EXPECT().Handle(matchMessage).Return(nil),
		second.EXPECT().Handle(matchMessage).Return(nil),
	)

	l := logging.NewRegistry().GetOrCreate("ordered")
	l.AddSink(first)
	l.AddSink(second)
	l.Info("ordered")
	l.Debug("below threshold never reaches a sink")
}

func TestLogger_ReportsSinkFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	writeErr := errors.New("quota exceeded")
	failing := mocks.NewMockSink(ctrl)
	failing.EXPECT().Handle(gomock.Any()).Return(writeErr)
	failing.EXPECT().Name().Return("remote")
	healthy := mocks.NewMockSink(ctrl)
	healthy.EXPECT().Handle(gomock.Any()).Return(nil)

	var reported []*logging.SinkError
	reg := logging.NewRegistry(logging.WithErrorHandler(func(e *logging.SinkError) {
		reported = append(reported, e)
	}))
	l := reg.GetOrCreate("app")
	l.AddSink(failing)
	l.AddSink(healthy)

	l.Warning("payload")

	require.Len(t, reported, 1)
	assert.Equal(t, "remote", reported[0].Sink)
	assert.Equal(t, "payload", reported[0].Record.Message)
	assert.True(t, errors.Is(reported[0], writeErr))
}

func TestRegistry_ShutdownJoinsCloseErrors(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	closeErr := errors.New("flush failed")
	shared := mocks.NewMockSink(ctrl)
	shared.EXPECT().Close().Return(closeErr).Times(1)
	shared.EXPECT().Name().Return("shared")
	other := mocks.NewMockSink(ctrl)
	other.EXPECT().Close().Return(nil).Times(1)

	reg := logging.NewRegistry()
	reg.GetOrCreate("a").AddSink(shared)
	reg.GetOrCreate("b").AddSink(shared)
	reg.GetOrCreate("b").AddSink(other)

	err := reg.Shutdown()
	require.Error(t, err)
	assert.True(t, errors.Is(err, closeErr))
	assert.Contains(t, err.Error(), `closing sink "shared"`)
}

func TestSinkFilter_RunsAfterLevelGate(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	filter := mocks.NewMockFilter(ctrl)
	filter.EXPECT().Allow(gomock.Cond(func(r logging.Record) bool { return r.Message == "kept" })).Return(true, nil)
	filter.EXPECT().Allow(gomock.Cond(func(r logging.Record) bool { return r.Message == "vetoed" })).Return(false, nil)

	var buf bytes.Buffer
	sink := logging.NewConsoleSink(
		logging.WithOutput(&buf),
		logging.WithSinkOptions(
			logging.WithSinkLevel(logging.LevelWarning),
			logging.WithFilter(filter),
		),
	)

	require.NoError(t, sink.Handle(logging.Record{Level: logging.LevelInfo, Message: "below level"}))
	require.NoError(t, sink.Handle(logging.Record{Level: logging.LevelError, Message: "kept"}))
	require.NoError(t, sink.Handle(logging.Record{Level: logging.LevelError, Message: "vetoed"}))

	assert.Contains(t, buf.String(), "kept")
	assert.NotContains(t, buf.String(), "vetoed")
	assert.NotContains(t, buf.String(), "below level")
}
