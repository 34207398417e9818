// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	defer Init(&bytes.Buffer{}, Options{Verbosity: LegacyLevelInfo})

	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: LegacyLevelInfo, JSON: true})

	logger := WithContext("pkg", "stacker")
	logger.Info("decided", "account", 1)
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "decided", rec["msg"])
	assert.Equal(t, "stacker", rec["pkg"])
	assert.Equal(t, float64(1), rec["account"])
}

func TestVerbosity(t *testing.T) {
	defer Init(&bytes.Buffer{}, Options{Verbosity: LegacyLevelInfo})

	var buf bytes.Buffer
	Init(&buf, Options{Verbosity: LegacyLevelError})
	Warn("dropped")
	Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, FromLegacyLevel(LegacyLevelTrace), FromLegacyLevel(42))
	assert.Equal(t, FromLegacyLevel(LegacyLevelCrit), FromLegacyLevel(-1))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
