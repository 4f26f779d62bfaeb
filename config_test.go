// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesDocumentedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 32.0, cfg.AsymptoticRadius)
	assert.Equal(t, 1024, cfg.CacheSizeKB)
	assert.False(t, cfg.ZeroSelfDemag)
	assert.Equal(t, 2, cfg.AsymptoticOrder)
	assert.Equal(t, SaveTensorFormatNone, cfg.SaveTensorFmt)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demag.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zero_self_demag: true\nasymptotic_radius: 16\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.ZeroSelfDemag)
	assert.Equal(t, 16.0, cfg.AsymptoticRadius)
	// Untouched fields keep their documented defaults.
	assert.Equal(t, 1024, cfg.CacheSizeKB)
}

func TestLoadConfigMissingFileIsIoError(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/demag.yaml")
	require.Error(t, err)
	var ioErr *IoError
	assert.ErrorAs(t, err, &ioErr)
}

func TestSaveTensorFormatRejectsUnknown(t *testing.T) {
	_, err := SaveTensorFormat("bogus").toTensorFormat()
	require.Error(t, err)
}
