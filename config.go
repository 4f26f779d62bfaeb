// Copyright 2024 The demag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demag

import (
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/cpmech/demag/demagerr"
	"github.com/cpmech/demag/tensor"
	"github.com/cpmech/demag/workpool"
)

// SaveTensorFormat names the tensor-dump body encoding in config files
// (§6 `save_tensor_fmt`), mirroring tensor.SaveFormat as strings so
// YAML configs stay human-readable.
type SaveTensorFormat string

const (
	SaveTensorFormatNone     SaveTensorFormat = "none"
	SaveTensorFormatBinary32 SaveTensorFormat = "binary32"
	SaveTensorFormatBinary64 SaveTensorFormat = "binary64"
	SaveTensorFormatText     SaveTensorFormat = "text"
)

func (f SaveTensorFormat) toTensorFormat() (tensor.SaveFormat, error) {
	switch f {
	case "", SaveTensorFormatNone:
		return tensor.SaveFormatNone, nil
	case SaveTensorFormatBinary32:
		return tensor.SaveFormatBinary32, nil
	case SaveTensorFormatBinary64:
		return tensor.SaveFormatBinary64, nil
	case SaveTensorFormatText:
		return tensor.SaveFormatText, nil
	default:
		return tensor.SaveFormatNone, demagerr.NewConfigError("demag.Config", "unsupported save_tensor_fmt %q", f)
	}
}

// Config gathers every `new(config)` knob of §6.
type Config struct {
	AsymptoticRadius float64          `yaml:"asymptotic_radius"`
	CacheSizeKB      int              `yaml:"cache_size_kb"`
	ZeroSelfDemag    bool             `yaml:"zero_self_demag"`
	DemagTensorError float64          `yaml:"demag_tensor_error"`
	AsymptoticOrder  int              `yaml:"asymptotic_order"`
	SaveTensorPath   string           `yaml:"save_tensor_path"`
	SaveTensorFmt    SaveTensorFormat `yaml:"save_tensor_fmt"`

	// NumThreads sizes the worker pool the engine's three per-step
	// stages and the one-shot tensor build launch (§5). Zero selects
	// runtime.NumCPU().
	NumThreads int `yaml:"num_threads"`
	// MinJobSize is the dispatcher's minimum contiguous job size
	// (§4.5); zero selects a small built-in default.
	MinJobSize int `yaml:"min_job_size"`
}

// DefaultConfig returns the documented defaults of §6.
func DefaultConfig() Config {
	return Config{
		AsymptoticRadius: 32,
		CacheSizeKB:      1024,
		ZeroSelfDemag:    false,
		DemagTensorError: 1e-12,
		AsymptoticOrder:  2,
		SaveTensorFmt:    SaveTensorFormatNone,
		NumThreads:       runtime.NumCPU(),
		MinJobSize:       64,
	}
}

// LoadConfig reads a YAML config file, starting from DefaultConfig and
// overriding whichever fields are present (§4.A of the expanded
// spec's ambient config-loading section).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, demagerr.NewIoError("demag.LoadConfig", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, demagerr.NewIoError("demag.LoadConfig", path, err)
	}
	return cfg, nil
}

func (c Config) tensorConfig(pool *workpool.Pool) tensor.Config {
	return tensor.Config{
		AsymptoticRadius: c.AsymptoticRadius,
		CacheSizeKB:      c.CacheSizeKB,
		ZeroSelfDemag:    c.ZeroSelfDemag,
		DemagTensorError: c.DemagTensorError,
		AsymptoticOrder:  c.AsymptoticOrder,
		Pool:             pool,
	}
}

func (c Config) pool() *workpool.Pool {
	n := c.NumThreads
	if n < 1 {
		n = runtime.NumCPU()
	}
	minJob := c.MinJobSize
	if minJob < 1 {
		minJob = 64
	}
	return workpool.NewPool(n, minJob)
}
