// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Format      string        `flag:"format" desc:"output format"`
		Digest      bool          `flag:"digest,d" desc:"print digest"`
		Concurrency int           `flag:"concurrency" desc:"parallel fetches"`
		Timeout     time.Duration `flag:"timeout" desc:"request timeout"`
		Targets     []string      `flag:"targets" desc:"target list"`
		Untagged    string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--format", "dot",
		"-d",
		"--concurrency", "16",
		"--timeout", "30s",
		"--targets", "acme/widgets,acme/gears",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "dot" {
		t.Errorf("Format = %q, want %q", p.Format, "dot")
	}
	if !p.Digest {
		t.Error("Digest = false, want true")
	}
	if p.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want 16", p.Concurrency)
	}
	if p.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", p.Timeout)
	}
	if len(p.Targets) != 2 || p.Targets[0] != "acme/widgets" || p.Targets[1] != "acme/gears" {
		t.Errorf("Targets = %v, want [acme/widgets acme/gears]", p.Targets)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format      string        `flag:"format" default:"json"`
		Concurrency int           `flag:"concurrency" default:"8"`
		Timeout     time.Duration `flag:"timeout" default:"10s"`
		Digest      bool          `flag:"digest" default:"true"`
		Targets     []string      `flag:"targets" default:"x,y"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "json" {
		t.Errorf("Format = %q, want json", p.Format)
	}
	if p.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", p.Concurrency)
	}
	if p.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", p.Timeout)
	}
	if !p.Digest {
		t.Error("Digest = false, want true")
	}
	if len(p.Targets) != 2 || p.Targets[0] != "x" || p.Targets[1] != "y" {
		t.Errorf("Targets = %v, want [x y]", p.Targets)
	}
}

func TestBindFlags_DefaultsOverriddenByCLI(t *testing.T) {
	type params struct {
		Format string `flag:"format" default:"json"`
		Limit  int    `flag:"concurrency" default:"8"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--concurrency", "2"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "json" {
		t.Errorf("Format = %q, want json", p.Format)
	}
	if p.Limit != 2 {
		t.Errorf("Limit = %d, want 2", p.Limit)
	}
}

func TestBindFlags_EmbeddedStruct(t *testing.T) {
	type connection struct {
		Token string `flag:"token" desc:"API token"`
	}
	type params struct {
		connection
		Format string `flag:"format"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--token", "ghp_x", "--format", "text"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Token != "ghp_x" {
		t.Errorf("Token = %q, want ghp_x", p.Token)
	}
	if p.Format != "text" {
		t.Errorf("Format = %q, want text", p.Format)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{
			name:   "not a pointer",
			params: struct{}{},
			want:   "pointer to a struct",
		},
		{
			name:   "pointer to non-struct",
			params: new(int),
			want:   "pointer to a struct",
		},
		{
			name: "unsupported type",
			params: &struct {
				Rate float32 `flag:"rate"`
			}{},
			want: "unsupported type",
		},
		{
			name: "bad int default",
			params: &struct {
				Count int `flag:"count" default:"many"`
			}{},
			want: "default for --count",
		},
		{
			name: "bad duration default",
			params: &struct {
				Timeout time.Duration `flag:"timeout" default:"soon"`
			}{},
			want: "default for --timeout",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			err := BindFlags(test.params, flagSet)
			if err == nil {
				t.Fatal("BindFlags() = nil, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), test.want)
			}
		})
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic on invalid params")
		}
	}()
	FlagsFromParams("bad", 42)
}

func TestParseFlagTag(t *testing.T) {
	tests := []struct {
		tag           string
		wantName      string
		wantShorthand string
	}{
		{"format", "format", ""},
		{"digest,d", "digest", "d"},
	}
	for _, test := range tests {
		name, shorthand := parseFlagTag(test.tag)
		if name != test.wantName || shorthand != test.wantShorthand {
			t.Errorf("parseFlagTag(%q) = (%q, %q), want (%q, %q)",
				test.tag, name, shorthand, test.wantName, test.wantShorthand)
		}
	}
}
