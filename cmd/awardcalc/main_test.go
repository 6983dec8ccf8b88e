package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Simplici0/awardcost/internal/award"
)

func TestParseHours(t *testing.T) {
	got, err := parseHours("base=30, saturday=4.5,base=2")
	if err != nil {
		t.Fatalf("parseHours: %v", err)
	}
	if got[award.ConditionBase].String() != "32" || got[award.ConditionSaturday].String() != "4.5" {
		t.Fatalf("unexpected hours: %v", got)
	}

	for _, raw := range []string{"", "base", "midnight=2", "base=two"} {
		if _, err := parseHours(raw); err == nil {
			t.Fatalf("parseHours(%q) expected error", raw)
		}
	}
}

func TestJobCommandPrintsTotal(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"job", "--type", "full_time", "--level", "1", "--hours", "base=38"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "$1,177.80") {
		t.Fatalf("expected total price in output:\n%s", out.String())
	}
}

func TestRatesCommandRejectsContract(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"rates", "--type", "contract"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for contract employment type")
	}
}

func TestRatesCommandRejectsZeroMultiplier(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"rates", "--type", "full_time", "--rate-multiplier", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for zero rate multiplier, output:\n%s", out.String())
	}
}

func TestTypeUsageListsCoveredTypes(t *testing.T) {
	got := typeUsage()
	if got != "employment type (full_time, part_time, casual)" {
		t.Fatalf("typeUsage() = %q", got)
	}
}
