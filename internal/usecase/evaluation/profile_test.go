package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"tracematrix/internal/domain/matrix"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scoring.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfileOverrides(t *testing.T) {
	path := writeProfile(t, `
[thresholds]
green = 4.5
amber = 2.5

[consensus]
selection = "mean"

[rules]
enabled = ["risk_area", "category_leader"]
`)

	profile, err := LoadProfile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Thresholds.Green != 4.5 || profile.Thresholds.Amber != 2.5 {
		t.Fatalf("thresholds = %+v", profile.Thresholds)
	}
	if profile.Consensus != matrix.SelectMean {
		t.Fatalf("consensus = %s", profile.Consensus)
	}

	rules := profile.rules()
	if len(rules) != 2 {
		t.Fatalf("rules len = %d", len(rules))
	}
	// Chain order is preserved regardless of the enabled list order.
	if rules[0].Name() != "category_leader" || rules[1].Name() != "risk_area" {
		t.Fatalf("rule order = %s, %s", rules[0].Name(), rules[1].Name())
	}
}

func TestLoadProfileDefaults(t *testing.T) {
	path := writeProfile(t, "")

	profile, err := LoadProfile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile.Thresholds != matrix.DefaultThresholds() {
		t.Fatalf("thresholds = %+v", profile.Thresholds)
	}
	if profile.Consensus != matrix.SelectFirst {
		t.Fatalf("consensus = %s", profile.Consensus)
	}
	if len(profile.rules()) != 5 {
		t.Fatalf("rules len = %d", len(profile.rules()))
	}
}

func TestLoadProfileRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"inverted thresholds", "[thresholds]\ngreen = 2.0\namber = 3.0\n"},
		{"unknown selection", "[consensus]\nselection = \"median\"\n"},
		{"unknown rule", "[rules]\nenabled = [\"sentiment\"]\n"},
		{"unknown tie break", "[leader]\ntie_break = \"random\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadProfile(writeProfile(t, tc.content), DefaultConfig()); err == nil {
				t.Fatalf("LoadProfile() expected error")
			}
		})
	}
}

func TestNilProfileUsesFullRuleChain(t *testing.T) {
	var profile *Profile
	if len(profile.rules()) != 5 {
		t.Fatalf("nil profile rules len = %d", len(profile.rules()))
	}
}
