package analysis

import "testing"

func TestBandEstimatorCreditGrowsWithRisk(t *testing.T) {
	est := BandEstimator{}

	cons := est.Estimate(Conservative, 15)
	mod := est.Estimate(Moderate, 15)
	agg := est.Estimate(Aggressive, 15)

	if !(agg.Credit.Low > mod.Credit.Low && mod.Credit.Low > cons.Credit.Low) {
		t.Errorf("credit low not increasing with risk: %v %v %v",
			cons.Credit.Low, mod.Credit.Low, agg.Credit.Low)
	}
	if !(agg.Credit.High > mod.Credit.High && mod.Credit.High > cons.Credit.High) {
		t.Errorf("credit high not increasing with risk: %v %v %v",
			cons.Credit.High, mod.Credit.High, agg.Credit.High)
	}
}

func TestBandEstimatorModerateBand(t *testing.T) {
	// Moderate keeps the original 0.18-0.25 factors of total width.
	m := BandEstimator{}.Estimate(Moderate, 15)

	if m.Credit.Low != 30*0.18 || m.Credit.High != 30*0.25 {
		t.Errorf("moderate credit: got %v-%v, want 5.4-7.5", m.Credit.Low, m.Credit.High)
	}
}

func TestBandEstimatorMaxLossComplement(t *testing.T) {
	for _, profile := range []RiskProfile{Conservative, Moderate, Aggressive} {
		m := BandEstimator{}.Estimate(profile, 15)

		if m.MaxLossPerSide.Low != 15-m.Credit.High/2 {
			t.Errorf("%s: max loss low %v, want wing minus half credit high", profile, m.MaxLossPerSide.Low)
		}
		if m.MaxLossPerSide.High != 15-m.Credit.Low/2 {
			t.Errorf("%s: max loss high %v, want wing minus half credit low", profile, m.MaxLossPerSide.High)
		}
		if m.MaxLossPerSide.Low >= float64(15) {
			t.Errorf("%s: max loss not below wing width", profile)
		}
	}
}

func TestBandEstimatorPOP(t *testing.T) {
	cases := map[RiskProfile]float64{
		Conservative: 70,
		Moderate:     65,
		Aggressive:   60,
	}
	for profile, want := range cases {
		if got := (BandEstimator{}).Estimate(profile, 15).ProbabilityOfProfit; got != want {
			t.Errorf("%s pop: got %v, want %v", profile, got, want)
		}
	}
}

func TestParseRiskProfile(t *testing.T) {
	if p, err := ParseRiskProfile("moderate"); err != nil || p != Moderate {
		t.Errorf("parse moderate: got %v, %v", p, err)
	}
	if _, err := ParseRiskProfile("reckless"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestParseSignMode(t *testing.T) {
	if m, err := ParseSignMode(""); err != nil || m != SignModeFlag {
		t.Errorf("empty sign mode: got %v, %v, want flag default", m, err)
	}
	if m, err := ParseSignMode("strict"); err != nil || m != SignModeStrict {
		t.Errorf("parse strict: got %v, %v", m, err)
	}
	if _, err := ParseSignMode("loose"); err == nil {
		t.Error("expected error for unknown sign mode")
	}
}
