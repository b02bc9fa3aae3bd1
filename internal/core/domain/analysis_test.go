// internal/core/domain/analysis_test.go
package domain

import (
	"encoding/json"
	"testing"

	"byakugan/internal/testutil"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNormalize_FillsDefaults(t *testing.T) {
	rec := Normalize("api.example.com", SourceOpenAI, &PartialAnalysis{})

	testutil.AssertEqual(t, rec.Subdomain, "api.example.com", "subdomain")
	testutil.AssertEqual(t, rec.Source, SourceOpenAI, "source")
	testutil.AssertEqual(t, rec.RiskLevel, RiskLow, "default risk")
	testutil.AssertFalse(t, rec.BugBountyPotential, "default bounty")
	testutil.AssertEqual(t, rec.Summary, DefaultSummary, "default summary")
	testutil.AssertNotNil(t, rec.TechStack, "tech_stack should be an empty list, not nil")
	testutil.AssertNotNil(t, rec.LikelyIssues, "likely_issues should be an empty list, not nil")
	testutil.AssertLen(t, rec.TechStack, 0, "tech_stack")
}

func TestNormalize_NilPartial(t *testing.T) {
	rec := Normalize("a.example.com", SourceGork, nil)
	testutil.AssertEqual(t, rec.RiskLevel, RiskLow, "risk")
	testutil.AssertEqual(t, rec.Summary, DefaultSummary, "summary")
}

func TestNormalize_KeepsProvidedFields(t *testing.T) {
	tech := []string{"nginx", "nginx", " php ", ""}
	issues := []string{"open redirect", " "}
	rec := Normalize("admin.example.com", SourceGork, &PartialAnalysis{
		TechStack:          &tech,
		LikelyIssues:       &issues,
		RiskLevel:          strPtr("HIGH"),
		BugBountyPotential: boolPtr(true),
		Summary:            strPtr("exposed panel"),
	})

	testutil.AssertStrings(t, rec.TechStack, []string{"nginx", "php"}, "tech_stack deduped")
	testutil.AssertStrings(t, rec.LikelyIssues, []string{"open redirect"}, "likely_issues")
	testutil.AssertEqual(t, rec.RiskLevel, RiskHigh, "risk is case-insensitive")
	testutil.AssertTrue(t, rec.BugBountyPotential, "bounty")
	testutil.AssertEqual(t, rec.Summary, "exposed panel", "summary")
	testutil.AssertTrue(t, rec.IsHighRisk(), "high risk")
}

func TestNormalize_UnknownRiskIsLow(t *testing.T) {
	rec := Normalize("x.example.com", SourceOpenAI, &PartialAnalysis{RiskLevel: strPtr("critical")})
	testutil.AssertEqual(t, rec.RiskLevel, RiskLow, "unknown risk level")
}

func TestNormalize_FromProviderJSON(t *testing.T) {
	var p PartialAnalysis
	err := json.Unmarshal([]byte(`{"tech_stack":["nginx"],"risk_level":"medium"}`), &p)
	testutil.AssertNoError(t, err, "unmarshal")

	rec := Normalize("x.example.com", SourceOpenAI, &p)
	testutil.AssertStrings(t, rec.TechStack, []string{"nginx"}, "tech_stack")
	testutil.AssertEqual(t, rec.RiskLevel, RiskMedium, "risk")
	testutil.AssertLen(t, rec.LikelyIssues, 0, "missing likely_issues")
	testutil.AssertEqual(t, rec.Summary, DefaultSummary, "missing summary")
}

func TestUnscoredRecord(t *testing.T) {
	rec := UnscoredRecord("dev.example.com")

	testutil.AssertEqual(t, rec.Source, SourceUnscored, "source")
	testutil.AssertEqual(t, rec.RiskLevel, RiskLow, "risk")
	testutil.AssertFalse(t, rec.BugBountyPotential, "bounty")
	testutil.AssertEqual(t, rec.Summary, UnscoredSummary, "summary")
}

func TestAnalysisRecord_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(UnscoredRecord("a.example.com"))
	testutil.AssertNoError(t, err, "marshal")

	for _, field := range []string{`"subdomain"`, `"tech_stack":[]`, `"likely_issues":[]`, `"risk_level":"low"`, `"bug_bounty_potential":false`, `"summary"`, `"source":"unscored"`} {
		testutil.AssertContains(t, string(data), field, "json output")
	}
}

func TestAnalysisReport_HighRisk(t *testing.T) {
	report := AnalysisReport{
		{Subdomain: "a", RiskLevel: RiskLow, Source: SourceGork},
		{Subdomain: "b", RiskLevel: RiskHigh, Source: SourceOpenAI},
		{Subdomain: "c", RiskLevel: RiskHigh, Source: SourceGork},
		{Subdomain: "d", RiskLevel: RiskMedium, Source: SourceUnscored},
	}

	high := report.HighRisk()
	testutil.AssertLen(t, high, 2, "high risk count")
	testutil.AssertEqual(t, high[0].Subdomain, "b", "order preserved")
	testutil.AssertEqual(t, high[1].Subdomain, "c", "order preserved")

	counts := report.CountBySource()
	testutil.AssertEqual(t, counts[SourceGork], 2, "gork count")
	testutil.AssertEqual(t, counts[SourceUnscored], 1, "unscored count")
}

func TestRiskFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{9, RiskHigh},
		{7.5, RiskHigh},
		{7, RiskMedium},
		{5, RiskMedium},
		{4, RiskLow},
		{0, RiskLow},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, RiskFromScore(tt.score), tt.want, "risk from score")
	}
}
