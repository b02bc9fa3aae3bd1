// internal/core/usecases/stage_test.go
package usecases

import (
	"testing"

	"byakugan/internal/adapters/store"
	"byakugan/internal/core/domain"
	"byakugan/internal/platform/logx"
	"byakugan/internal/testutil"
)

func TestPlan_FromStore(t *testing.T) {
	fs := store.New(t.TempDir(), logx.NewSilent())
	testutil.AssertNoError(t, fs.SaveHosts("example.com", domain.ArtifactSubdomains, []string{"a.example.com"}), "save")
	// live.txt vacío no cuenta como existente
	testutil.AssertNoError(t, fs.SaveHosts("example.com", domain.ArtifactLive, nil), "save empty")

	plan := Plan(fs, "example.com")
	testutil.AssertEqual(t, plan.State(domain.StageEnumerate), domain.StateLoaded, "subdomains loaded")
	testutil.AssertEqual(t, plan.State(domain.StageProbe), domain.StatePending, "empty live is pending")
	testutil.AssertEqual(t, plan.State(domain.StageScreenshot), domain.StatePending, "no screenshots")
	testutil.AssertEqual(t, plan.State(domain.StageAnalyze), domain.StatePending, "no analysis")
	testutil.AssertFalse(t, plan.AllLoaded(), "partial resume")
}

func TestStagePlan_Transitions(t *testing.T) {
	plan := &StagePlan{states: map[domain.Stage]domain.StageState{
		domain.StageEnumerate: domain.StateLoaded,
		domain.StageProbe:     domain.StatePending,
	}}

	plan.Demote(domain.StageProbe)
	testutil.AssertEqual(t, plan.State(domain.StageProbe), domain.StatePending, "demote only affects loaded")

	plan.Demote(domain.StageEnumerate)
	testutil.AssertEqual(t, plan.State(domain.StageEnumerate), domain.StatePending, "loaded demoted")

	plan.Complete(domain.StageEnumerate)
	testutil.AssertEqual(t, plan.State(domain.StageEnumerate), domain.StateCompleted, "completed")
	testutil.AssertFalse(t, plan.Loaded(domain.StageEnumerate), "completed is not loaded")
}

func TestStageNumber(t *testing.T) {
	testutil.AssertEqual(t, stageNumber(domain.StageEnumerate), 1, "enumerate")
	testutil.AssertEqual(t, stageNumber(domain.StageAnalyze), 4, "analyze")
	testutil.AssertEqual(t, stageNumber(domain.Stage("bogus")), 0, "unknown")
}
