package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalaudit "cna/internal/audit"
	"cna/internal/workforce/models"
	"cna/internal/workforce/normalize"
	"cna/internal/workforce/ports"
	"cna/internal/workforce/store/dataset"
	dErrors "cna/pkg/domain-errors"
	"cna/pkg/platform/audit"
)

func testImportRequest() ImportRequest {
	return ImportRequest{
		Label: "2025 CNA Round",
		Establishment: []normalize.RawEstablishmentRow{
			{PositionNumber: "P-001", Grade: "16", Division: "Policy", Occupant: "A. Wari", Status: "Active", Gen: "M"},
			{PositionNumber: "P-002", Grade: "10", Division: "Policy", Occupant: "", Status: ""},
		},
		Officers: []normalize.RawOfficerRow{
			{
				Name: "A. Wari", Division: "Policy", PositionNumber: "P-001",
				Grade: "16", Gender: "Male", Age: "45", SPARating: "4",
				JobQualification: "Bachelor Degree",
				CapabilityRatings: []normalize.RawRating{
					{QuestionCode: "A1", CurrentScore: "8"},
				},
			},
			// Duplicate submission, dropped at the normalize boundary.
			{Name: "a. wari", Division: "policy"},
		},
	}
}

func newTestService(t *testing.T, opts ...Option) (*Service, *internalaudit.MemorySink) {
	t.Helper()
	sink := internalaudit.NewMemorySink()
	opts = append(opts, WithAuditPublisher(sink))
	svc, err := New(dataset.NewInMemory(), opts...)
	require.NoError(t, err)
	return svc, sink
}

func TestNewRequiresDatasetStore(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestImportAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(t)

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.DatasetID)
	assert.Equal(t, 2, result.PositionCount)
	assert.Equal(t, 1, result.OfficerCount)
	assert.Equal(t, 1, result.DuplicateCount)
	assert.Equal(t, 2, result.TotalPositions)
	assert.Equal(t, 1, result.CNAParticipants)

	snapshot, err := svc.Summary(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalPositions)
	assert.Equal(t, 1, snapshot.OnStrength)
	assert.Equal(t, 1, snapshot.VacantPositions)
	assert.Equal(t, 2, snapshot.TotalResponses)
	assert.InDelta(t, 1.0, snapshot.ParticipationRate, 1e-9)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventDatasetImported), events[0].Action)
	assert.Equal(t, result.DatasetID, events[0].DatasetID)
	assert.Equal(t, "2", events[0].Details["positions"])
	assert.Equal(t, string(audit.EventSnapshotComputed), events[1].Action)
	assert.Equal(t, audit.CategoryOperations, events[1].Category)
	assert.Equal(t, result.DatasetID, events[1].DatasetID)
}

func TestImportRejectsEmptyDataset(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Import(context.Background(), ImportRequest{Label: "empty"})
	assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))
}

func TestImportRawResponseCountOverride(t *testing.T) {
	svc, _ := newTestService(t)

	req := testImportRequest()
	req.RawResponseCount = 9
	result, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8, result.DuplicateCount)

	snapshot, err := svc.Summary(context.Background(), result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, 9, snapshot.TotalResponses)
}

func TestSummaryUnknownDataset(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Summary(context.Background(), "missing")
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestSegmentation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	grid, err := svc.Segmentation(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, 1, grid.TotalOfficers)
	assert.Len(t, grid.Counts, 9)
}

func TestSnapshotsAgreeWithSingleViews(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	aggregated, grid, err := svc.Snapshots(ctx, result.DatasetID)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, summary, aggregated)

	single, err := svc.Segmentation(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, single, grid)
}

func TestListDatasets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	list, err := svc.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.DatasetID, list[0].ID)
	assert.Equal(t, "2025 CNA Round", list[0].Label)
}

func TestDeleteDataset(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(t)

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDataset(ctx, result.DatasetID))

	_, err = svc.Summary(ctx, result.DatasetID)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))

	err = svc.DeleteDataset(ctx, result.DatasetID)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, string(audit.EventDatasetDeleted), events[1].Action)
	assert.Equal(t, audit.CategoryCompliance, events[1].Category)
}

// flakyCache fails every operation; summaries must still come back.
type flakyCache struct{}

func (flakyCache) Get(context.Context, string) (*models.AggregatedData, error) {
	return nil, errors.New("cache down")
}
func (flakyCache) Set(context.Context, string, *models.AggregatedData) error {
	return errors.New("cache down")
}
func (flakyCache) Invalidate(context.Context, string) error {
	return errors.New("cache down")
}

func TestSummarySurvivesBrokenCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, WithSnapshotCache(flakyCache{}))

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	snapshot, err := svc.Summary(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalPositions)

	require.NoError(t, svc.DeleteDataset(ctx, result.DatasetID))
}

// staleCache returns a fixed snapshot regardless of dataset.
type staleCache struct {
	snapshot *models.AggregatedData
}

func (c staleCache) Get(context.Context, string) (*models.AggregatedData, error) {
	return c.snapshot, nil
}
func (c staleCache) Set(context.Context, string, *models.AggregatedData) error { return nil }
func (c staleCache) Invalidate(context.Context, string) error                  { return nil }

func TestSummaryPrefersCachedSnapshot(t *testing.T) {
	ctx := context.Background()
	cached := &models.AggregatedData{TotalPositions: 999}
	svc, sink := newTestService(t, WithSnapshotCache(staleCache{snapshot: cached}))

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	snapshot, err := svc.Summary(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, 999, snapshot.TotalPositions)

	// A cache hit serves the stored snapshot without a recomputation event.
	for _, event := range sink.Events() {
		assert.NotEqual(t, string(audit.EventSnapshotComputed), event.Action)
	}
}

type fakeGenerator struct {
	narrative *ports.Narrative
	err       error
	lastReq   ports.NarrativeRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req ports.NarrativeRequest) (*ports.Narrative, error) {
	g.lastReq = req
	return g.narrative, g.err
}

func TestGenerateNarrative(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{narrative: &ports.Narrative{Headline: "Vacancies concentrated in field divisions"}}
	svc, sink := newTestService(t, WithNarrativeGenerator(gen))

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	narrative, err := svc.GenerateNarrative(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Equal(t, "Vacancies concentrated in field divisions", narrative.Headline)

	assert.Equal(t, "2025 CNA Round", gen.lastReq.DatasetLabel)
	require.NotNil(t, gen.lastReq.Aggregated)
	require.NotNil(t, gen.lastReq.Grid)
	assert.Equal(t, 2, gen.lastReq.Aggregated.TotalPositions)

	events := sink.Events()
	assert.Equal(t, string(audit.EventNarrativeGenerated), events[len(events)-1].Action)
}

func TestGenerateNarrativeFailureIsUnavailable(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{err: errors.New("model timeout")}
	svc, sink := newTestService(t, WithNarrativeGenerator(gen))

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	_, err = svc.GenerateNarrative(ctx, result.DatasetID)
	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))

	events := sink.Events()
	assert.Equal(t, string(audit.EventNarrativeFailed), events[len(events)-1].Action)
}

func TestGenerateNarrativeWithoutGenerator(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GenerateNarrative(context.Background(), "any")
	assert.Equal(t, dErrors.CodeUnavailable, dErrors.CodeOf(err))
}

func TestReportOmitsNarrative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	result, err := svc.Import(ctx, testImportRequest())
	require.NoError(t, err)

	doc, err := svc.Report(ctx, result.DatasetID)
	require.NoError(t, err)
	assert.Contains(t, doc.Title, "2025 CNA Round")
	for _, section := range doc.Sections {
		assert.NotEqual(t, "Executive Narrative", section.Title)
	}
}
