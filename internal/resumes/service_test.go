package resumes

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-booster/internal/llm"
	"resume-booster/internal/shared/metrics"
	"resume-booster/internal/shared/storage/object"
	"resume-booster/internal/shared/storage/object/inline"
	"resume-booster/internal/suggestions"
)

type stubLLM struct {
	items []llm.Suggestion
	err   error
	calls int
	text  string
}

func (s *stubLLM) AnalyzeResume(ctx context.Context, resumeText string) ([]llm.Suggestion, error) {
	s.calls++
	s.text = resumeText
	return s.items, s.err
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, owner, fileName, contentType string, r io.Reader) (object.Object, error) {
	return object.Object{}, errors.New("bucket unavailable")
}

type failingSuggestions struct{ suggestions.Repo }

func (failingSuggestions) Create(ctx context.Context, in suggestions.NewSuggestion) (suggestions.Suggestion, error) {
	return suggestions.Suggestion{}, errors.New("insert failed")
}

func newTestService(client llm.Client) *Service {
	return &Service{
		Repo:        NewMemoryRepo(),
		Suggestions: suggestions.NewMemoryRepo(),
		Store:       inline.New(),
		LLM:         client,
		Metrics:     metrics.New(),
	}
}

func pdfUpload(body string) Upload {
	return Upload{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte(body)}
}

func TestUploadStoresResumeAndSuggestions(t *testing.T) {
	client := &stubLLM{items: []llm.Suggestion{
		{Category: "Skills", Content: "Go", Improvement: "Mention Go 1.22 generics"},
		{Category: "Summary", Content: "Engineer", Improvement: "Quantify impact"},
		{Category: "Format", Content: "Two columns", Improvement: "Use a single column"},
	}}
	svc := newTestService(client)
	ctx := context.Background()

	resume, err := svc.Upload(ctx, 1, pdfUpload("Jane Doe resume"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resume.ID)
	assert.Equal(t, int64(1), resume.UserID)
	assert.True(t, strings.HasPrefix(resume.FileURL, "data:application/pdf;base64,"))
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Jane Doe resume", client.text)

	items, err := svc.SuggestionsFor(ctx, 1, resume.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, resume.ID, items[0].ResumeID)
	assert.Equal(t, "Skills", items[0].Category)
	assert.Equal(t, "Quantify impact", items[1].Improvement)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.ResumesUploaded))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.Metrics.SuggestionsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestUploadRejectsBeforeStoring(t *testing.T) {
	tests := []struct {
		name   string
		upload Upload
		reason string
	}{
		{name: "empty", upload: Upload{FileName: "cv.pdf", ContentType: "application/pdf"}, reason: RejectMissingFile},
		{name: "word document", upload: Upload{FileName: "cv.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Data: []byte("x")}, reason: RejectContentType},
		{name: "no content type", upload: Upload{FileName: "cv.pdf", Data: []byte("x")}, reason: RejectContentType},
		{name: "too large", upload: pdfUpload(strings.Repeat("a", 11)), reason: RejectTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubLLM{}
			svc := newTestService(client)
			svc.MaxUploadBytes = 10

			_, err := svc.Upload(context.Background(), 1, tt.upload)
			require.ErrorIs(t, err, ErrInvalidInput)
			var rej *RejectionError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.reason, rej.Reason)

			list, err := svc.Repo.ListByUser(context.Background(), 1)
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.Zero(t, client.calls)
			assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.UploadsRejected.WithLabelValues(tt.reason)))
		})
	}
}

func TestUploadAnalysisFailureKeepsResume(t *testing.T) {
	svc := newTestService(&stubLLM{err: llm.ErrMalformedResponse})
	ctx := context.Background()

	resume, err := svc.Upload(ctx, 1, pdfUpload("text"))
	require.ErrorIs(t, err, ErrAnalysisFailed)
	require.ErrorIs(t, err, llm.ErrMalformedResponse)
	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, int64(1), analysisErr.ResumeID)
	assert.Equal(t, int64(1), resume.ID)

	stored, err := svc.Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, resume, stored)

	items, err := svc.SuggestionsFor(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeFailure)))
}

func TestUploadStoreFailureCreatesNothing(t *testing.T) {
	svc := newTestService(&stubLLM{})
	svc.Store = failingStore{}

	_, err := svc.Upload(context.Background(), 1, pdfUpload("text"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAnalysisFailed)

	list, err := svc.Repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUploadSuggestionFailureIsInternal(t *testing.T) {
	svc := newTestService(&stubLLM{items: []llm.Suggestion{{Category: "Skills"}}})
	svc.Suggestions = failingSuggestions{Repo: suggestions.NewMemoryRepo()}

	resume, err := svc.Upload(context.Background(), 1, pdfUpload("text"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAnalysisFailed)
	assert.Equal(t, int64(1), resume.ID)
}

func TestOwnershipRules(t *testing.T) {
	svc := newTestService(&stubLLM{})
	ctx := context.Background()
	resume, err := svc.Upload(ctx, 1, pdfUpload("text"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.SuggestionsFor(ctx, 2, resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ListForUser(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	mine, err := svc.ListForUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("application/pdf"))
	assert.True(t, IsPDF("Application/PDF; name=cv.pdf"))
	assert.False(t, IsPDF("text/plain"))
	assert.False(t, IsPDF(""))
}
