package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"strconv"
	"strings"
	"time"

	"resume-booster/internal/extract"
	"resume-booster/internal/llm"
	"resume-booster/internal/shared/metrics"
	"resume-booster/internal/shared/storage/object"
	"resume-booster/internal/shared/telemetry"
	"resume-booster/internal/suggestions"
)

const (
	ContentTypePDF        = "application/pdf"
	DefaultMaxUploadBytes = 5 << 20
)

// Upload rejection reasons, also used as metric labels.
const (
	RejectMissingFile = "missing_file"
	RejectContentType = "content_type"
	RejectTooLarge    = "too_large"
)

// RejectionError is returned when an upload is refused before anything is stored.
type RejectionError struct {
	Reason  string
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func (e *RejectionError) Is(target error) bool { return target == ErrInvalidInput }

type Service struct {
	Repo           Repo
	Suggestions    suggestions.Repo
	Store          object.ObjectStore
	LLM            llm.Client
	Metrics        *metrics.Metrics
	MaxUploadBytes int64
}

func (s *Service) maxBytes() int64 {
	if s.MaxUploadBytes > 0 {
		return s.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}

// Validate checks an upload against the intake rules without side effects.
func (s *Service) Validate(up Upload) error {
	if len(up.Data) == 0 {
		return &RejectionError{Reason: RejectMissingFile, Message: "file is required"}
	}
	if !IsPDF(up.ContentType) {
		return &RejectionError{Reason: RejectContentType, Message: "only PDF files are allowed"}
	}
	if int64(len(up.Data)) > s.maxBytes() {
		return &RejectionError{Reason: RejectTooLarge, Message: fmt.Sprintf("file exceeds %d bytes", s.maxBytes())}
	}
	return nil
}

// IsPDF reports whether a declared content type is application/pdf, ignoring parameters.
func IsPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(contentType))
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, ContentTypePDF)
}

// Upload stores the file, records the resume and attaches the analysis
// suggestions. When analysis fails after the resume was recorded, the returned
// Resume is populated and the error is an *AnalysisError.
func (s *Service) Upload(ctx context.Context, userID int64, up Upload) (Resume, error) {
	if s == nil || s.Repo == nil || s.Store == nil || s.Suggestions == nil || s.LLM == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if err := s.Validate(up); err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			s.Metrics.RejectUpload(rej.Reason)
		}
		return Resume{}, err
	}

	obj, err := s.Store.Save(ctx, strconv.FormatInt(userID, 10), up.FileName, ContentTypePDF, bytes.NewReader(up.Data))
	if err != nil {
		return Resume{}, fmt.Errorf("store upload: %w", err)
	}

	resume, err := s.Repo.Create(ctx, NewResume{UserID: userID, FileURL: obj.URL})
	if err != nil {
		return Resume{}, fmt.Errorf("create resume: %w", err)
	}
	s.Metrics.UploadAccepted()
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":  resume.ID,
		"user_id":    userID,
		"size_bytes": len(up.Data),
		"object_key": obj.Key,
	})

	text, source, err := extract.Text(ctx, up.Data)
	if err != nil {
		return resume, &AnalysisError{ResumeID: resume.ID, Err: err}
	}

	start := time.Now()
	items, err := s.LLM.AnalyzeResume(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		s.Metrics.ObserveAnalysis(metrics.OutcomeFailure, elapsed)
		telemetry.Error("resume.analysis_failed", map[string]any{
			"resume_id":   resume.ID,
			"user_id":     userID,
			"text_source": string(source),
			"duration_ms": elapsed.Milliseconds(),
			"error":       err,
		})
		return resume, &AnalysisError{ResumeID: resume.ID, Err: err}
	}
	s.Metrics.ObserveAnalysis(metrics.OutcomeSuccess, elapsed)

	for i, item := range items {
		if _, err := s.Suggestions.Create(ctx, suggestions.NewSuggestion{
			ResumeID:    resume.ID,
			Category:    item.Category,
			Content:     item.Content,
			Improvement: item.Improvement,
		}); err != nil {
			s.Metrics.SuggestionsAdded(i)
			return resume, fmt.Errorf("create suggestion %d for resume %d: %w", i, resume.ID, err)
		}
	}
	s.Metrics.SuggestionsAdded(len(items))

	telemetry.Info("resume.analyzed", map[string]any{
		"resume_id":   resume.ID,
		"user_id":     userID,
		"text_source": string(source),
		"suggestions": len(items),
		"duration_ms": elapsed.Milliseconds(),
	})
	return resume, nil
}

// ListForUser returns ownerID's resumes. Callers may only list their own.
func (s *Service) ListForUser(ctx context.Context, callerID, ownerID int64) ([]Resume, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("resumes service not configured")
	}
	if callerID != ownerID {
		return nil, ErrForbidden
	}
	return s.Repo.ListByUser(ctx, ownerID)
}

// Get returns the resume when the caller owns it. Resumes of other users are
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, callerID, id int64) (Resume, error) {
	if s == nil || s.Repo == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if id <= 0 {
		return Resume{}, ErrNotFound
	}
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.UserID != callerID {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

// SuggestionsFor lists the suggestions of a resume the caller owns.
func (s *Service) SuggestionsFor(ctx context.Context, callerID, resumeID int64) ([]suggestions.Suggestion, error) {
	if s == nil || s.Suggestions == nil {
		return nil, errors.New("resumes service not configured")
	}
	if _, err := s.Get(ctx, callerID, resumeID); err != nil {
		return nil, err
	}
	return s.Suggestions.ListByResume(ctx, resumeID)
}
