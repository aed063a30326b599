package resumes

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("resume not found")
	ErrForbidden      = errors.New("resume access forbidden")
	ErrInvalidInput   = errors.New("invalid resume input")
	ErrAnalysisFailed = errors.New("resume analysis failed")
)

// AnalysisError reports an analysis failure for a resume that was already stored.
type AnalysisError struct {
	ResumeID int64
	Err      error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze resume %d: %v", e.ResumeID, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

func (e *AnalysisError) Is(target error) bool { return target == ErrAnalysisFailed }
