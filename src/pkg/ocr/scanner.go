package ocr

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"splitbill/src/pkg/preprocess"
	"splitbill/src/pkg/util"
)

// ProgressEvent is one entry in the ordered, one-way progress stream from a
// scan worker. No acknowledgment or backpressure: the consumer just reflects
// the latest percentage.
type ProgressEvent struct {
	Status  string `json:"status"`
	Percent int    `json:"percent"`
}

// ScanRequest describes one scan session.
type ScanRequest struct {
	ImagePath    string
	Languages    []string
	TessdataPath string

	// MaxDimension bounds the longer image side; 0 or less disables resizing.
	MaxDimension int

	// WorkDir receives the prepared image handed to the engine.
	WorkDir string

	// StageSink, when set, receives each intermediate preprocessing stage
	// ("normalized", "deskewed") so the caller can persist debug artifacts.
	// Called synchronously on the submitting goroutine, before the engine runs.
	StageSink func(stage string, img image.Image)
}

// Outcome is the terminal message of a scan: either a result plus its quality
// report, or exactly one error. A rejected quality report is a valid outcome,
// not an error.
type Outcome struct {
	Result Result
	Report Report
	Err    error
}

/*
Scanner runs OCR scans with at most one in-flight worker. Preprocessing
(resize, deskew, contrast) happens synchronously on the calling goroutine;
only the potentially multi-second engine call is offloaded. Submitting a new
scan cancels the previous worker and waits for it to wind down first, so two
runs never race on shared state.
*/
type Scanner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

/*
Scan prepares the image and launches the recognition worker. It returns the
progress stream and a single-message outcome channel; both are closed when
the session ends. Progress is clamped below 100 until the quality gate has
run, so a consumer never shows completion before the final validation step.
*/
func (s *Scanner) Scan(ctx context.Context, request ScanRequest) (<-chan ProgressEvent, <-chan Outcome) {
	progress := make(chan ProgressEvent, 16)
	outcome := make(chan Outcome, 1)

	workerCtx := s.replaceInFlight(ctx)

	emit := func(status string, percent int) {
		event := ProgressEvent{Status: status, Percent: util.Clamp(percent, 0, 99)}
		select {
		case progress <- event:
		default:
			// A slow consumer only loses intermediate ticks, never the
			// outcome message.
		}
	}

	fail := func(err error) {
		outcome <- Outcome{Err: err}
		close(progress)
		close(outcome)
		s.finish()
	}

	emit("start", 0)

	img, loadErr := preprocess.Load(request.ImagePath)
	if loadErr != nil {
		fail(loadErr)
		return progress, outcome
	}

	emit("resizing", 5)
	prepared := preprocess.Normalize(img, request.MaxDimension)
	if request.StageSink != nil {
		request.StageSink("normalized", prepared)
	}
	emit("resized", 15)

	emit("deskewing", 18)
	prepared = preprocess.Deskew(prepared)
	if request.StageSink != nil {
		request.StageSink("deskewed", prepared)
	}
	emit("deskewed", 22)

	emit("preprocessing", 25)
	prepared = preprocess.Enhance(prepared)
	emit("preprocessed", 32)

	workDir := request.WorkDir
	if workDir == "" {
		workDir = os.TempDir()
	}
	preparedPath := filepath.Join(workDir, "clean.png")
	if err := imaging.Save(prepared, preparedPath); err != nil {
		fail(&EngineError{Stage: "save prepared image", Err: err})
		return progress, outcome
	}

	go func() {
		defer close(progress)
		defer close(outcome)
		defer s.finish()

		emit("configuring", 45)
		if err := workerCtx.Err(); err != nil {
			outcome <- Outcome{Err: err}
			return
		}

		emit("recognizing", 50)
		result, engineErr := Recognize(preparedPath, request.Languages, request.TessdataPath)
		if engineErr != nil {
			outcome <- Outcome{Err: engineErr}
			return
		}

		// A cancellation that raced the engine call still wins: the caller
		// asked for this session's output to be discarded.
		if err := workerCtx.Err(); err != nil {
			tl.Log(tl.Info, palette.PurpleDim, "Discarding OCR result of a %s scan", "cancelled")
			outcome <- Outcome{Err: err}
			return
		}

		emit("validating", 95)
		report := Assess(result)

		outcome <- Outcome{Result: result, Report: report}
		// Terminal event may use the full range now that validation ran.
		select {
		case progress <- ProgressEvent{Status: "done", Percent: 100}:
		default:
		}
	}()

	return progress, outcome
}

/*
replaceInFlight cancels any in-flight worker, waits for it to terminate, and
registers the new session. Enforces the single in-flight scan invariant.
*/
func (s *Scanner) replaceInFlight(ctx context.Context) context.Context {
	s.mu.Lock()
	previousCancel := s.cancel
	previousDone := s.done
	s.mu.Unlock()

	if previousCancel != nil {
		previousCancel()
	}
	if previousDone != nil {
		<-previousDone
	}

	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	return workerCtx
}

func (s *Scanner) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
