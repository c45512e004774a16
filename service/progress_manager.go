package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// DefaultProgressDescription labels the progress bar
const DefaultProgressDescription = "Processing expressions"

// ProgressManagerImpl implements the ProgressManager interface. Update may
// be called from several goroutines; the bar only moves forward and ignores
// updates that arrive after Complete or Close.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
	description string
	maxValue    int
	processed   int
	completed   bool
}

// NewProgressManager creates a progress manager drawing on stderr when it
// is a terminal
func NewProgressManager() *ProgressManagerImpl {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: IsInteractiveEnvironment(),
		description: DefaultProgressDescription,
	}
}

// IsInteractiveEnvironment reports whether stderr is a terminal
func IsInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// IsTerminalWriter reports whether w is a terminal file
func IsTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Initialize sets the total number of expressions
func (pm *ProgressManagerImpl) Initialize(maxValue int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.maxValue = maxValue
	pm.processed = 0
	pm.completed = false
}

// Start creates the bar when the writer is interactive
func (pm *ProgressManagerImpl) Start() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.interactive && !pm.completed && pm.progressBar == nil && pm.maxValue > 0 {
		pm.progressBar = pm.createProgressBar(pm.maxValue)
	}
}

// Complete finishes the bar
func (pm *ProgressManagerImpl) Complete(success bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.completed = true
	if pm.progressBar == nil {
		return
	}
	if success {
		_ = pm.progressBar.Finish()
	} else {
		_ = pm.progressBar.Exit()
	}
	pm.progressBar = nil
}

// Update moves the bar to processed out of total
func (pm *ProgressManagerImpl) Update(processed, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.completed || processed <= pm.processed {
		return
	}
	pm.processed = processed

	if pm.progressBar == nil && pm.interactive && total > 0 {
		pm.progressBar = pm.createProgressBar(total)
	}
	if pm.progressBar != nil {
		_ = pm.progressBar.Set(processed)
	}
}

// SetWriter sets the output writer and re-checks interactivity
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	pm.interactive = IsTerminalWriter(writer)
}

// IsInteractive returns true if progress bars should be shown
func (pm *ProgressManagerImpl) IsInteractive() bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	return pm.interactive
}

// Close finishes any bar still running
func (pm *ProgressManagerImpl) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.completed = true
	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
}

func (pm *ProgressManagerImpl) createProgressBar(max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(pm.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("expr"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

var _ domain.ProgressManager = (*ProgressManagerImpl)(nil)
