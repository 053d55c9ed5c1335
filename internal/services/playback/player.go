package playback

import (
	"log/slog"
	"net/url"
	"sync"

	"github.com/killallgit/moviepreview/internal/services/itunes"
	apperrors "github.com/killallgit/moviepreview/pkg/errors"
)

// MediaLauncher opens a playable URL somewhere the user can watch it
type MediaLauncher interface {
	Launch(url string) (string, error)
}

// Player tracks playback of one movie preview at a time.
// It is safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	launcher MediaLauncher
	autoplay bool
	logger   *slog.Logger

	current  *itunes.MovieRecord
	rate     float64
	launched bool
	via      string
}

// NewPlayer creates a Player. With autoplay, Load starts playback right away.
func NewPlayer(launcher MediaLauncher, autoplay bool, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		launcher: launcher,
		autoplay: autoplay,
		logger:   logger.With("component", "player"),
	}
}

// Load replaces the current item with record's preview
func (p *Player) Load(record itunes.MovieRecord) error {
	if err := validatePreviewURL(record.PreviewURL); err != nil {
		return err
	}

	p.mu.Lock()
	p.resetLocked()
	rec := record
	p.current = &rec
	p.mu.Unlock()

	p.logger.Debug("loaded preview", "title", record.Title, "url", record.PreviewURL)

	if p.autoplay {
		return p.Play()
	}
	return nil
}

// Play starts or resumes playback. The external player is launched on the
// first Play after a Load.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return apperrors.New(apperrors.ErrCodeValidation, "no preview loaded")
	}

	if !p.launched {
		via, err := p.launcher.Launch(p.current.PreviewURL)
		if err != nil {
			return err
		}
		p.launched = true
		p.via = via
	}

	p.rate = 1
	return nil
}

// Pause stops playback without dropping the current item
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rate = 0
}

// Toggle pauses a playing item or plays a paused one
func (p *Player) Toggle() error {
	if p.IsPlaying() {
		p.Pause()
		return nil
	}
	return p.Play()
}

// Reset pauses and clears the current item
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Player) resetLocked() {
	p.rate = 0
	p.current = nil
	p.launched = false
	p.via = ""
}

// IsPlaying reports whether an item is loaded and advancing
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.rate != 0
}

// Current returns the loaded record, if any
func (p *Player) Current() (itunes.MovieRecord, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return itunes.MovieRecord{}, false
	}
	return *p.current, true
}

// LaunchedWith names the external player used for the current item
func (p *Player) LaunchedWith() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.via
}

func validatePreviewURL(raw string) error {
	if raw == "" {
		return apperrors.ValidationError("previewUrl", "must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return apperrors.ValidationError("previewUrl", err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.ValidationError("previewUrl", "must be an absolute http(s) URL")
	}
	return nil
}
