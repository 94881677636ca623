package speech

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/neurolearn/backend/internal/models"
)

var summaryIntros = map[models.SummaryMode]string{
	models.SummaryBasic:  "Here's your basic summary: ",
	models.SummaryStory:  "Let me tell you this as a story: ",
	models.SummaryVisual: "Here's your visual summary: ",
}

var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,128}$`)

// Speaker paces speech for learners: sentence pauses when speaking aloud,
// and files under a single audio directory.
type Speaker struct {
	synth    Synthesizer
	pause    time.Duration
	audioDir string
	pool     *Pool
	now      func() time.Time
}

func NewSpeaker(synth Synthesizer, pause time.Duration, audioDir string, pool *Pool) *Speaker {
	return &Speaker{synth: synth, pause: pause, audioDir: audioDir, pool: pool, now: time.Now}
}

// ── Playback ────────────────────────────────────────────

// SpeakWithPauses speaks text one sentence at a time with a pause after
// each, or in one go when pauseSentences is false.
func (s *Speaker) SpeakWithPauses(ctx context.Context, text string, pauseSentences bool) error {
	if !pauseSentences {
		return s.synth.Speak(ctx, text)
	}

	for _, sentence := range Sentences(text) {
		if err := s.synth.Speak(ctx, sentence); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pause):
		}
	}
	return nil
}

// SpeakAsync queues text for playback and returns immediately. Failures are
// only logged.
func (s *Speaker) SpeakAsync(text string, pauseSentences bool) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: nothing to speak", models.ErrInvalidInput)
	}
	s.pool.Submit(func(ctx context.Context) {
		if err := s.SpeakWithPauses(ctx, text, pauseSentences); err != nil {
			log.Printf("[speech] WARNING: playback failed: %v", err)
		}
	})
	return nil
}

// Sentences splits text on '.' and drops empty pieces.
func Sentences(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ── Audio Files ─────────────────────────────────────────

// CreateAudioFile synthesizes text into audioDir/filename. An empty filename
// becomes audio_<unix seconds>.wav.
func (s *Speaker) CreateAudioFile(ctx context.Context, text, filename string) (*models.AudioResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: nothing to synthesize", models.ErrInvalidInput)
	}
	if filename == "" {
		filename = fmt.Sprintf("audio_%d.wav", s.now().Unix())
	}
	if !filenamePattern.MatchString(filename) || strings.HasPrefix(filename, ".") {
		return nil, fmt.Errorf("%w: invalid audio filename %q", models.ErrInvalidInput, filename)
	}

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	path := filepath.Join(s.audioDir, filename)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return nil, fmt.Errorf("write audio file: %w", err)
	}

	log.Printf("[speech] wrote %s (%d bytes)", path, len(audio))
	return &models.AudioResponse{Filename: filename, Path: path, Bytes: len(audio)}, nil
}

// CreateSummaryAudio renders the summary for mode with a spoken intro.
func (s *Speaker) CreateSummaryAudio(ctx context.Context, summaries map[models.SummaryMode]string, mode models.SummaryMode) (*models.AudioResponse, error) {
	summary, ok := summaries[mode]
	if !ok {
		return nil, fmt.Errorf("%w: no %q summary provided", models.ErrInvalidInput, mode)
	}
	return s.CreateAudioFile(ctx, summaryIntros[mode]+summary, fmt.Sprintf("summary_%s.wav", mode))
}
