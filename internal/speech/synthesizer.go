// Package speech renders study text as audio. Playback through Speaker.SpeakAsync
// is fire-and-forget: callers get no result, no ordering between requests, and
// no guarantee that playback finishes before the process exits.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/neurolearn/backend/internal/models"
)

// Synthesizer is the speech engine behind Speaker.
type Synthesizer interface {
	// Synthesize returns WAV audio for text.
	Synthesize(ctx context.Context, text string) ([]byte, error)
	// Speak plays text on the host's audio device and returns when done.
	Speak(ctx context.Context, text string) error
}

// CLISynthesizer shells out to an espeak-ng compatible command.
type CLISynthesizer struct {
	command string
	rate    int
}

func NewCLISynthesizer(command string, rate int) *CLISynthesizer {
	return &CLISynthesizer{command: command, rate: rate}
}

func (c *CLISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	stdout, err := c.run(ctx, "--stdout", text)
	if err != nil {
		return nil, err
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%w: %s produced no audio", models.ErrServiceUnavailable, c.command)
	}
	return stdout.Bytes(), nil
}

func (c *CLISynthesizer) Speak(ctx context.Context, text string) error {
	_, err := c.run(ctx, "", text)
	return err
}

func (c *CLISynthesizer) run(ctx context.Context, flag, text string) (*bytes.Buffer, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	args := []string{"-s", strconv.Itoa(c.rate)}
	if flag != "" {
		args = append(args, flag)
	}
	// "--" keeps text starting with '-' from being read as a flag.
	args = append(args, "--", text)

	cmd := exec.CommandContext(ctx, c.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not installed", models.ErrConfigurationMissing, c.command)
		}
		return nil, fmt.Errorf("%w: %s: %v\nstderr: %s", models.ErrServiceUnavailable, c.command, err, strings.TrimSpace(stderr.String()))
	}
	return &stdout, nil
}
