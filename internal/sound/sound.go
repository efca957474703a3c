//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"
)

const sampleRate = beep.SampleRate(44100)

// Built-in tones used when a cue has no sound file.
var builtinTones = map[Cue][]float64{
	CuePlay:    {660},
	CueDuelWon: {523, 659},
	CueWar:     {196, 147, 196},
	CueVictory: {523, 659, 784, 1047},
	CueDraw:    {392, 392},
}

type SoundManager struct {
	mu      sync.RWMutex
	dir     string
	buffers map[Cue]*beep.Buffer
	enabled bool
}

// NewSoundManager creates a manager that loads cue files from dir.
// An empty dir uses the built-in tones only.
func NewSoundManager(dir string) *SoundManager {
	return &SoundManager{
		dir:     dir,
		buffers: make(map[Cue]*beep.Buffer),
	}
}

func (sm *SoundManager) Init() error {
	// Init speaker with smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	for cue, freqs := range builtinTones {
		buffer, err := toneBuffer(freqs)
		if err != nil {
			return err
		}
		sm.buffers[cue] = buffer
	}

	// Files override the built-in tones
	if err := sm.loadSoundFiles(); err != nil {
		return err
	}

	sm.enabled = true
	return nil
}

// toneBuffer renders a short sequence of sine notes.
func toneBuffer(freqs []float64) (*beep.Buffer, error) {
	buffer := beep.NewBuffer(standardFormat())
	for _, freq := range freqs {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", freq, err)
		}
		buffer.Append(beep.Take(sampleRate.N(90*time.Millisecond), tone))
	}
	return buffer, nil
}

func standardFormat() beep.Format {
	return beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   2,
	}
}

// loadSoundFiles loads <cue>.mp3 / <cue>.wav files from the sound directory
func (sm *SoundManager) loadSoundFiles() error {
	if sm.dir == "" {
		return nil
	}

	files, err := os.ReadDir(sm.dir)
	if err != nil {
		// It's okay if directory doesn't exist, just no custom sounds
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		cue := Cue(strings.TrimSuffix(name, filepath.Ext(name)))
		buffer, err := loadSoundFile(filepath.Join(sm.dir, name), ext)
		if err != nil {
			// Continue loading other files even if one fails
			log.Warn().Err(err).Str("file", name).Msg("skip sound file")
			continue
		}
		sm.buffers[cue] = buffer
	}

	return nil
}

// loadSoundFile decodes a single sound file into a buffer
func loadSoundFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	// Resample if necessary
	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(standardFormat())
	buffer.Append(resampled)
	return buffer, nil
}

// Play plays a cue; unknown cues and a disabled manager are silent.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.enabled {
		return
	}

	buffer, ok := sm.buffers[cue]
	if !ok {
		return
	}

	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.enabled {
		speaker.Clear()
	}
	sm.enabled = false
}
