package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/invites/pkg/config"
	"github.com/decker502/invites/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ResourceManager is responsible for loading and caching the external assets
// (cue sound, ambient music and the background icon).
//
// Asset paths in the sequence config are relative ("sounds/bomb.wav"). They are
// resolved against the deployment base path first and then against the asset
// root on disk:
//
//	root + AssetPath(basePath, relative)
//	"assets" + "/invites/sounds/bomb.wav"
//
// This implementation is NOT thread-safe; all loading happens on the game loop.
type ResourceManager struct {
	root         string
	basePath     string
	audioContext *audio.Context

	imageCache map[string]*ebiten.Image  // resolved path -> Image
	audioCache map[string]*audio.Player // resolved path -> Player
}

// NewResourceManager creates a ResourceManager for the given asset location.
// audioContext may be nil in tools that never load audio.
func NewResourceManager(audioContext *audio.Context, assets config.AssetsConfig) *ResourceManager {
	return &ResourceManager{
		root:         assets.Root,
		basePath:     assets.BasePath,
		audioContext: audioContext,
		imageCache:   make(map[string]*ebiten.Image),
		audioCache:   make(map[string]*audio.Player),
	}
}

// ResolvePath returns the on-disk path for a relative asset path.
func (rm *ResourceManager) ResolvePath(path string) string {
	prefixed := utils.AssetPath(rm.basePath, path)
	return filepath.Join(rm.root, filepath.FromSlash(prefixed))
}

// LoadImage loads an image (PNG/JPEG) and caches it.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	fullPath := rm.ResolvePath(path)
	if cached, ok := rm.imageCache[fullPath]; ok {
		return cached, nil
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", fullPath, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", fullPath, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[fullPath] = ebitenImg
	return ebitenImg, nil
}

// LoadMusic loads an audio file wrapped in an infinite loop.
func (rm *ResourceManager) LoadMusic(path string) (*audio.Player, error) {
	return rm.loadAudio(path, true)
}

// LoadSoundEffect loads a one-shot audio file.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	return rm.loadAudio(path, false)
}

// audioStream is what every ebiten decoder returns.
type audioStream interface {
	io.ReadSeeker
	Length() int64
}

func (rm *ResourceManager) loadAudio(path string, loop bool) (*audio.Player, error) {
	fullPath := rm.ResolvePath(path)
	if cached, ok := rm.audioCache[fullPath]; ok {
		return cached, nil
	}

	// Read the entire file into memory so the stream can seek without keeping the file open
	audioData, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", fullPath, err)
	}

	ext := strings.ToLower(filepath.Ext(fullPath))
	if !isSupportedAudio(ext) {
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", fullPath)
	}

	stream, err := decodeAudio(ext, rm.audioContext.SampleRate(), bytes.NewReader(audioData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", fullPath, err)
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}

	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", fullPath, err)
	}

	rm.audioCache[fullPath] = player
	return player, nil
}

func isSupportedAudio(ext string) bool {
	switch ext {
	case ".wav", ".mp3", ".ogg":
		return true
	}
	return false
}

// decodeAudio decodes and resamples to the context sample rate.
func decodeAudio(ext string, sampleRate int, r *bytes.Reader) (audioStream, error) {
	switch ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	}
	return nil, fmt.Errorf("unsupported audio format: %s", ext)
}

// AudioSource adapts the manager to the track-returning interface used by AudioManager.
func (rm *ResourceManager) AudioSource() AudioSource {
	return resourceAudioSource{rm: rm}
}

type resourceAudioSource struct {
	rm *ResourceManager
}

func (s resourceAudioSource) LoadSoundEffect(path string) (AudioTrack, error) {
	player, err := s.rm.LoadSoundEffect(path)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (s resourceAudioSource) LoadMusic(path string) (AudioTrack, error) {
	player, err := s.rm.LoadMusic(path)
	if err != nil {
		return nil, err
	}
	return player, nil
}
