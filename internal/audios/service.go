package audios

import (
	"context"
	"errors"
	"time"

	"audiofields-backend/internal/shared/metrics"
	"audiofields-backend/internal/shared/telemetry"
	"audiofields-backend/internal/shared/util"
	"audiofields-backend/internal/speech"
)

// Service transcribes audio uploads, reusing stored transcriptions by filename.
type Service struct {
	Speech speech.Recognizer
	Repo   Repo
	Now    func() time.Time
}

func NewService(recognizer speech.Recognizer, repo Repo) *Service {
	return &Service{
		Speech: recognizer,
		Repo:   repo,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Transcribe returns the transcription for filename. A stored transcription
// is returned without calling the speech backend, even if audio differs from
// what was transcribed before. ok is false when nothing was recognized.
func (s *Service) Transcribe(ctx context.Context, filename string, audio []byte) (string, bool, error) {
	stored, err := s.Repo.FindByFilename(ctx, filename)
	switch {
	case err == nil && stored.Transcription != "":
		metrics.IncTranscription(true)
		telemetry.Info("audios.transcription.reused", map[string]any{
			"filename": stored.Filename,
		})
		if stored.ContentSHA256 != "" && stored.ContentSHA256 != util.ContentDigest(audio) {
			telemetry.Warn("audios.transcription.stale", map[string]any{
				"filename":      stored.Filename,
				"stored_sha256": stored.ContentSHA256,
			})
		}
		return stored.Transcription, true, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return "", false, err
	}

	if s.Speech == nil {
		return "", false, errors.New("speech recognizer not configured")
	}
	transcript, err := s.Speech.Recognize(ctx, audio)
	if err != nil {
		return "", false, err
	}
	if transcript == "" {
		metrics.IncAudioFailed()
		telemetry.Warn("audios.transcription.empty", map[string]any{
			"filename": filename,
			"bytes":    len(audio),
		})
		return "", false, nil
	}

	metrics.IncTranscription(false)
	return transcript, true, nil
}

// Save persists the transcription and a digest of audio without overwriting
// an existing record.
func (s *Service) Save(ctx context.Context, filename, transcription string, audio []byte) (Audio, error) {
	key, err := recordKey(filename)
	if err != nil {
		return Audio{}, err
	}
	rec := Audio{
		Filename:      key,
		Transcription: transcription,
		ContentSHA256: util.ContentDigest(audio),
		CreatedAt:     s.Now(),
	}
	if _, err := s.Repo.Upsert(ctx, rec, false); err != nil {
		return Audio{}, err
	}
	return rec, nil
}
