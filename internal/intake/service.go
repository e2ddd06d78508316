package intake

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"audiofields-backend/internal/analyses"
	"audiofields-backend/internal/audios"
	"audiofields-backend/internal/shared/metrics"
	"audiofields-backend/internal/shared/storage/object"
	"audiofields-backend/internal/shared/telemetry"
	"audiofields-backend/internal/shared/util"
	"audiofields-backend/internal/spreadsheets"
)

// Request is one analyze call: a spreadsheet and the audios to fill it from.
type Request struct {
	Excel  *Upload
	Audios []Upload
}

// TranscribedAudio is an audio that produced a transcription.
type TranscribedAudio struct {
	Filename      string
	Transcription string
}

// Result summarizes a processed request.
type Result struct {
	Filename string
	Fields   []string
	Audios   []TranscribedAudio
	Failed   []string
	// Excel is the uploaded workbook's content before any rows were added.
	Excel   []spreadsheets.Column
	Records int
}

// Partial reports whether some audios failed.
func (r Result) Partial() bool {
	return len(r.Failed) > 0
}

// Service runs the analyze pipeline.
type Service struct {
	Audios       *audios.Service
	Spreadsheets *spreadsheets.Service
	Analyses     *analyses.Service
	Store        object.ObjectStore
}

type pendingAudio struct {
	key           string
	upload        Upload
	transcription string
}

// Process validates the uploads, transcribes each audio in order, fills the
// spreadsheet with matched entities and stores the generated workbook under
// the temporary prefix. Validation failures are returned as *ValidationError.
// Files and records written before a later failure are kept.
func (s *Service) Process(ctx context.Context, req Request) (Result, error) {
	if req.Excel == nil {
		return Result{}, invalid(msgMissingExcel)
	}
	if len(req.Audios) == 0 {
		return Result{}, invalid(msgMissingAudios)
	}

	excel := *req.Excel
	if !IsSpreadsheet(excel) {
		return Result{}, invalid(msgExcelType)
	}
	excelKey, err := util.SanitizeFileName(excel.Filename)
	if err != nil {
		return Result{}, invalid(msgExcelName)
	}

	wb, err := spreadsheets.Load(bytes.NewReader(excel.Data))
	if err != nil {
		if errors.Is(err, spreadsheets.ErrInvalidFormat) {
			return Result{}, invalid(msgExcelType)
		}
		return Result{}, err
	}
	defer wb.Close()

	fields, err := wb.Fields()
	if err != nil {
		if errors.Is(err, spreadsheets.ErrInvalidShape) {
			return Result{}, invalid(msgExcelShape)
		}
		return Result{}, err
	}

	succeeded, failed, err := s.transcribeAll(ctx, req.Audios)
	if err != nil {
		return Result{}, err
	}
	if len(succeeded) == 0 {
		return Result{}, &ValidationError{
			Message: msgAllAudiosFailed,
			Details: map[string]any{"failed": failed},
		}
	}

	if _, err := s.Spreadsheets.Save(ctx, excelKey, fields); err != nil {
		return Result{}, fmt.Errorf("save spreadsheet record: %w", err)
	}
	if _, err := s.Store.Save(ctx, object.PermanentKey(excelKey), excel.ContentType, bytes.NewReader(excel.Data)); err != nil {
		return Result{}, fmt.Errorf("save spreadsheet file: %w", err)
	}

	formatted, err := wb.FormattedContent()
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Filename: excelKey,
		Fields:   fields,
		Audios:   make([]TranscribedAudio, 0, len(succeeded)),
		Failed:   failed,
		Excel:    formatted,
	}

	for _, audio := range succeeded {
		n, err := s.processAudio(ctx, audio, excelKey, fields, wb)
		if err != nil {
			return Result{}, err
		}
		result.Records += n
		result.Audios = append(result.Audios, TranscribedAudio{
			Filename:      audio.key,
			Transcription: audio.transcription,
		})
	}

	generated, err := wb.Bytes()
	if err != nil {
		return Result{}, err
	}
	if _, err := s.Store.Save(ctx, object.TempKey(excelKey), spreadsheets.MIMEType, bytes.NewReader(generated)); err != nil {
		return Result{}, fmt.Errorf("save generated spreadsheet: %w", err)
	}

	telemetry.Info("intake.analyze.completed", map[string]any{
		"filename":  excelKey,
		"sheet":     wb.Sheet(),
		"fields":    len(fields),
		"succeeded": len(result.Audios),
		"failed":    len(failed),
		"records":   result.Records,
	})
	return result, nil
}

func (s *Service) transcribeAll(ctx context.Context, uploads []Upload) ([]pendingAudio, []string, error) {
	succeeded := make([]pendingAudio, 0, len(uploads))
	failed := []string{}

	for _, upload := range uploads {
		if !IsAudio(upload) {
			return nil, nil, invalid(msgAudioType + upload.Filename)
		}
		key, err := util.SanitizeFileName(upload.Filename)
		if err != nil {
			return nil, nil, invalid(msgAudioName + upload.Filename)
		}

		transcription, ok, err := s.Audios.Transcribe(ctx, key, upload.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("transcribe %s: %w", key, err)
		}
		if !ok {
			telemetry.Warn("intake.audio.failed", map[string]any{"filename": key})
			failed = append(failed, key)
			continue
		}
		succeeded = append(succeeded, pendingAudio{key: key, upload: upload, transcription: transcription})
	}
	return succeeded, failed, nil
}

func (s *Service) processAudio(ctx context.Context, audio pendingAudio, excelKey string, fields []string, wb *spreadsheets.Workbook) (int, error) {
	if _, err := s.Audios.Save(ctx, audio.key, audio.transcription, audio.upload.Data); err != nil {
		return 0, fmt.Errorf("save audio record %s: %w", audio.key, err)
	}
	if _, err := s.Store.Save(ctx, object.PermanentKey(audio.key), audio.upload.ContentType, bytes.NewReader(audio.upload.Data)); err != nil {
		return 0, fmt.Errorf("save audio file %s: %w", audio.key, err)
	}

	matches, err := s.Analyses.Extract(ctx, audio.transcription, fields)
	if err != nil {
		return 0, fmt.Errorf("analyze %s: %w", audio.key, err)
	}
	if err := wb.Populate(matches); err != nil {
		return 0, fmt.Errorf("populate spreadsheet: %w", err)
	}

	records, err := s.Analyses.Record(ctx, audio.key, excelKey, matches)
	if err != nil {
		return 0, fmt.Errorf("save analysis records %s: %w", audio.key, err)
	}
	metrics.AddAnalysisRecords(len(records))
	return len(records), nil
}
