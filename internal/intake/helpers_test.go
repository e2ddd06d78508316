package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"audiofields-backend/internal/analyses"
	"audiofields-backend/internal/audios"
	"audiofields-backend/internal/language"
	"audiofields-backend/internal/shared/storage/object/local"
	"audiofields-backend/internal/spreadsheets"
)

// scriptedSpeech returns a transcript keyed by the audio bytes.
type scriptedSpeech struct {
	transcripts map[string]string
	err         error
	calls       int
}

func (s *scriptedSpeech) Recognize(ctx context.Context, audio []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.transcripts[string(audio)], nil
}

// scriptedLanguage returns entities keyed by the analyzed text.
type scriptedLanguage struct {
	responses map[string]language.Response
	err       error
}

func (s *scriptedLanguage) AnalyzeEntities(ctx context.Context, text string) (language.Response, error) {
	if s.err != nil {
		return language.Response{}, s.err
	}
	return s.responses[text], nil
}

type testEnv struct {
	filesDir   string
	recordsDir string
	speech     *scriptedSpeech
	language   *scriptedLanguage
	svc        *Service
	router     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		filesDir:   t.TempDir(),
		recordsDir: t.TempDir(),
		speech:     &scriptedSpeech{transcripts: map[string]string{}},
		language:   &scriptedLanguage{responses: map[string]language.Response{}},
	}

	audioRepo, err := audios.NewFileRepo(env.recordsDir)
	if err != nil {
		t.Fatalf("audios.NewFileRepo: %v", err)
	}
	sheetRepo, err := spreadsheets.NewFileRepo(env.recordsDir)
	if err != nil {
		t.Fatalf("spreadsheets.NewFileRepo: %v", err)
	}
	analysisRepo, err := analyses.NewFileRepo(env.recordsDir)
	if err != nil {
		t.Fatalf("analyses.NewFileRepo: %v", err)
	}

	store := local.New(env.filesDir)
	env.svc = &Service{
		Audios:       audios.NewService(env.speech, audioRepo),
		Spreadsheets: spreadsheets.NewService(sheetRepo),
		Analyses:     analyses.NewService(env.language, analysisRepo),
		Store:        store,
	}

	env.router = gin.New()
	NewHandler(env.svc, store, 0).RegisterRoutes(env.router)
	return env
}

// withUploadLimit remounts the routes with a handler capped at maxBytes.
func (e *testEnv) withUploadLimit(maxBytes int64) {
	e.router = gin.New()
	NewHandler(e.svc, e.svc.Store, maxBytes).RegisterRoutes(e.router)
}

func headerWorkbook(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

type part struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func excelPart(name string, data []byte) part {
	return part{field: "excel", filename: name, contentType: spreadsheets.MIMEType, data: data}
}

func audioPart(name, content string) part {
	return part{field: "audios", filename: name, contentType: "audio/mpeg", data: []byte(content)}
}

func (e *testEnv) postAnalyze(t *testing.T, parts ...part) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, p.field, p.filename))
		h.Set("Content-Type", p.contentType)
		w, err := writer.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := w.Write(p.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) analysisRecords(t *testing.T) []analyses.Analysis {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(e.recordsDir, "analysis.json"))
	if err != nil {
		t.Fatalf("read analysis table: %v", err)
	}
	var doc struct {
		Data []analyses.Analysis `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode analysis table: %v", err)
	}
	return doc.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error.Message
}
