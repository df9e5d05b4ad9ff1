package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voxsql/voxsql/internal/nlq"
)

func multipartAudio(t *testing.T, field string, payload []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="clip.webm"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part failed: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestTranscribeMultipartUpload(t *testing.T) {
	cfg := testConfig(t, nil)
	transcriber := &fakeTranscriber{transcript: "how many orders today"}
	h := NewHandler(cfg, Dependencies{Transcriber: transcriber})

	body, contentType := multipartAudio(t, "file", []byte("fake-webm"), "audio/webm")
	req := httptest.NewRequest(http.MethodPost, "/v1/stt", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if string(transcriber.lastAudio) != "fake-webm" {
		t.Fatalf("audio = %q", transcriber.lastAudio)
	}
	if transcriber.lastContentType != "audio/webm" {
		t.Fatalf("content type = %q", transcriber.lastContentType)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if resp["transcript"] != "how many orders today" {
		t.Fatalf("transcript = %v", resp["transcript"])
	}
}

func TestTranscribeAcceptsAudioFieldAndRawBody(t *testing.T) {
	cfg := testConfig(t, nil)
	transcriber := &fakeTranscriber{transcript: "ok"}
	h := NewHandler(cfg, Dependencies{Transcriber: transcriber})

	body, contentType := multipartAudio(t, "audio", []byte("alt-field"), "")
	req := httptest.NewRequest(http.MethodPost, "/v1/stt", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("multipart audio field status = %d", rr.Code)
	}
	if string(transcriber.lastAudio) != "alt-field" {
		t.Fatalf("audio = %q", transcriber.lastAudio)
	}

	rawReq := httptest.NewRequest(http.MethodPost, "/v1/stt", strings.NewReader("raw-bytes"))
	rawReq.Header.Set("Content-Type", "audio/wav")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, rawReq)
	if rr.Code != http.StatusOK {
		t.Fatalf("raw body status = %d", rr.Code)
	}
	if string(transcriber.lastAudio) != "raw-bytes" || transcriber.lastContentType != "audio/wav" {
		t.Fatalf("audio/contentType = %q/%q", transcriber.lastAudio, transcriber.lastContentType)
	}
}

func TestTranscribeRejectsEmptyUpload(t *testing.T) {
	cfg := testConfig(t, nil)
	h := NewHandler(cfg, Dependencies{Transcriber: &fakeTranscriber{}})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/stt", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestTranscribeSurfacesProviderError(t *testing.T) {
	cfg := testConfig(t, nil)
	transcriber := &fakeTranscriber{err: errors.New("transcription failed status=400 body=bad audio")}
	h := NewHandler(cfg, Dependencies{Transcriber: transcriber})

	req := httptest.NewRequest(http.MethodPost, "/v1/stt", strings.NewReader("noise"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "status=400") {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestTranscribeArchivesClipWhenConfigured(t *testing.T) {
	cfg := testConfig(t, nil)
	store := &fakeArchive{}
	fixed := time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)
	h := NewHandler(cfg, Dependencies{
		Transcriber: &fakeTranscriber{transcript: "ok"},
		Archive:     store,
		Clock:       func() time.Time { return fixed },
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/stt", strings.NewReader("clip-bytes"))
	req.Header.Set("Content-Type", "audio/wav")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.HasPrefix(store.lastKey, "audio/2024-05-15/") {
		t.Fatalf("archive key = %q", store.lastKey)
	}
	if store.lastSize != int64(len("clip-bytes")) {
		t.Fatalf("archive size = %d", store.lastSize)
	}
}

func TestTranscribeArchiveFailureIsNonFatal(t *testing.T) {
	cfg := testConfig(t, nil)
	store := &fakeArchive{saveErr: errors.New("bucket offline")}
	h := NewHandler(cfg, Dependencies{
		Transcriber: &fakeTranscriber{transcript: "still works"},
		Archive:     store,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/stt", strings.NewReader("clip"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestEchoReportsUploadMetadata(t *testing.T) {
	cfg := testConfig(t, nil)
	h := NewHandler(cfg, Dependencies{})

	req := httptest.NewRequest(http.MethodPost, "/v1/stt/echo", strings.NewReader("12345"))
	req.Header.Set("Content-Type", "audio/wav")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["bytes"] != float64(5) {
		t.Fatalf("bytes = %v", body["bytes"])
	}
	if body["content_type"] != "audio/wav" {
		t.Fatalf("content_type = %v", body["content_type"])
	}
}

func TestSpeechQueryRunsTranscriptThroughPipeline(t *testing.T) {
	cfg := testConfig(t, nil)
	runner := &fakeQueryRunner{result: nlq.Result{
		SQL:    "SELECT COUNT(*) AS cnt FROM orders o JOIN customers c ON o.customer_id = c.id WHERE 1=1",
		Params: []any{},
		Rows:   []map[string]any{{"cnt": int64(7)}},
	}}
	h := NewHandler(cfg, Dependencies{
		Transcriber: &fakeTranscriber{transcript: "how many orders today"},
		Queries:     runner,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/speech/query", strings.NewReader("clip"))
	req.Header.Set("Content-Type", "audio/webm")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if runner.lastText != "how many orders today" {
		t.Fatalf("pipeline question = %q", runner.lastText)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["transcript"] != "how many orders today" {
		t.Fatalf("transcript = %v", body["transcript"])
	}
	if _, ok := body["sql"].(string); !ok {
		t.Fatalf("missing sql: %v", body)
	}
}

func TestSpeechQueryTranscriptionFailureStopsPipeline(t *testing.T) {
	cfg := testConfig(t, nil)
	runner := &fakeQueryRunner{}
	h := NewHandler(cfg, Dependencies{
		Transcriber: &fakeTranscriber{err: errors.New("provider down")},
		Queries:     runner,
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/speech/query", strings.NewReader("clip"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rr.Code)
	}
	if runner.lastText != "" {
		t.Fatalf("pipeline should not run, got question %q", runner.lastText)
	}
}
