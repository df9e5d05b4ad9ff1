package api

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/voxsql/voxsql/internal/archive"
	"github.com/voxsql/voxsql/internal/observability"
)

const maxAudioBytes = 25 << 20

// handleTranscribe answers POST /v1/stt with {"transcript": ...}.
func handleTranscribe(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Transcriber == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "STT_NOT_CONFIGURED", "speech-to-text is not configured")
		return
	}
	if err := requireRole(r, "stt_user"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	audio, contentType, err := readAudioUpload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}
	if len(audio) == 0 {
		writeError(r.Context(), w, http.StatusBadRequest, "AUDIO_REQUIRED", "audio payload is required")
		return
	}

	archiveClip(deps, r, audio, contentType)

	started := time.Now()
	transcript, err := deps.Transcriber.Transcribe(r.Context(), audio, contentType)
	observability.ObserveTranscription(time.Since(started), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSCRIPTION_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transcript": transcript})
}

// handleEcho answers POST /v1/stt/echo with upload metadata and is meant for
// verifying that audio survives the browser-to-server hop intact.
func handleEcho(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if err := requireRole(r, "stt_user"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}
	audio, contentType, err := readAudioUpload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bytes":        len(audio),
		"content_type": contentType,
	})
}

// handleSpeechQuery answers POST /v1/speech/query: transcribe the upload, then
// run the transcript through the natural-language query pipeline.
func handleSpeechQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Transcriber == nil || deps.Queries == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "SPEECH_QUERY_NOT_CONFIGURED", "speech query dependencies are not configured")
		return
	}
	if err := requireRole(r, "query_reader"); err != nil {
		writeError(r.Context(), w, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	audio, contentType, err := readAudioUpload(r)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}
	if len(audio) == 0 {
		writeError(r.Context(), w, http.StatusBadRequest, "AUDIO_REQUIRED", "audio payload is required")
		return
	}

	archiveClip(deps, r, audio, contentType)

	started := time.Now()
	transcript, err := deps.Transcriber.Transcribe(r.Context(), audio, contentType)
	observability.ObserveTranscription(time.Since(started), err != nil)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadGateway, "TRANSCRIPTION_FAILED", err.Error())
		return
	}

	result, err := deps.Queries.TranslateAndRun(r.Context(), transcript)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "QUERY_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transcript": transcript,
		"sql":        result.SQL,
		"params":     result.Params,
		"rows":       result.Rows,
	})
}

// readAudioUpload accepts either a multipart form with a "file" or "audio"
// part, or a raw request body. The part's declared content type wins over the
// request header when present.
func readAudioUpload(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
			return nil, "", fmt.Errorf("parse multipart form: %w", err)
		}
		for _, field := range []string{"file", "audio"} {
			file, header, err := r.FormFile(field)
			if err != nil {
				continue
			}
			audio, readErr := io.ReadAll(io.LimitReader(file, maxAudioBytes))
			_ = file.Close()
			if readErr != nil {
				return nil, "", fmt.Errorf("read %q part: %w", field, readErr)
			}
			if len(audio) == 0 {
				continue
			}
			partType := header.Header.Get("Content-Type")
			if strings.TrimSpace(partType) == "" {
				partType = "application/octet-stream"
			}
			return audio, partType, nil
		}
		return nil, "", nil
	}

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read request body: %w", err)
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}
	return audio, contentType, nil
}

// archiveClip stores the upload when an archive is configured. Failures are
// logged and never block transcription.
func archiveClip(deps Dependencies, r *http.Request, audio []byte, contentType string) {
	if deps.Archive == nil {
		return
	}
	traceID := observability.TraceIDFromContext(r.Context())
	key := archive.ClipKey(deps.Clock(), traceID, contentType)
	info, err := deps.Archive.Save(r.Context(), key, bytes.NewReader(audio), int64(len(audio)), contentType)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.WarnContext(r.Context(), "audio archive failed",
				slog.String("trace_id", traceID),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	observability.AddArchivedAudioBytes(info.Size)
}
