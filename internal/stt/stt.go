// Package stt wraps the external speech-to-text provider. The service treats
// transcription as a thin pass-through: bytes in, transcript out, provider
// failures surfaced to the caller.
package stt

import "context"

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}
