package insight

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"align-coach-backend/internal/ai"
	"align-coach-backend/internal/analytics"
)

const (
	allowOrigin  = "*"
	allowMethods = "POST, OPTIONS"
	allowHeaders = "Content-Type"
)

var (
	errEmptyBody = errors.New("request body is empty")
	errNotObject = errors.New("request body must be a JSON object")
	errTrailing  = errors.New("unexpected data after JSON object")
	errUnknown   = errors.New("unknown error")
)

type Handler struct {
	gen      ai.Generator
	events   analytics.Sink
	userName string
	maxBody  int64
}

func New(gen ai.Generator, events analytics.Sink, userName string, maxBody int64) *Handler {
	if events == nil {
		events = analytics.Nop{}
	}
	return &Handler{
		gen:      gen,
		events:   events,
		userName: userName,
		maxBody:  maxBody,
	}
}

func setCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", allowOrigin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	h.Set("Access-Control-Allow-Headers", allowHeaders)
}

// Options answers CORS preflight with static headers and no body.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	setCORS(w.Header())
	w.WriteHeader(http.StatusOK)
}

// Analyze builds the weekly review prompt and relays the model's answer.
// Status is always 200; failures are reported in the "error" field.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	setCORS(w.Header())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	props := map[string]any{"provider": h.gen.Name()}
	env := analytics.FromRequest(r)
	key := analytics.SourceEventKeyFromRequest(r)

	fail := func(stage string, err error) {
		log.Printf("insight: stage=%s provider=%s err=%v", stage, h.gen.Name(), err)
		props["error_stage"] = stage
		props["duration_ms"] = time.Since(start).Milliseconds()
		h.record(r, env, "insight_failed", props, key)
		msg := err.Error()
		if msg == "" {
			msg = errUnknown.Error()
		}
		writeResponse(w, AnalysisResponse{Error: msg})
	}

	req, err := h.decode(w, r)
	if err != nil {
		fail("decode", err)
		return
	}
	props["goals_count"] = len(req.Goals)
	props["logs_count"] = len(req.Logs)
	props["journal_keys"] = len(req.Journal)

	prompt, err := ai.BuildInsightPrompt(h.userName, req.Goals, req.Logs, req.Journal)
	if err != nil {
		fail("prompt", err)
		return
	}
	props["prompt_len"] = len(prompt)

	text, err := h.gen.Generate(r.Context(), prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ai.ErrEmptyResponse
	}
	if err != nil {
		fail("generate", err)
		return
	}

	props["insight_len"] = len(text)
	props["duration_ms"] = time.Since(start).Milliseconds()
	h.record(r, env, "insight_generated", props, key)

	writeResponse(w, AnalysisResponse{Insight: text})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (AnalysisRequest, error) {
	var req AnalysisRequest

	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return req, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return req, errEmptyBody
	}
	if raw[0] != '{' {
		return req, errNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return req, errTrailing
	}
	return req.withDefaults(), nil
}

func (h *Handler) record(r *http.Request, env analytics.Envelope, name string, props map[string]any, key string) {
	if err := h.events.Log(r.Context(), env, name, props, key); err != nil {
		log.Printf("analytics: event=%s err=%v", name, err)
	}
}

func writeResponse(w http.ResponseWriter, resp AnalysisResponse) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		log.Printf("insight: write response: %v", err)
	}
}
