package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/james-see/smfview/pkg/config"
	"github.com/james-see/smfview/pkg/viewer"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func buildMIDI(t *testing.T) []byte {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(100))
	tempo.Close(192)

	var keys smf.Track
	keys.Add(0, midi.NoteOn(0, 60, 90))
	keys.Add(96, midi.NoteOff(0, 60))
	keys.Close(0)

	if err := s.Add(tempo); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(keys); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, router *gin.Engine, query, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events"+query, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := NewRouter(config.Default())

	for _, path := range []string{"/health", "/api/v1/health"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if !strings.Contains(w.Body.String(), "healthy") {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestListFormats(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter(config.Default()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil))

	var resp struct {
		Formats    []string `json:"formats"`
		Extensions []string `json:"extensions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Formats) != 2 || resp.Formats[0] != "midi" {
		t.Errorf("formats = %v", resp.Formats)
	}
}

func TestCORSPreflight(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter(config.Default()).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil))
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestEvents(t *testing.T) {
	router := NewRouter(config.Default())
	data := buildMIDI(t)

	tests := []struct {
		name      string
		query     string
		count     int
		noteChan  string
		noteIndex int
	}{
		{"merged", "", 5, "0", 1},
		{"one track", "?track=1", 3, "0", 0},
		{"drums and base", "?track=1&drums=0&channel_base=1", 3, "1 (drum)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upload(t, router, tt.query, "keys.mid", data)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}

			var resp EventsResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.File != "keys.mid" || resp.Tracks != 2 || resp.TicksPerQuarter != 96 {
				t.Errorf("header = %+v", resp)
			}
			if resp.Count != tt.count || len(resp.Events) != tt.count {
				t.Fatalf("count = %d (%d events), want %d", resp.Count, len(resp.Events), tt.count)
			}
			note := resp.Events[tt.noteIndex]
			if note.Status != "Note On" || note.Channel != tt.noteChan {
				t.Errorf("note = %+v, want Note On on %q", note, tt.noteChan)
			}
		})
	}
}

func TestEventsErrors(t *testing.T) {
	router := NewRouter(config.Default())
	data := buildMIDI(t)

	tests := []struct {
		name   string
		query  string
		file   string
		data   []byte
		status int
	}{
		{"bad drums", "?drums=16", "a.mid", data, http.StatusBadRequest},
		{"bad base", "?channel_base=2", "a.mid", data, http.StatusBadRequest},
		{"bad track", "?track=7", "a.mid", data, http.StatusBadRequest},
		{"not midi", "", "a.txt", []byte("hello"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upload(t, router, tt.query, tt.file, tt.data)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/events", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("no file: status = %d, want 400", w.Code)
	}
}

func TestFormat(t *testing.T) {
	router := NewRouter(config.Default())
	one := 1

	body, err := json.Marshal(FormatRequest{
		Drums:       []int{9},
		ChannelBase: &one,
		Events: []viewer.RawEvent{
			{Status: 0x99, Data1: 60, Data2: 100, DataLen: 2, RawBytes: []byte{0x99, 60, 100}},
			{Status: 0xFF, Data1: 0x51, DataLen: 2, RawBytes: []byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/format", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var records []viewer.DisplayRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Channel != "10 (drum)" || records[0].Data1 != "60 Hi Bongo" {
		t.Errorf("note = %+v", records[0])
	}
	if records[1].Status != "Meta: Tempo" || records[1].Data1 != "120.00 BPM" {
		t.Errorf("tempo = %+v", records[1])
	}
}

func TestFormatRejectsBadBody(t *testing.T) {
	router := NewRouter(config.Default())

	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing events", `{"drums":[9]}`},
		{"bad drum", `{"drums":[20],"events":[]}`},
		{"bad base", `{"channelBase":3,"events":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/format", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestFormatUsesConfiguredChannelBase(t *testing.T) {
	cfg := config.Default()
	cfg.ChannelBase = 1
	router := NewRouter(cfg)

	tests := []struct {
		name    string
		body    string
		channel string
	}{
		{"omitted", `{"events":[{"status":145,"data1":60,"data2":100,"dataLen":2}]}`, "2"},
		{"explicit zero", `{"channelBase":0,"events":[{"status":145,"data1":60,"data2":100,"dataLen":2}]}`, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/format", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}

			var records []viewer.DisplayRecord
			if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
				t.Fatal(err)
			}
			if len(records) != 1 || records[0].Channel != tt.channel {
				t.Errorf("records = %+v, want channel %q", records, tt.channel)
			}
		})
	}
}

func TestEventsRejectsOversizedUpload(t *testing.T) {
	saved := maxUpload
	maxUpload = 64
	t.Cleanup(func() { maxUpload = saved })

	router := NewRouter(config.Default())

	atLimit := append(append([]byte{0xF0}, bytes.Repeat([]byte{0x01}, 62)...), 0xF7)
	if w := upload(t, router, "", "ok.syx", atLimit); w.Code != http.StatusOK {
		t.Errorf("upload at limit: status = %d, want 200 (%s)", w.Code, w.Body.String())
	}

	overLimit := append(append([]byte{0xF0}, bytes.Repeat([]byte{0x01}, 63)...), 0xF7)
	w := upload(t, router, "", "big.syx", overLimit)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("upload over limit: status = %d, want 413 (%s)", w.Code, w.Body.String())
	}
}
