package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestUploadPostsMultipartAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("expected multipart file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "speech.mp3" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake-audio" {
			t.Fatalf("unexpected payload: %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"file_id":"abc1","text":"hello world","filename":"speech.mp3"}`)
	}))
	defer server.Close()

	client := NewClientWithDoer(server.URL, http.DefaultClient)
	result, err := client.Upload(context.Background(), "speech.mp3", strings.NewReader("fake-audio"), nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if result.FileID != "abc1" || result.Text != "hello world" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUploadReportsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body) //nolint:errcheck
		io.WriteString(w, `{"file_id":"abc1","text":"ok"}`)
	}))
	defer server.Close()

	var lastSent, total int64
	client := NewClientWithDoer(server.URL, http.DefaultClient)
	_, err := client.Upload(context.Background(), "clip.wav", strings.NewReader(strings.Repeat("x", 4096)), func(sent, tot int64) {
		lastSent, total = sent, tot
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if total == 0 {
		t.Fatal("expected a non-zero total")
	}
	if lastSent != total {
		t.Fatalf("expected final progress %d to equal total %d", lastSent, total)
	}
}

func TestUploadDecodesDetailError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail":"unsupported file format"}`)
	}))
	defer server.Close()

	client := NewClientWithDoer(server.URL, http.DefaultClient)
	_, err := client.Upload(context.Background(), "clip.wav", strings.NewReader("x"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Fatalf("expected detail message in error, got %v", err)
	}
}

func TestUploadFallsBackToPlainTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "worker crashed")
	}))
	defer server.Close()

	client := NewClientWithDoer(server.URL, http.DefaultClient)
	_, err := client.Upload(context.Background(), "clip.wav", strings.NewReader("x"), nil)
	if err == nil || !strings.Contains(err.Error(), "worker crashed") {
		t.Fatalf("expected raw body in error, got %v", err)
	}
}

func TestUploadClassifiesTransportFailure(t *testing.T) {
	client := NewClientWithDoer("http://127.0.0.1:1", http.DefaultClient)
	_, err := client.Upload(context.Background(), "clip.wav", strings.NewReader("x"), nil)
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSaveSendsJSONBody(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/save" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		io.WriteString(w, `{"status":"saved"}`)
	}))
	defer server.Close()

	name := "speech"
	client := NewClientWithDoer(server.URL, http.DefaultClient)
	err := client.Save(context.Background(), SaveRequest{FileID: "abc1", Text: "hello", Filename: &name})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	for _, fragment := range []string{`"file_id":"abc1"`, `"text":"hello"`, `"filename":"speech"`} {
		if !strings.Contains(gotBody, fragment) {
			t.Fatalf("expected %s in body %q", fragment, gotBody)
		}
	}
}

func TestSaveSendsNullFilename(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClientWithDoer(server.URL, http.DefaultClient)
	if err := client.Save(context.Background(), SaveRequest{FileID: "abc1", Text: "hello"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.Contains(gotBody, `"filename":null`) {
		t.Fatalf("expected null filename, got %q", gotBody)
	}
}

func TestExportStreamsBodyAndMaps404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/export/txt/abc1":
			io.WriteString(w, "hello world")
		case "/api/export/docx/missing":
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail":"file not found"}`)
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClientWithDoer(server.URL, http.DefaultClient)

	body, err := client.Export(context.Background(), KindText, "abc1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, _ := io.ReadAll(body)
	body.Close()
	if string(data) != "hello world" {
		t.Fatalf("unexpected export body: %q", data)
	}

	_, err = client.Export(context.Background(), KindDocument, "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestParseExportKind(t *testing.T) {
	cases := []struct {
		in      string
		want    ExportKind
		wantErr bool
	}{
		{"txt", KindText, false},
		{"DOCX", KindDocument, false},
		{" docx ", KindDocument, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		kind, err := ParseExportKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("%q: expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if kind != tc.want {
			t.Fatalf("%q: got %q want %q", tc.in, kind, tc.want)
		}
	}
}
