package session_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/saulo-duarte/binary-brain/internal/ingest"
	"github.com/saulo-duarte/binary-brain/internal/session"
)

func newServer(t *testing.T, maxFileSize int64) (*httptest.Server, *fixture) {
	t.Helper()
	f := newFixture(nil)
	srv := httptest.NewServer(session.Routes(session.NewHandler(f.svc, maxFileSize)))
	t.Cleanup(srv.Close)
	return srv, f
}

func multipartBody(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, srv *httptest.Server, name, contentType string, data []byte) (*http.Response, ingest.FileUploadResult) {
	t.Helper()
	body, ct := multipartBody(t, name, contentType, data)
	resp, err := http.Post(srv.URL+"/upload", ct, body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	defer resp.Body.Close()

	var result ingest.FileUploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode upload result: %v", err)
	}
	return resp, result
}

func post(t *testing.T, url, body string, out interface{}) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestUploadHandler(t *testing.T) {
	t.Run("ValidCSV", func(t *testing.T) {
		srv, _ := newServer(t, 1024)
		resp, result := postUpload(t, srv, "fragen.csv", "text/csv", []byte(sampleCSV))

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if !result.Success || len(result.Questions) != 3 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		srv, _ := newServer(t, 1024)
		resp, result := postUpload(t, srv, "notes.txt", "text/plain", []byte(sampleCSV))

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", resp.StatusCode)
		}
		if result.Success || len(result.Errors) == 0 {
			t.Errorf("expected failure with errors, got %+v", result)
		}
	})

	t.Run("MissingFileField", func(t *testing.T) {
		srv, _ := newServer(t, 1024)
		if code := post(t, srv.URL+"/upload", "{}", nil); code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})
}

func TestSessionRoutes(t *testing.T) {
	srv, _ := newServer(t, 1024)
	postUpload(t, srv, "fragen.csv", "text/csv", []byte(sampleCSV))

	var action session.ActionResponse
	if code := post(t, srv.URL+"/start", "", &action); code != http.StatusOK || !action.Result {
		t.Fatalf("start failed: code=%d result=%v", code, action.Result)
	}

	var answered session.AnswerResponse
	post(t, srv.URL+"/answer", `{"answer":true}`, &answered)
	if !answered.Recorded || !answered.Correct {
		t.Errorf("unexpected answer response: %+v", answered)
	}

	if code := post(t, srv.URL+"/answer", `{}`, nil); code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing answer, got %d", code)
	}

	action = session.ActionResponse{}
	post(t, srv.URL+"/goto/2", "", &action)
	if !action.Result || action.State.CurrentQuestionIndex != 2 || action.State.HasNext {
		t.Errorf("unexpected goto response: %+v", action.State.State)
	}

	if code := post(t, srv.URL+"/goto/abc", "", nil); code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad index, got %d", code)
	}

	var explanation session.ExplanationResponse
	if code := post(t, srv.URL+"/questions/question-0/explanation", "", &explanation); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if explanation.Explanation == "" {
		t.Error("expected explanation text")
	}

	if code := post(t, srv.URL+"/questions/question-9/explanation", "", nil); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}

	download, err := http.Get(srv.URL + "/file")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	content, _ := io.ReadAll(download.Body)
	download.Body.Close()
	if download.StatusCode != http.StatusOK || string(content) != sampleCSV {
		t.Errorf("unexpected download: code=%d body=%q", download.StatusCode, content)
	}
	if cd := download.Header.Get("Content-Disposition"); !strings.Contains(cd, "fragen.csv") {
		t.Errorf("expected filename in content disposition, got %q", cd)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/questions", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	defer resp.Body.Close()

	var state session.StateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(state.Questions) != 0 || state.File != nil {
		t.Errorf("expected cleared session, got %+v", state.State)
	}

	missing, err := http.Get(srv.URL + "/file")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after clear, got %d", missing.StatusCode)
	}
}
