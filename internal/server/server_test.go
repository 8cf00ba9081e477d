package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/config"
)

const sampleLog = `entry,at,order
"-- starting hand #1 (id: aaa) --",t1,1
"""maya @ mId"" posts a small blind of 0.10",t2,2
"""owen @ oId"" posts a big blind of 0.20",t3,3
"""maya @ mId"" raises to 0.60",t4,4
"""owen @ oId"" folds",t5,5
"Uncalled bet of 0.40 returned to ""maya @ mId""",t6,6
"""maya @ mId"" collected 0.40 from pot",t7,7
"-- ending hand #1 --",t8,8
`

func newTestServer(t *testing.T, bigBlind float64) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(config.Default().Server, bigBlind, logger)
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func postAnalyze(t *testing.T, srv *Server, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestAnalyzeUpload(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t, 0), "session.csv", sampleLog)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.NumFiles)
	assert.Equal(t, 8, resp.NumLogLines)
	assert.Equal(t, 1, resp.NumHands)
	assert.Equal(t, 0.2, resp.BigBlind)
	require.Len(t, resp.Stats, 2)
	assert.Equal(t, "maya", resp.Stats[0].Player)
	assert.Equal(t, 100.0, resp.Stats[0].VPIP)
}

func TestAnalyzeBigBlindOverride(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t, 0.5), "session.csv", sampleLog)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.5, resp.BigBlind)
}

func TestAnalyzeRejectsNonCSV(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t, 0), "session.txt", sampleLog)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File 'session.txt' is not a CSV.", errorDetail(t, rec))
}

func TestAnalyzeRejectsMissingEntryColumn(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t, 0), "session.csv", "at,order\nx,1\n")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorDetail(t, rec), "entry")
}

func TestAnalyzeRejectsLogWithoutHands(t *testing.T) {
	rec := postAnalyze(t, newTestServer(t, 0), "session.csv",
		"entry,at,order\nThe player joined,t1,1\n")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No valid hands found in uploaded file(s).", errorDetail(t, rec))
}

func TestAnalyzeRejectsEmptyUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestServer(t, 0).Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No files uploaded.", errorDetail(t, rec))
}

func TestAnalyzeRequiresPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	newTestServer(t, 0).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newTestServer(t, 0).Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestWebSocketReceivesTraces(t *testing.T) {
	srv := newTestServer(t, 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	rec := postAnalyze(t, srv, "session.csv", sampleLog)
	require.Equal(t, http.StatusOK, rec.Code)

	var traces []struct {
		HandIndex  int    `json:"hand_index"`
		OpenRaiser string `json:"open_raiser"`
	}
	require.NoError(t, conn.ReadJSON(&traces))
	require.Len(t, traces, 1)
	assert.Equal(t, 1, traces[0].HandIndex)
	assert.Equal(t, "maya", traces[0].OpenRaiser)
}
