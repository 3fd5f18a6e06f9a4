package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(":0")
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	content := "import os\n\ndef greet(name):\n    return name\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte(content), 0o644))
	return root
}

func postScan(t *testing.T, srv *httptest.Server, body map[string]interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/v1/scans", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func waitForStatus(t *testing.T, srv *httptest.Server, id, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("%s/api/v1/scans/%s", srv.URL, id))
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var job struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
			return false
		}
		return job.Status == want
	}, 5*time.Second, 20*time.Millisecond)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestCreateScan_Lifecycle(t *testing.T) {
	srv := newTestServer(t)
	root := writeProject(t)

	resp := postScan(t, srv, map[string]interface{}{"root": root})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)

	waitForStatus(t, srv, created.ID, "completed")

	// Completed job carries the report.
	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/scans/%s", srv.URL, created.ID))
	require.NoError(t, err)
	defer getResp.Body.Close()

	var job struct {
		Status string `json:"status"`
		Report struct {
			Totals struct {
				Files    int `json:"files"`
				Entities int `json:"entities"`
			} `json:"totals"`
		} `json:"report"`
	}
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&job))
	assert.Equal(t, 1, job.Report.Totals.Files)
	assert.Equal(t, 1, job.Report.Totals.Entities)
}

func TestCreateScan_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp := postScan(t, srv, map[string]interface{}{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Contains(t, errBody.Error, "root is required")
}

func TestScan_FailsOnMissingRoot(t *testing.T) {
	srv := newTestServer(t)

	resp := postScan(t, srv, map[string]interface{}{"root": "/definitely/not/here"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	waitForStatus(t, srv, created.ID, "failed")
}

func TestListScans(t *testing.T) {
	srv := newTestServer(t)
	root := writeProject(t)

	resp := postScan(t, srv, map[string]interface{}{"root": root})
	resp.Body.Close()

	listResp, err := http.Get(srv.URL + "/api/v1/scans")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var list []struct {
		ID   string `json:"id"`
		Root string `json:"root"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, root, list[0].Root)
}

func TestGetScanReport(t *testing.T) {
	srv := newTestServer(t)
	root := writeProject(t)

	resp := postScan(t, srv, map[string]interface{}{"root": root})
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	waitForStatus(t, srv, created.ID, "completed")

	reportResp, err := http.Get(fmt.Sprintf("%s/api/v1/scans/%s/report", srv.URL, created.ID))
	require.NoError(t, err)
	defer reportResp.Body.Close()

	assert.Equal(t, http.StatusOK, reportResp.StatusCode)
	assert.Contains(t, reportResp.Header.Get("Content-Type"), "text/html")

	var buf bytes.Buffer
	buf.ReadFrom(reportResp.Body)
	assert.Contains(t, buf.String(), "Scout Project Report")
}

func TestGetScanReport_NotCompleted(t *testing.T) {
	srv := newTestServer(t)

	resp := postScan(t, srv, map[string]interface{}{"root": "/definitely/not/here"})
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	waitForStatus(t, srv, created.ID, "failed")

	reportResp, err := http.Get(fmt.Sprintf("%s/api/v1/scans/%s/report", srv.URL, created.ID))
	require.NoError(t, err)
	defer reportResp.Body.Close()
	assert.Equal(t, http.StatusConflict, reportResp.StatusCode)
}

func TestDeleteScan(t *testing.T) {
	srv := newTestServer(t)
	root := writeProject(t)

	resp := postScan(t, srv, map[string]interface{}{"root": root})
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/v1/scans/%s", srv.URL, created.ID), nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	getResp, err := http.Get(fmt.Sprintf("%s/api/v1/scans/%s", srv.URL, created.ID))
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestCancelScan_NotRunning(t *testing.T) {
	srv := newTestServer(t)
	root := writeProject(t)

	resp := postScan(t, srv, map[string]interface{}{"root": root})
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	waitForStatus(t, srv, created.ID, "completed")

	cancelResp, err := http.Post(fmt.Sprintf("%s/api/v1/scans/%s/cancel", srv.URL, created.ID), "application/json", nil)
	require.NoError(t, err)
	defer cancelResp.Body.Close()
	assert.Equal(t, http.StatusConflict, cancelResp.StatusCode)
}
