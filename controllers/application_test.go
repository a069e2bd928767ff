package controllers

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"nonprofit-backoffice-api/config"
	"nonprofit-backoffice-api/storage"

	"github.com/gin-gonic/gin"
)

func newApplicationRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/applications", SubmitApplication)
	r.GET("/api/v1/applications", GetApplications)
	r.GET("/api/v1/applications/:id", GetApplication)
	r.PUT("/api/v1/applications/:id", UpdateApplication)
	return r
}

type testFile struct {
	field    string
	name     string
	mime     string
	contents []byte
}

func buildMultipart(t *testing.T, fields map[string]string, files []testFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.name))
		header.Set("Content-Type", file.mime)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(file.contents); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func pdfFile(field, name string, size int) testFile {
	return testFile{field: field, name: name, mime: "application/pdf", contents: bytes.Repeat([]byte("a"), size)}
}

func TestSubmitApplicationValidation(t *testing.T) {
	baseFields := func() map[string]string {
		return map[string]string{
			"first_name": "Jane",
			"last_name":  "Doe",
			"email":      "jane@x.com",
		}
	}

	tests := []struct {
		name    string
		fields  map[string]string
		files   []testFile
		wantErr string
	}{
		{
			name: "missing first name",
			fields: map[string]string{
				"last_name": "Doe",
				"email":     "jane@x.com",
			},
			wantErr: "first_name",
		},
		{
			name: "malformed email",
			fields: map[string]string{
				"first_name": "Jane",
				"last_name":  "Doe",
				"email":      "not-an-email",
			},
			wantErr: "valid email",
		},
		{
			name: "unknown application type",
			fields: func() map[string]string {
				f := baseFields()
				f["application_type"] = "volunteer"
				return f
			}(),
			wantErr: "application_type",
		},
		{
			name: "scholarship without reason",
			fields: func() map[string]string {
				f := baseFields()
				f["application_type"] = "scholarship"
				return f
			}(),
			wantErr: "reason",
		},
		{
			name:   "too many files",
			fields: baseFields(),
			files: []testFile{
				pdfFile("files", "a.pdf", 10),
				pdfFile("files", "b.pdf", 10),
				pdfFile("files", "c.pdf", 10),
				pdfFile("files", "d.pdf", 10),
			},
			wantErr: "too many files",
		},
		{
			name:   "disallowed mime type",
			fields: baseFields(),
			files: []testFile{
				{field: "files", name: "pic.png", mime: "image/png", contents: []byte("png")},
			},
			wantErr: "disallowed type",
		},
		{
			name:   "oversized file",
			fields: baseFields(),
			files: []testFile{
				pdfFile("files", "big.pdf", 5*1024*1024+1),
			},
			wantErr: "exceeds",
		},
	}

	// Every case must fail before any persistence; a nil DB guarantees the
	// test blows up if a query slips through.
	previous := config.DB
	config.DB = nil
	t.Cleanup(func() { config.DB = previous })

	router := newApplicationRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := buildMultipart(t, tt.fields, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
			var resp map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			errMsg, _ := resp["error"].(string)
			if !strings.Contains(errMsg, tt.wantErr) {
				t.Fatalf("error = %q, want it to mention %q", errMsg, tt.wantErr)
			}
		})
	}
}

func TestSubmitApplicationSuccess(t *testing.T) {
	uploadDir := t.TempDir()
	previousStore := objectStore
	objectStore = &storage.LocalStore{Root: uploadDir, PublicBaseURL: "http://files.test"}
	t.Cleanup(func() { objectStore = previousStore })

	emailCh := make(chan string, 1)
	previousSend := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		emailCh <- strings.Join(to, ",")
		return nil
	}
	t.Cleanup(func() { sendMailFunc = previousSend })

	state := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `applications`"),
			result:  scriptedResult{lastInsertID: 42, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `application_attachments`"),
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notifications`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	})

	fields := map[string]string{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "  Jane@EXAMPLE.com ",
	}
	files := []testFile{pdfFile("files", "essay.pdf", 2*1024*1024)}

	body, contentType := buildMultipart(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		DocumentCount int `json:"document_count"`
		Application   struct {
			ApplicationID int    `json:"application_id"`
			Email         string `json:"email"`
			Status        string `json:"status"`
			Attachments   []struct {
				StoredFilename   string `json:"stored_filename"`
				OriginalFilename string `json:"original_filename"`
				FileURL          string `json:"file_url"`
				FileSize         int64  `json:"file_size"`
			} `json:"attachments"`
		} `json:"application"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	if resp.Application.ApplicationID != 42 {
		t.Errorf("application_id = %d, want 42", resp.Application.ApplicationID)
	}
	if resp.Application.Status != "pending" {
		t.Errorf("status = %q, want pending", resp.Application.Status)
	}
	if resp.Application.Email != "jane@example.com" {
		t.Errorf("email = %q, want normalized jane@example.com", resp.Application.Email)
	}
	if resp.DocumentCount != 1 || len(resp.Application.Attachments) != 1 {
		t.Fatalf("document_count = %d, attachments = %d, want 1/1",
			resp.DocumentCount, len(resp.Application.Attachments))
	}

	attachment := resp.Application.Attachments[0]
	if attachment.OriginalFilename != "essay.pdf" {
		t.Errorf("original_filename = %q, want essay.pdf", attachment.OriginalFilename)
	}
	if attachment.FileSize != 2*1024*1024 {
		t.Errorf("file_size = %d, want %d", attachment.FileSize, 2*1024*1024)
	}
	if !strings.HasPrefix(attachment.FileURL, "http://files.test/files/") {
		t.Errorf("file_url = %q, want public URL", attachment.FileURL)
	}
	if _, err := os.Stat(filepath.Join(uploadDir, attachment.StoredFilename)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	select {
	case to := <-emailCh:
		if to != "jane@example.com" {
			t.Errorf("confirmation sent to %q, want jane@example.com", to)
		}
	case <-time.After(2 * time.Second):
		t.Error("confirmation email never sent")
	}

	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestGetApplicationsStatusFilter(t *testing.T) {
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	older := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	appColumns := []string{
		"application_id", "application_type", "first_name", "last_name",
		"email", "status", "submitted_at",
	}
	state := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `applications` WHERE .*status = \\?"),
			args:    []driver.Value{"approved"},
			columns: appColumns,
			rows: [][]driver.Value{
				{int64(2), "scholarship", "Jane", "Doe", "jane@x.com", "approved", newer},
				{int64(1), "member", "John", "Roe", "john@x.com", "approved", older},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `application_attachments`"),
			columns: []string{"attachment_id", "application_id"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?status=approved", nil)
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Total        int `json:"total"`
		Applications []struct {
			ApplicationID int    `json:"application_id"`
			Status        string `json:"status"`
		} `json:"applications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	for _, app := range resp.Applications {
		if app.Status != "approved" {
			t.Errorf("application %d has status %q, want approved", app.ApplicationID, app.Status)
		}
	}
	// Newest first, as ordered by the store.
	if resp.Applications[0].ApplicationID != 2 {
		t.Errorf("first application = %d, want 2 (newest)", resp.Applications[0].ApplicationID)
	}

	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestGetApplicationsDateRange(t *testing.T) {
	start, _ := time.ParseInLocation("2006-01-02", "2026-01-01", time.Local)
	end, _ := time.ParseInLocation("2006-01-02", "2026-01-31", time.Local)

	state := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("submitted_at >= \\? AND submitted_at < \\?"),
			args:    []driver.Value{start, end.AddDate(0, 0, 1)},
			columns: []string{"application_id"},
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/applications?start_date=2026-01-01&end_date=2026-01-31", nil)
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("total = %d, want 0", resp.Total)
	}

	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestGetApplicationsInvalidFilters(t *testing.T) {
	for _, tt := range []struct {
		name  string
		query string
	}{
		{"invalid status", "status=archived"},
		{"invalid start date", "start_date=January"},
		{"invalid end date", "end_date=2026-13-99"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			state := newScriptedGormDB(t, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/applications?"+tt.query, nil)
			rec := httptest.NewRecorder()
			newApplicationRouter().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
			if err := state.verifyComplete(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestUpdateApplicationInvalidStatus(t *testing.T) {
	state := newScriptedGormDB(t, nil)

	payload := `{"status":"archived"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/applications/7", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestUpdateApplicationNotFound(t *testing.T) {
	state := newScriptedGormDB(t, []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `applications` WHERE application_id = \\?"),
			columns: []string{"application_id"},
		},
	})

	payload := `{"status":"approved"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/applications/9999", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body: %s)", rec.Code, rec.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func approveSteps(currentStatus string) []*queryStep {
	return []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `applications` WHERE application_id = \\?"),
			columns: []string{"application_id", "application_type", "first_name", "last_name", "email", "status"},
			rows: [][]driver.Value{
				{int64(7), "member", "Jane", "Doe", "jane@x.com", currentStatus},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `applications` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
	}
}

func TestUpdateApplicationApproveMember(t *testing.T) {
	emailCh := make(chan string, 1)
	previousSend := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		emailCh <- subject
		return nil
	}
	t.Cleanup(func() { sendMailFunc = previousSend })

	state := newScriptedGormDB(t, approveSteps("pending"))

	payload := `{"status":"approved","notes":"Meets criteria"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/applications/7", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Application struct {
			Status string  `json:"status"`
			Notes  *string `json:"notes"`
		} `json:"application"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Application.Status != "approved" {
		t.Errorf("status = %q, want approved", resp.Application.Status)
	}
	if resp.Application.Notes == nil || *resp.Application.Notes != "Meets criteria" {
		t.Errorf("notes = %v, want Meets criteria", resp.Application.Notes)
	}

	select {
	case <-emailCh:
	case <-time.After(2 * time.Second):
		t.Error("membership approval email never sent")
	}

	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}

func TestUpdateApplicationApproveIdempotent(t *testing.T) {
	emailCh := make(chan string, 1)
	previousSend := sendMailFunc
	sendMailFunc = func(to []string, subject, html string) error {
		emailCh <- subject
		return nil
	}
	t.Cleanup(func() { sendMailFunc = previousSend })

	// Already approved: the update succeeds but no second email goes out.
	state := newScriptedGormDB(t, approveSteps("approved"))

	payload := `{"status":"approved"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/applications/7", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newApplicationRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	select {
	case subject := <-emailCh:
		t.Errorf("unexpected email sent: %q", subject)
	case <-time.After(100 * time.Millisecond):
	}

	if err := state.verifyComplete(); err != nil {
		t.Error(err)
	}
}
