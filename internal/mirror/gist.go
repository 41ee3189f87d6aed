package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/domain"
)

const (
	gistAPIBase  = "https://api.github.com"
	gistFileName = "XAYSIMO_ERP_MASTER_DATABASE.json"
)

// gistMirror stores the document as one named file inside a private gist.
// The first push creates the gist; later pushes patch it by id. Recovery
// lists the token's gists and matches on the expected filename.
type gistMirror struct {
	token  string
	client *http.Client

	mu     sync.Mutex
	gistID string
}

// NewGist builds a gist mirror. gistID may be empty; it is discovered on the
// first pull or created on the first push.
func NewGist(token, gistID string) Mirror {
	return &gistMirror{
		token:  token,
		gistID: gistID,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Mirror = (*gistMirror)(nil)

func (m *gistMirror) Name() string { return "gist" }

// Test lists the token's gists to verify the credentials.
func (m *gistMirror) Test(ctx context.Context) error {
	_, err := m.listGists(ctx)
	return err
}

type gistFile struct {
	Content   string `json:"content,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

type gistRecord struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Push creates or patches the backing gist with the serialized document.
func (m *gistMirror) Push(ctx context.Context, data *domain.AppData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document for mirror: %w", err)
	}

	m.mu.Lock()
	gistID := m.gistID
	m.mu.Unlock()

	body := map[string]any{
		"description": fmt.Sprintf("ERP Master Database Sync - %s", time.Now().Format(time.RFC1123)),
		"public":      false,
		"files": map[string]any{
			gistFileName: map[string]string{"content": string(content)},
		},
	}

	method, url := http.MethodPost, gistAPIBase+"/gists"
	if gistID != "" {
		method, url = http.MethodPatch, gistAPIBase+"/gists/"+gistID
	}

	var created gistRecord
	if err := m.do(ctx, method, url, body, &created); err != nil {
		return err
	}
	if gistID == "" && created.ID != "" {
		m.mu.Lock()
		m.gistID = created.ID
		m.mu.Unlock()
	}
	return nil
}

// Pull locates the backing gist and returns its stored document.
func (m *gistMirror) Pull(ctx context.Context) (*domain.AppData, error) {
	m.mu.Lock()
	gistID := m.gistID
	m.mu.Unlock()

	var file *gistFile
	if gistID != "" {
		var record gistRecord
		if err := m.do(ctx, http.MethodGet, gistAPIBase+"/gists/"+gistID, nil, &record); err != nil {
			return nil, err
		}
		if f, ok := record.Files[gistFileName]; ok {
			file = &f
		}
	} else {
		records, err := m.listGists(ctx)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			if f, ok := record.Files[gistFileName]; ok {
				file = &f
				m.mu.Lock()
				m.gistID = record.ID
				m.mu.Unlock()
				break
			}
		}
	}
	if file == nil {
		return nil, apperrors.ErrNotFound
	}

	raw := []byte(file.Content)
	if file.Truncated || file.Content == "" {
		// The gist API truncates large file bodies; fetch the raw content.
		fetched, err := m.fetchRaw(ctx, file.RawURL)
		if err != nil {
			return nil, err
		}
		raw = fetched
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode mirrored document: %w", err)
	}
	return &data, nil
}

func (m *gistMirror) listGists(ctx context.Context) ([]gistRecord, error) {
	var records []gistRecord
	if err := m.do(ctx, http.MethodGet, gistAPIBase+"/gists", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *gistMirror) fetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("gist file has no raw content URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+m.token)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch gist content (%d)", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// do executes one gist API call and decodes the response into out when
// non-nil. 401 responses are classified as bad credentials.
func (m *gistMirror) do(ctx context.Context, method, url string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+m.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: the access token was rejected", ErrBadCredentials)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("gist API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("gist API error (%d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode gist API response: %w", err)
		}
	}
	return nil
}
