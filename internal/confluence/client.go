package confluence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"pagesmith/internal/markup"
	"pagesmith/pkg/logger"
)

// Client talks to the Confluence REST API. It holds no state beyond its
// credentials: every operation resolves space keys, page IDs and versions
// fresh, so there is nothing to cache or invalidate between calls.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *logger.Logger
}

type Page struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Body  struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body,omitempty"`
	Space struct {
		Key string `json:"key"`
	} `json:"space,omitempty"`
	Version struct {
		Number int `json:"number"`
	} `json:"version,omitempty"`
	Expandable struct {
		Space string `json:"space"`
	} `json:"_expandable,omitempty"`
}

// PageVersion is the metadata needed to build a version-aware update payload.
type PageVersion struct {
	Title    string
	SpaceKey string
	Number   int
}

type Attachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// LookupOptions adjusts how space arguments are resolved.
type LookupOptions struct {
	// SpaceNameAsKey treats the space argument as the space key itself,
	// verifying the key exists instead of searching by display name.
	SpaceNameAsKey bool
}

// CreateOptions adjusts CreatePage. When ParentTitle is set the new page is
// created beneath that page in the same space.
type CreateOptions struct {
	ParentTitle string
	LookupOptions
}

// AttachmentOptions adjusts attachment uploads.
type AttachmentOptions struct {
	Comment string
	LookupOptions
}

func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		client:   &http.Client{},
	}
}

func NewClient(baseURL, username, password string, log *logger.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		client:   &http.Client{},
		logger:   log,
	}
}

// VerifyCredentials runs a lightweight authenticated query. Callers decide
// whether a failure is fatal; the client itself never probes on its own.
func (c *Client) VerifyCredentials() error {
	params := url.Values{}
	params.Add("cql", "user="+c.username)

	req, err := c.newRequest("GET", c.baseURL+"/rest/api/content/search?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ResolveSpaceKey finds the space key for a display name. Several content
// hits inside one space are fine; distinct keys across the results mean the
// name is ambiguous and the caller must supply the key directly.
func (c *Client) ResolveSpaceKey(spaceName string, opts LookupOptions) (string, error) {
	if spaceName == "" {
		return "", fmt.Errorf("%w: space name must not be empty", ErrInvalidArgument)
	}

	if opts.SpaceNameAsKey {
		if err := c.verifySpaceKey(spaceName); err != nil {
			return "", err
		}
		return spaceName, nil
	}

	params := url.Values{}
	params.Add("cql", fmt.Sprintf("space.title ~ %q", spaceName))
	params.Add("limit", "50")

	req, err := c.newRequest("GET", c.baseURL+"/rest/api/content/search?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Results []struct {
			Expandable struct {
				Space string `json:"space"`
			} `json:"_expandable"`
		} `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	var keys []string
	for _, r := range result.Results {
		// _expandable.space is a resource path like /rest/api/space/KEY
		key := path.Base(r.Expandable.Space)
		if key == "" || key == "." || key == "/" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	switch {
	case len(keys) == 0:
		return "", &NotFoundError{
			Resource: "space",
			Name:     spaceName,
			Detail:   "has it been deleted or is it called something else?",
		}
	case len(keys) > 1:
		return "", &AmbiguousError{Name: spaceName, Keys: keys}
	}

	c.debug("resolved space %q to key %q", spaceName, keys[0])
	return keys[0], nil
}

func (c *Client) verifySpaceKey(spaceKey string) error {
	params := url.Values{}
	params.Add("spaceKey", spaceKey)

	req, err := c.newRequest("GET", c.baseURL+"/rest/api/space?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	var result struct {
		Results []struct {
			Key string `json:"key"`
		} `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return err
	}

	if len(result.Results) != 1 {
		return &NotFoundError{Resource: "space", Name: spaceKey, Detail: "no space with this key exists"}
	}
	return nil
}

// ResolvePageID finds the server-assigned ID for a (title, space) pair.
func (c *Client) ResolvePageID(title, spaceName string, opts LookupOptions) (string, error) {
	if title == "" {
		return "", fmt.Errorf("%w: page title must not be empty", ErrInvalidArgument)
	}

	spaceKey, err := c.ResolveSpaceKey(spaceName, opts)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Add("title", title)
	params.Add("spaceKey", spaceKey)
	params.Add("expand", "body.storage")

	req, err := c.newRequest("GET", c.baseURL+"/rest/api/content?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Results []Page `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}

	if len(result.Results) == 0 {
		return "", &NotFoundError{
			Resource: "page",
			Name:     title,
			Detail:   fmt.Sprintf("has it been deleted or is it in a different space than %q?", spaceName),
		}
	}

	c.debug("resolved page %q in space %q to ID %s", title, spaceName, result.Results[0].ID)
	return result.Results[0].ID, nil
}

// GetCurrentVersion fetches the title, space key and version number of a
// page, the three fields an update payload has to carry.
func (c *Client) GetCurrentVersion(pageID string) (*PageVersion, error) {
	req, err := c.newRequest("GET", c.baseURL+"/rest/api/content/"+pageID+"?expand=version", nil)
	if err != nil {
		return nil, err
	}

	var page Page
	if err := c.do(req, &page); err != nil {
		return nil, err
	}

	return &PageVersion{
		Title:    page.Title,
		SpaceKey: path.Base(page.Expandable.Space),
		Number:   page.Version.Number,
	}, nil
}

// CreatePage posts a new page. Re-invocation creates a duplicate; the server
// does not deduplicate by title.
func (c *Client) CreatePage(title, spaceName, body string, opts CreateOptions) (*Page, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: page title must not be empty", ErrInvalidArgument)
	}

	spaceKey, err := c.ResolveSpaceKey(spaceName, opts.LookupOptions)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"type":  "page",
		"title": title,
		"space": map[string]string{"key": spaceKey},
		"body": map[string]interface{}{
			"storage": map[string]interface{}{
				"value":          body,
				"representation": "storage",
			},
		},
	}

	if opts.ParentTitle != "" {
		parentID, err := c.ResolvePageID(opts.ParentTitle, spaceName, opts.LookupOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent page: %w", err)
		}
		payload["ancestors"] = []map[string]string{{"id": parentID}}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page data: %w", err)
	}

	req, err := c.newRequest("POST", c.baseURL+"/rest/api/content", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	var result Page
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	c.debug("created page %q (ID %s) in space %q", title, result.ID, spaceKey)
	return &result, nil
}

// UpdatePage replaces the body of an existing page, submitting the fetched
// version number plus one. A stale version is rejected by the server; no
// retry is attempted here.
func (c *Client) UpdatePage(title, spaceName, body string, opts LookupOptions) (*Page, error) {
	pageID, err := c.ResolvePageID(title, spaceName, opts)
	if err != nil {
		return nil, err
	}

	current, err := c.GetCurrentVersion(pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current page version: %w", err)
	}

	payload := map[string]interface{}{
		"id":    pageID,
		"type":  "page",
		"title": current.Title,
		"space": map[string]string{"key": current.SpaceKey},
		"body": map[string]interface{}{
			"storage": map[string]interface{}{
				"value":          body,
				"representation": "storage",
			},
		},
		"version": map[string]int{"number": current.Number + 1},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page data: %w", err)
	}

	req, err := c.newRequest("PUT", c.baseURL+"/rest/api/content/"+pageID, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	var result Page
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	c.debug("updated page %q to version %d", title, current.Number+1)
	return &result, nil
}

// DeletePage removes a page. Deleting twice fails on the second lookup.
func (c *Client) DeletePage(title, spaceName string, opts LookupOptions) error {
	pageID, err := c.ResolvePageID(title, spaceName, opts)
	if err != nil {
		return err
	}

	req, err := c.newRequest("DELETE", c.baseURL+"/rest/api/content/"+pageID, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// GetPageContent fetches the storage-format body through the view-storage
// rendering plugin, which lives outside the /rest/api tree.
func (c *Client) GetPageContent(title, spaceName string, opts LookupOptions) (string, error) {
	pageID, err := c.ResolvePageID(title, spaceName, opts)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest("GET", c.baseURL+"/plugins/viewstorage/viewpagestorage.action?pageId="+pageID, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &RemoteError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// UploadAttachment posts the file at filePath as a new attachment on a page.
func (c *Client) UploadAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: file path must not be empty", ErrInvalidArgument)
	}

	pageID, err := c.ResolvePageID(title, spaceName, opts.LookupOptions)
	if err != nil {
		return nil, err
	}

	return c.postAttachment(c.baseURL+"/rest/api/content/"+pageID+"/child/attachment", filePath, opts.Comment)
}

// UpdateAttachment replaces the data of an existing attachment, located by
// matching the file's base name against the page's attachment list.
func (c *Client) UpdateAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error) {
	if filePath == "" {
		return nil, fmt.Errorf("%w: file path must not be empty", ErrInvalidArgument)
	}

	pageID, err := c.ResolvePageID(title, spaceName, opts.LookupOptions)
	if err != nil {
		return nil, err
	}

	attachmentID, err := c.findAttachmentID(pageID, filepath.Base(filePath))
	if err != nil {
		return nil, err
	}

	return c.postAttachment(c.baseURL+"/rest/api/content/"+pageID+"/child/attachment/"+attachmentID+"/data", filePath, opts.Comment)
}

// DeleteAttachment removes an attachment by filename.
func (c *Client) DeleteAttachment(filename, title, spaceName string, opts LookupOptions) error {
	if filename == "" {
		return fmt.Errorf("%w: attachment filename must not be empty", ErrInvalidArgument)
	}

	pageID, err := c.ResolvePageID(title, spaceName, opts)
	if err != nil {
		return err
	}

	attachmentID, err := c.findAttachmentID(pageID, filename)
	if err != nil {
		return err
	}

	req, err := c.newRequest("DELETE", c.baseURL+"/rest/api/content/"+attachmentID, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// AddTableToPage renders tabular data and replaces the page body with it.
func (c *Client) AddTableToPage(title, spaceName string, table *markup.Table, opts LookupOptions) (*Page, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: table must not be nil", ErrInvalidArgument)
	}
	return c.UpdatePage(title, spaceName, table.HTML(), opts)
}

func (c *Client) findAttachmentID(pageID, filename string) (string, error) {
	req, err := c.newRequest("GET", c.baseURL+"/rest/api/content/"+pageID+"/child/attachment", nil)
	if err != nil {
		return "", err
	}

	var result struct {
		Results []Attachment `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}

	for _, att := range result.Results {
		if att.Title == filename {
			return att.ID, nil
		}
	}
	return "", &NotFoundError{
		Resource: "attachment",
		Name:     filename,
		Detail:   "no attachment with this filename on the page",
	}
}

func (c *Client) postAttachment(requestURL, filePath, comment string) (*Attachment, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read attachment file: %w", err)
	}
	if comment != "" {
		if err := writer.WriteField("comment", comment); err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	req, err := http.NewRequest("POST", requestURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("X-Atlassian-Token", "nocheck")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	// Creating an attachment returns a results array; posting new data
	// against an existing one returns the attachment object itself.
	var result struct {
		Attachment
		Results []Attachment `json:"results"`
	}
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if len(result.Results) > 0 {
		return &result.Results[0], nil
	}
	return &result.Attachment, nil
}

func (c *Client) newRequest(method, requestURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) debug(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(format, args...)
	}
}
