package confluence

import (
	"fmt"
	"path/filepath"

	"pagesmith/internal/markup"
)

// MockClient is an in-memory implementation of ConfluenceClient for tests.
type MockClient struct {
	SpaceKeys    map[string]string       // space name -> key
	Pages        map[string]*Page        // spaceName:title -> Page
	Attachments  map[string][]Attachment // pageID -> attachments
	CreateCalls  []string                // titles created (for assertions)
	UpdateCalls  []string                // titles updated
	DeleteCalls  []string                // titles deleted
	LastBody     string                  // body passed to the latest create/update
	LastParent   string                  // parent title passed to the latest create
	LastComment  string
	UploadedFile string
	VerifyErr    error
}

func NewMockClient() *MockClient {
	return &MockClient{
		SpaceKeys:   make(map[string]string),
		Pages:       make(map[string]*Page),
		Attachments: make(map[string][]Attachment),
	}
}

func (m *MockClient) key(spaceName, title string) string { return spaceName + ":" + title }

// AddPage seeds a page so commands under test can resolve it.
func (m *MockClient) AddPage(title, spaceName, body string) *Page {
	p := &Page{ID: title + "-id", Title: title}
	p.Body.Storage.Value = body
	p.Version.Number = 1
	m.Pages[m.key(spaceName, title)] = p
	return p
}

func (m *MockClient) VerifyCredentials() error { return m.VerifyErr }

func (m *MockClient) ResolveSpaceKey(spaceName string, opts LookupOptions) (string, error) {
	if opts.SpaceNameAsKey {
		return spaceName, nil
	}
	if key, ok := m.SpaceKeys[spaceName]; ok {
		return key, nil
	}
	return "", &NotFoundError{Resource: "space", Name: spaceName}
}

func (m *MockClient) ResolvePageID(title, spaceName string, opts LookupOptions) (string, error) {
	if p, ok := m.Pages[m.key(spaceName, title)]; ok {
		return p.ID, nil
	}
	return "", &NotFoundError{Resource: "page", Name: title}
}

func (m *MockClient) GetCurrentVersion(pageID string) (*PageVersion, error) {
	for _, p := range m.Pages {
		if p.ID == pageID {
			return &PageVersion{Title: p.Title, SpaceKey: p.Space.Key, Number: p.Version.Number}, nil
		}
	}
	return nil, &NotFoundError{Resource: "page", Name: pageID}
}

func (m *MockClient) CreatePage(title, spaceName, body string, opts CreateOptions) (*Page, error) {
	p := m.AddPage(title, spaceName, body)
	m.CreateCalls = append(m.CreateCalls, title)
	m.LastBody = body
	m.LastParent = opts.ParentTitle
	return p, nil
}

func (m *MockClient) UpdatePage(title, spaceName, body string, opts LookupOptions) (*Page, error) {
	p, ok := m.Pages[m.key(spaceName, title)]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Name: title}
	}
	p.Body.Storage.Value = body
	p.Version.Number++
	m.UpdateCalls = append(m.UpdateCalls, title)
	m.LastBody = body
	return p, nil
}

func (m *MockClient) DeletePage(title, spaceName string, opts LookupOptions) error {
	if _, ok := m.Pages[m.key(spaceName, title)]; !ok {
		return &NotFoundError{Resource: "page", Name: title}
	}
	delete(m.Pages, m.key(spaceName, title))
	m.DeleteCalls = append(m.DeleteCalls, title)
	return nil
}

func (m *MockClient) GetPageContent(title, spaceName string, opts LookupOptions) (string, error) {
	p, ok := m.Pages[m.key(spaceName, title)]
	if !ok {
		return "", &NotFoundError{Resource: "page", Name: title}
	}
	return p.Body.Storage.Value, nil
}

func (m *MockClient) UploadAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error) {
	pageID, err := m.ResolvePageID(title, spaceName, opts.LookupOptions)
	if err != nil {
		return nil, err
	}
	att := Attachment{ID: fmt.Sprintf("att-%d", len(m.Attachments[pageID])+1), Title: filepath.Base(filePath)}
	m.Attachments[pageID] = append(m.Attachments[pageID], att)
	m.UploadedFile = filePath
	m.LastComment = opts.Comment
	return &att, nil
}

func (m *MockClient) UpdateAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error) {
	pageID, err := m.ResolvePageID(title, spaceName, opts.LookupOptions)
	if err != nil {
		return nil, err
	}
	for _, att := range m.Attachments[pageID] {
		if att.Title == filepath.Base(filePath) {
			m.UploadedFile = filePath
			m.LastComment = opts.Comment
			return &att, nil
		}
	}
	return nil, &NotFoundError{Resource: "attachment", Name: filepath.Base(filePath)}
}

func (m *MockClient) DeleteAttachment(filename, title, spaceName string, opts LookupOptions) error {
	pageID, err := m.ResolvePageID(title, spaceName, opts)
	if err != nil {
		return err
	}
	atts := m.Attachments[pageID]
	for i, att := range atts {
		if att.Title == filename {
			m.Attachments[pageID] = append(atts[:i], atts[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Resource: "attachment", Name: filename}
}

func (m *MockClient) AddTableToPage(title, spaceName string, table *markup.Table, opts LookupOptions) (*Page, error) {
	return m.UpdatePage(title, spaceName, table.HTML(), opts)
}

var _ ConfluenceClient = (*MockClient)(nil)
