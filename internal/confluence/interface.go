package confluence

import "pagesmith/internal/markup"

// ConfluenceClient defines the interface for Confluence operations
type ConfluenceClient interface {
	VerifyCredentials() error
	ResolveSpaceKey(spaceName string, opts LookupOptions) (string, error)
	ResolvePageID(title, spaceName string, opts LookupOptions) (string, error)
	GetCurrentVersion(pageID string) (*PageVersion, error)
	CreatePage(title, spaceName, body string, opts CreateOptions) (*Page, error)
	UpdatePage(title, spaceName, body string, opts LookupOptions) (*Page, error)
	DeletePage(title, spaceName string, opts LookupOptions) error
	GetPageContent(title, spaceName string, opts LookupOptions) (string, error)
	UploadAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error)
	UpdateAttachment(filePath, title, spaceName string, opts AttachmentOptions) (*Attachment, error)
	DeleteAttachment(filename, title, spaceName string, opts LookupOptions) error
	AddTableToPage(title, spaceName string, table *markup.Table, opts LookupOptions) (*Page, error)
}

// Ensure Client implements the interface
var _ ConfluenceClient = (*Client)(nil)
