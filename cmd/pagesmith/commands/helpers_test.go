package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"pagesmith/internal/config"
	"pagesmith/internal/confluence"
	"pagesmith/pkg/logger"
)

// helper run command with args capturing output/error
func runCmdForTest(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()
	// Cobra uses the same rootCmd singleton; replace its output writers
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeConfig(t *testing.T, dir string, data string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(data), 0600); err != nil {
		t.Fatalf("failed writing config: %v", err)
	}
	return p
}

const testConfigYAML = `confluence:
  base_url: http://confluence.local:8090
  username: admin
  password: secret
`

// withMockClient swaps the client factory for an in-memory mock and restores
// it (and the package-level flag state the rootCmd singleton accumulates)
// when the test finishes.
func withMockClient(t *testing.T) *confluence.MockClient {
	t.Helper()
	mock := confluence.NewMockClient()
	orig := newConfluenceClient
	newConfluenceClient = func(cfg *config.Config, log *logger.Logger) confluence.ConfluenceClient {
		return mock
	}
	t.Cleanup(func() {
		newConfluenceClient = orig
		resetFlagState()
	})
	return mock
}

func resetFlagState() {
	spaceIsKey = false
	createPageSpace, createPageTitle, createPageParent = "", "", ""
	createPageBody, createPageBodyFile = "", ""
	updatePageSpace, updatePageTitle = "", ""
	updatePageBody, updatePageBodyFile = "", ""
	deletePageSpace, deletePageTitle = "", ""
	getPageSpace, getPageTitle, getPageFormat = "", "", "storage"
	attachSpace, attachPage, attachFile, attachComment = "", "", "", ""
	configureSets = nil
	configureYes, configurePrint, configureNonInteractive = false, false, false
	shortVersion = false
}
