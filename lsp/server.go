// Package lsp implements a language server which publishes garnet's parse
// diagnostics.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/pattyshack/garnet/config"
)

const lsName = "garnet"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	config config.Config

	mutex     sync.Mutex
	documents map[protocol.DocumentUri][]byte

	log commonlog.Logger
}

func NewServer(version string, cfg config.Config) *Server {
	ls := &Server{
		version:   version,
		config:    cfg,
		documents: map[protocol.DocumentUri][]byte{},
		log:       commonlog.GetLogger("garnet.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, cfg.Debug)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(
	ctx *glsp.Context,
	params *protocol.InitializeParams,
) (
	any,
	error,
) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(
	ctx *glsp.Context,
	params *protocol.InitializedParams,
) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(
	ctx *glsp.Context,
	params *protocol.SetTraceParams,
) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(
	ctx *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	content := []byte(params.TextDocument.Text)
	ls.update(params.TextDocument.URI, content)
	ls.publish(ctx, params.TextDocument.URI, content)
	return nil
}

func (ls *Server) textDocumentDidChange(
	ctx *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change holds the whole document.
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}

	content := []byte(whole.Text)
	ls.update(params.TextDocument.URI, content)
	ls.publish(ctx, params.TextDocument.URI, content)
	return nil
}

func (ls *Server) textDocumentDidClose(
	ctx *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	ls.mutex.Lock()
	delete(ls.documents, params.TextDocument.URI)
	ls.mutex.Unlock()

	// Clear the document's diagnostics.
	ctx.Notify(
		protocol.ServerTextDocumentPublishDiagnostics,
		protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	return nil
}

func (ls *Server) textDocumentDidSave(
	ctx *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	var content []byte
	if params.Text != nil {
		content = []byte(*params.Text)
		ls.update(params.TextDocument.URI, content)
	} else {
		ls.mutex.Lock()
		content = ls.documents[params.TextDocument.URI]
		ls.mutex.Unlock()
	}

	ls.publish(ctx, params.TextDocument.URI, content)
	return nil
}

func (ls *Server) update(uri protocol.DocumentUri, content []byte) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()
	ls.documents[uri] = content
}

func (ls *Server) publish(
	ctx *glsp.Context,
	uri protocol.DocumentUri,
	content []byte,
) {
	diagnostics := Diagnose(
		content,
		ls.config.ParserConfig(uriToPath(uri)),
		ls.config.Analyze)

	ls.log.Debugf("%s: publishing %d diagnostics", uri, len(diagnostics))

	ctx.Notify(
		protocol.ServerTextDocumentPublishDiagnostics,
		protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: diagnostics,
		})
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(
	kind protocol.TextDocumentSyncKind,
) *protocol.TextDocumentSyncKind {
	return &kind
}
