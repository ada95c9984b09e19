package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme   = "wiki://"
	manifestURI = uriScheme + "manifest"
	documentURI = uriScheme + "documents/"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		URI:         manifestURI,
		Name:        "manifest",
		Description: "Build manifest of the site index: document count and build time",
		MIMEType:    "application/json",
	}, s.handleManifestResource)

	s.mcp.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentURI + "{id}",
		Name:        "document",
		Description: "Stored fields of one indexed document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

func (s *Server) handleManifestResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.indexInfo())
}

func (s *Server) handleDocumentResource(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id := strings.TrimPrefix(req.Params.URI, documentURI)
	index, _ := s.current()
	hit, ok := index.Document(id)
	if id == "" || !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toHitOutput(hit))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, MapError(err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
