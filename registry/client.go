// Package registry resolves an ArtifactID to its current download URL by
// querying an npm-style package registry.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kokoro-js/jieba/iox"
	"github.com/kokoro-js/jieba/types"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// Scope is the vendor scope the prebuilt artifacts are published under.
const Scope = "@node-rs"

// DefaultTimeout bounds the single metadata request.
const DefaultTimeout = 15 * time.Second

// Location is the registry's answer for one artifact: where to download
// it and which published version that is.
type Location struct {
	Version    string
	TarballURL string
	// Integrity is the registry's SSRI digest for the tarball, when
	// present. Advisory; the fetcher checks transfer completeness either
	// way.
	Integrity string
}

// Client performs single-shot metadata lookups. Retries, if any, belong
// to an outer policy, not here.
type Client struct {
	base string
	http *http.Client
}

// New creates a registry client. An empty baseURL selects the public npm
// registry.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

// PackageName is the fixed transform from ArtifactID to the registry
// package name: "jieba.linux-x64-gnu" → "@node-rs/jieba-linux-x64-gnu".
func PackageName(id types.ArtifactID) string {
	return Scope + "/" + strings.Replace(string(id), ".", "-", 1)
}

// latestDoc is the subset of the registry's "latest" metadata document we
// consume.
type latestDoc struct {
	Version string `json:"version"`
	Dist    struct {
		Tarball   string `json:"tarball"`
		Integrity string `json:"integrity"`
	} `json:"dist"`
}

// Locate fetches the latest-version metadata for the artifact's package
// and extracts the tarball URL. Every failure mode — transport error,
// non-success status, undecodable body, missing tarball field — is
// classified as ErrRegistry.
func (c *Client) Locate(ctx context.Context, id types.ArtifactID) (Location, error) {
	url := fmt.Sprintf("%s/%s/latest", c.base, PackageName(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, types.NewInstallError(types.ErrRegistry, "locate", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, types.NewInstallError(types.ErrRegistry, "locate", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Location{}, types.NewInstallError(types.ErrRegistry, "locate",
			fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode))
	}

	var doc latestDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return Location{}, types.NewInstallError(types.ErrRegistry, "locate",
			fmt.Errorf("decode metadata: %w", err))
	}
	if doc.Dist.Tarball == "" {
		return Location{}, types.NewInstallError(types.ErrRegistry, "locate",
			fmt.Errorf("metadata for %s has no dist.tarball", PackageName(id)))
	}

	return Location{
		Version:    doc.Version,
		TarballURL: doc.Dist.Tarball,
		Integrity:  doc.Dist.Integrity,
	}, nil
}
