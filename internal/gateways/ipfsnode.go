package gateways

import (
	"bytes"
	"context"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/pkg/errors"

	"github.com/verimedia/media-platform/internal/core/domain"
	"github.com/verimedia/media-platform/internal/log"
)

// IPFSNodeService pins content on a self hosted IPFS node through its HTTP
// API. Alternative to the hosted pinning provider, selected by configuration.
type IPFSNodeService struct {
	sh         *shell.Shell
	gatewayURL string
}

// NewIPFSNodeService returns a pinner backed by the IPFS node at nodeAddr
func NewIPFSNodeService(nodeAddr, gatewayURL string) *IPFSNodeService {
	return &IPFSNodeService{
		sh:         shell.NewShell(nodeAddr),
		gatewayURL: gatewayURL,
	}
}

// Pin adds and pins content on the node and returns its gateway url
func (s *IPFSNodeService) Pin(ctx context.Context, content []byte, name string) (string, error) {
	if s.sh == nil {
		return "", domain.NewConfigurationError("IPFS node address")
	}

	cid, err := s.sh.Add(bytes.NewReader(content), shell.Pin(true))
	if err != nil {
		return "", errors.Wrap(err, "adding content to IPFS node")
	}
	log.Debug(ctx, "content pinned on node", "cid", cid, "name", name)
	return gatewayURL(s.gatewayURL, cid), nil
}
