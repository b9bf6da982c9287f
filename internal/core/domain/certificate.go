package domain

import "time"

// FlowState is a state of the certification flow
type FlowState string

// Certification flow states. Rejected and Failed are terminal: Rejected when
// the analysis found no usable capture metadata, Failed when an upstream
// service call after hashing did not succeed.
const (
	StateIdle         FlowState = "idle"
	StateAnalyzing    FlowState = "analyzing"
	StateRejected     FlowState = "rejected"
	StateHashing      FlowState = "hashing"
	StateProvisioning FlowState = "provisioning"
	StateEncoding     FlowState = "encoding"
	StatePublishing   FlowState = "publishing"
	StateDone         FlowState = "done"
	StateFailed       FlowState = "failed"
)

// Terminal tells whether the flow cannot advance past s
func (s FlowState) Terminal() bool {
	return s == StateRejected || s == StateDone || s == StateFailed
}

// Certificate is the outcome of one certification flow: the shareable proof
// that a media file was analyzed and its hash anchored as a DID resource.
type Certificate struct {
	ID        string              `json:"certificateId"`
	State     FlowState           `json:"state"`
	DID       string              `json:"did,omitempty"`
	Hash      string              `json:"hash,omitempty"`
	Analysis  *MediaAnalysis      `json:"analysis,omitempty"`
	Resource  *ResourceDescriptor `json:"resource,omitempty"`
	ShareURL  string              `json:"shareUrl,omitempty"`
	Error     string              `json:"error,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}
