package domain

// VerificationMethod is a single verification method of a DID document
type VerificationMethod struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   string `json:"controller"`
	PublicKeyHex string `json:"publicKeyHex,omitempty"`
}

// ServiceEndpoint is a service entry of a DID document
type ServiceEndpoint struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint any    `json:"serviceEndpoint"`
}

// DIDDocument is the resolvable record describing a DID. It is immutable once
// anchored except for the linked resource metadata, which grows over time.
type DIDDocument struct {
	Context            []string             `json:"@context,omitempty"`
	ID                 string               `json:"id"`
	Controller         []string             `json:"controller,omitempty"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication     []string             `json:"authentication,omitempty"`
	Service            []ServiceEndpoint    `json:"service,omitempty"`
}

// RegistryKey is a fresh asymmetric keypair reference issued by the registry.
// The private key never leaves the hosted service.
type RegistryKey struct {
	Kid          string `json:"kid"`
	PublicKeyHex string `json:"publicKeyHex"`
}
