package domain

// ResourceDescriptor is the registry issued descriptor of an anchored
// resource. New edits never mutate a descriptor: they create a new version
// linked through the version chain fields.
type ResourceDescriptor struct {
	ResourceURI          string  `json:"resourceURI"`
	ResourceCollectionID string  `json:"resourceCollectionId"`
	ResourceID           string  `json:"resourceId"`
	ResourceName         string  `json:"resourceName"`
	ResourceType         string  `json:"resourceType"`
	MediaType            string  `json:"mediaType"`
	ResourceVersion      string  `json:"resourceVersion"`
	Checksum             string  `json:"checksum"`
	Created              string  `json:"created"`
	NextVersionID        *string `json:"nextVersionId,omitempty"`
	PreviousVersionID    *string `json:"previousVersionId,omitempty"`
}

// AlsoKnownAs is an alternative identifier attached to a resource
type AlsoKnownAs struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ResourceDescriptorInput describes the resource being published
type ResourceDescriptorInput struct {
	Name          string        `json:"name"`
	Type          string        `json:"type"`
	Version       string        `json:"version,omitempty"`
	Encoding      string        `json:"encoding"`
	AlsoKnownAs   []AlsoKnownAs `json:"alsoKnownAs,omitempty"`
	PublicKeyHexs []string      `json:"publicKeyHexs,omitempty"`
}
