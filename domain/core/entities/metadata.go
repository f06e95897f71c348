package entities

// MetadataRequest is a batched metadata addition or deletion entry,
// keyed by node name
type MetadataRequest struct {
	NodeName string   `json:"nodeName"`
	Metadata []string `json:"metadata"`
}

// MetadataResult reports, per node name, which strings an addition
// actually newly added. Strings already present are not re-added and do
// not appear here.
type MetadataResult struct {
	NodeName string   `json:"nodeName"`
	Added    []string `json:"added"`
}
