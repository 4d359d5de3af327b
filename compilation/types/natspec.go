package types

// Natspec pairs the user-facing and developer-facing structured documentation a compiler emitted for one contract.
// Both documents are optional in toolchain output; absent documents are represented as empty mappings rather than nil
// so consumers never need to guard against missing maps.
type Natspec struct {
	// Userdoc describes the user-facing documentation mapping for a contract.
	Userdoc map[string]any `json:"userdoc"`

	// Devdoc describes the developer-facing documentation mapping for a contract.
	Devdoc map[string]any `json:"devdoc"`
}

// NewNatspec creates a Natspec from optional user and developer documentation mappings, substituting empty mappings
// for any the source document omitted.
func NewNatspec(userdoc map[string]any, devdoc map[string]any) Natspec {
	if userdoc == nil {
		userdoc = make(map[string]any)
	}
	if devdoc == nil {
		devdoc = make(map[string]any)
	}
	return Natspec{
		Userdoc: userdoc,
		Devdoc:  devdoc,
	}
}
