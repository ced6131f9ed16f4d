package types

// Channel names the IBM service an account authenticates against.
type Channel string

const (
	ChannelQuantumPlatform Channel = "ibm_quantum_platform"
	ChannelCloud           Channel = "ibm_cloud"
	ChannelQuantum         Channel = "ibm_quantum"
)

// UsesIAM reports whether the token is an IBM Cloud API key exchanged for
// an IAM bearer token.
func (c Channel) UsesIAM() bool {
	return c == ChannelQuantumPlatform || c == ChannelCloud
}

// Account holds credentials for the remote runtime service.
type Account struct {
	Name     string  `json:"name"`
	Channel  Channel `json:"channel"`
	Token    string  `json:"token"`
	Instance string  `json:"instance,omitempty"` // CRN
	URL      string  `json:"url,omitempty"`
}
