package entity

// ProviderType names the Firebase sign-in provider of a session.
type ProviderType string

const (
	ProviderTypePassword ProviderType = "password"
	ProviderTypeGoogle   ProviderType = "google.com"
	ProviderTypeUnknown  ProviderType = "unknown"
)

func (p ProviderType) String() string {
	return string(p)
}
