package tokenprovider

import "context"

// AcceptanceArtifacts is what the payment platform hands out for one
// merchant: two opaque acceptance tokens plus the human-readable policy
// permalinks belonging to them.
type AcceptanceArtifacts struct {
	PrivacyPolicyToken    string
	PrivacyPolicyLink     string
	PersonalDataAuthToken string
	PersonalDataAuthLink  string
}

//go:generate mockgen -source=api.go -package tokenprovider -destination provider_mock.go Provider
type Provider interface {
	FetchAcceptance(c context.Context) (AcceptanceArtifacts, error)
}
