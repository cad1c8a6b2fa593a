package models

// AuthTokens holds the bearer token pair kept in the client state store.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (t AuthTokens) Empty() bool {
	return t.Access == ""
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
