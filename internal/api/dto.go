package api

// CreateApplicationRequest is the request payload for creating an
// application on the Capsule platform.
type CreateApplicationRequest struct {
	// Name is the requested application name. A nil Name is serialized as
	// JSON null and asks the server to generate one.
	Name *string `json:"name"`
}

// ApplicationCreateResponse describes an application freshly created by
// the server. Fields are passed through to the caller unchanged.
type ApplicationCreateResponse struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	GitRepo string `json:"git_repo"`
}
