// Package service orchestrates the capsule CLI workflows.
package service

import (
	"capsule/internal/api"
	"capsule/internal/gitremote"
	"capsule/internal/slogger"
	"context"
)

// ApplicationService coordinates application creation: one remote API
// call followed by local git remote setup.
type ApplicationService struct {
	api api.CapsuleAPI
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(capsuleAPI api.CapsuleAPI) *ApplicationService {
	return &ApplicationService{
		api: capsuleAPI,
	}
}

// Create creates an application on the platform and, when dir is a git
// repository, records the application's git URL as the "capsule" remote.
//
// The API call happens first; nothing local is touched unless the server
// confirmed creation. Either step failing aborts the workflow and the
// error is returned as-is. On success the server response is returned
// unchanged.
func (s *ApplicationService) Create(
	ctx context.Context,
	dir string,
	name *string,
) (*api.ApplicationCreateResponse, error) {
	resp, err := s.api.CreateApplication(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := gitremote.EnsureRemote(ctx, dir, resp.GitRepo); err != nil {
		return nil, err
	}

	slogger.Debug(ctx, "Application created", slogger.Fields{
		"application_name": resp.Name,
		"url":              resp.URL,
		"git_repo":         resp.GitRepo,
	})

	return resp, nil
}
