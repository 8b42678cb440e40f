// internal/infra/secrets/secretmanager.go
package secrets

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Accessor reads secret payloads from Secret Manager. Used at boot to pull
// the SendGrid API key when it is not passed through the environment.
type Accessor struct {
	sm        *secretmanager.Client
	projectID string
}

func NewAccessor(ctx context.Context, projectID string) (*Accessor, error) {
	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return nil, errors.New("secrets: projectID is empty")
	}

	sm, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, errors.New("secrets: new client: " + err.Error())
	}
	return &Accessor{sm: sm, projectID: prj}, nil
}

// NewAccessorFromClient reuses an already-initialized Secret Manager client.
// The caller keeps ownership of the client's lifecycle.
func NewAccessorFromClient(sm *secretmanager.Client, projectID string) *Accessor {
	return &Accessor{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Access returns the latest version of the named secret, trimmed.
func (a *Accessor) Access(ctx context.Context, secretID string) (string, error) {
	if a == nil || a.sm == nil {
		return "", errors.New("secrets: accessor not configured")
	}
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("secrets: secretID is empty")
	}

	name := "projects/" + a.projectID + "/secrets/" + sid + "/versions/latest"
	resp, err := a.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secrets: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secrets: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (a *Accessor) Close() error {
	if a == nil || a.sm == nil {
		return nil
	}
	return a.sm.Close()
}
