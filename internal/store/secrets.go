package store

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Secrets path
// projects/{project}/secrets/{secret}/versions/{version}

type secretsStore struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretsStore(client *secretmanager.Client, projectID string) *secretsStore {
	return &secretsStore{
		client:    client,
		projectID: projectID,
	}
}

// GetSecret returns the payload of a secret version. name may be a bare secret
// id, a secret resource name or a full version resource name.
func (s *secretsStore) GetSecret(ctx context.Context, name string) (string, error) {
	versionName, err := SecretVersionName(s.projectID, name)
	if err != nil {
		return "", err
	}

	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: versionName,
	})
	if status.Code(err) == codes.NotFound {
		return "", fmt.Errorf("secret %s not found", versionName)
	}
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", versionName, err)
	}
	return strings.TrimSpace(string(res.Payload.GetData())), nil
}

func SecretVersionName(projectID, name string) (string, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return "", fmt.Errorf("secret name is empty")
	}

	if !strings.HasPrefix(name, "projects/") {
		if projectID == "" {
			return "", fmt.Errorf("secret %q needs a project id", name)
		}
		name = fmt.Sprintf("projects/%s/secrets/%s", projectID, name)
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name, nil
}
