package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

const secretAccessTimeout = 10 * time.Second

// one client serves every secret read during NewConfig
var (
	gsmOnce   sync.Once
	gsmClient *secretmanager.Client
	gsmErr    error
)

func secretClient() (*secretmanager.Client, error) {
	gsmOnce.Do(func() {
		gsmClient, gsmErr = secretmanager.NewClient(context.Background())
		if gsmErr != nil {
			gsmErr = fmt.Errorf("failed to create secretmanager client: %w", gsmErr)
		}
	})
	return gsmClient, gsmErr
}

// accessSecretVersion reads the payload of the secret version name, e.g.
// projects/<project>/secrets/LINK_SECRET/versions/latest
func accessSecretVersion(name string) (string, error) {
	client, err := secretClient()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), secretAccessTimeout)
	defer cancel()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %w", name, err)
	}

	return string(result.Payload.Data), nil
}
