// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "leafline/internal/infra/config"
	"leafline/internal/infra/database"
	firestoreinfra "leafline/internal/infra/firestore"
	"leafline/internal/infra/secrets"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager)
// - owns the optional Postgres archive connection
// - owns env/config-resolved runtime settings
//
// IMPORTANT:
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	// Config
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestore.Client
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// Optional Postgres archive (nil when not configured)
	Archive *database.DB

	// Runtime settings (resolved once)
	SendGridAPIKey string
}

// NewInfra initializes shared infra.
// Firestore is strict (return error).
// Firebase/Auth, GCS, SecretManager and Postgres are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}

	projectID := resolveProjectID(cfg)
	if projectID == "" {
		return nil, errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[shared.infra] Using credentials file for GCP clients: %s", redactPath(credFile))
	} else {
		log.Printf("[shared.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Firestore (strict)
	{
		cw, err := firestoreinfra.NewClient(ctx, inf.ProjectID, credFile)
		if err != nil {
			return nil, fmt.Errorf("shared.infra: firestore init failed (project=%s): %w", inf.ProjectID, err)
		}
		inf.Firestore = cw.Client
	}

	// 2) GCS (best-effort; only the sitemap job needs it)
	{
		var gcsClient *storage.Client
		var err error
		if len(clientOpts) > 0 {
			gcsClient, err = storage.NewClient(ctx, clientOpts...)
		} else {
			gcsClient, err = storage.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: storage.NewClient failed: %v (sitemap publishing disabled)", err)
			gcsClient = nil
		}
		inf.GCS = gcsClient
	}

	// 3) Secret Manager (best-effort; used to pull the SendGrid key)
	{
		var sm *secretmanager.Client
		var err error
		if len(clientOpts) > 0 {
			sm, err = secretmanager.NewClient(ctx, clientOpts...)
		} else {
			sm, err = secretmanager.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[shared.infra] WARN: secretmanager.NewClient failed: %v (SecretManager-dependent features may be disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	// 4) Firebase App/Auth (best-effort; order endpoints fail closed without it)
	{
		var fbApp *firebase.App
		var err error

		fbCfg := &firebase.Config{ProjectID: inf.ProjectID}
		if len(clientOpts) > 0 {
			fbApp, err = firebase.NewApp(ctx, fbCfg, clientOpts...)
		} else {
			fbApp, err = firebase.NewApp(ctx, fbCfg)
		}

		if err != nil {
			log.Printf("[shared.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[shared.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[shared.infra] Firebase Auth initialized")
			}
		}
	}

	// 5) Postgres archive (best-effort; reporting only)
	if cfg.ArchiveEnabled() {
		db, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		if err != nil {
			log.Printf("[shared.infra] WARN: postgres connect failed: %v (order archive disabled)", err)
		} else {
			inf.Archive = db
		}
	} else {
		log.Printf("[shared.infra] Postgres archive not configured (DB_HOST/DB_USER/DB_NAME empty)")
	}

	// 6) SendGrid key (env first, then Secret Manager)
	inf.SendGridAPIKey = strings.TrimSpace(cfg.SendGridAPIKey)
	if inf.SendGridAPIKey == "" && strings.TrimSpace(cfg.SendGridSecretName) != "" && inf.SecretManager != nil {
		accessor := secrets.NewAccessorFromClient(inf.SecretManager, inf.ProjectID)
		key, err := accessor.Access(ctx, cfg.SendGridSecretName)
		if err != nil {
			log.Printf("[shared.infra] WARN: sendgrid key lookup failed: %v", err)
		} else {
			inf.SendGridAPIKey = key
			log.Printf("[shared.infra] SendGrid key loaded from Secret Manager")
		}
	}

	if inf.Firestore == nil {
		_ = inf.Close()
		return nil, errors.New("shared.infra: firestore client is nil after initialization (unexpected)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	if i.Archive != nil {
		_ = i.Archive.Close()
	}
	return nil
}

func resolveProjectID(cfg *appcfg.Config) string {
	// Priority:
	// 1) cfg.FirestoreProjectID (resolved by config.Load)
	// 2) FIRESTORE_PROJECT_ID
	// 3) GCP_PROJECT_ID
	// 4) GOOGLE_CLOUD_PROJECT (often set in Cloud Run)
	// 5) FIREBASE_PROJECT_ID (fallback)
	if cfg != nil {
		if v := strings.TrimSpace(cfg.FirestoreProjectID); v != "" {
			return v
		}
	}

	for _, k := range []string{
		"FIRESTORE_PROJECT_ID",
		"GCP_PROJECT_ID",
		"GOOGLE_CLOUD_PROJECT",
		"FIREBASE_PROJECT_ID",
	} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}

	return ""
}

func redactPath(p string) string {
	// Do not log the full path
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
