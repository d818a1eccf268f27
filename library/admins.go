package library

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const adminsCollection = "admins"

var adminColumns = []string{"username", "credentialSecret"}

// Default credential seeded on first run. Known-weak; kept for parity with
// existing deployments and gated behind config so fresh installs can opt out.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminSecret   = "admin123"
)

// AdminDirectory manages administrator credentials.
type AdminDirectory struct {
	store *Store
}

// NewAdminDirectory wraps store.
func NewAdminDirectory(store *Store) *AdminDirectory {
	return &AdminDirectory{store: store}
}

// SeedDefault inserts the default admin credential when the collection is
// empty. It does nothing once any admin exists.
func (d *AdminDirectory) SeedDefault() error {
	records, err := d.store.Load(adminsCollection)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin secret: %w", err)
	}
	rec := Record{"username": DefaultAdminUsername, "credentialSecret": string(hash)}
	return d.store.Append(adminsCollection, rec, adminColumns)
}

// Authenticate verifies an admin credential.
func (d *AdminDirectory) Authenticate(username, secret string) (*Admin, error) {
	records, err := d.store.Load(adminsCollection)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r["username"] != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(r["credentialSecret"]), []byte(secret)) != nil {
			return nil, fmt.Errorf("%w: wrong credential", ErrInvalidInput)
		}
		return &Admin{Username: username, Secret: r["credentialSecret"]}, nil
	}
	return nil, fmt.Errorf("admin %s: %w", username, ErrNotFound)
}

// ChangeSecret replaces an admin's credential after verifying the old one.
func (d *AdminDirectory) ChangeSecret(username, oldSecret, newSecret string) error {
	if _, err := d.Authenticate(username, oldSecret); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	records, err := d.store.Load(adminsCollection)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r["username"] == username {
			r["credentialSecret"] = string(hash)
		}
	}
	return d.store.Save(adminsCollection, records, adminColumns)
}
